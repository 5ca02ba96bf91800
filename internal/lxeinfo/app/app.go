// Package app はアプリケーションのメインロジックを実装します
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shiroemons/go-pmlxzj/internal/lxeinfo/config"
	"github.com/shiroemons/go-pmlxzj/internal/lxeinfo/container"
	"github.com/shiroemons/go-pmlxzj/internal/lxeinfo/fileutil"
	"github.com/shiroemons/go-pmlxzj/internal/lxeinfo/interfaces"
	"github.com/shiroemons/go-pmlxzj/internal/lxeinfo/models"
	"github.com/shiroemons/go-pmlxzj/internal/lxeinfo/parser"
)

const (
	keyframesFilename = "keyframes.txt"
	clicksFilename    = "clicks.txt"
)

// App はアプリケーションのメインロジックを管理します
type App struct {
	config        *config.Config
	logger        *config.DebugLogger
	extractor     interfaces.Extractor
	parser        interfaces.InfoParser
	exeFileFinder interfaces.ExeFileFinder
	fs            interfaces.FileSystem
}

// Options はAppの設定オプション
type Options struct {
	FileSystem    interfaces.FileSystem
	Extractor     interfaces.Extractor
	ExeFileFinder interfaces.ExeFileFinder
	Parser        interfaces.InfoParser
}

// New は新しいAppを作成します
func New(cfg *config.Config) *App {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) *App {
	logger := config.NewDebugLogger(cfg.DebugMode)

	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}

	extractor := opts.Extractor
	if extractor == nil {
		extractor = container.NewExtractor(logger, fs)
	}

	finder := opts.ExeFileFinder
	if finder == nil {
		finder = fileutil.NewExeFileFinder(fs)
	}

	infoParser := opts.Parser
	if infoParser == nil {
		infoParser = parser.NewInfoParser()
	}

	return &App{
		config:        cfg,
		logger:        logger,
		extractor:     extractor,
		parser:        infoParser,
		exeFileFinder: finder,
		fs:            fs,
	}
}

// Run はアプリケーションを実行します
func (a *App) Run(ctx context.Context) error {
	inputPath, err := a.resolveInput(ctx)
	if err != nil {
		return err
	}

	data, err := a.extractor.Extract(ctx, inputPath, a.config.Password, a.config.Force)
	if err != nil {
		return err
	}

	info, err := a.parser.Parse(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrParseInfo, err)
	}

	output := a.generateOutput(data, info)

	if a.config.DryRun {
		a.logger.Printf("ドライランのためファイルは保存しません\n")
	} else if err := a.save(data, output); err != nil {
		return err
	}

	fmt.Print(output)

	if data.WalkErr != nil {
		return fmt.Errorf("%w: %w", ErrFrameStream, data.WalkErr)
	}
	return nil
}

// resolveInput は入力ファイルを決定します
func (a *App) resolveInput(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if a.config.InputPath != "" {
		return a.config.InputPath, nil
	}

	found, err := a.exeFileFinder.Find()
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", ErrNoInputFile
	}
	a.logger.Printf("自動検出した動画ファイル %s を読み込みます...\n", filepath.Base(found))
	return found, nil
}

// save はレポートとテキストセグメントを出力先に保存します
func (a *App) save(data *models.ExtractedData, output string) error {
	outputPath := filepath.Join(a.config.OutputDir, fileutil.GenerateOutputFilename(data.InputFile))
	if err := fileutil.SaveToFileWithBOM(a.fs, outputPath, output); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFile, err)
	}
	a.logger.Printf("情報を %s に保存しました\n", outputPath)

	segments := []struct {
		name string
		data []byte
	}{
		{keyframesFilename, data.Keyframes},
		{clicksFilename, data.Clicks},
	}
	for _, s := range segments {
		if s.data == nil {
			continue
		}
		path := filepath.Join(a.config.OutputDir, s.name)
		if err := fileutil.SaveToFile(a.fs, path, s.data); err != nil {
			return fmt.Errorf("%w: %w", ErrSaveFile, err)
		}
		a.logger.Printf("%d バイトを %s に保存しました\n", len(s.data), path)
	}
	return nil
}

// generateOutput は出力内容を生成します
func (a *App) generateOutput(data *models.ExtractedData, info *models.Info) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "File: %s\n", filepath.Base(data.InputFile))
	fmt.Fprintf(&builder, "Title: %s\n", info.Title)
	fmt.Fprintf(&builder, "Infotext: %s\n", info.Infotext)
	if info.InfoStyle != "" {
		fmt.Fprintf(&builder, "Infotext style: %s\n", info.InfoStyle)
	}
	fmt.Fprintf(&builder, "Resolution: %s\n", info.Resolution)
	fmt.Fprintf(&builder, "Elapsed: %s\n", info.Elapsed)
	fmt.Fprintf(&builder, "Lock: %s\n", info.LockState)
	if info.Registered {
		builder.WriteString("Registered: yes\n")
	} else {
		builder.WriteString("Registered: no\n")
	}
	fmt.Fprintf(&builder, "Video: %s\n", info.VideoOffset)
	fmt.Fprintf(&builder, "Audio: %s\n", info.AudioOffset)
	fmt.Fprintf(&builder, "Keyframes: %s\n", info.Keyframes)
	fmt.Fprintf(&builder, "Clicks: %s\n", info.Clicks)

	// フレームストリームの集計
	stats := data.Stats
	switch {
	case stats.Skipped:
		builder.WriteString("Frames: (skipped, password required)\n")
	default:
		fmt.Fprintf(&builder, "Frames: %d images, %d cursors, last frame %d\n", stats.Images, stats.Cursors, stats.Frames)
		fmt.Fprintf(&builder, "Stream: %d bytes compressed, %d bytes inflated, %d decrypted\n",
			stats.StreamBytes, stats.InflatedBytes, stats.Decrypted)
		if stats.Completed {
			builder.WriteString("Status: complete\n")
		} else {
			fmt.Fprintf(&builder, "Status: incomplete (%v)\n", data.WalkErr)
		}
	}

	return builder.String()
}
