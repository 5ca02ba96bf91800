// Package container は動画ファイルからレポート用のデータを抽出します
package container

import (
	"bytes"
	"context"
	"fmt"

	"github.com/shiroemons/go-pmlxzj/internal/lxeinfo/config"
	apperrors "github.com/shiroemons/go-pmlxzj/internal/lxeinfo/errors"
	"github.com/shiroemons/go-pmlxzj/internal/lxeinfo/interfaces"
	"github.com/shiroemons/go-pmlxzj/internal/lxeinfo/models"
	"github.com/shiroemons/go-pmlxzj/pkg/lxe"
)

// Extractor は動画ファイルを解析してデータを抽出します
type Extractor struct {
	logger *config.DebugLogger
	fs     interfaces.FileSystem
}

// NewExtractor は新しいExtractorを作成します
func NewExtractor(logger *config.DebugLogger, fs interfaces.FileSystem) *Extractor {
	return &Extractor{
		logger: logger,
		fs:     fs,
	}
}

// Extract は動画ファイルのメタデータを読み込み、フレームストリームを最後まで検証します。
// フレームストリームのエラーは ExtractedData.WalkErr に格納されます。
func (e *Extractor) Extract(ctx context.Context, path string, password string, force bool) (*models.ExtractedData, error) {
	// コンテキストのキャンセルチェック
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	buf, err := e.fs.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewContainerError("read", path, fmt.Errorf("%w: %w", ErrReadContainer, err))
	}

	c, err := lxe.Parse(buf)
	if err != nil {
		if lxe.IsFormatError(err) {
			return nil, apperrors.NewContainerError("open", path, fmt.Errorf("%w: %w", apperrors.ErrInvalidContainer, err))
		}
		return nil, apperrors.NewContainerError("open", path, err)
	}
	e.logger.Printf("ヘッダー位置: 0x%08x, 動画情報: 0x%08x\n", c.Metadata.Footer.HeaderOffset, c.Metadata.VideoOffset)

	if password != "" {
		if err := c.SetPassword(password, force); err != nil {
			if !force {
				return nil, apperrors.NewContainerError("password", path, fmt.Errorf("%w: %w", ErrPassword, err))
			}
			e.logger.Printf("パスワードのチェックサムが一致しませんが、そのまま使用します\n")
		}
	}

	data := &models.ExtractedData{
		InputFile:  path,
		Metadata:   c.Metadata,
		Lock:       c.Lock(),
		Infotext:   c.Infotext(),
		FontName:   c.FontName(),
		Registered: c.Registered(),
		Keyframes:  bytes.Clone(c.Keyframes()),
		Clicks:     bytes.Clone(c.Clicks()),
	}

	if !c.HasKey() {
		e.logger.Printf("再生パスワードが指定されていないため、フレームの検証をスキップします\n")
		data.Stats.Skipped = true
		return data, nil
	}

	if err := e.walk(ctx, c, data); err != nil {
		return nil, err
	}
	return data, nil
}

// walk はフレームストリームを読み込んで集計します
func (e *Extractor) walk(ctx context.Context, c *lxe.Container, data *models.ExtractedData) error {
	w := c.Walk(lxe.WalkOptions{})
	stats := &data.Stats

	for w.Next() {
		// コンテキストのキャンセルチェック
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rec := w.Record()
		switch rec.Kind {
		case lxe.KindImage:
			stats.Images++
			stats.StreamBytes += int64(rec.StreamLen)
			stats.InflatedBytes += int64(len(rec.Data))
			if rec.Decrypted {
				stats.Decrypted++
			}
			e.logger.Printf("画像 %d: 0x%08x, %d -> %d バイト\n", rec.Number, rec.Offset, rec.StreamLen, len(rec.Data))
		case lxe.KindCursor:
			stats.Cursors++
		}
		stats.Frames = max(stats.Frames, rec.Number)
	}

	stats.Completed = w.Done()
	data.WalkErr = w.Err()
	if data.WalkErr != nil {
		e.logger.Printf("フレームストリームの読み込みを中断しました: %v\n", data.WalkErr)
	}
	return nil
}
