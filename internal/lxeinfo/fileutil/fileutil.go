// Package fileutil はファイル操作のユーティリティ関数を提供します
package fileutil

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shiroemons/go-pmlxzj/internal/lxeinfo/interfaces"
)

var (
	// ExeFilePattern は動画ファイルの候補となるファイル名のパターン
	ExeFilePattern = regexp.MustCompile(`(?i)^.+\.exe$`)
)

// utf8BOM はレポートの先頭に付けるBOM
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SaveToFileWithBOM はUTF-8 BOMありでファイルに保存します
func SaveToFileWithBOM(fs interfaces.FileSystem, outputPath string, content string) error {
	data := make([]byte, 0, len(utf8BOM)+len(content))
	data = append(data, utf8BOM...)
	data = append(data, content...)
	return SaveToFile(fs, outputPath, data)
}

// SaveToFile は出力先ディレクトリを作成してからファイルに保存します
func SaveToFile(fs interfaces.FileSystem, outputPath string, data []byte) error {
	dir := filepath.Dir(outputPath)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrCreateDirectory, err)
	}
	if err := fs.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteContent, err)
	}
	return nil
}

// GenerateOutputFilename は入力ファイル名から出力ファイル名を生成します
func GenerateOutputFilename(inputPath string) string {
	// ファイル名の部分だけを取得（拡張子なし）
	baseName := filepath.Base(inputPath)
	baseName = strings.TrimSuffix(baseName, filepath.Ext(baseName))

	// info_XXX.txt 形式の名前を生成
	return fmt.Sprintf("info_%s.txt", baseName)
}
