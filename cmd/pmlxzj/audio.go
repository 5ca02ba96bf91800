package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shiroemons/go-pmlxzj/pkg/lxe"
)

// extractAudio は音声データを audio.<拡張子> として書き出し、書き出したパスを返します
func extractAudio(c *lxe.Container, outDir string, compress bool) (string, error) {
	a, err := c.Audio()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("出力ディレクトリを作成できません: %w", err)
	}
	name := "audio." + a.Type.Ext()
	if compress {
		name += ".zst"
	}
	outPath := filepath.Join(outDir, name)
	if err := writeFile(outPath, a.Data, compress); err != nil {
		return "", fmt.Errorf("書き出しエラー: %s: %w", name, err)
	}
	return outPath, nil
}
