// Package interfaces はlxeinfoコマンドで使用するインターフェースを定義します
package interfaces

import (
	"context"

	"github.com/shiroemons/go-pmlxzj/internal/lxeinfo/models"
)

// FileSystem はファイルシステム操作のインターフェース
type FileSystem interface {
	FileExists(filename string) bool
	ReadFile(filename string) ([]byte, error)
	// ReadTail はファイル末尾の最大 n バイトを読み込みます
	ReadTail(filename string, n int64) ([]byte, error)
	WriteFile(filename string, data []byte, perm uint32) error
	MkdirAll(path string, perm uint32) error
	Stat(name string) (FileInfo, error)
	ReadDir(dirname string) ([]DirEntry, error)
	Getwd() (string, error)
	Executable() (string, error)
}

// FileInfo はファイル情報のインターフェース
type FileInfo interface {
	Name() string
	IsDir() bool
}

// DirEntry はディレクトリエントリのインターフェース
type DirEntry interface {
	Name() string
	IsDir() bool
}

// Extractor はコンテナからデータを抽出するインターフェースです
type Extractor interface {
	Extract(ctx context.Context, path string, password string, force bool) (*models.ExtractedData, error)
}

// ExeFileFinder は動画ファイルを検索するインターフェースです
type ExeFileFinder interface {
	Find() (string, error)
}

// InfoParser は抽出したデータをレポート用に解析するインターフェース
type InfoParser interface {
	Parse(data *models.ExtractedData) (*models.Info, error)
}

// Logger はログ出力のインターフェース
type Logger interface {
	Printf(format string, a ...any)
}
