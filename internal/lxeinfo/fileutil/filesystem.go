package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shiroemons/go-pmlxzj/internal/lxeinfo/interfaces"
	"github.com/shiroemons/go-pmlxzj/pkg/lxe"
)

// OSFileSystem は実際のOSファイルシステムを使用する実装
type OSFileSystem struct{}

// NewOSFileSystem は新しいOSFileSystemを作成します
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// FileExists はファイルが存在するか確認します
func (fs *OSFileSystem) FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// ReadFile はファイルを読み込みます
func (fs *OSFileSystem) ReadFile(filename string) ([]byte, error) {
	return os.ReadFile(filename)
}

// ReadTail はファイル末尾の最大 n バイトを読み込みます
func (fs *OSFileSystem) ReadTail(filename string, n int64) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	n = min(n, info.Size())
	if _, err := f.Seek(-n, io.SeekEnd); err != nil {
		return nil, err
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteFile はファイルを書き込みます
func (fs *OSFileSystem) WriteFile(filename string, data []byte, perm uint32) error {
	return os.WriteFile(filename, data, os.FileMode(perm))
}

// MkdirAll はディレクトリを作成します
func (fs *OSFileSystem) MkdirAll(path string, perm uint32) error {
	return os.MkdirAll(path, os.FileMode(perm))
}

// Stat はファイル情報を取得します
func (fs *OSFileSystem) Stat(name string) (interfaces.FileInfo, error) {
	return os.Stat(name)
}

// ReadDir はディレクトリを読み込みます
func (fs *OSFileSystem) ReadDir(dirname string) ([]interfaces.DirEntry, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}

	result := make([]interfaces.DirEntry, len(entries))
	for i, entry := range entries {
		result[i] = entry
	}
	return result, nil
}

// Getwd は現在の作業ディレクトリを取得します
func (fs *OSFileSystem) Getwd() (string, error) {
	return os.Getwd()
}

// Executable は実行ファイルのパスを取得します
func (fs *OSFileSystem) Executable() (string, error) {
	return os.Executable()
}

// ExeFileFinder は動画ファイルの検索を行います
type ExeFileFinder struct {
	fs interfaces.FileSystem
}

// NewExeFileFinder は新しいExeFileFinderを作成します
func NewExeFileFinder(fs interfaces.FileSystem) *ExeFileFinder {
	return &ExeFileFinder{fs: fs}
}

// Find はカレントディレクトリおよび実行ファイルと同じディレクトリから動画ファイルを検索します。
// 見つからない場合は空文字列を返します。
func (f *ExeFileFinder) Find() (string, error) {
	currentDir, err := f.fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGetCurrentDirectory, err)
	}

	// カレントディレクトリで見つかった場合は他のディレクトリは検索しない
	found, err := f.findInDir(currentDir)
	if err != nil {
		return "", err
	}

	if len(found) == 0 {
		execPath, err := f.fs.Executable()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrGetExecutablePath, err)
		}

		execDir := filepath.Dir(execPath)
		if execDir != currentDir {
			if found, err = f.findInDir(execDir); err != nil {
				return "", err
			}
		}
	}

	switch len(found) {
	case 0:
		return "", nil
	case 1:
		return found[0], nil
	default:
		return "", f.createMultipleFilesError(found)
	}
}

// findInDir は指定されたディレクトリ内でフッターに識別子を持つ.exeファイルを検索します
func (f *ExeFileFinder) findInDir(dir string) ([]string, error) {
	files, err := f.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadDirectory, dir, err)
	}

	var found []string
	for _, file := range files {
		if file.IsDir() || !ExeFilePattern.MatchString(file.Name()) {
			continue
		}

		path := filepath.Join(dir, file.Name())
		tail, err := f.fs.ReadTail(path, lxe.FooterSize)
		if err != nil {
			// 読めないファイルは候補から外す
			continue
		}
		if lxe.Probe(tail) {
			found = append(found, path)
		}
	}
	return found, nil
}

// createMultipleFilesError は複数の動画ファイルが見つかった場合のエラーを生成します
func (f *ExeFileFinder) createMultipleFilesError(files []string) error {
	fileNames := make([]string, len(files))
	for i, path := range files {
		fileNames[i] = filepath.Base(path)
	}
	return fmt.Errorf("%w: %s", ErrMultipleExeFiles, strings.Join(fileNames, ", "))
}
