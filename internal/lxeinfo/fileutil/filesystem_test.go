package fileutil

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shiroemons/go-pmlxzj/internal/lxeinfo/mocks"
)

func buildContainer(t *testing.T) []byte {
	t.Helper()
	data, err := mocks.BuildContainer(mocks.ContainerSpec{
		Width:   4,
		Height:  2,
		FrameMs: 100,
		Frames:  [][]byte{make([]byte, 32)},
	})
	if err != nil {
		t.Fatalf("BuildContainer: %v", err)
	}
	return data
}

func TestExeFileFinder_Find(t *testing.T) {
	container := buildContainer(t)
	plainExe := append([]byte("MZ"), make([]byte, 256)...)

	tests := []struct {
		name      string
		setupMock func(*mocks.MockFileSystem)
		wantFile  string
		wantError error
	}{
		{
			name: "カレントディレクトリに1つの動画ファイル",
			setupMock: func(fs *mocks.MockFileSystem) {
				fs.WorkingDir = "/current"
				fs.Dirs["/current"] = true
				fs.Files["/current/lesson.exe"] = container
			},
			wantFile: "/current/lesson.exe",
		},
		{
			name: "識別子のない.exeは除外される",
			setupMock: func(fs *mocks.MockFileSystem) {
				fs.WorkingDir = "/current"
				fs.ExecPath = "/current/program"
				fs.Dirs["/current"] = true
				fs.Files["/current/setup.exe"] = plainExe
				fs.Files["/current/lesson.EXE"] = container
			},
			wantFile: "/current/lesson.EXE",
		},
		{
			name: "拡張子が.exeでないファイルは除外される",
			setupMock: func(fs *mocks.MockFileSystem) {
				fs.WorkingDir = "/current"
				fs.ExecPath = "/current/program"
				fs.Dirs["/current"] = true
				fs.Files["/current/lesson.bin"] = container
			},
			wantFile: "",
		},
		{
			name: "実行ファイルディレクトリに動画ファイル",
			setupMock: func(fs *mocks.MockFileSystem) {
				fs.WorkingDir = "/current"
				fs.ExecPath = "/exec/program"
				fs.Dirs["/current"] = true
				fs.Dirs["/exec"] = true
				fs.Files["/exec/lesson.exe"] = container
			},
			wantFile: "/exec/lesson.exe",
		},
		{
			name: "複数の動画ファイル",
			setupMock: func(fs *mocks.MockFileSystem) {
				fs.WorkingDir = "/current"
				fs.Dirs["/current"] = true
				fs.Files["/current/a.exe"] = container
				fs.Files["/current/b.exe"] = container
			},
			wantError: ErrMultipleExeFiles,
		},
		{
			name: "短すぎるファイル",
			setupMock: func(fs *mocks.MockFileSystem) {
				fs.WorkingDir = "/current"
				fs.ExecPath = "/current/program"
				fs.Dirs["/current"] = true
				fs.Files["/current/tiny.exe"] = []byte("MZ")
			},
			wantFile: "",
		},
		{
			name: "ReadDirエラー",
			setupMock: func(fs *mocks.MockFileSystem) {
				fs.WorkingDir = "/current"
			},
			wantError: ErrReadDirectory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := mocks.NewMockFileSystem()
			tt.setupMock(fs)

			got, err := NewExeFileFinder(fs).Find()
			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Errorf("Find() error = %v, want %v", err, tt.wantError)
				}
				return
			}
			if err != nil {
				t.Fatalf("Find() error = %v", err)
			}
			if got != tt.wantFile {
				t.Errorf("Find() = %q, want %q", got, tt.wantFile)
			}
		})
	}
}

func TestExeFileFinder_Find_MultipleNames(t *testing.T) {
	container := buildContainer(t)
	fs := mocks.NewMockFileSystem()
	fs.WorkingDir = "/current"
	fs.Dirs["/current"] = true
	fs.Files["/current/a.exe"] = container
	fs.Files["/current/b.exe"] = container

	_, err := NewExeFileFinder(fs).Find()
	if err == nil {
		t.Fatal("エラーが返されなかった")
	}
	for _, name := range []string{"a.exe", "b.exe"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("エラーメッセージに %s が含まれていない: %v", name, err)
		}
	}
}

func TestOSFileSystem(t *testing.T) {
	fs := NewOSFileSystem()

	if !fs.FileExists("filesystem_test.go") {
		t.Error("FileExists should return true for existing file")
	}
	if fs.FileExists("nonexistent_file_xyz.go") {
		t.Error("FileExists should return false for non-existing file")
	}

	wd, err := fs.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if wd == "" {
		t.Error("Getwd should return non-empty string")
	}
}

func TestOSFileSystem_ReadTail(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	content := []byte("0123456789")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	fs := NewOSFileSystem()
	tests := []struct {
		name string
		n    int64
		want []byte
	}{
		{"末尾4バイト", 4, []byte("6789")},
		{"ファイルサイズと同じ", 10, content},
		{"ファイルサイズより大きい", 100, content},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fs.ReadTail(path, tt.n)
			if err != nil {
				t.Fatalf("ReadTail() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("ReadTail() = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := fs.ReadTail(filepath.Join(dir, "missing.bin"), 4); err == nil {
		t.Error("存在しないファイルでエラーが返されなかった")
	}
}

func TestOSFileSystem_WriteAndReadDir(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()

	sub := filepath.Join(dir, "out")
	if err := fs.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := fs.WriteFile(filepath.Join(sub, "a.exe"), []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	entries, err := fs.ReadDir(sub)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "a.exe" || entries[0].IsDir() {
		t.Errorf("ReadDir() = %v", entries)
	}

	info, err := fs.Stat(sub)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.IsDir() {
		t.Error("Stat() should report a directory")
	}
}
