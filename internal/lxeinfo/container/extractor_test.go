package container

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shiroemons/go-pmlxzj/internal/lxeinfo/config"
	apperrors "github.com/shiroemons/go-pmlxzj/internal/lxeinfo/errors"
	"github.com/shiroemons/go-pmlxzj/internal/lxeinfo/mocks"
	"github.com/shiroemons/go-pmlxzj/pkg/lxe"
)

const videoPath = "/videos/lesson.exe"

func newExtractor(t *testing.T, spec mocks.ContainerSpec) (*Extractor, *mocks.MockFileSystem) {
	t.Helper()
	buf, err := mocks.BuildContainer(spec)
	if err != nil {
		t.Fatalf("BuildContainer() error = %v", err)
	}
	fs := mocks.NewMockFileSystem()
	fs.Files[videoPath] = buf
	return NewExtractor(config.NewDebugLogger(false), fs), fs
}

func TestExtractor_Extract(t *testing.T) {
	spec := mocks.ContainerSpec{
		Title:     "第一课",
		Infotext:  "水印",
		Width:     4,
		Height:    2,
		FrameMs:   200,
		Frames:    [][]byte{[]byte("frame0"), []byte("frame1!"), []byte("frame2!!")},
		HasCursor: true,
		Keyframes: []byte("0\r\n2\r\n"),
		Clicks:    []byte("1,1\r\n"),
	}
	e, _ := newExtractor(t, spec)

	data, err := e.Extract(context.Background(), videoPath, "", false)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if data.InputFile != videoPath {
		t.Errorf("InputFile = %q, want %q", data.InputFile, videoPath)
	}
	if data.Metadata.Title != "第一课" {
		t.Errorf("Title = %q, want %q", data.Metadata.Title, "第一课")
	}
	if data.Lock != lxe.LockNone {
		t.Errorf("Lock = %v, want LockNone", data.Lock)
	}
	if data.Infotext != "水印" || data.FontName != "" || data.Registered {
		t.Errorf("Infotext = %q, FontName = %q, Registered = %v", data.Infotext, data.FontName, data.Registered)
	}
	if !bytes.Equal(data.Keyframes, spec.Keyframes) || !bytes.Equal(data.Clicks, spec.Clicks) {
		t.Errorf("Keyframes = %q, Clicks = %q", data.Keyframes, data.Clicks)
	}

	stats := data.Stats
	if data.WalkErr != nil {
		t.Fatalf("WalkErr = %v", data.WalkErr)
	}
	if !stats.Completed || stats.Skipped {
		t.Errorf("Completed = %v, Skipped = %v", stats.Completed, stats.Skipped)
	}
	if stats.Images != 3 || stats.Cursors != 3 {
		t.Errorf("Images = %d, Cursors = %d, want 3, 3", stats.Images, stats.Cursors)
	}
	if stats.Frames != 2 {
		t.Errorf("Frames = %d, want 2", stats.Frames)
	}
	if stats.InflatedBytes != int64(len("frame0")+len("frame1!")+len("frame2!!")) {
		t.Errorf("InflatedBytes = %d", stats.InflatedBytes)
	}
}

func TestExtractor_Extract_Errors(t *testing.T) {
	tests := []struct {
		name     string
		spec     mocks.ContainerSpec
		path     string
		password string
		wantErr  error
	}{
		{
			name:    "ファイルがない",
			spec:    mocks.ContainerSpec{Width: 1, Height: 1, Frames: [][]byte{{1}}},
			path:    "/videos/missing.exe",
			wantErr: ErrReadContainer,
		},
		{
			name:     "パスワード違い",
			spec:     mocks.ContainerSpec{Width: 1, Height: 1, Frames: [][]byte{{1}}, PlayLock: "right"},
			path:     videoPath,
			password: "wrong",
			wantErr:  lxe.ErrWrongPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newExtractor(t, tt.spec)
			_, err := e.Extract(context.Background(), tt.path, tt.password, false)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Extract() error = %v, wantErr %v", err, tt.wantErr)
			}
			var ce *apperrors.ContainerError
			if !errors.As(err, &ce) || ce.Path != tt.path {
				t.Errorf("Extract() error = %v, want ContainerError for %s", err, tt.path)
			}
		})
	}
}

func TestExtractor_Extract_NotContainer(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	fs.Files[videoPath] = append([]byte("MZ"), make([]byte, 0x200)...)
	e := NewExtractor(config.NewDebugLogger(false), fs)

	_, err := e.Extract(context.Background(), videoPath, "", false)
	if !errors.Is(err, apperrors.ErrInvalidContainer) || !lxe.IsFormatError(err) {
		t.Errorf("Extract() error = %v, want ErrInvalidContainer", err)
	}
}

func TestExtractor_Extract_PlayLock(t *testing.T) {
	spec := mocks.ContainerSpec{
		Width:    2,
		Height:   2,
		Frames:   [][]byte{[]byte("locked")},
		PlayLock: "pass",
	}

	t.Run("パスワードなしは検証をスキップ", func(t *testing.T) {
		e, _ := newExtractor(t, spec)
		data, err := e.Extract(context.Background(), videoPath, "", false)
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if data.Lock != lxe.LockPlay || !data.Stats.Skipped || data.Stats.Images != 0 {
			t.Errorf("Lock = %v, Stats = %+v", data.Lock, data.Stats)
		}
	})

	t.Run("正しいパスワード", func(t *testing.T) {
		e, _ := newExtractor(t, spec)
		data, err := e.Extract(context.Background(), videoPath, "pass", false)
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if !data.Stats.Completed || data.Stats.Images != 1 {
			t.Errorf("Stats = %+v", data.Stats)
		}
	})

	t.Run("間違ったパスワードを強制", func(t *testing.T) {
		e, _ := newExtractor(t, spec)
		data, err := e.Extract(context.Background(), videoPath, "nope", true)
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if data.Stats.Skipped {
			t.Error("Skipped = true, want false")
		}
	})
}

func TestExtractor_Extract_WalkError(t *testing.T) {
	// 終端がなく、続くデータが stream_len = 0 の画像レコードとして読まれる
	corrupt := make([]byte, 24)
	corrupt[0] = 1

	e, _ := newExtractor(t, mocks.ContainerSpec{
		Width:     2,
		Height:    2,
		Frames:    [][]byte{[]byte("a"), []byte("b")},
		Keyframes: corrupt,
		Truncate:  true,
	})

	data, err := e.Extract(context.Background(), videoPath, "", false)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !errors.Is(data.WalkErr, lxe.ErrCorruptFrame) {
		t.Errorf("WalkErr = %v, want ErrCorruptFrame", data.WalkErr)
	}
	if data.Stats.Completed || data.Stats.Images != 2 {
		t.Errorf("Stats = %+v", data.Stats)
	}
}

func TestExtractor_Extract_Canceled(t *testing.T) {
	e, _ := newExtractor(t, mocks.ContainerSpec{Width: 1, Height: 1, Frames: [][]byte{{1}}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Extract(ctx, videoPath, "", false)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Extract() error = %v, want context.Canceled", err)
	}
}
