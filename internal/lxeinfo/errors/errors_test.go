package errors

import (
	"errors"
	"testing"
)

func TestContainerError(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  *ContainerError
		want string
	}{
		{"パスあり", NewContainerError("open", "video.exe", base), "open video.exe: boom"},
		{"パスなし", NewContainerError("walk", "", base), "walk: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, base) {
				t.Error("errors.Is() = false, want true")
			}
		})
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError("title", ErrParseFailure)
	if got := err.Error(); got != "titleの解析エラー: データの解析に失敗しました" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrParseFailure) {
		t.Error("errors.Is() = false, want true")
	}

	var pe *ParseError
	if !errors.As(error(err), &pe) || pe.Field != "title" {
		t.Errorf("errors.As() failed: %+v", pe)
	}
}
