package config

import (
	"flag"
	"io"
	"os"
	"strings"
	"testing"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "デフォルト値",
			args: []string{"cmd"},
			want: Config{OutputDir: "."},
		},
		{
			name: "短縮形",
			args: []string{"cmd", "-i", "video.exe", "-o", "/tmp", "-d", "-n", "-k", "pass"},
			want: Config{InputPath: "video.exe", OutputDir: "/tmp", Password: "pass", DebugMode: true, DryRun: true},
		},
		{
			name: "長い形式",
			args: []string{"cmd", "--input", "a.exe", "--debug", "--dry-run", "--password", "秘密", "--force", "--version"},
			want: Config{InputPath: "a.exe", OutputDir: ".", Password: "秘密", Force: true, DebugMode: true, DryRun: true, ShowVersion: true},
		},
	}

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// フラグをリセット
			flag.CommandLine = flag.NewFlagSet(tt.args[0], flag.ContinueOnError)
			os.Args = tt.args

			cfg := ParseFlags()
			if *cfg != tt.want {
				t.Errorf("ParseFlags() = %+v, want %+v", *cfg, tt.want)
			}
		})
	}
}

func TestDebugLogger(t *testing.T) {
	capture := func(f func()) string {
		oldStdout := os.Stdout
		r, w, _ := os.Pipe()
		os.Stdout = w
		f()
		w.Close()
		os.Stdout = oldStdout
		out, _ := io.ReadAll(r)
		return string(out)
	}

	// デバッグモード有効
	output := capture(func() {
		NewDebugLogger(true).Printf("frame %d\n", 42)
	})
	if !strings.Contains(output, "frame 42") {
		t.Errorf("Expected debug output to contain 'frame 42', got '%s'", output)
	}

	// デバッグモード無効
	output = capture(func() {
		NewDebugLogger(false).Printf("should not appear\n")
	})
	if output != "" {
		t.Errorf("Debug output should not appear when debug mode is disabled, got '%s'", output)
	}
}
