// Package config はlxeinfoコマンドの設定管理を行います
package config

import (
	"flag"
	"fmt"
	"os"
)

const Version = "0.1.0"

// Config はアプリケーションの設定を保持します
type Config struct {
	InputPath   string
	OutputDir   string
	Password    string
	Force       bool
	DebugMode   bool
	DryRun      bool
	ShowVersion bool
}

// ParseFlags はコマンドライン引数を解析して設定を返します
func ParseFlags() *Config {
	config := &Config{}

	// カスタムUsage関数を設定（ダブルハイフン表示）
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage of %s:\n", os.Args[0])
		fmt.Fprintln(out, "  --input string")
		fmt.Fprintln(out, "    \tpath to the video .exe file")
		fmt.Fprintln(out, "  -i string")
		fmt.Fprintln(out, "    \tpath to the video .exe file (shorthand)")
		fmt.Fprintln(out, "  --debug")
		fmt.Fprintln(out, "    \tenable debug output")
		fmt.Fprintln(out, "  -d\tenable debug output (shorthand)")
		fmt.Fprintln(out, "  -o string")
		fmt.Fprintln(out, "    \toutput directory for the generated files (default \".\")")
		fmt.Fprintln(out, "  --password string")
		fmt.Fprintln(out, "    \tplay lock password")
		fmt.Fprintln(out, "  -k string")
		fmt.Fprintln(out, "    \tplay lock password (shorthand)")
		fmt.Fprintln(out, "  --force")
		fmt.Fprintln(out, "    \tuse the password even if the checksum does not match")
		fmt.Fprintln(out, "  --dry-run")
		fmt.Fprintln(out, "    \tperform a dry run without writing output files")
		fmt.Fprintln(out, "  -n\tperform a dry run without writing output files (shorthand)")
		fmt.Fprintln(out, "  --version")
		fmt.Fprintln(out, "    \tshow version information")
		fmt.Fprintln(out, "  -v\tshow version information (shorthand)")
	}

	// 入力ファイル
	flag.StringVar(&config.InputPath, "input", "", "path to the video .exe file")
	flag.StringVar(&config.InputPath, "i", "", "path to the video .exe file (shorthand)")

	// 出力ディレクトリ
	flag.StringVar(&config.OutputDir, "o", ".", "output directory for the generated files")

	// 再生パスワード
	flag.StringVar(&config.Password, "password", "", "play lock password")
	flag.StringVar(&config.Password, "k", "", "play lock password (shorthand)")
	flag.BoolVar(&config.Force, "force", false, "use the password even if the checksum does not match")

	// デバッグモード
	flag.BoolVar(&config.DebugMode, "debug", false, "enable debug output")
	flag.BoolVar(&config.DebugMode, "d", false, "enable debug output (shorthand)")

	// ドライランモード
	flag.BoolVar(&config.DryRun, "dry-run", false, "perform a dry run without writing output files")
	flag.BoolVar(&config.DryRun, "n", false, "perform a dry run without writing output files (shorthand)")

	// バージョン表示
	flag.BoolVar(&config.ShowVersion, "version", false, "show version information")
	flag.BoolVar(&config.ShowVersion, "v", false, "show version information (shorthand)")

	flag.Parse()

	return config
}

// HandleVersion はバージョン表示を処理します
func HandleVersion(showVersion bool) {
	if showVersion {
		fmt.Printf("lxeinfo version %s\n", Version)
		os.Exit(0)
	}
}

// DebugLogger はデバッグ出力を管理します
type DebugLogger struct {
	enabled bool
}

// NewDebugLogger は新しいDebugLoggerを作成します
func NewDebugLogger(enabled bool) *DebugLogger {
	return &DebugLogger{enabled: enabled}
}

// Printf はデバッグモードが有効な場合のみメッセージを表示します
func (d *DebugLogger) Printf(format string, a ...any) {
	if d.enabled {
		fmt.Printf(format, a...)
	}
}
