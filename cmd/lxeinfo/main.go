package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shiroemons/go-pmlxzj/internal/lxeinfo/app"
	"github.com/shiroemons/go-pmlxzj/internal/lxeinfo/config"
	apperrors "github.com/shiroemons/go-pmlxzj/internal/lxeinfo/errors"
)

func main() {
	// コマンドライン引数の解析
	cfg := config.ParseFlags()

	// バージョン表示の処理
	config.HandleVersion(cfg.ShowVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// アプリケーションの実行
	application := app.New(cfg)
	if err := application.Run(ctx); err != nil {
		if errors.Is(err, apperrors.ErrInvalidContainer) {
			fmt.Fprintf(os.Stderr, "エラー: 対応している動画ファイルではありません: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
