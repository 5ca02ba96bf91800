package crypto

import "errors"

var (
	// ErrBadStream はzlibストリームとして解釈できない場合のエラー
	ErrBadStream = errors.New("zlibストリームが不正です")

	// ErrBadRLEStream はビットマップRLEの整合性チェックに失敗した場合のエラー
	ErrBadRLEStream = errors.New("ビットマップRLEストリームが不正です")
)
