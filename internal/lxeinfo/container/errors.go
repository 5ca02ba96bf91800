package container

import "errors"

var (
	// ErrReadContainer はファイルの読み込みに失敗した場合のエラー
	ErrReadContainer = errors.New("動画ファイルの読み込みに失敗しました")

	// ErrPassword はパスワードの設定に失敗した場合のエラー
	ErrPassword = errors.New("パスワードを設定できませんでした")
)
