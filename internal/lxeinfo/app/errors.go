package app

import "errors"

var (
	// ErrNoInputFile は動画ファイルが見つからない場合のエラー
	ErrNoInputFile = errors.New("動画ファイルが見つかりません。--input フラグでファイルを指定してください")

	// ErrParseInfo はメタデータの解析に失敗した場合のエラー
	ErrParseInfo = errors.New("メタデータの解析に失敗しました")

	// ErrSaveFile はファイルの保存に失敗した場合のエラー
	ErrSaveFile = errors.New("ファイルの保存に失敗しました")

	// ErrFrameStream はフレームストリームの読み込みが途中で止まった場合のエラー
	ErrFrameStream = errors.New("フレームストリームの読み込みに失敗しました")
)
