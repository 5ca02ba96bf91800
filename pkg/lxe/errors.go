package lxe

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat はフッターの識別子が一致しない場合のエラー
	ErrFormat = errors.New("屏幕录像专家のEXEファイルではありません")

	// ErrTruncatedInput は読み取ろうとした範囲がファイルの外にはみ出している場合のエラー
	ErrTruncatedInput = errors.New("データが途中で切れています")

	// ErrCorruptHeader はヘッダーの値が矛盾している場合のエラー
	ErrCorruptHeader = errors.New("ヘッダーが破損しています")

	// ErrCorruptFrame はフレームのサイズが不正な場合のエラー
	ErrCorruptFrame = errors.New("フレームが破損しています")

	// ErrPasswordRequired は再生ロックされたコンテナにパスワードが設定されていない場合のエラー
	ErrPasswordRequired = errors.New("再生パスワードが必要です")

	// ErrWrongPassword はパスワードのチェックサムが一致しない場合のエラー
	ErrWrongPassword = errors.New("再生パスワードが違います")
)

// FrameError はフレームストリームの読み込み中に発生したエラーを表します
type FrameError struct {
	Offset  int64 // レコード先頭のオフセット
	FrameID int32 // 先頭レコードの場合は0
	Err     error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("フレーム %d (0x%08x): %v", e.FrameID, e.Offset, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

// IsFormatError はエラーが「対応していない形式」を表すかどうかを判定します。
// false の場合は、形式は正しいがデータが破損しているか未対応であることを意味します。
func IsFormatError(err error) bool {
	return errors.Is(err, ErrFormat)
}
