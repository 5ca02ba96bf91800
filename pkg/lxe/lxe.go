// Package lxe は屏幕录像专家が出力するEXE形式の動画コンテナを読み込むためのパッケージです。
//
// コンテナはプレイヤー本体の後ろにフレームデータを連結したもので、
// ファイル末尾のフッターからヘッダー位置やタイトルなどのメタデータを取得できます。
//
// 基本的な使い方:
//
//	c, err := lxe.Open("video.exe")
//	if err != nil {
//	    return err
//	}
//	w := c.Walk(lxe.WalkOptions{Expand: true})
//	for w.Next() {
//	    rec := w.Record()
//	    // rec.Data や rec.Bitmap を処理...
//	}
//	if err := w.Err(); err != nil {
//	    return err
//	}
package lxe

const (
	// Signature はフッターに埋め込まれた識別子です
	Signature = "pmlxzjtlx"

	// FooterSize はファイル末尾のフッター本体のサイズです
	FooterSize = 0x2C

	// PlayerSize はフッター直前のプレイヤー設定ブロックのサイズです
	PlayerSize = 0xB4

	// TailSize はプレイヤー設定ブロックとフッターを合わせたサイズです
	TailSize = PlayerSize + FooterSize

	// VideoSize は動画情報ブロックのサイズです
	VideoSize = 0xA0

	signatureOffset = 0x20
)
