// Package models はlxeinfoコマンドで使用するデータモデルを定義します
package models

import "github.com/shiroemons/go-pmlxzj/pkg/lxe"

// FrameStats はフレームストリームを読み込んだ結果の集計です
type FrameStats struct {
	Images        int   // 画像レコード数 (先頭の画像を含む)
	Cursors       int   // カーソルレコード数 (補助カーソルブロックを含む)
	Frames        int32 // 最後に読み込んだフレーム番号
	StreamBytes   int64 // 圧縮ブロックの合計サイズ
	InflatedBytes int64 // 展開後の合計サイズ
	Decrypted     int   // 復号したブロック数
	Completed     bool  // 終端まで読み込んだか
	Skipped       bool  // パスワードがないため読み込まなかった
}

// ExtractedData はコンテナから抽出したデータを表します
type ExtractedData struct {
	InputFile  string
	Metadata   *lxe.Metadata
	Lock       lxe.LockState
	Infotext   string // デコード済みの透かし文字列
	FontName   string
	Registered bool
	Keyframes  []byte
	Clicks     []byte
	Stats      FrameStats
	WalkErr    error // フレームストリームの読み込みを中断したエラー
}

// Info はレポートに出力する情報を表します
type Info struct {
	Title       string
	Infotext    string
	InfoStyle   string // 透かし文字列の位置とフォント
	Resolution  string
	Elapsed     string
	LockState   string
	Registered  bool
	VideoOffset string
	AudioOffset string
	Keyframes   string
	Clicks      string
}
