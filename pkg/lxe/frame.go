package lxe

import "fmt"

// Kind はフレームレコードの種類
type Kind int

const (
	// KindCursor はカーソル位置の更新レコード
	KindCursor Kind = iota
	// KindImage は画像の差分レコード
	KindImage
	// KindTerminator はフレームストリームの終端
	KindTerminator
)

func (k Kind) String() string {
	switch k {
	case KindCursor:
		return "cursor"
	case KindImage:
		return "image"
	case KindTerminator:
		return "terminator"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Classify は frame_id からレコードの種類を判定します。
// -(framesCnt-1) は終端、0以下はカーソル、正の値は画像です。
func Classify(frameID int32, framesCnt uint32) Kind {
	switch {
	case int64(frameID) == 1-int64(framesCnt):
		return KindTerminator
	case frameID <= 0:
		return KindCursor
	default:
		return KindImage
	}
}

// Rect はフレーム上の矩形領域
type Rect struct {
	Left   uint32
	Top    uint32
	Right  uint32
	Bottom uint32
}

// Size は矩形の幅と高さを返します
func (r Rect) Size() (width, height uint32, err error) {
	if r.Right < r.Left || r.Bottom < r.Top {
		return 0, 0, fmt.Errorf("%w: 矩形が不正です (%d, %d)-(%d, %d)", ErrCorruptFrame, r.Left, r.Top, r.Right, r.Bottom)
	}
	return r.Right - r.Left, r.Bottom - r.Top, nil
}

// Record はフレームストリーム内の1レコード
type Record struct {
	Kind    Kind
	FrameID int32
	// Number はフレーム番号 (画像は frame_id、カーソルは 1-frame_id、先頭レコードは0)
	Number int32
	// Offset はレコード先頭のオフセット、DataOffset はデータ本体のオフセット
	Offset     int64
	DataOffset int64
	// Leading は frame_id を持たない先頭レコード (補助カーソルブロックと初期画像) であることを示す
	Leading bool
	// Rect はカーソルの場合 Left と Top のみ有効
	Rect Rect

	// StreamLen と UncompressedLen は画像レコードの圧縮ブロックのサイズ
	StreamLen       uint32
	UncompressedLen uint32
	Decrypted       bool

	// Data は画像の場合は展開済みデータ、カーソルの場合は未解釈のペイロード
	Data []byte
	// Bitmap は WalkOptions.Expand 指定時のRLE展開済みビットマップ
	Bitmap []byte
}
