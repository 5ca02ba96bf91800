package lxe

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// Player はフッター直前にあるプレイヤー設定ブロック
type Player struct {
	BackgroundColor     [4]byte // r, g, b, 未使用
	Maximize            uint32
	SetPlayerPosition   uint32
	PlayerLeft          uint32
	PlayerTop           uint32
	NativeBorder        uint32
	LoopPlayback        uint32
	AutoScaling         uint32
	ExitAtEnd           uint32
	ShowTime            uint32
	Fullscreen          uint32
	EnablePopupMenu     uint32
	EnableControlWindow uint32
	ShowControlWindow   uint32
	Title               [24]byte
	VideoType           uint32
	AudioType           uint32
	_                   uint32
	HasClicks           uint32
	DrawClicks          uint32
	_                   uint32
	LowImageQuality     uint32

	// CursorHighlight はカーソル強調表示のフラグ (1: 有効, 2: 左上に配置)
	CursorHighlight             uint8
	CursorHighlightColor        uint8
	CursorHighlightTransparency uint16 // 0 (不透明) - 10000 (透明)
	_                           [17]uint32
}

// Footer はファイル末尾のフッター本体
type Footer struct {
	EditlockKey   uint32
	PlaylockCksum uint32
	Key3          uint32
	AudioOffset64 uint64
	_             [2]uint32
	HeaderOffset  uint32
	Signature     [12]byte
}

// FontStyle は透かし文字列のフォントスタイル
type FontStyle struct {
	Bold      uint8
	Italic    uint8
	Underline uint8
	StrikeOut uint8
}

// Video は動画情報ブロック
type Video struct {
	ScreenCfg         uint32 // 1: シングルモニター, 2: デュアルモニター
	Width             uint32
	Height            uint32
	FramesCnt         uint32
	FPS               uint32
	FrameMs           uint32
	_                 [3]uint32
	HasCursor         uint32
	Regcode1          [20]byte
	Regcode2          [20]byte
	Infotext          [40]byte
	InfoX             uint32
	InfoY             uint32
	InfotextFontSize  uint32
	InfotextFontName  [20]byte
	InfotextFontColor uint32
	InfotextFontStyle FontStyle
}

// Segment はコンテナ内の解釈しないデータ領域
type Segment struct {
	Offset int64
	Size   uint32
}

// Metadata はコンテナのメタデータ
type Metadata struct {
	Title            string
	Width            uint32
	Height           uint32
	FramesCnt        uint32
	HasCursor        bool
	FrameStreamStart int64 // 動画情報ブロック直後のオフセット

	Player       Player
	Footer       Footer
	Video        Video
	VideoOffset  int64
	AudioOffset  int64 // 音声がない場合は-1
	LegacyLayout bool
	Keyframes    *Segment // キーフレーム情報が読み取れない場合はnil
	Clicks       *Segment // クリック情報がない場合はnil
	FileSize     int64
}

type locateConfig struct {
	encoding encoding.Encoding
}

// LocateOption は Locate の動作を変更するオプション
type LocateOption func(*locateConfig)

// WithEncoding は文字列のデコードに使う文字コードを指定します (デフォルトはGBK)
func WithEncoding(enc encoding.Encoding) LocateOption {
	return func(c *locateConfig) {
		c.encoding = enc
	}
}

func newLocateConfig(opts []LocateOption) locateConfig {
	cfg := locateConfig{encoding: simplifiedchinese.GBK}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Probe はファイル末尾のバイト列にコンテナの識別子が含まれるかを判定します。
// tail はファイルの最後の FooterSize バイト以上を渡してください。
func Probe(tail []byte) bool {
	if len(tail) < FooterSize {
		return false
	}
	return bytes.HasPrefix(tail[len(tail)-FooterSize+signatureOffset:], []byte(Signature))
}

// Locate はファイル全体のバイト列からメタデータを読み取ります
func Locate(buf []byte, opts ...LocateOption) (*Metadata, error) {
	cfg := newLocateConfig(opts)
	v := view(buf)
	size := int64(len(buf))

	m := &Metadata{FileSize: size, AudioOffset: -1}

	if err := v.decode(size-FooterSize, &m.Footer); err != nil {
		return nil, fmt.Errorf("フッターの読み込みに失敗: %w", err)
	}
	if !bytes.HasPrefix(m.Footer.Signature[:], []byte(Signature)) {
		return nil, ErrFormat
	}
	if err := v.decode(size-TailSize, &m.Player); err != nil {
		return nil, fmt.Errorf("プレイヤー設定の読み込みに失敗: %w", err)
	}

	m.locateSegments(v)
	if err := m.locateVideo(v); err != nil {
		return nil, err
	}

	m.Title = decodeString(cfg.encoding, m.Player.Title[:])
	m.Width = m.Video.Width
	m.Height = m.Video.Height
	m.FramesCnt = m.Video.FramesCnt
	m.HasCursor = m.Video.HasCursor != 0
	m.FrameStreamStart = m.VideoOffset + VideoSize
	return m, nil
}

// locateSegments はプレイヤー設定ブロックの直前にあるキーフレームとクリックのテキストを探します。
// 再生には不要なデータなので、範囲外を指している場合はエラーにせず nil のままにします。
func (m *Metadata) locateSegments(v view) {
	seg, err := segmentBefore(v, m.FileSize-TailSize)
	if err != nil {
		return
	}
	m.Keyframes = &seg

	if m.Player.HasClicks != 0 {
		if seg, err := segmentBefore(v, m.Keyframes.Offset); err == nil {
			m.Clicks = &seg
		}
	}
}

// segmentBefore は end の直前にあるサイズ付きのデータ領域を返します
func segmentBefore(v view, end int64) (Segment, error) {
	size, err := v.u32(end - 4)
	if err != nil {
		return Segment{}, err
	}
	off := end - 4 - int64(size)
	if _, err := v.bytes(off, int64(size)); err != nil {
		return Segment{}, err
	}
	return Segment{Offset: off, Size: size}, nil
}

// locateVideo はヘッダーから動画情報ブロックと音声の位置を求めます
func (m *Metadata) locateVideo(v view) error {
	hdr := int64(m.Footer.HeaderOffset)
	variant, err := v.i32(hdr)
	if err != nil {
		return fmt.Errorf("ヘッダーの読み込みに失敗: %w", err)
	}

	if variant <= 0 {
		m.VideoOffset = hdr + 4
		if variant != 0 {
			m.AudioOffset = -int64(variant)
		}
	} else {
		// 旧形式では先頭の値が動画情報の位置を指す
		m.LegacyLayout = true
		m.VideoOffset = int64(variant)
		m.AudioOffset = hdr + 4
	}

	if err := v.decode(m.VideoOffset, &m.Video); err != nil {
		return fmt.Errorf("動画情報の読み込みに失敗: %w", err)
	}
	if m.Video.FramesCnt == 0 {
		return fmt.Errorf("%w: フレーム数が0です", ErrCorruptHeader)
	}
	return nil
}

// decodeString はNUL終端の文字列をデコードします
func decodeString(enc encoding.Encoding, b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	// x/text のデコーダーは不正なバイトをU+FFFDに置き換え、エラーを返さない
	s, _ := enc.NewDecoder().Bytes(b)
	return string(s)
}
