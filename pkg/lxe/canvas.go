package lxe

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"math/bits"

	"github.com/shiroemons/go-pmlxzj/pkg/crypto"
)

// ErrUnsupportedBitmap はキャンバスに合成できないビットマップ形式の場合のエラー
var ErrUnsupportedBitmap = errors.New("対応していないビットマップ形式です")

const (
	bitmapFileHeaderSize = 14
	bitmapInfoHeaderSize = 40
	biBitfields          = 3
)

// bitmapInfo はRLE展開済みビットマップのBITMAPFILEHEADERとBITMAPINFOHEADERの必要な部分
type bitmapInfo struct {
	size      uint32 // bfSize
	offBits   uint32
	infoSize  uint32
	width     int32
	height    int32
	bitCount  uint16
	compress  uint32
	sizeImage uint32
}

func readBitmapInfo(b []byte) (bitmapInfo, error) {
	if len(b) < bitmapFileHeaderSize+bitmapInfoHeaderSize {
		return bitmapInfo{}, fmt.Errorf("%w: ビットマップヘッダーが短すぎます (%d バイト)", ErrCorruptFrame, len(b))
	}
	info := b[bitmapFileHeaderSize:]
	return bitmapInfo{
		size:      binary.LittleEndian.Uint32(b[2:]),
		offBits:   binary.LittleEndian.Uint32(b[10:]),
		infoSize:  binary.LittleEndian.Uint32(info[0:]),
		width:     int32(binary.LittleEndian.Uint32(info[4:])),
		height:    int32(binary.LittleEndian.Uint32(info[8:])),
		bitCount:  binary.LittleEndian.Uint16(info[14:]),
		compress:  binary.LittleEndian.Uint32(info[16:]),
		sizeImage: binary.LittleEndian.Uint32(info[20:]),
	}, nil
}

// channel は16ビットピクセルから1色を取り出すためのマスク
type channel struct {
	mask  uint32
	shift int
	depth int
}

func newChannel(mask uint32) (channel, error) {
	shift := bits.TrailingZeros32(mask)
	depth := bits.TrailingZeros32((mask >> shift) + 1)
	if depth != 5 && depth != 6 {
		return channel{}, fmt.Errorf("%w: ビットマスク 0x%x の深さ %d", ErrUnsupportedBitmap, mask, depth)
	}
	return channel{mask: mask, shift: shift, depth: depth}, nil
}

// to8 はピクセル値を8ビットに広げます
func (c channel) to8(px uint16) uint8 {
	v := (uint32(px) & c.mask) >> c.shift
	return uint8(v<<(8-c.depth) | v>>(2*c.depth-8))
}

// Canvas は画像レコードを重ねて描画する動画全体の画面
type Canvas struct {
	img *image.RGBA
}

// NewCanvas は width x height の黒で塗りつぶしたキャンバスを作成します
func NewCanvas(width, height uint32) (*Canvas, error) {
	if 4*uint64(width)*uint64(height) > crypto.MaxBitmapBuffer {
		return nil, fmt.Errorf("%w: 画面サイズ %dx%d が大きすぎます", ErrCorruptHeader, width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xFF
	}
	return &Canvas{img: img}, nil
}

// Image はキャンバスの現在の内容を返します。以降の Apply で書き換わります。
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Snapshot はキャンバスの現在の内容を複製して返します
func (c *Canvas) Snapshot() *image.RGBA {
	img := *c.img
	img.Pix = append([]byte(nil), c.img.Pix...)
	return &img
}

// Apply は画像レコードのビットマップを矩形の位置に描画します。
// ビットマップは WalkOptions.Expand で展開されている必要があり、
// 16ビットのBI_BITFIELDS形式 (各色5または6ビット) のみ対応しています。
func (c *Canvas) Apply(rec *Record) error {
	if rec.Kind != KindImage {
		return fmt.Errorf("%w: %s レコードは描画できません", ErrUnsupportedBitmap, rec.Kind)
	}
	if rec.Bitmap == nil {
		return fmt.Errorf("%w: ビットマップが展開されていません", ErrUnsupportedBitmap)
	}

	width, height, err := rec.Rect.Size()
	if err != nil {
		return err
	}
	bounds := c.img.Bounds()
	if uint64(rec.Rect.Right) > uint64(bounds.Dx()) || uint64(rec.Rect.Bottom) > uint64(bounds.Dy()) {
		return fmt.Errorf("%w: 矩形 (%d, %d)-(%d, %d) が画面 %dx%d の外にあります",
			ErrCorruptFrame, rec.Rect.Left, rec.Rect.Top, rec.Rect.Right, rec.Rect.Bottom, bounds.Dx(), bounds.Dy())
	}

	b := rec.Bitmap
	hdr, err := readBitmapInfo(b)
	if err != nil {
		return err
	}
	if uint64(len(b)) < uint64(hdr.size) {
		return fmt.Errorf("%w: ビットマップが宣言サイズ %d より短いです", ErrCorruptFrame, hdr.size)
	}
	if int64(hdr.width) != int64(width) || int64(hdr.height) != int64(height) {
		return fmt.Errorf("%w: ビットマップ %dx%d と矩形 %dx%d が一致しません",
			ErrCorruptFrame, hdr.width, hdr.height, width, height)
	}

	// 各行は偶数ピクセルに揃えられている
	rowWidth := uint64(width) + uint64(width&1)
	if uint64(hdr.bitCount/8)*rowWidth*uint64(height) > uint64(hdr.sizeImage) {
		return fmt.Errorf("%w: ピクセルデータのサイズ %d が不足しています", ErrCorruptFrame, hdr.sizeImage)
	}
	if hdr.bitCount != 16 || hdr.compress != biBitfields {
		return fmt.Errorf("%w: %d ビット、圧縮形式 %d", ErrUnsupportedBitmap, hdr.bitCount, hdr.compress)
	}

	maskOff := uint64(bitmapFileHeaderSize) + uint64(hdr.infoSize)
	if maskOff+12 > uint64(len(b)) {
		return fmt.Errorf("%w: ビットマスクがありません", ErrCorruptFrame)
	}
	var channels [3]channel
	for i := range channels {
		if channels[i], err = newChannel(binary.LittleEndian.Uint32(b[maskOff+4*uint64(i):])); err != nil {
			return err
		}
	}

	if width == 0 || height == 0 {
		return nil
	}
	// 最後に読むのは一番上の行の右端のピクセル
	need := uint64(hdr.offBits) + 2*(rowWidth*uint64(height-1)+uint64(width))
	if need > uint64(len(b)) {
		return fmt.Errorf("%w: ピクセルデータが途中で切れています", ErrCorruptFrame)
	}
	pixels := b[hdr.offBits:]

	// ビットマップは下の行から並んでいる
	for y := 0; y < int(height); y++ {
		src := pixels[2*rowWidth*uint64(int(height)-1-y):]
		dst := c.img.Pix[c.img.PixOffset(int(rec.Rect.Left), int(rec.Rect.Top)+y):]
		for x := 0; x < int(width); x++ {
			px := binary.LittleEndian.Uint16(src[2*x:])
			d := dst[4*x : 4*x+4]
			d[0] = channels[0].to8(px)
			d[1] = channels[1].to8(px)
			d[2] = channels[2].to8(px)
			d[3] = 0xFF
		}
	}
	return nil
}
