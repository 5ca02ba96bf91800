package mocks

import (
	"bytes"
	"encoding/binary"

	"github.com/klauspost/compress/zlib"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/shiroemons/go-pmlxzj/pkg/crypto"
	"github.com/shiroemons/go-pmlxzj/pkg/lxe"
)

// ContainerSpec はテスト用コンテナの内容
type ContainerSpec struct {
	Title     string
	Infotext  string
	Width     uint32
	Height    uint32
	FrameMs   uint32
	Frames    [][]byte // 画像フレームのデータ。先頭は初期画像
	HasCursor bool
	Keyframes []byte
	Clicks    []byte
	EditLock  uint32
	PlayLock  string // 再生ロックのパスワード
	Truncate  bool   // 終端レコードを書かずにストリームを切る
	AudioType uint32
	Audio     []byte // フレームストリームの後ろに置く音声データ
}

// BuildContainer はテスト用のコンテナを組み立てます
func BuildContainer(spec ContainerSpec) ([]byte, error) {
	var key *[crypto.KeySize]byte
	var playlock uint32
	switch {
	case spec.EditLock != 0:
		k := crypto.KeyFromEditLock(spec.EditLock)
		key = &k
	case spec.PlayLock != "":
		k := crypto.KeyFromPassword([]byte(spec.PlayLock))
		key = &k
		playlock = crypto.PasswordChecksum([]byte(spec.PlayLock))
	}

	framesCnt := uint32(max(len(spec.Frames), 1))

	buf := &bytes.Buffer{}
	buf.WriteString("MZ")
	buf.Write(make([]byte, 0x3E))
	headerOffset := uint32(buf.Len())
	variantPos := buf.Len()
	putU32(buf, 0)

	video := make([]byte, lxe.VideoSize)
	binary.LittleEndian.PutUint32(video[0x00:], 1)
	binary.LittleEndian.PutUint32(video[0x04:], spec.Width)
	binary.LittleEndian.PutUint32(video[0x08:], spec.Height)
	binary.LittleEndian.PutUint32(video[0x0C:], framesCnt)
	binary.LittleEndian.PutUint32(video[0x14:], spec.FrameMs)
	if spec.HasCursor {
		binary.LittleEndian.PutUint32(video[0x24:], 1)
	}
	infotext := make([]byte, crypto.InfotextSize)
	copy(infotext, encodeGBK(spec.Infotext))
	copy(video[0x50:0x78], crypto.InfotextDecode(infotext))
	buf.Write(video)

	if spec.HasCursor {
		putU32(buf, 0, 0, 0)
	}
	for k, frame := range spec.Frames {
		if k > 0 {
			if spec.HasCursor {
				putU32(buf, uint32(1-k), 0, 0, 0)
			}
			putU32(buf, uint32(k), 0, 0, spec.Width, spec.Height)
		}
		block, err := compressedBlock(frame)
		if err != nil {
			return nil, err
		}
		crypto.ImageCrypt(block, key)
		putU32(buf, uint32(len(block)))
		buf.Write(block)
	}
	if !spec.Truncate {
		putU32(buf, uint32(1-int32(framesCnt)))
	}
	if len(spec.Audio) > 0 {
		binary.LittleEndian.PutUint32(buf.Bytes()[variantPos:], uint32(-int32(buf.Len())))
		buf.Write(spec.Audio)
	}

	if spec.Clicks != nil {
		buf.Write(spec.Clicks)
		putU32(buf, uint32(len(spec.Clicks)))
	}
	buf.Write(spec.Keyframes)
	putU32(buf, uint32(len(spec.Keyframes)))

	player := make([]byte, lxe.PlayerSize)
	copy(player[0x38:0x50], encodeGBK(spec.Title))
	binary.LittleEndian.PutUint32(player[0x50:], 2)
	binary.LittleEndian.PutUint32(player[0x54:], spec.AudioType)
	if spec.Clicks != nil {
		binary.LittleEndian.PutUint32(player[0x5C:], 1)
	}
	buf.Write(player)

	footer := make([]byte, lxe.FooterSize)
	binary.LittleEndian.PutUint32(footer[0x00:], spec.EditLock)
	binary.LittleEndian.PutUint32(footer[0x04:], playlock)
	binary.LittleEndian.PutUint32(footer[0x1C:], headerOffset)
	copy(footer[0x20:], lxe.Signature)
	buf.Write(footer)

	return buf.Bytes(), nil
}

// Bitmap16 は上の行から並べたRGB565のピクセルから16ビットBI_BITFIELDSのビットマップを作成します
func Bitmap16(width int, rows [][]uint16) []byte {
	height := len(rows)
	rowWidth := width + width&1
	const offBits = 14 + 40 + 12
	size := offBits + 2*rowWidth*height

	b := make([]byte, size)
	b[0], b[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(b[2:], uint32(size))
	binary.LittleEndian.PutUint32(b[10:], offBits)
	binary.LittleEndian.PutUint32(b[14:], 40)
	binary.LittleEndian.PutUint32(b[18:], uint32(width))
	binary.LittleEndian.PutUint32(b[22:], uint32(height))
	binary.LittleEndian.PutUint16(b[26:], 1)
	binary.LittleEndian.PutUint16(b[28:], 16)
	binary.LittleEndian.PutUint32(b[30:], 3) // BI_BITFIELDS
	binary.LittleEndian.PutUint32(b[34:], uint32(2*rowWidth*height))
	binary.LittleEndian.PutUint32(b[54:], 0xF800)
	binary.LittleEndian.PutUint32(b[58:], 0x07E0)
	binary.LittleEndian.PutUint32(b[62:], 0x001F)

	for y, row := range rows {
		dst := b[offBits+2*rowWidth*(height-1-y):]
		for x, px := range row {
			binary.LittleEndian.PutUint16(dst[2*x:], px)
		}
	}
	return b
}

// EncodeRLE は先頭のBMマーカー以外のワードをすべて長さ1のランとして符号化します
func EncodeRLE(b []byte) []byte {
	out := []byte{b[0], b[1]}
	for i := 2; i+1 < len(b); i += 2 {
		out = append(out, 0, 0, 0, 0, 1, 0, b[i], b[i+1])
	}
	return out
}

func compressedBlock(data []byte) ([]byte, error) {
	var b bytes.Buffer
	putU32(&b, uint32(len(data)))
	zw := zlib.NewWriter(&b)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func encodeGBK(s string) []byte {
	b, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return b
}

func putU32(buf *bytes.Buffer, vs ...uint32) {
	var b [4]byte
	for _, v := range vs {
		binary.LittleEndian.PutUint32(b[:], v)
		buf.Write(b[:])
	}
}
