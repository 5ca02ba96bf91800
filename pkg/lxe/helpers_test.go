package lxe

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/klauspost/compress/zlib"
)

// testContainer はテスト用のコンテナを組み立てます
type testContainer struct {
	title     []byte
	width     uint32
	height    uint32
	framesCnt uint32
	hasCursor bool
	legacy    bool
	audio     []byte // 現行形式では音声データを動画の後ろに置く
	audioType uint32
	editlock  uint32
	playlock  uint32
	keyframes []byte
	clicks    []byte // nilの場合はクリック情報なし
	noTexts   bool   // キーフレームとクリックのテキストを書かない
	stream    []byte // 動画情報ブロック直後から始まるフレームストリーム
}

// prefixSize はプレイヤー本体の代わりに置くダミーデータのサイズ
const prefixSize = 0x40

func (tc *testContainer) build() []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("MZ")
	buf.Write(make([]byte, prefixSize-2))

	headerOffset := uint32(buf.Len())
	video := tc.videoBlock()

	if tc.legacy {
		// ヘッダー直後に音声、その後ろに動画情報
		videoOffset := headerOffset + 4 + uint32(len(tc.audio))
		le32(buf, videoOffset)
		buf.Write(tc.audio)
		buf.Write(video)
		buf.Write(tc.stream)
	} else {
		audioOffset := headerOffset + 4 + VideoSize + uint32(len(tc.stream))
		if len(tc.audio) == 0 {
			le32(buf, 0)
		} else {
			le32(buf, uint32(-int32(audioOffset)))
		}
		buf.Write(video)
		buf.Write(tc.stream)
		buf.Write(tc.audio)
	}

	var hasClicks uint32
	if tc.clicks != nil {
		hasClicks = 1
		if !tc.noTexts {
			buf.Write(tc.clicks)
			le32(buf, uint32(len(tc.clicks)))
		}
	}
	if !tc.noTexts {
		buf.Write(tc.keyframes)
		le32(buf, uint32(len(tc.keyframes)))
	}

	player := make([]byte, PlayerSize)
	copy(player[0x38:0x50], tc.title)
	binary.LittleEndian.PutUint32(player[0x50:], 2)
	binary.LittleEndian.PutUint32(player[0x54:], tc.audioType)
	binary.LittleEndian.PutUint32(player[0x5C:], hasClicks)
	buf.Write(player)

	footer := make([]byte, FooterSize)
	binary.LittleEndian.PutUint32(footer[0x00:], tc.editlock)
	binary.LittleEndian.PutUint32(footer[0x04:], tc.playlock)
	binary.LittleEndian.PutUint32(footer[0x1C:], headerOffset)
	copy(footer[0x20:], Signature)
	buf.Write(footer)

	return buf.Bytes()
}

func (tc *testContainer) videoBlock() []byte {
	video := make([]byte, VideoSize)
	binary.LittleEndian.PutUint32(video[0x00:], 1)
	binary.LittleEndian.PutUint32(video[0x04:], tc.width)
	binary.LittleEndian.PutUint32(video[0x08:], tc.height)
	binary.LittleEndian.PutUint32(video[0x0C:], tc.framesCnt)
	binary.LittleEndian.PutUint32(video[0x10:], 5)
	binary.LittleEndian.PutUint32(video[0x14:], 200)
	if tc.hasCursor {
		binary.LittleEndian.PutUint32(video[0x24:], 1)
	}
	return video
}

func le32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

// streamBuilder はフレームストリームを組み立てます
type streamBuilder struct {
	bytes.Buffer
}

func (s *streamBuilder) u32(vs ...uint32) *streamBuilder {
	for _, v := range vs {
		le32(&s.Buffer, v)
	}
	return s
}

func (s *streamBuilder) frameID(id int32) *streamBuilder {
	return s.u32(uint32(id))
}

func (s *streamBuilder) cursor(left, top uint32, payload []byte) *streamBuilder {
	s.u32(left, top, uint32(len(payload)))
	s.Write(payload)
	return s
}

func (s *streamBuilder) block(blk []byte) *streamBuilder {
	s.u32(uint32(len(blk)))
	s.Write(blk)
	return s
}

func (s *streamBuilder) image(id int32, r Rect, blk []byte) *streamBuilder {
	s.frameID(id)
	s.u32(r.Left, r.Top, r.Right, r.Bottom)
	return s.block(blk)
}

// compressedBlock は uncompressed_len とzlibストリームからなる圧縮ブロックを返します
func compressedBlock(t *testing.T, data []byte) []byte {
	t.Helper()
	return compressedBlockWithLen(t, data, uint32(len(data)))
}

func compressedBlockWithLen(t *testing.T, data []byte, declared uint32) []byte {
	t.Helper()
	var b bytes.Buffer
	le32(&b, declared)
	zw := zlib.NewWriter(&b)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("zlib.Write() error = %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zlib.Close() error = %v", err)
	}
	return b.Bytes()
}
