package crypto

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// maxPrealloc を超える宣言サイズでも事前確保はこの値までにとどめる
const maxPrealloc = 16 << 20

// ZlibMagic はフレームストリーム先頭のzlibヘッダ (CMF/FLG) です
var ZlibMagic = []byte{0x78, 0x9C}

// Inflate はzlib形式のデータを展開します
func Inflate(data []byte) ([]byte, error) {
	return inflate(data, -1)
}

// InflateN はzlib形式のデータを最大 n+1 バイトまで展開します。
// 宣言サイズ n より長い出力は n+1 バイトで打ち切られるため、
// 呼び出し側は長さを比較するだけで不一致を検出できます。
func InflateN(data []byte, n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: 展開サイズが負です: %d", ErrBadStream, n)
	}
	return inflate(data, n)
}

func inflate(data []byte, limit int) ([]byte, error) {
	if !bytes.HasPrefix(data, ZlibMagic) {
		return nil, fmt.Errorf("%w: zlibヘッダがありません", ErrBadStream)
	}

	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadStream, err)
	}
	defer zr.Close()

	var r io.Reader = zr
	out := &bytes.Buffer{}
	if limit >= 0 {
		r = io.LimitReader(zr, int64(limit)+1)
		out.Grow(min(limit, maxPrealloc))
	}

	if _, err := out.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadStream, err)
	}
	return out.Bytes(), nil
}
