package crypto

import (
	"encoding/binary"
	"fmt"
)

const (
	// bitmapSlack は出力バッファに上乗せする固定サイズ (プレイヤーと同じ値)
	bitmapSlack = 0x1400

	// MaxBitmapBuffer は展開用に確保する出力バッファの上限
	MaxBitmapBuffer = 1 << 30
)

// BitmapMarker はビットマップバッファ先頭の2バイトです
var BitmapMarker = [2]byte{'B', 'M'}

// BitmapBufferSize は width x height のフレームを展開するのに必要な出力バッファサイズを返します。
// MaxBitmapBuffer を超える場合は ErrBadRLEStream を返します。
func BitmapBufferSize(width, height uint32) (int, error) {
	size := 4*uint64(height)*((uint64(width)+1)>>1) + bitmapSlack
	if size > MaxBitmapBuffer {
		return 0, fmt.Errorf("%w: %dx%d の出力バッファ (%d バイト) は上限 %d を超えています",
			ErrBadRLEStream, width, height, size, MaxBitmapBuffer)
	}
	return int(size), nil
}

// ExpandBitmap はワード単位RLEで圧縮されたビットマップを展開します。
//
// 入力は16ビットリトルエンディアンのワード列で、ワード0はBMマーカーです。
// ワード1以降を走査し、0, 0, n (n != 0) の並びを「値ワードを n 回繰り返す」
// ランとして扱い、それ以外はリテラルとしてそのままコピーします。
// bufsize が0以下の場合は入力全体を対象にします。
func ExpandBitmap(in []byte, width, height uint32, bufsize int) ([]byte, error) {
	if len(in) < 2 || in[0] != BitmapMarker[0] || in[1] != BitmapMarker[1] {
		return nil, fmt.Errorf("%w: BMマーカーがありません", ErrBadRLEStream)
	}
	if bufsize <= 0 {
		bufsize = len(in)
	}
	if bufsize > len(in) {
		return nil, fmt.Errorf("%w: bufsize %d が入力長 %d を超えています", ErrBadRLEStream, bufsize, len(in))
	}

	size, err := BitmapBufferSize(width, height)
	if err != nil {
		return nil, err
	}
	out := make([]byte, size)
	out[0], out[1] = BitmapMarker[0], BitmapMarker[1]

	cursor, err := expandWords(in[:bufsize], out)
	if err != nil {
		return nil, err
	}

	// ワード1-2にはBITMAPFILEHEADERのファイルサイズがそのまま入っている
	stored := binary.LittleEndian.Uint32(out[2:6])
	if uint64(stored) != uint64(cursor)*2 {
		return nil, fmt.Errorf("%w: 格納サイズ %d と展開サイズ %d が一致しません", ErrBadRLEStream, stored, cursor*2)
	}
	return out[:stored], nil
}

// expandWords は in のワード1以降を out のワード1以降へ展開し、出力ワード位置を返します
func expandWords(in, out []byte) (int, error) {
	half := len(in) / 2
	limit := half - 3
	capWords := len(out) / 2

	o := 1
	i := 1
	for ; i < limit; i++ {
		w0 := binary.LittleEndian.Uint16(in[2*i:])
		w1 := binary.LittleEndian.Uint16(in[2*(i+1):])
		w2 := binary.LittleEndian.Uint16(in[2*(i+2):])

		if w0 != 0 || w1 != 0 || w2 == 0 {
			if o >= capWords {
				return o, overflowError(i, capWords)
			}
			copy(out[2*o:2*o+2], in[2*i:2*i+2])
			o++
			continue
		}

		// ラン: 0, 0, 回数, 値
		count := int(w2)
		if o+count > capWords {
			return o, overflowError(i, capWords)
		}
		value := in[2*(i+3) : 2*(i+4)]
		for k := 0; k < count; k++ {
			copy(out[2*o:2*o+2], value)
			o++
		}
		i += 3
	}

	// 走査範囲の後ろに残ったワードはそのままコピー。
	// ループ終了時は half-3 <= i <= half なので i == half の場合も tail が0になるだけ
	tail := half - i
	if o+tail > capWords {
		return o, overflowError(i, capWords)
	}
	copy(out[2*o:], in[2*i:2*half])
	o += tail

	return o, nil
}

func overflowError(pos, capWords int) error {
	return fmt.Errorf("%w: 入力ワード %d で出力バッファ (%d ワード) を超えました", ErrBadRLEStream, pos, capWords)
}
