package lxe

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// view は入力バイト列を境界チェック付きで読み取るためのラッパー
type view []byte

func (v view) bytes(off, n int64) ([]byte, error) {
	if off < 0 || n < 0 || off > int64(len(v)) || n > int64(len(v))-off {
		return nil, fmt.Errorf("%w: 0x%x から %d バイト (ファイルサイズ %d)", ErrTruncatedInput, off, n, len(v))
	}
	return v[off : off+n], nil
}

func (v view) u32(off int64) (uint32, error) {
	b, err := v.bytes(off, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (v view) i32(off int64) (int32, error) {
	x, err := v.u32(off)
	return int32(x), err
}

// decode は off から固定長構造体を読み込みます
func (v view) decode(off int64, data any) error {
	b, err := v.bytes(off, int64(binary.Size(data)))
	if err != nil {
		return err
	}
	return binary.Read(bytes.NewReader(b), binary.LittleEndian, data)
}

// cursor は view を先頭から順に読み進めます
type cursor struct {
	v   view
	pos int64
}

func (c *cursor) u32() (uint32, error) {
	x, err := c.v.u32(c.pos)
	if err != nil {
		return 0, err
	}
	c.pos += 4
	return x, nil
}

func (c *cursor) i32() (int32, error) {
	x, err := c.u32()
	return int32(x), err
}

func (c *cursor) bytes(n int64) ([]byte, error) {
	b, err := c.v.bytes(c.pos, n)
	if err != nil {
		return nil, err
	}
	c.pos += n
	return b, nil
}
