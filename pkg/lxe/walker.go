package lxe

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/shiroemons/go-pmlxzj/pkg/crypto"
)

type walkState int

const (
	stateStart walkState = iota
	stateAux
	stateBaseline
	stateAwaitFrameHeader
	stateTerminal
	stateFailed
)

// WalkOptions はフレームストリームの読み込みオプション
type WalkOptions struct {
	// Expand を指定すると画像レコードをRLE展開して Record.Bitmap に格納します
	Expand bool
}

// Walker はフレームストリームを先頭から順に読み進めます。
// 最初のエラーで読み込みを終了し、それまでに返したレコードはそのまま有効です。
type Walker struct {
	c     cursor
	meta  *Metadata
	opts  WalkOptions
	lock  LockState
	key   *[crypto.KeySize]byte
	state walkState

	rec *Record
	err error

	// 読み込み中のレコード
	recOffset int64
	recID     int32
}

func newWalker(buf []byte, meta *Metadata, lock LockState, key *[crypto.KeySize]byte, opts WalkOptions) *Walker {
	return &Walker{
		c:     cursor{v: view(buf)},
		meta:  meta,
		opts:  opts,
		lock:  lock,
		key:   key,
		state: stateStart,
	}
}

// Next は次のレコードを読み込みます。
// 終端に達したかエラーが発生した場合は false を返します。
func (w *Walker) Next() bool {
	if w.state == stateTerminal || w.state == stateFailed {
		return false
	}

	rec, err := w.step()
	if err != nil {
		w.state = stateFailed
		w.rec = nil
		w.err = &FrameError{Offset: w.recOffset, FrameID: w.recID, Err: err}
		return false
	}
	w.rec = rec
	return rec != nil
}

// Record は直前の Next で読み込んだレコードを返します
func (w *Walker) Record() *Record {
	return w.rec
}

// Err は読み込みを中断したエラーを返します
func (w *Walker) Err() error {
	return w.err
}

// Done は終端レコードまで正常に読み込んだかどうかを返します
func (w *Walker) Done() bool {
	return w.state == stateTerminal
}

// Offset は次に読み込む位置を返します
func (w *Walker) Offset() int64 {
	return w.c.pos
}

func (w *Walker) step() (*Record, error) {
	if w.state == stateStart {
		w.c.pos = w.meta.FrameStreamStart
		w.state = stateBaseline
		if w.meta.HasCursor {
			w.state = stateAux
		}
	}

	w.recOffset = w.c.pos
	w.recID = 0

	switch w.state {
	case stateAux:
		w.state = stateBaseline
		rec := &Record{Kind: KindCursor, Leading: true, Offset: w.recOffset}
		return rec, w.readCursor(rec)

	case stateBaseline:
		w.state = stateAwaitFrameHeader
		rec := &Record{
			Kind:    KindImage,
			Leading: true,
			Offset:  w.recOffset,
			Rect:    Rect{Right: w.meta.Width, Bottom: w.meta.Height},
		}
		return rec, w.readImage(rec)

	case stateAwaitFrameHeader:
		frameID, err := w.c.i32()
		if err != nil {
			return nil, err
		}
		w.recID = frameID

		switch Classify(frameID, w.meta.FramesCnt) {
		case KindTerminator:
			w.state = stateTerminal
			return nil, nil
		case KindCursor:
			rec := &Record{Kind: KindCursor, FrameID: frameID, Number: 1 - frameID, Offset: w.recOffset}
			return rec, w.readCursor(rec)
		default:
			rec := &Record{Kind: KindImage, FrameID: frameID, Number: frameID, Offset: w.recOffset}
			if err := w.readRect(&rec.Rect); err != nil {
				return nil, err
			}
			return rec, w.readImage(rec)
		}
	}
	return nil, fmt.Errorf("不明な状態: %d", w.state)
}

// readCursor はカーソル位置と未解釈のペイロードを読み込みます
func (w *Walker) readCursor(rec *Record) error {
	var err error
	if rec.Rect.Left, err = w.c.u32(); err != nil {
		return err
	}
	if rec.Rect.Top, err = w.c.u32(); err != nil {
		return err
	}
	size, err := w.c.u32()
	if err != nil {
		return err
	}

	rec.DataOffset = w.c.pos
	payload, err := w.c.bytes(int64(size))
	if err != nil {
		return err
	}
	rec.Data = bytes.Clone(payload)
	return nil
}

func (w *Walker) readRect(r *Rect) error {
	for _, p := range []*uint32{&r.Left, &r.Top, &r.Right, &r.Bottom} {
		v, err := w.c.u32()
		if err != nil {
			return err
		}
		*p = v
	}
	return nil
}

// readImage は圧縮ブロックを読み込み、必要に応じて復号・展開します
func (w *Walker) readImage(rec *Record) error {
	streamLen, err := w.c.u32()
	if err != nil {
		return err
	}
	if streamLen == 0 {
		return fmt.Errorf("%w: 圧縮ブロックのサイズが0です", ErrCorruptFrame)
	}
	if streamLen < 4 {
		return fmt.Errorf("%w: 圧縮ブロックのサイズが小さすぎます (%d)", ErrCorruptFrame, streamLen)
	}
	rec.StreamLen = streamLen

	rec.DataOffset = w.c.pos
	block, err := w.c.bytes(int64(streamLen))
	if err != nil {
		return err
	}

	if w.lock != LockNone {
		if w.key == nil {
			return ErrPasswordRequired
		}
		block = bytes.Clone(block)
		rec.Decrypted = crypto.ImageCrypt(block, w.key)
	}

	rec.UncompressedLen = binary.LittleEndian.Uint32(block)
	data, err := crypto.InflateN(block[4:], int(rec.UncompressedLen))
	if err != nil {
		return err
	}
	if len(data) != int(rec.UncompressedLen) {
		return fmt.Errorf("%w: 展開後のサイズが一致しません (%d != %d)", ErrCorruptFrame, len(data), rec.UncompressedLen)
	}
	rec.Data = data

	if w.opts.Expand {
		width, height, err := rec.Rect.Size()
		if err != nil {
			return err
		}
		if rec.Bitmap, err = crypto.ExpandBitmap(data, width, height, 0); err != nil {
			return err
		}
	}
	return nil
}
