package lxe

import (
	"errors"
	"fmt"

	"github.com/shiroemons/go-pmlxzj/pkg/crypto"
)

// AudioType はプレイヤー設定ブロックに記録された音声の形式
type AudioType uint32

const (
	AudioWAV        AudioType = 1
	AudioWAVZlib    AudioType = 2
	AudioMP3        AudioType = 5
	AudioTrueSpeech AudioType = 6
	AudioAAC        AudioType = 7
)

func (t AudioType) String() string {
	switch t {
	case AudioWAV:
		return "wav"
	case AudioWAVZlib:
		return "wav-zlib"
	case AudioMP3:
		return "mp3"
	case AudioTrueSpeech:
		return "truespeech"
	case AudioAAC:
		return "aac"
	default:
		return fmt.Sprintf("AudioType(%d)", uint32(t))
	}
}

// Ext は取り出した音声を保存するときの拡張子を返します。未対応の形式では空文字列です。
func (t AudioType) Ext() string {
	switch t {
	case AudioWAV, AudioWAVZlib:
		return "wav"
	case AudioMP3:
		return "mp3"
	case AudioAAC:
		return "aac"
	default:
		return ""
	}
}

var (
	// ErrNoAudio はコンテナに音声データがない場合のエラー
	ErrNoAudio = errors.New("音声データがありません")

	// ErrUnsupportedAudio は取り出しに対応していない音声形式の場合のエラー
	ErrUnsupportedAudio = errors.New("対応していない音声形式です")

	// ErrCorruptAudio は音声データの構造が不正な場合のエラー
	ErrCorruptAudio = errors.New("音声データが破損しています")
)

const (
	// waveFormatSize はWAVEFORMATEX構造体のサイズ
	waveFormatSize = 0x12
	// maxAACSegment はAACセグメント1つの最大サイズ (ADTSのフレーム長からヘッダーを除いた値)
	maxAACSegment = 1<<13 - 1 - 7
)

// Audio はコンテナから取り出した音声データ
type Audio struct {
	Type AudioType
	// Data はそのままファイルに保存できる内容。WAVとMP3は入力バッファを参照します。
	Data []byte
}

// Audio は音声データを取り出します。
// 音声がない場合は ErrNoAudio、取り出せない形式の場合は ErrUnsupportedAudio を返します。
func (c *Container) Audio() (*Audio, error) {
	if c.Metadata.AudioOffset < 0 {
		return nil, ErrNoAudio
	}
	typ := AudioType(c.Metadata.Player.AudioType)
	cur := &cursor{v: view(c.buf), pos: c.Metadata.AudioOffset}

	var data []byte
	var err error
	switch typ {
	case AudioWAV:
		data, err = readLengthPrefixed(cur)
	case AudioWAVZlib:
		data, err = readWAVZlib(cur)
	case AudioMP3:
		data, err = readMP3(cur)
	case AudioAAC:
		err = checkAAC(cur)
		if err == nil {
			err = fmt.Errorf("%w: %s", ErrUnsupportedAudio, typ)
		}
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedAudio, typ)
	}
	if err != nil {
		return nil, fmt.Errorf("音声 (0x%08x, %s): %w", c.Metadata.AudioOffset, typ, err)
	}
	return &Audio{Type: typ, Data: data}, nil
}

func readLengthPrefixed(cur *cursor) ([]byte, error) {
	n, err := cur.u32()
	if err != nil {
		return nil, err
	}
	return cur.bytes(int64(n))
}

// readWAVZlib はzlib圧縮されたセグメントを順に展開して連結します
func readWAVZlib(cur *cursor) ([]byte, error) {
	cnt, err := cur.u32()
	if err != nil {
		return nil, err
	}
	if cnt == 0 {
		return nil, ErrNoAudio
	}

	var out []byte
	for i := uint32(0); i < cnt; i++ {
		seg, err := readLengthPrefixed(cur)
		if err != nil {
			return nil, fmt.Errorf("セグメント %d: %w", i, err)
		}
		data, err := crypto.Inflate(seg)
		if err != nil {
			return nil, fmt.Errorf("セグメント %d: %w", i, err)
		}
		out = append(out, data...)
	}
	return out, nil
}

// readMP3 は2つのWAVEFORMATEXとセグメント位置の表を読み飛ばし、MP3本体を返します
func readMP3(cur *cursor) ([]byte, error) {
	if _, err := cur.bytes(2*waveFormatSize + 4); err != nil {
		return nil, err
	}
	cnt, err := cur.u32()
	if err != nil {
		return nil, err
	}
	if cnt == 0 {
		return nil, ErrNoAudio
	}
	if _, err := cur.bytes((int64(cnt) + 1) * 4); err != nil {
		return nil, err
	}
	return readLengthPrefixed(cur)
}

// checkAAC はAAC音声の構造を検証します。
// セグメントにADTSヘッダーを付け直す処理は未実装のため、中身は取り出しません。
func checkAAC(cur *cursor) error {
	if _, err := cur.bytes(waveFormatSize + 4); err != nil {
		return err
	}
	formatLen, err := cur.u32()
	if err != nil {
		return err
	}
	if _, err := cur.bytes(int64(formatLen) + 1); err != nil {
		return err
	}

	sizesLen, err := cur.u32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < sizesLen/4; i++ {
		size, err := cur.u32()
		if err != nil {
			return err
		}
		if size > maxAACSegment {
			return fmt.Errorf("%w: セグメント %d のサイズ %d が大きすぎます", ErrCorruptAudio, i, size)
		}
	}
	return nil
}
