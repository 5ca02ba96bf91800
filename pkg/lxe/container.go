package lxe

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding"

	"github.com/shiroemons/go-pmlxzj/pkg/crypto"
)

// LockState はコンテナのロック状態
type LockState int

const (
	// LockNone はロックされていない状態
	LockNone LockState = iota
	// LockEdit は編集ロック (復号キーがフッターに埋め込まれている)
	LockEdit
	// LockPlay は再生ロック (復号キーをパスワードから生成する)
	LockPlay
)

func (s LockState) String() string {
	switch s {
	case LockNone:
		return "Unlocked"
	case LockEdit:
		return "Edit locked"
	case LockPlay:
		return "Play locked"
	default:
		return fmt.Sprintf("LockState(%d)", int(s))
	}
}

// Container はメモリ上に読み込んだコンテナ
type Container struct {
	Metadata *Metadata

	buf      []byte
	encoding encoding.Encoding
	lock     LockState
	key      *[crypto.KeySize]byte
}

// Open はファイルを読み込んでコンテナとして解析します
func Open(path string, opts ...LocateOption) (*Container, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(buf, opts...)
}

// Parse はバイト列をコンテナとして解析します。buf は呼び出し後に変更しないでください。
func Parse(buf []byte, opts ...LocateOption) (*Container, error) {
	cfg := newLocateConfig(opts)
	meta, err := Locate(buf, opts...)
	if err != nil {
		return nil, err
	}

	c := &Container{Metadata: meta, buf: buf, encoding: cfg.encoding}

	footer := meta.Footer
	switch {
	case footer.EditlockKey != 0:
		if footer.PlaylockCksum != 0 {
			return nil, fmt.Errorf("%w: 編集ロックと再生ロックが両方設定されています", ErrCorruptHeader)
		}
		key := crypto.KeyFromEditLock(footer.EditlockKey)
		c.lock = LockEdit
		c.key = &key
	case footer.PlaylockCksum != 0:
		c.lock = LockPlay
	}
	return c, nil
}

// Lock はロック状態を返します
func (c *Container) Lock() LockState {
	return c.lock
}

// HasKey はフレームの復号に必要なキーが揃っているかを返します
func (c *Container) HasKey() bool {
	return c.lock == LockNone || c.key != nil
}

// SetPassword は再生ロックのパスワードを設定します。
// チェックサムが一致しない場合は ErrWrongPassword を返しますが、
// force を指定するとそのままキーを設定します。
// 再生ロックされていないコンテナでは何もしません。
func (c *Container) SetPassword(password string, force bool) error {
	if c.lock != LockPlay {
		return nil
	}

	encoded, err := c.encoding.NewEncoder().Bytes([]byte(password))
	if err != nil {
		return fmt.Errorf("パスワードの文字コード変換に失敗: %w", err)
	}

	ok := crypto.PasswordChecksum(encoded) == c.Metadata.Footer.PlaylockCksum
	if ok || force {
		key := crypto.KeyFromPassword(encoded)
		c.key = &key
	}
	if !ok {
		return ErrWrongPassword
	}
	return nil
}

// Walk はフレームストリームを読み込む Walker を返します
func (c *Container) Walk(opts WalkOptions) *Walker {
	return newWalker(c.buf, c.Metadata, c.lock, c.key, opts)
}

// Segment はデータ領域の内容を返します。s が nil かファイルの外を指す場合は nil です。
func (c *Container) Segment(s *Segment) []byte {
	if s == nil {
		return nil
	}
	b, err := view(c.buf).bytes(s.Offset, int64(s.Size))
	if err != nil {
		return nil
	}
	return b
}

// Keyframes はキーフレーム情報のテキストを返します。存在しない場合は nil です。
func (c *Container) Keyframes() []byte {
	return c.Segment(c.Metadata.Keyframes)
}

// Clicks はクリック情報のテキストを返します。存在しない場合は nil です。
func (c *Container) Clicks() []byte {
	return c.Segment(c.Metadata.Clicks)
}

// Infotext は透かし文字列をデコードして返します
func (c *Container) Infotext() string {
	return decodeString(c.encoding, crypto.InfotextDecode(c.Metadata.Video.Infotext[:]))
}

// FontName は透かし文字列のフォント名を返します
func (c *Container) FontName() string {
	return decodeString(c.encoding, c.Metadata.Video.InfotextFontName[:])
}

// Registered は登録コードが正しいかどうかを返します
func (c *Container) Registered() bool {
	return crypto.RegcodeCheck(c.Metadata.Video.Regcode1[:], c.Metadata.Video.Regcode2[:])
}
