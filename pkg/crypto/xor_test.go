package crypto

import (
	"bytes"
	"testing"
)

func TestImageCrypt(t *testing.T) {
	key := KeyFromEditLock(123456)

	block := make([]byte, 20000)
	for i := range block {
		block[i] = byte(i * 7)
	}
	original := append([]byte(nil), block...)

	if !ImageCrypt(block, &key) {
		t.Fatal("ImageCrypt() = false, want true")
	}

	mid := len(block) / 2
	for i := 0; i < KeySize; i++ {
		want := original[mid+i] ^ original[4+i] ^ key[i]
		if block[mid+i] != want {
			t.Errorf("block[%d] = 0x%02X, want 0x%02X", mid+i, block[mid+i], want)
		}
	}
	if !bytes.Equal(block[:mid], original[:mid]) || !bytes.Equal(block[mid+KeySize:], original[mid+KeySize:]) {
		t.Error("暗号化範囲外のバイトが変更されている")
	}

	// 2回適用すると元に戻る
	ImageCrypt(block, &key)
	if !bytes.Equal(block, original) {
		t.Error("ImageCrypt を2回適用しても元に戻らない")
	}
}

func TestImageCrypt_Skip(t *testing.T) {
	key := KeyFromPassword([]byte("password"))

	tests := []struct {
		name  string
		block []byte
		key   *[KeySize]byte
	}{
		{"しきい値ちょうど", make([]byte, 10240), &key},
		{"小さいブロック", make([]byte, 100), &key},
		{"キーなし", make([]byte, 20000), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := append([]byte(nil), tt.block...)
			if ImageCrypt(tt.block, tt.key) {
				t.Error("ImageCrypt() = true, want false")
			}
			if !bytes.Equal(before, tt.block) {
				t.Error("データが変更されている")
			}
		})
	}
}

func TestInfotextDecode(t *testing.T) {
	plain := []byte("watermark")
	field := make([]byte, InfotextSize)
	copy(field, plain)

	encoded := InfotextDecode(field)
	if len(encoded) != InfotextSize {
		t.Fatalf("len = %d, want %d", len(encoded), InfotextSize)
	}
	if encoded[0] != 'w'^100 {
		t.Errorf("encoded[0] = 0x%02X, want 0x%02X", encoded[0], 'w'^100)
	}
	// 100-4*39 = -56 は 0xC8 として扱われる
	if encoded[39] != 0xC8 {
		t.Errorf("encoded[39] = 0x%02X, want 0xC8", encoded[39])
	}

	decoded := InfotextDecode(encoded)
	if !bytes.Equal(decoded, field) {
		t.Errorf("InfotextDecode(InfotextDecode(x)) = %q, want %q", decoded, field)
	}
}

func TestInfotextDecode_Short(t *testing.T) {
	got := InfotextDecode([]byte{100, 96})
	if !bytes.Equal(got, []byte{0, 0}) {
		t.Errorf("InfotextDecode() = % x, want 00 00", got)
	}
}
