package crypto

const (
	// KeySize はフレーム復号キーの長さです
	KeySize = 20

	// imageCryptMinSize 以下のブロックは暗号化されない
	imageCryptMinSize = 10240

	// InfotextSize は透かし文字列フィールドの長さです
	InfotextSize = 40
)

// ImageCrypt はフレームの圧縮ブロックをXORで暗号化・復号します。
// block は uncompressed_len フィールドから始まる stream_len バイトです。
// 変換は対合なので、2回適用すると元に戻ります。
// 実際に変換した場合は true を返します。
func ImageCrypt(block []byte, key *[KeySize]byte) bool {
	if key == nil || len(block) <= imageCryptMinSize {
		return false
	}

	head := block[4 : 4+KeySize]
	encrypted := block[len(block)/2 : len(block)/2+KeySize]
	for i := 0; i < KeySize; i++ {
		encrypted[i] ^= head[i] ^ key[i]
	}
	return true
}

// InfotextDecode は透かし文字列をデコードします (エンコードも同じ処理)
func InfotextDecode(src []byte) []byte {
	n := min(len(src), InfotextSize)
	dst := make([]byte, n)
	for i := 0; i < n; i++ {
		dst[i] = src[i] ^ byte(100-4*i)
	}
	return dst
}
