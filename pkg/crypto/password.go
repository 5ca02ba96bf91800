package crypto

import "strconv"

// passwordChecksumBase はチェックサムの初期値
const passwordChecksumBase = 2005

// PasswordChecksum は再生ロックのパスワードチェックサムを計算します。
// password はコンテナ側の文字コード (GBK) でエンコード済みのバイト列です。
func PasswordChecksum(password []byte) uint32 {
	cksum := uint32(passwordChecksumBase)
	for i, c := range trimNUL(password) {
		cksum += uint32(c) * uint32(i+i/5+1)
	}
	return cksum
}

// KeyFromPassword はパスワードからフレーム復号キーを生成します。
// パスワードは先頭21バイトまでが使われ、先頭バイトはキーに含まれません。
func KeyFromPassword(password []byte) [KeySize]byte {
	var buf [KeySize + 2]byte
	copy(buf[:KeySize+1], trimNUL(password))

	var key [KeySize]byte
	for i := 0; i < KeySize; i++ {
		key[i] = buf[KeySize-i]
	}
	return key
}

// KeyFromEditLock は編集ロックの値からフレーム復号キーを生成します
func KeyFromEditLock(editlockKey uint32) [KeySize]byte {
	return KeyFromPassword([]byte(strconv.FormatUint(uint64(editlockKey), 10)))
}

// trimNUL は最初のNUL文字までを返します
func trimNUL(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}
