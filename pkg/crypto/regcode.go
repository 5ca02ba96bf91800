package crypto

import "strconv"

// RegcodeCalc は登録コード1から期待される数値を計算します
func RegcodeCalc(regcode1 []byte) int64 {
	code1 := int64(-100)
	for _, c := range trimNUL(regcode1) {
		code1 += int64(int8(c))
	}
	code1 = int64(float64(code1) / 1.5432)
	code1 += 1234
	code1 = int64(float64(code1) * 3121.1415926)
	return code1
}

// RegcodeDecode は登録コード2を数値に戻します。不正な文字を含む場合は -1 を返します。
func RegcodeDecode(regcode2 []byte) int64 {
	var code2 int64
	for i, c := range trimNUL(regcode2) {
		s := int8(int(int8(c)) - 20 - 10*(i%2) + i/3)
		if s < '0' || s > '9' {
			return -1
		}
		code2 = code2*10 + int64(s-'0')
	}
	return code2 / 124
}

// RegcodeEncode は数値から登録コード2の文字列を生成します。
// 検証には RegcodeDecode の結果を比較してください。
func RegcodeEncode(code2 int64) []byte {
	s := []byte(strconv.FormatInt(code2*124, 10))
	for i := range s {
		s[i] += byte(20 + 10*(i%2) - i/3)
	}
	return s
}

// RegcodeCheck は登録コードの組が正しいか検証します
func RegcodeCheck(regcode1, regcode2 []byte) bool {
	return RegcodeCalc(regcode1) == RegcodeDecode(regcode2)
}
