// Package crypto は屏幕录像专家 (pmlxzj) のEXEコンテナで使用される圧縮・暗号化アルゴリズムを提供します。
//
// 主な機能:
//   - Inflate: フレームデータのzlib展開
//   - ExpandBitmap: 独自のワード単位RLEで圧縮されたビットマップの展開
//   - ImageCrypt: 編集ロック/再生ロックされたフレームのXOR復号
//   - PasswordChecksum, KeyFromPassword: 再生ロックのパスワード処理
//   - InfotextDecode: 透かし文字列の復号
//   - RegcodeCheck: 登録コードの検証
package crypto
