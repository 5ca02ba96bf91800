// Package errors はカスタムエラータイプを提供します
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrFileNotFound はファイルが見つからない場合のエラー
	ErrFileNotFound = errors.New("ファイルが見つかりません")

	// ErrInvalidContainer はコンテナが無効な場合のエラー
	ErrInvalidContainer = errors.New("無効な動画ファイルです")

	// ErrParseFailure は解析に失敗した場合のエラー
	ErrParseFailure = errors.New("データの解析に失敗しました")
)

// ContainerError はコンテナ関連のエラー
type ContainerError struct {
	Op   string // 実行していた操作
	Path string // ファイルパス
	Err  error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *ContainerError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap は元のエラーを返します
func (e *ContainerError) Unwrap() error {
	return e.Err
}

// NewContainerError は新しいContainerErrorを作成します
func NewContainerError(op, path string, err error) *ContainerError {
	return &ContainerError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// ParseError は解析関連のエラー
type ParseError struct {
	Field string // フィールド名
	Err   error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *ParseError) Error() string {
	return fmt.Sprintf("%sの解析エラー: %v", e.Field, e.Err)
}

// Unwrap は元のエラーを返します
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError は新しいParseErrorを作成します
func NewParseError(field string, err error) *ParseError {
	return &ParseError{
		Field: field,
		Err:   err,
	}
}
