package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// エラー分類はHTTPステータスで表す。

// 入力不正・在庫不足
func NewValidationError(message string) error {
	return NewHTTPError(http.StatusBadRequest, message)
}

// 現在の状態から許されない遷移
func NewInvalidStateError(message string) error {
	return NewHTTPError(http.StatusConflict, message)
}

// 注文・商品が見つからない
func NewNotFoundError(message string) error {
	return NewHTTPError(http.StatusNotFound, message)
}

// 署名不一致など
func NewSecurityError(message string) error {
	return NewHTTPError(http.StatusUnauthorized, message)
}

// ゲートウェイ・ファイル保存が落ちている
func NewExternalError(message string) error {
	return NewHTTPError(http.StatusBadGateway, message)
}
