package validator

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"unicode"

	"app/internal/usecase"
)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// サインアップの入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, email string, password string, firstName string, lastName string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if email == "" || password == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "email and password required")
	}
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "first name and last name required")
	}

	// email形式
	if !isEmailLike(email) {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	return v.ValidatePassword(ctx, password)
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if email == "" || password == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "email and password required")
	}

	// email形式
	if !isEmailLike(email) {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	return nil
}

// パスワードポリシー：6文字以上、大文字・小文字・数字を各1つ以上
func (v *authValidator) ValidatePassword(ctx context.Context, password string) error {
	if len(password) < 6 {
		return usecase.NewHTTPError(http.StatusBadRequest, "password must be at least 6 characters")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return usecase.NewHTTPError(http.StatusBadRequest, "password must contain upper, lower and digit")
	}

	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	re := regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	return re.MatchString(s)
}
