package usecase

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限
const accessTokenTTL = 24 * time.Hour

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, email string, password string, firstName string, lastName string) error
	ValidateLogin(ctx context.Context, email string, password string) error
	ValidatePassword(ctx context.Context, password string) error
}

type UserInfo struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	FullName    string   `json:"fullName"`
	PhoneNumber string   `json:"phoneNumber"`
	Roles       []string `json:"roles"`
}

type AuthResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	User         UserInfo  `json:"user"`
}

type AuthUsecase struct {
	cfg       config.Config
	users     repo.UserRepository
	validator AuthValidator
}

// DI
func NewAuthUsecase(cfg config.Config, users repo.UserRepository, validator AuthValidator) *AuthUsecase {
	return &AuthUsecase{cfg: cfg, users: users, validator: validator}
}

type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PhoneNumber string
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*AuthResponse, error) {
	if err := u.validator.ValidateRegister(ctx, in.Email, in.Password, in.FirstName, in.LastName); err != nil {
		return nil, err
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Email:        in.Email,
		PasswordHash: string(pwHash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PhoneNumber:  in.PhoneNumber,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
		Roles: []model.UserRole{
			{Role: model.RoleUser},
		},
	}

	if err := u.users.Create(ctx, user); err != nil {
		if err == repo.ErrConflict {
			return nil, NewHTTPError(http.StatusBadRequest, "user with this email already exists")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildAuthResponse(user)
}

func (u *AuthUsecase) Login(ctx context.Context, email string, password string) (*AuthResponse, error) {
	if err := u.validator.ValidateLogin(ctx, email, password); err != nil {
		return nil, err
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	//パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	//last_login更新
	now := time.Now().UTC()
	user.LastLoginAt = &now
	_ = u.users.Update(ctx, user)

	return u.buildAuthResponse(user)
}

func (u *AuthUsecase) Me(ctx context.Context, userID int64) (*UserInfo, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil || user == nil {
		return nil, NewHTTPError(http.StatusNotFound, "user not found")
	}

	info := toUserInfo(user)
	return &info, nil
}

func (u *AuthUsecase) ChangePassword(ctx context.Context, userID int64, currentPassword string, newPassword string) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.validator.ValidatePassword(ctx, newPassword); err != nil {
		return err
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil || user == nil {
		return NewHTTPError(http.StatusNotFound, "user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return NewHTTPError(http.StatusBadRequest, "failed to change password")
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user.PasswordHash = string(pwHash)
	if err := u.users.Update(ctx, user); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// Logout はトークン検証済みなら成功を返すだけ。
// bearer方式ではサーバー側に破棄する状態がない。
func (u *AuthUsecase) Logout(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if _, err := u.users.FindByID(ctx, userID); err != nil {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return nil
}

func (u *AuthUsecase) buildAuthResponse(user *model.User) (*AuthResponse, error) {
	token, expiresAt, err := u.issueAccessToken(user)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return &AuthResponse{
		Token: token,
		//保存しない使い捨て値。refreshエンドポイントは持たない。
		RefreshToken: uuid.NewString(),
		ExpiresAt:    expiresAt,
		User:         toUserInfo(user),
	}, nil
}

func (u *AuthUsecase) issueAccessToken(user *model.User) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(user.ID, 10),
		"email": user.Email,
		"roles": user.RoleNames(),
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func toUserInfo(u *model.User) UserInfo {
	return UserInfo{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		FullName:    u.FullName(),
		PhoneNumber: u.PhoneNumber,
		Roles:       u.RoleNames(),
	}
}
