package usecase

import (
	"context"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepoMock) Update(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// 入力チェックは素通しするスタブ。検証そのものはvalidator側のテストで見る。
type okValidator struct{}

func (okValidator) ValidateRegister(ctx context.Context, email, password, firstName, lastName string) error {
	return nil
}
func (okValidator) ValidateLogin(ctx context.Context, email, password string) error { return nil }
func (okValidator) ValidatePassword(ctx context.Context, password string) error     { return nil }

func testAuthConfig() config.Config {
	return config.Config{JWTSecret: "unit-test-secret"}
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(h)
}

func TestAuthUsecase_Register_AssignsUserRoleAndHashesPassword(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	uc := NewAuthUsecase(testAuthConfig(), users, okValidator{})

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		//平文で保存していないこと
		if u.PasswordHash == "Passw0rd" {
			return false
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Passw0rd")) != nil {
			return false
		}
		return len(u.Roles) == 1 && u.Roles[0].Role == model.RoleUser && u.IsActive
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 10
	}).Return(nil)

	out, err := uc.Register(ctx, RegisterInput{
		FirstName: "Hana",
		LastName:  "Sato",
		Email:     "hana@example.com",
		Password:  "Passw0rd",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, []string{model.RoleUser}, out.User.Roles)
	assert.Equal(t, "Hana Sato", out.User.FullName)
	assert.WithinDuration(t, time.Now().UTC().Add(accessTokenTTL), out.ExpiresAt, time.Minute)

	users.AssertExpectations(t)
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	uc := NewAuthUsecase(testAuthConfig(), users, okValidator{})

	users.On("Create", mock.Anything, mock.Anything).Return(repo.ErrConflict)

	_, err := uc.Register(ctx, RegisterInput{
		FirstName: "Hana",
		LastName:  "Sato",
		Email:     "hana@example.com",
		Password:  "Passw0rd",
	})
	assertErrStatus(t, err, 400)
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	uc := NewAuthUsecase(testAuthConfig(), users, okValidator{})

	user := &model.User{
		ID:           5,
		Email:        "admin@weddingdresscms.com",
		PasswordHash: hashOf(t, "Admin123!"),
		FirstName:    "System",
		LastName:     "Admin",
		IsActive:     true,
		Roles:        []model.UserRole{{Role: model.RoleAdmin}},
	}
	users.On("FindByEmail", mock.Anything, "admin@weddingdresscms.com").Return(user, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.LastLoginAt != nil
	})).Return(nil)

	out, err := uc.Login(ctx, "admin@weddingdresscms.com", "Admin123!")
	assert.NoError(t, err)

	//発行したトークンが自分の秘密鍵で検証でき、claimsが正しいこと
	parsed, err := jwt.Parse(out.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("unit-test-secret"), nil
	})
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "5", claims["sub"])
	assert.Equal(t, "admin@weddingdresscms.com", claims["email"])

	roles, _ := claims["roles"].([]interface{})
	assert.Equal(t, []interface{}{model.RoleAdmin}, roles)

	users.AssertExpectations(t)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	uc := NewAuthUsecase(testAuthConfig(), users, okValidator{})

	user := &model.User{
		ID:           5,
		Email:        "hana@example.com",
		PasswordHash: hashOf(t, "Passw0rd"),
		IsActive:     true,
	}
	users.On("FindByEmail", mock.Anything, "hana@example.com").Return(user, nil)

	_, err := uc.Login(ctx, "hana@example.com", "wrong-password")
	assertErrStatus(t, err, 401)

	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	uc := NewAuthUsecase(testAuthConfig(), users, okValidator{})

	users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, repo.ErrNotFound)

	_, err := uc.Login(ctx, "nobody@example.com", "Passw0rd")
	assertErrStatus(t, err, 401)
}

func TestAuthUsecase_Login_InactiveUser(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	uc := NewAuthUsecase(testAuthConfig(), users, okValidator{})

	user := &model.User{
		ID:           6,
		Email:        "old@example.com",
		PasswordHash: hashOf(t, "Passw0rd"),
		IsActive:     false,
	}
	users.On("FindByEmail", mock.Anything, "old@example.com").Return(user, nil)

	_, err := uc.Login(ctx, "old@example.com", "Passw0rd")
	assertErrStatus(t, err, 401)
}

func TestAuthUsecase_ChangePassword_WrongCurrent(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	uc := NewAuthUsecase(testAuthConfig(), users, okValidator{})

	user := &model.User{
		ID:           7,
		PasswordHash: hashOf(t, "Current1"),
		IsActive:     true,
	}
	users.On("FindByID", mock.Anything, int64(7)).Return(user, nil)

	err := uc.ChangePassword(ctx, 7, "not-current", "NewPass1")
	assertErrStatus(t, err, 400)

	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAuthUsecase_ChangePassword_RehashesNewPassword(t *testing.T) {
	ctx := context.Background()

	users := new(UserRepoMock)
	uc := NewAuthUsecase(testAuthConfig(), users, okValidator{})

	user := &model.User{
		ID:           7,
		PasswordHash: hashOf(t, "Current1"),
		IsActive:     true,
	}
	users.On("FindByID", mock.Anything, int64(7)).Return(user, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("NewPass1")) == nil
	})).Return(nil)

	err := uc.ChangePassword(ctx, 7, "Current1", "NewPass1")
	assert.NoError(t, err)

	users.AssertExpectations(t)
}
