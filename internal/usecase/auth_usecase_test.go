package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robosite/storefront/internal/domain"
	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/logger"
)

type userRepoMock struct {
	byEmail map[string]*domain.User
}

func newUserRepoMock() *userRepoMock {
	return &userRepoMock{byEmail: make(map[string]*domain.User)}
}

func (m *userRepoMock) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	m.byEmail[user.Email] = user
	return user, nil
}

func (m *userRepoMock) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return m.byEmail[email], nil
}

type tokenStorageMock struct {
	tokens map[string]*domain.User
}

func newTokenStorageMock() *tokenStorageMock {
	return &tokenStorageMock{tokens: make(map[string]*domain.User)}
}

func (m *tokenStorageMock) Save(_ context.Context, token string, user *domain.User) error {
	m.tokens[token] = user
	return nil
}

func (m *tokenStorageMock) Get(_ context.Context, token string) (*domain.User, error) {
	return m.tokens[token], nil
}

func (m *tokenStorageMock) Delete(_ context.Context, token string) error {
	delete(m.tokens, token)
	return nil
}

func newAuthUCForTest() (*AuthUseCase, *userRepoMock, *tokenStorageMock, *sessionStorageMock) {
	users := newUserRepoMock()
	tokens := newTokenStorageMock()
	sessions := newSessionStorageMock()
	return NewAuthUC(users, tokens, sessions, logger.NewSlogLogger()), users, tokens, sessions
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("IssuesToken", func(t *testing.T) {
		uc, _, tokens, _ := newAuthUCForTest()

		res, err := uc.Register(ctx, &RegisterReq{Name: "Ada", Email: "ada@example.com", Password: "secret"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
		assert.Equal(t, "bearer", res.TokenType)
		assert.Equal(t, domain.RoleUser, res.User.Role)
		assert.Contains(t, tokens.tokens, res.AccessToken)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		uc, _, _, _ := newAuthUCForTest()

		_, err := uc.Register(ctx, &RegisterReq{Email: "ada@example.com", Password: "secret"})
		require.NoError(t, err)

		_, err = uc.Register(ctx, &RegisterReq{Email: "ada@example.com", Password: "other"})
		require.ErrorIs(t, err, e.ErrEmailTaken)
	})

	t.Run("EmptyCredentials", func(t *testing.T) {
		uc, _, _, _ := newAuthUCForTest()

		_, err := uc.Register(ctx, &RegisterReq{Email: "  ", Password: "secret"})
		require.ErrorIs(t, err, e.ErrEmptyCredentials)

		_, err = uc.Register(ctx, &RegisterReq{Email: "ada@example.com"})
		require.ErrorIs(t, err, e.ErrEmptyCredentials)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, uc *AuthUseCase) {
		t.Helper()
		_, err := uc.Register(ctx, &RegisterReq{Name: "Ada", Email: "ada@example.com", Password: "secret"})
		require.NoError(t, err)
	}

	t.Run("CorrectPassword", func(t *testing.T) {
		uc, _, _, _ := newAuthUCForTest()
		register(t, uc)

		res, err := uc.Login(ctx, &LoginReq{Email: "ada@example.com", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", res.User.Email)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		uc, _, _, _ := newAuthUCForTest()
		register(t, uc)

		_, err := uc.Login(ctx, &LoginReq{Email: "ada@example.com", Password: "wrong"})
		require.ErrorIs(t, err, e.ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		uc, _, _, _ := newAuthUCForTest()

		_, err := uc.Login(ctx, &LoginReq{Email: "ghost@example.com", Password: "secret"})
		require.ErrorIs(t, err, e.ErrInvalidCredentials)
	})
}

func TestUserByToken(t *testing.T) {
	ctx := context.Background()

	t.Run("ExpiredToken", func(t *testing.T) {
		uc, _, _, _ := newAuthUCForTest()

		_, err := uc.UserByToken(ctx, "missing")
		require.ErrorIs(t, err, e.ErrTokenExpired)
	})

	t.Run("ValidToken", func(t *testing.T) {
		uc, _, _, _ := newAuthUCForTest()

		res, err := uc.Register(ctx, &RegisterReq{Email: "ada@example.com", Password: "secret"})
		require.NoError(t, err)

		user, err := uc.UserByToken(ctx, res.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
	})
}

func TestSessionLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("AnyNonEmptyCredentials", func(t *testing.T) {
		uc, _, _, sessions := newAuthUCForTest()

		res, err := uc.SessionLogin(ctx, NewSessionLoginReq("sid", "ayse@example.com", "anything", ""))
		require.NoError(t, err)
		assert.True(t, res.Session.IsLoggedIn)
		assert.Equal(t, "ayse", res.Session.Name)
		assert.Equal(t, "Hoş geldiniz ayse!", res.Message)
		assert.True(t, sessions.sessions["sid"].IsLoggedIn)
	})

	t.Run("ExplicitNameWins", func(t *testing.T) {
		uc, _, _, _ := newAuthUCForTest()

		res, err := uc.SessionLogin(ctx, NewSessionLoginReq("sid", "ayse@example.com", "anything", "Ayşe"))
		require.NoError(t, err)
		assert.Equal(t, "Ayşe", res.Session.Name)
	})

	t.Run("EmptyCredentials", func(t *testing.T) {
		uc, _, _, _ := newAuthUCForTest()

		_, err := uc.SessionLogin(ctx, NewSessionLoginReq("sid", "", "anything", ""))
		require.ErrorIs(t, err, e.ErrEmptyCredentials)
	})
}

func TestSessionLogout(t *testing.T) {
	ctx := context.Background()

	uc, _, _, sessions := newAuthUCForTest()

	_, err := uc.SessionLogin(ctx, NewSessionLoginReq("sid", "ayse@example.com", "anything", ""))
	require.NoError(t, err)

	res, err := uc.SessionLogout(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, res.Session.IsLoggedIn)
	assert.Equal(t, "Başarıyla çıkış yaptınız", res.Message)
	assert.NotContains(t, sessions.sessions, "sid")
}
