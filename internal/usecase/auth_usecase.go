package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/robosite/storefront/internal/domain"
	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// AuthUseCase реализует два трека аутентификации:
// настоящий (регистрация, вход по паролю, bearer-токены) и
// mock-вход покупательской сессии без проверки пароля.
type AuthUseCase struct {
	userRepo UserRepository
	tokens   TokenStorage
	sessions SessionStorage
	logger   logger.Logger
}

func NewAuthUC(userRepo UserRepository, tokens TokenStorage, sessions SessionStorage, logger logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		sessions: sessions,
		logger:   logger,
	}
}

// Register создает пользователя и сразу выдает bearer-токен.
func (a *AuthUseCase) Register(ctx context.Context, req *RegisterReq) (*TokenRes, error) {
	const op = "AuthUseCase.Register"

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, e.ErrEmptyCredentials
	}

	existing, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if existing != nil {
		return nil, e.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	user, err := a.userRepo.Create(ctx, domain.NewUser(
		uuid.NewString(), req.Name, req.Email, domain.RoleUser, string(hashed),
	))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return a.issueToken(ctx, op, user)
}

// Login проверяет пароль и выдает bearer-токен.
func (a *AuthUseCase) Login(ctx context.Context, req *LoginReq) (*TokenRes, error) {
	const op = "AuthUseCase.Login"

	user, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if user == nil {
		return nil, e.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, e.ErrInvalidCredentials
	}

	return a.issueToken(ctx, op, user)
}

// Profile возвращает пользователя по bearer-токену.
func (a *AuthUseCase) Profile(ctx context.Context, token string) (*UserInfo, error) {
	return a.UserByToken(ctx, token)
}

// UserByToken резолвит bearer-токен в пользователя.
func (a *AuthUseCase) UserByToken(ctx context.Context, token string) (*UserInfo, error) {
	const op = "AuthUseCase.UserByToken"

	user, err := a.tokens.Get(ctx, token)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if user == nil {
		return nil, e.ErrTokenExpired
	}

	return UserInfoFromDomain(user), nil
}

// SessionLogin выполняет mock-вход покупателя: достаточно непустых
// email и password, пароль никак не проверяется. Отображаемое имя
// берется из локальной части email, если не передано.
func (a *AuthUseCase) SessionLogin(ctx context.Context, req *SessionLoginReq) (*SessionRes, error) {
	const op = "AuthUseCase.SessionLogin"

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, e.ErrEmptyCredentials
	}

	name := req.Name
	if name == "" {
		name = strings.SplitN(req.Email, "@", 2)[0]
	}

	session := domain.Session{
		IsLoggedIn: true,
		Email:      req.Email,
		Name:       name,
	}

	if err := a.sessions.Save(ctx, req.SessionID, session); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &SessionRes{
		Session: session,
		Message: fmt.Sprintf("Hoş geldiniz %s!", name),
	}, nil
}

// SessionLogout сбрасывает сессию в состояние по умолчанию.
func (a *AuthUseCase) SessionLogout(ctx context.Context, sessionID string) (*SessionRes, error) {
	const op = "AuthUseCase.SessionLogout"

	if err := a.sessions.Delete(ctx, sessionID); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &SessionRes{
		Session: domain.LoggedOutSession(),
		Message: "Başarıyla çıkış yaptınız",
	}, nil
}

// CurrentSession возвращает состояние покупательской сессии.
func (a *AuthUseCase) CurrentSession(ctx context.Context, sessionID string) (*SessionRes, error) {
	const op = "AuthUseCase.CurrentSession"

	session, err := a.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &SessionRes{Session: session}, nil
}

// issueToken сохраняет новый opaque bearer-токен и собирает ответ.
func (a *AuthUseCase) issueToken(ctx context.Context, op string, user *domain.User) (*TokenRes, error) {
	token := uuid.NewString()
	if err := a.tokens.Save(ctx, token, user); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &TokenRes{
		AccessToken: token,
		TokenType:   "bearer",
		User:        *UserInfoFromDomain(user),
	}, nil
}
