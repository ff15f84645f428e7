package http

import (
	"net/http"

	"github.com/robosite/storefront/internal/usecase"
	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/logger"
)

type AuthHandler struct {
	authUC usecase.AuthUC
	logger logger.Logger
}

func NewAuthHandler(authUC usecase.AuthUC, logger logger.Logger) *AuthHandler {
	return &AuthHandler{authUC: authUC, logger: logger}
}

// register
//
//	@Summary	Регистрация пользователя
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		RegisterRequest	true	"Данные регистрации"
//	@Success	201		{object}	TokenResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/auth/register [post]
func (a *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := a.authUC.Register(r.Context(), &usecase.RegisterReq{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, TokenResponse{
		AccessToken: res.AccessToken,
		TokenType:   res.TokenType,
		User:        toUserResponse(&res.User),
	})
}

// login
//
//	@Summary	Вход по паролю, выдает bearer-токен
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		LoginRequest	true	"Учетные данные"
//	@Success	200		{object}	TokenResponse
//	@Failure	401		{object}	ErrorResponse
//	@Router		/auth/login [post]
func (a *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := a.authUC.Login(r.Context(), &usecase.LoginReq{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		a.logger.Warnf("login failed. email: %s, error: %s", req.Email, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, TokenResponse{
		AccessToken: res.AccessToken,
		TokenType:   res.TokenType,
		User:        toUserResponse(&res.User),
	})
}

// profile
//
//	@Summary	Текущий пользователь по bearer-токену
//	@Tags		auth
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	UserResponse
//	@Failure	401	{object}	ErrorResponse
//	@Router		/auth/profile [get]
func (a *AuthHandler) profile(w http.ResponseWriter, r *http.Request) {
	user := userFromCtx(r.Context())
	if user == nil {
		WriteError(w, e.ErrTokenExpired)
		return
	}

	WriteSuccess(w, http.StatusOK, toUserResponse(user))
}
