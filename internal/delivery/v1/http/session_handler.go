package http

import (
	"net/http"

	"github.com/robosite/storefront/internal/usecase"
	"github.com/robosite/storefront/pkg/logger"
)

type SessionHandler struct {
	authUC usecase.AuthUC
	logger logger.Logger
}

func NewSessionHandler(authUC usecase.AuthUC, logger logger.Logger) *SessionHandler {
	return &SessionHandler{authUC: authUC, logger: logger}
}

// currentSession
//
//	@Summary	Состояние покупательской сессии
//	@Tags		session
//	@Produce	json
//	@Success	200	{object}	SessionResponse
//	@Router		/session/ [get]
func (s *SessionHandler) currentSession(w http.ResponseWriter, r *http.Request) {
	res, err := s.authUC.CurrentSession(r.Context(), sessionIDFromCtx(r.Context()))
	if err != nil {
		s.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toSessionResponse(res))
}

// sessionLogin
//
//	@Summary		Вход покупателя
//	@Description	Принимает любую непустую пару email+password, пароль не проверяется
//	@Tags			session
//	@Accept			json
//	@Produce		json
//	@Param			body	body		SessionLoginRequest	true	"Учетные данные"
//	@Success		200		{object}	SessionResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/session/login [post]
func (s *SessionHandler) sessionLogin(w http.ResponseWriter, r *http.Request) {
	var req SessionLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := s.authUC.SessionLogin(r.Context(), usecase.NewSessionLoginReq(
		sessionIDFromCtx(r.Context()), req.Email, req.Password, req.Name,
	))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toSessionResponse(res))
}

// sessionLogout
//
//	@Summary	Выход покупателя
//	@Tags		session
//	@Produce	json
//	@Success	200	{object}	SessionResponse
//	@Router		/session/logout [post]
func (s *SessionHandler) sessionLogout(w http.ResponseWriter, r *http.Request) {
	res, err := s.authUC.SessionLogout(r.Context(), sessionIDFromCtx(r.Context()))
	if err != nil {
		s.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toSessionResponse(res))
}
