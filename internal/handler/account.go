package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/taskmate/taskmate/internal/auth"
	"github.com/taskmate/taskmate/internal/handler/dto"
	"github.com/taskmate/taskmate/internal/middleware"
	"github.com/taskmate/taskmate/internal/service"
)

const (
	msgRegistered        = "OTP sent to your email, please verify your account"
	msgUserExists        = "User already exists"
	msgRegisterFields    = "Please provide name, email and password"
	msgVerified          = "Account verified successfully"
	msgInvalidOTP        = "Invalid OTP or has been Expired"
	msgOTPResent         = "OTP sent to your email"
	msgAlreadyVerified   = "Account already verified"
	msgLoggedIn          = "Login successfully"
	msgLoginFields       = "Please provide email and password"
	msgInvalidCredential = "Invalid Email or Password"
	msgLoggedOut         = "Logged out successfully"
	msgProfile           = "Profile fetched successfully"
)

// TokenRevoker records logged-out session tokens.
type TokenRevoker interface {
	RevokeToken(ctx context.Context, tokenID string, until time.Time) error
}

// AccountConfig holds the dependencies of AccountHandler.
type AccountConfig struct {
	Service *service.UserService
	Logger  *slog.Logger
	Cookie  auth.CookieConfig
	Tokens  middleware.TokenParser
	// Revoker is optional; without it logout only clears the cookie.
	Revoker TokenRevoker
}

// AccountHandler handles registration, verification and session endpoints.
type AccountHandler struct {
	svc     *service.UserService
	logger  *slog.Logger
	cookie  auth.CookieConfig
	tokens  middleware.TokenParser
	revoker TokenRevoker
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(cfg AccountConfig) *AccountHandler {
	return &AccountHandler{
		svc:     cfg.Service,
		logger:  cfg.Logger,
		cookie:  cfg.Cookie,
		tokens:  cfg.Tokens,
		revoker: cfg.Revoker,
	}
}

// Register handles POST /api/v1/register.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	session, err := h.svc.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, msgRegisterFields)
		case errors.Is(err, service.ErrEmailExists):
			writeError(w, http.StatusBadRequest, msgUserExists)
		default:
			writeInternalError(w, r, h.logger, err)
		}
		return
	}

	h.logger.Info("user_registered",
		"user_id", session.User.ID,
		"request_id", middleware.GetRequestID(r.Context()),
	)
	h.writeSession(w, http.StatusCreated, msgRegistered, session)
}

// Verify handles POST /api/v1/verify.
func (h *AccountHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyRequest
	if err := decodeJSON(r, &req); err != nil {
		if errors.Is(err, dto.ErrInvalidOTPFormat) {
			writeError(w, http.StatusBadRequest, msgInvalidOTP)
			return
		}
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if req.OTP == nil {
		writeError(w, http.StatusBadRequest, msgInvalidOTP)
		return
	}

	userID := auth.UserIDFromContext(r.Context())
	session, err := h.svc.Verify(r.Context(), userID, int(*req.OTP))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.logger.Info("user_verified",
		"user_id", userID,
		"request_id", middleware.GetRequestID(r.Context()),
	)
	h.writeSession(w, http.StatusOK, msgVerified, session)
}

// ResendOTP handles POST /api/v1/verify/resend.
func (h *AccountHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ResendOTP(r.Context(), auth.UserIDFromContext(r.Context())); err != nil {
		h.handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, dto.Response{Message: msgOTPResent})
}

// Login handles POST /api/v1/login.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	session, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, msgLoginFields)
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusBadRequest, msgInvalidCredential)
		default:
			writeInternalError(w, r, h.logger, err)
		}
		return
	}

	h.writeSession(w, http.StatusOK, msgLoggedIn, session)
}

// Logout handles GET /api/v1/logout. A valid session token is revoked until
// it would have expired; the cookie is cleared either way.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if value := auth.SessionTokenFromRequest(r, h.cookie); value != "" && h.revoker != nil {
		if identity, err := h.tokens.Parse(value); err == nil {
			if err := h.revoker.RevokeToken(r.Context(), identity.TokenID, identity.ExpiresAt); err != nil {
				writeInternalError(w, r, h.logger, err)
				return
			}
		}
	}

	auth.ClearSessionCookie(w, h.cookie)
	writeSuccess(w, http.StatusOK, dto.Response{Message: msgLoggedOut})
}

// Profile handles GET /api/v1/profile.
func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.Profile(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeSession(w, http.StatusOK, msgProfile, session)
}

// writeSession sets the session cookie when a token was issued and writes
// the user with the token echoed in the body.
func (h *AccountHandler) writeSession(w http.ResponseWriter, status int, message string, session *service.Session) {
	resp := dto.Response{Message: message, User: dto.ToUserResponse(session.User)}
	if session.Token != nil {
		auth.SetSessionCookie(w, h.cookie, session.Token)
		resp.Token = session.Token.Value
	}
	writeSuccess(w, status, resp)
}

// handleError maps errors shared by the session-protected account endpoints.
func (h *AccountHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidOTP):
		writeError(w, http.StatusBadRequest, msgInvalidOTP)
	case errors.Is(err, service.ErrAlreadyVerified):
		writeError(w, http.StatusBadRequest, msgAlreadyVerified)
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, msgUserNotFound)
	default:
		writeInternalError(w, r, h.logger, err)
	}
}
