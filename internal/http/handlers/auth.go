package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hongminglow/chama-backend/internal/auth"
	"github.com/hongminglow/chama-backend/internal/http/respond"
	"github.com/hongminglow/chama-backend/internal/logging"
	"github.com/hongminglow/chama-backend/internal/models/dto"
	"github.com/hongminglow/chama-backend/internal/storage"
)

// AuthHandler owns the register, login and profile endpoints.
type AuthHandler struct {
	authn  *auth.Authenticator
	tokens *auth.TokenManager
	users  storage.UserStore
	logger logging.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authn *auth.Authenticator, tokens *auth.TokenManager, users storage.UserStore, logger logging.Logger) *AuthHandler {
	return &AuthHandler{authn: authn, tokens: tokens, users: users, logger: logger}
}

// HandleRegister serves POST /register.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authn.Register(r.Context(), auth.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Gender:   req.Gender,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingField),
			errors.Is(err, auth.ErrInvalidRole),
			errors.Is(err, auth.ErrPasswordTooLong):
			respond.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth.ErrDuplicateEmail):
			respond.Error(w, http.StatusBadRequest, "Email already exists")
		default:
			h.logger.Error(r.Context(), "register failed", "error", err)
			respond.Error(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	respond.JSON(w, http.StatusCreated, "User registered successfully", user)
}

// HandleLogin serves POST /login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	id, err := h.authn.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			respond.Error(w, http.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, auth.ErrAccountDisabled):
			respond.Error(w, http.StatusForbidden, "User account is disabled")
		default:
			h.logger.Error(r.Context(), "login failed", "error", err)
			respond.Error(w, http.StatusInternalServerError, "failed to log in")
		}
		return
	}

	token, err := h.tokens.Generate(id)
	if err != nil {
		h.logger.Error(r.Context(), "issue token failed", "user_id", id.UserID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respond.JSON(w, http.StatusOK, "login successful", dto.LoginResponse{AccessToken: token})
}

// HandleProfile serves GET /profile for the identity placed in the context by
// the role guard.
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Missing or invalid token")
		return
	}

	user, err := h.users.FindByID(r.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error(r.Context(), "load profile failed", "user_id", id.UserID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	respond.JSON(w, http.StatusOK, "profile", dto.ProfileResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Phone:    user.Phone,
		Gender:   user.Gender,
		Role:     user.Role,
	})
}
