package handlers

import (
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/fakturan-app/pricelist-api/internal/auth"
	"github.com/fakturan-app/pricelist-api/internal/lockout"
	"github.com/fakturan-app/pricelist-api/internal/models"
	"github.com/fakturan-app/pricelist-api/internal/repo"
)

// AuthHandler serves login, register, verify and logout.
type AuthHandler struct {
	users     repo.UserRepository
	tokens    *auth.Service
	lockout   *lockout.Tracker
	failDelay time.Duration
}

func NewAuthHandler(users repo.UserRepository, tokens *auth.Service, lo *lockout.Tracker, failDelay time.Duration) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, lockout: lo, failDelay: failDelay}
}

// Login godoc
// @Summary Authenticate by email and password, returning a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "email and password"
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope "Invalid credentials"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds CredentialsRequest
	if err := readJSON(r, &creds); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if errs := validateLogin(&creds); len(errs) > 0 {
		writeValidationErrors(w, "Validation failed", errs)
		return
	}

	ip := clientIP(r)
	if h.lockout.Locked(r.Context(), creds.Email, ip) {
		WriteError(w, http.StatusTooManyRequests, "Too many failed login attempts")
		return
	}

	user, err := h.users.GetByEmail(creds.Email)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			h.rejectLogin(w, r, creds.Email, ip)
			return
		}
		log.Error().Err(err).Msg("login lookup failed")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		h.rejectLogin(w, r, creds.Email, ip)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to issue token")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.lockout.Reset(r.Context(), creds.Email, ip)
	log.Info().Str("email", user.Email).Msg("login")
	WriteJSON(w, http.StatusOK, Envelope{
		Success: true,
		Message: "Login successful",
		Data:    AuthData{Token: token, User: AuthUser{ID: user.ID, Email: user.Email}},
	})
}

// rejectLogin answers every failed attempt with the same status and body
// after a fixed delay, so a missing account is not distinguishable from a
// wrong password by content or latency.
func (h *AuthHandler) rejectLogin(w http.ResponseWriter, r *http.Request, email, ip string) {
	h.lockout.RecordFailure(r.Context(), email, ip)
	time.Sleep(h.failDelay)
	WriteError(w, http.StatusUnauthorized, "Invalid email or password")
}

// Register godoc
// @Summary Create an account and return a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "email and password (6-128 chars)"
// @Success 201 {object} Envelope
// @Failure 409 {object} Envelope "User exists"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var creds CredentialsRequest
	if err := readJSON(r, &creds); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if errs := validateRegister(&creds); len(errs) > 0 {
		writeValidationErrors(w, "Validation failed", errs)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user, err := h.users.Create(models.User{Email: creds.Email, PasswordHash: string(hashed)})
	if err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			WriteError(w, http.StatusConflict, "User already exists")
			return
		}
		log.Error().Err(err).Msg("failed to register user")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to issue token")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	log.Info().Str("email", user.Email).Msg("new user registered")
	WriteJSON(w, http.StatusCreated, Envelope{
		Success: true,
		Message: "User registered successfully",
		Data:    AuthData{Token: token, User: AuthUser{ID: user.ID, Email: user.Email}},
	})
}

// Verify godoc
// @Summary Check the presented token against the account it names
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope "User no longer exists"
// @Router /api/auth/verify [get]
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	// Token validity and account existence are independent checks: a
	// well-signed token for a deleted account is a 404.
	user, err := h.users.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Error().Err(err).Msg("token verification lookup failed")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	WriteJSON(w, http.StatusOK, Envelope{
		Success: true,
		Message: "Token is valid",
		Data: map[string]AuthUser{
			"user": {ID: user.ID, Email: user.Email, CreatedAt: &user.CreatedAt},
		},
	})
}

// Logout godoc
// @Summary Acknowledge logout; the client discards its token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		log.Info().Str("email", claims.Email).Msg("logout")
	}
	// Nothing is invalidated server-side; the session ends when the
	// client drops the token.
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Message: "Logout successful"})
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
