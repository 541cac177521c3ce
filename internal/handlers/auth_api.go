package handlers

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"elvcatalog/internal/middleware"
	"elvcatalog/internal/models"
	"elvcatalog/internal/session"
)

// totpIssuer labels the account in authenticator apps.
const totpIssuer = "ELV Catalog"

// UserRepository is the subset of the user store the auth handlers need.
type UserRepository interface {
	FindByEmail(email string) (*models.User, error)
	FindByID(id uuid.UUID) (*models.User, error)
	SetTOTPSecret(userID uuid.UUID, secret string) error
	EnableTOTP(userID uuid.UUID) error
	CheckPassword(user *models.User, password string) bool
}

// SessionStore issues and revokes admin tokens.
type SessionStore interface {
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
	Destroy(ctx context.Context, w http.ResponseWriter, token string) error
}

// Auth groups the admin authentication endpoints.
type Auth struct {
	sessions SessionStore
	users    UserRepository
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions SessionStore, users UserRepository) *Auth {
	return &Auth{sessions: sessions, users: users}
}

type loginRequest struct {
	Email    string `json:"email" schema:"email"`
	Password string `json:"password" schema:"password"`
	Code     string `json:"code" schema:"code"`
}

type userJSON struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	TOTPEnabled bool      `json:"totpEnabled"`
}

func userResponse(u *models.User) userJSON {
	return userJSON{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		TOTPEnabled: u.TOTPEnabled,
	}
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      userJSON  `json:"user"`
}

type twoFactorRequired struct {
	Error             string `json:"error"`
	TwoFactorRequired bool   `json:"twoFactorRequired"`
}

// Login checks credentials and, for accounts with 2FA enabled, the TOTP
// code, then issues a token (also set as the session cookie).
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if _, err := decodeBody(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := a.users.FindByEmail(email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		slog.Warn("admin login failed", "email", email)
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if user.RequiresTOTP() {
		code := strings.TrimSpace(req.Code)
		if code == "" {
			writeJSON(w, http.StatusUnauthorized, twoFactorRequired{Error: "Two-factor code required", TwoFactorRequired: true})
			return
		}
		if !totp.Validate(code, *user.TOTPSecret) {
			writeJSON(w, http.StatusUnauthorized, twoFactorRequired{Error: "Invalid two-factor code", TwoFactorRequired: true})
			return
		}
	}

	data := &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
	}
	token, err := a.sessions.Create(r.Context(), w, data)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slog.Info("admin logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: data.ExpiresAt, User: userResponse(user)})
}

// Logout revokes the presented token and clears the cookie.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, session.TokenFromRequest(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, message{Message: "Logged out"})
}

// currentUser loads the account behind the verified session.
func (a *Auth) currentUser(r *http.Request) (*models.User, error) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		return nil, models.ErrNotFound
	}
	user, err := a.users.FindByID(sess.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.ErrNotFound
	}
	return user, nil
}

// Me returns the signed-in account.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	user, err := a.currentUser(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse(user))
}

type twoFASetupResponse struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauthUrl"`
	QRCode     string `json:"qrCode"` // base64 PNG
}

// TwoFASetup generates a fresh TOTP secret and returns it with a QR code.
// 2FA stays disabled until TwoFAEnable verifies a first code. Accounts
// that already have 2FA on are refused, so a session alone cannot reset it.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	user, err := a.currentUser(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if user.TOTPEnabled {
		writeServiceError(w, r, models.Invalid("code", "Two-factor authentication is already enabled"))
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := a.users.SetTOTPSecret(user.ID, key.Secret()); err != nil {
		writeServiceError(w, r, err)
		return
	}

	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, twoFASetupResponse{
		Secret:     key.Secret(),
		OTPAuthURL: key.URL(),
		QRCode:     base64.StdEncoding.EncodeToString(png),
	})
}

type codeRequest struct {
	Code string `json:"code" schema:"code"`
}

// TwoFAEnable verifies a code against the pending secret and turns 2FA on.
func (a *Auth) TwoFAEnable(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if _, err := decodeBody(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	user, err := a.currentUser(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if user.TOTPSecret == nil {
		writeServiceError(w, r, models.Invalid("code", "Start two-factor setup first"))
		return
	}
	if !totp.Validate(strings.TrimSpace(req.Code), *user.TOTPSecret) {
		writeServiceError(w, r, models.Invalid("code", "Invalid code, please try again"))
		return
	}
	if err := a.users.EnableTOTP(user.ID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, message{Message: "Two-factor authentication enabled"})
}

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
