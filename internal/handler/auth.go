package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"activitybooking/internal/config"
	"activitybooking/internal/repository"
	"activitybooking/internal/utils"
	"activitybooking/internal/validate"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
type authData struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

// Signup: validate, create user and return tokens immediately.
// Duplicate email or phone is rejected before any row is written;
// the unique keys on users catch the concurrent case.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req validate.SignupRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid Data Received")
	}
	if issues := req.Validate(); len(issues) > 0 {
		return respondError(c, http.StatusBadRequest, issues)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Name, req.Email, req.CountryCode, req.PhoneNo, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists || err == repository.ErrPhoneExists {
			return respondError(c, http.StatusForbidden, "User Already Exists")
		}
		return respondInternal(c)
	}

	data, err := h.issueTokens(ctx, uid, req.Name, req.Email)
	if err != nil {
		return respondInternal(c)
	}
	return respond(c, http.StatusCreated, "User Created", data)
}

// Signin: verify credentials and return a new token pair.
func (h *AuthHandler) Signin(c echo.Context) error {
	var req validate.SigninRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid Data Received")
	}
	if issues := req.Validate(); len(issues) > 0 {
		return respondError(c, http.StatusBadRequest, issues)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return respondError(c, http.StatusNotFound, "User Does Not Exist")
		}
		return respondInternal(c)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return respondError(c, http.StatusForbidden, "Invalid Password")
	}

	data, err := h.issueTokens(ctx, u.ID, u.Name, u.Email)
	if err != nil {
		return respondInternal(c)
	}
	return respond(c, http.StatusOK, "User Signed In", data)
}

// Refresh: validate by hash, revoke old, issue new pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return respondError(c, http.StatusBadRequest, "refresh_token required")
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized")
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return respondError(c, http.StatusUnauthorized, "Unauthorized")
		}
		return respondInternal(c)
	}

	data, err := h.issueTokens(ctx, u.ID, u.Name, u.Email)
	if err != nil {
		return respondInternal(c)
	}
	return respond(c, http.StatusOK, "Token Refreshed", data)
}

// Logout: revoke the presented refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return respondError(c, http.StatusBadRequest, "refresh_token required")
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized")
	}
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return respondInternal(c)
	}
	return respond(c, http.StatusOK, "Logged Out", nil)
}

// Me returns the authenticated user's profile (protected route).
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return respondError(c, http.StatusNotFound, "User Does Not Exist")
		}
		return respondInternal(c)
	}
	return respond(c, http.StatusOK, "User Retrieved", userPart{ID: u.ID, Name: u.Name, Email: u.Email})
}

// issueTokens mints an access/refresh pair and stores the refresh
// hash. The raw refresh token goes back to the client exactly once.
func (h *AuthHandler) issueTokens(ctx context.Context, uid uint64, name, email string) (authData, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, uid, h.Cfg.AccessTTLMin)
	if err != nil {
		return authData{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return authData{}, err
	}
	if err := h.Tokens.StoreRefresh(ctx, uid, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return authData{}, err
	}
	return authData{
		User:    userPart{ID: uid, Name: name, Email: email},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp},
	}, nil
}
