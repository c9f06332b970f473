package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"lending-backend/internal/usecase/auth"
)

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name     string
	Secure   bool
	SameSite string // lax | strict | none
}

func (cc CookieConfig) sameSite() http.SameSite {
	switch strings.ToLower(cc.SameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

type AuthHandler struct {
	uc     *auth.Usecase
	cookie CookieConfig
}

func NewAuthHandler(uc *auth.Usecase, cookie CookieConfig) *AuthHandler {
	if cookie.sameSite() == http.SameSiteNoneMode && !cookie.Secure {
		log.Warn("auth: SameSite=None without Secure; browsers will drop the session cookie")
	}
	return &AuthHandler{uc: uc, cookie: cookie}
}

type registerReq struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,max=72"`
	Phone     string `json:"phone" validate:"max=32"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if valid, err := bind(c, &req); !valid {
		return err
	}
	s, err := h.uc.Register(c.Request().Context(), auth.RegisterInput(req))
	if err != nil {
		return fail(c, err)
	}
	h.setCookie(c, s.Token, s.ExpiresAt)
	return respond(c, http.StatusCreated, map[string]any{"user": s.User})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if valid, err := bind(c, &req); !valid {
		return err
	}
	s, err := h.uc.Login(c.Request().Context(), auth.LoginInput(req))
	if err != nil {
		return fail(c, err)
	}
	h.setCookie(c, s.Token, s.ExpiresAt)
	return respond(c, http.StatusOK, map[string]any{"user": s.User})
}

// Logout always clears the cookie; a present token is also revoked.
func (h *AuthHandler) Logout(c echo.Context) error {
	if ck, err := c.Cookie(h.cookie.Name); err == nil {
		h.uc.Logout(c.Request().Context(), ck.Value)
	}
	h.setCookie(c, "", time.Unix(0, 0))
	return respond(c, http.StatusOK, nil)
}

func (h *AuthHandler) Me(c echo.Context) error {
	return respond(c, http.StatusOK, map[string]any{"user": caller(c)})
}

func (h *AuthHandler) setCookie(c echo.Context, value string, expires time.Time) {
	ck := &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: h.cookie.sameSite(),
	}
	if value == "" {
		ck.MaxAge = -1
	} else {
		ck.MaxAge = int(time.Until(expires).Seconds())
	}
	c.SetCookie(ck)
}
