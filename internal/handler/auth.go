package handler

import (
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"     // token expiry formatting

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/library-loan-system/internal/config"
	"github.com/iliyamo/library-loan-system/internal/library"
	"github.com/iliyamo/library-loan-system/internal/middleware"
	"github.com/iliyamo/library-loan-system/internal/utils"
)

// AuthHandler implements the role gate.  This is deliberately not a security
// mechanism: the administrator is a single shared credential and students
// log in with nothing but their registered email.  The JWT exists so the
// role middleware has something to check.
type AuthHandler struct {
	Cfg config.Config
	Svc *library.Service
}

func NewAuthHandler(cfg config.Config, svc *library.Service) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Svc: svc}
}

// ----- DTOs -----

type loginReq struct {
	Role     string `json:"role"`     // admin | student
	Email    string `json:"email"`    // student login
	Password string `json:"password"` // admin login
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}
type authResp struct {
	User   userPart  `json:"user"`
	Access tokenPart `json:"access"`
}

// Login exchanges a role-specific credential for an access token.  Admins
// send {"role":"admin","password":...} checked against the configured bcrypt
// hash (or the plain fallback password).  Students send
// {"role":"student","email":...} matched case-insensitively against the
// roster.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	switch strings.ToLower(strings.TrimSpace(req.Role)) {
	case "admin":
		if req.Password == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "password required"})
		}
		if !h.adminPasswordOK(req.Password) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid admin password"})
		}
		access, err := utils.NewAccessToken(h.Cfg.JWTSecret, "ADMIN", middleware.RoleAdmin, "Administrator", h.Cfg.AccessTTLMin)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
		}
		return c.JSON(http.StatusOK, authResp{
			User:   userPart{ID: "ADMIN", Name: "Administrator", Role: middleware.RoleAdmin},
			Access: tokenPart{Token: access.Token, Expires: access.Exp},
		})

	case "student":
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
		}
		st, err := h.Svc.StudentByEmail(c.Request().Context(), email)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "student email not found"})
		}
		access, err := utils.NewAccessToken(h.Cfg.JWTSecret, st.ID, middleware.RoleStudent, st.Name, h.Cfg.AccessTTLMin)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
		}
		return c.JSON(http.StatusOK, authResp{
			User:   userPart{ID: st.ID, Name: st.Name, Email: st.Email, Role: middleware.RoleStudent},
			Access: tokenPart{Token: access.Token, Expires: access.Exp},
		})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be admin or student"})
}

// adminPasswordOK prefers the bcrypt hash when configured and falls back to
// a plain comparison with the demo password otherwise.
func (h *AuthHandler) adminPasswordOK(plain string) bool {
	if h.Cfg.AdminPasswordHash != "" {
		return utils.VerifyPassword(h.Cfg.AdminPasswordHash, plain)
	}
	return plain == h.Cfg.AdminPassword
}
