package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/braids-scheduler/internal/config"
	"github.com/BruksfildServices01/braids-scheduler/internal/httperr"
	"github.com/BruksfildServices01/braids-scheduler/internal/middleware"
)

type Session interface {
	Authenticated() bool
	SetAuthenticated(ctx context.Context, v bool) error
}

type AuthHandler struct {
	config       *config.Config
	session      Session
	passwordHash []byte
}

// NewAuthHandler hashes ADMIN_PASSWORD when no ADMIN_PASSWORD_HASH is set.
func NewAuthHandler(cfg *config.Config, session Session) (*AuthHandler, error) {
	hash := []byte(cfg.AdminPasswordHash)
	if len(hash) == 0 {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
	}

	return &AuthHandler{
		config:       cfg,
		session:      session,
		passwordHash: hash,
	}, nil
}

// --------- Requests ---------

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Senha incorreta.")
		return
	}

	token, err := middleware.IssueToken(h.config.JWTSecret, time.Now())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	if err := h.session.SetAuthenticated(c.Request.Context(), true); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"token":         token,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.session.SetAuthenticated(c.Request.Context(), false); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}

func (h *AuthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authenticated": h.session.Authenticated()})
}
