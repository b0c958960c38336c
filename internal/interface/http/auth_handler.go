package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-catalog-api/internal/application"
	"github.com/oksasatya/go-catalog-api/internal/domain/apperror"
	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
	"github.com/oksasatya/go-catalog-api/internal/interface/middleware"
	"github.com/oksasatya/go-catalog-api/pkg/helpers"
	"github.com/oksasatya/go-catalog-api/pkg/response"
)

// AuthService is the part of application.UserService the handler calls.
type AuthService interface {
	Register(ctx context.Context, in application.CredentialsInput) (entity.AuthPayload, error)
	Login(ctx context.Context, in application.CredentialsInput) (*application.LoginResult, error)
	Current(ctx context.Context, userID int64) (entity.AuthPayload, error)
}

type AuthHandler struct {
	Svc     AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type loginResponse struct {
	User  entity.AuthPayload `json:"user"`
	Token string             `json:"token"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req application.CredentialsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	user, err := h.Svc.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, user, "Register success!", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req application.CredentialsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	h.Cookies.SetAccess(c, res.Token, res.ExpiresAt)
	response.Success(c, http.StatusOK, loginResponse{User: res.User, Token: res.Token}, "login successful",
		gin.H{"expires_at": res.ExpiresAt})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// Current answers both current-user and current-admin; the route decides who gets here.
func (h *AuthHandler) Current(c *gin.Context) {
	p, ok := middleware.Principal(c)
	if !ok {
		fail(c, apperror.ErrNoPrincipal)
		return
	}
	user, err := h.Svc.Current(c.Request.Context(), p.ID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, user, "current user", nil)
}
