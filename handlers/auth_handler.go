package handlers

import (
	"errors"
	"net/http"
	"time"

	"qna-board/helper"
	"qna-board/middleware"
	"qna-board/models"
	"qna-board/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService  services.AuthService
	Helper       *helper.HTTPHelper
	cookieTTL    time.Duration
	cookieSecure bool
}

func NewAuthHandler(authService services.AuthService, httpHelper *helper.HTTPHelper, cookieTTL time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		Helper:       httpHelper,
		cookieTTL:    cookieTTL,
		cookieSecure: cookieSecure,
	}
}

func (h *AuthHandler) SignUpPage(c *gin.Context) {
	render(c, http.StatusOK, "signup", gin.H{"title": "Sign up", "form": models.RegisterRequest{}})
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.SetFlash(c, middleware.FlashDanger, err.Error())
		h.signUpAgain(c, req)
		return
	}
	if messages := h.Helper.ValidateStruct(req); len(messages) > 0 {
		flashAll(c, middleware.FlashDanger, messages)
		h.signUpAgain(c, req)
		return
	}

	response, err := h.authService.Register(req)
	if err != nil {
		if errors.Is(err, models.ErrUserExists) {
			middleware.SetFlash(c, middleware.FlashDanger, err.Error())
			h.signUpAgain(c, req)
			return
		}
		c.Error(err)
		return
	}

	h.setToken(c, response.Token)
	middleware.SetFlash(c, middleware.FlashSuccess, "Welcome, "+response.User.DisplayName())
	redirectTo(c, "/questions")
}

func (h *AuthHandler) SignInPage(c *gin.Context) {
	render(c, http.StatusOK, "signin", gin.H{"title": "Sign in"})
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.SetFlash(c, middleware.FlashDanger, err.Error())
		h.signInAgain(c, req.Email)
		return
	}
	if messages := h.Helper.ValidateStruct(req); len(messages) > 0 {
		flashAll(c, middleware.FlashDanger, messages)
		h.signInAgain(c, req.Email)
		return
	}

	response, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			middleware.SetFlash(c, middleware.FlashDanger, err.Error())
			h.signInAgain(c, req.Email)
			return
		}
		c.Error(err)
		return
	}

	h.setToken(c, response.Token)
	middleware.SetFlash(c, middleware.FlashSuccess, "Signed in as "+response.User.DisplayName())
	redirectTo(c, "/questions")
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.TokenCookie,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
	})
	middleware.SetFlash(c, middleware.FlashSuccess, "Signed out")
	redirectTo(c, "/questions")
}

func (h *AuthHandler) signUpAgain(c *gin.Context, req models.RegisterRequest) {
	req.Password = ""
	render(c, http.StatusUnprocessableEntity, "signup", gin.H{"title": "Sign up", "form": req})
}

func (h *AuthHandler) signInAgain(c *gin.Context, email string) {
	render(c, http.StatusUnauthorized, "signin", gin.H{"title": "Sign in", "email": email})
}

func (h *AuthHandler) setToken(c *gin.Context, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
