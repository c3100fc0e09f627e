package middleware

import (
	"net/http"
	"strings"

	"qna-board/helper"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// TokenCookie holds the signed session token for browser clients.
const TokenCookie = "token"

type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Auth struct {
	secret []byte
	helper *helper.HTTPHelper
}

func NewAuth(secret []byte, httpHelper *helper.HTTPHelper) *Auth {
	return &Auth{secret: secret, helper: httpHelper}
}

// LoadUser reads the session token from the cookie or an Authorization bearer
// header. A valid token puts user_id and username on the context; anything
// else leaves the request anonymous.
func (a *Auth) LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			tokenString, _ = c.Cookie(TokenCookie)
		}
		if tokenString == "" {
			c.Next()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return a.secret, nil
		})
		if err == nil && token.Valid && claims.UserID != 0 {
			c.Set("user_id", claims.UserID)
			c.Set("username", claims.Username)
		}

		c.Next()
	}
}

// RequireAuth sends anonymous browsers to the sign-in page.
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c) {
			SetFlash(c, FlashDanger, "Please signin first.")
			c.Redirect(http.StatusSeeOther, "/signin")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAPIAuth answers anonymous requests with the JSON 401 envelope.
func (a *Auth) RequireAPIAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c) {
			a.helper.SendUnauthorizedError(c, "Authentication required", a.helper.EmptyJsonMap())
			c.Abort()
			return
		}
		c.Next()
	}
}

func IsAuthenticated(c *gin.Context) bool {
	_, ok := CurrentUserID(c)
	return ok
}

func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return ""
	}
	return strings.TrimSpace(tokenString)
}
