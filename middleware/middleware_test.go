package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"qna-board/helper"
	"qna-board/models"
	"qna-board/testutil"
	"qna-board/views"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret []byte, userID uint, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   userID,
		Username: "ann",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func authRouter() *gin.Engine {
	auth := NewAuth(testSecret, helper.NewHTTPHelper())
	r := gin.New()
	r.Use(auth.LoadUser())
	r.GET("/whoami", func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, "%d:%s", id, c.GetString("username"))
	})
	r.GET("/page", auth.RequireAuth(), func(c *gin.Context) { c.String(http.StatusOK, "page") })
	r.GET("/api", auth.RequireAPIAuth(), func(c *gin.Context) { c.String(http.StatusOK, "api") })
	return r
}

func TestLoadUser(t *testing.T) {
	r := authRouter()
	valid := signToken(t, testSecret, 5, time.Now().Add(time.Hour))

	tests := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{name: "cookie", cookie: valid, want: "5:ann"},
		{name: "bearer", header: "Bearer " + valid, want: "5:ann"},
		{name: "no token", want: "anonymous"},
		{name: "expired", cookie: signToken(t, testSecret, 5, time.Now().Add(-time.Hour)), want: "anonymous"},
		{name: "wrong secret", cookie: signToken(t, []byte("other"), 5, time.Now().Add(time.Hour)), want: "anonymous"},
		{name: "garbage", header: "Bearer not-a-token", want: "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: TokenCookie, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestRequireAuthRedirectsToSignin(t *testing.T) {
	r := authRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/signin", w.Header().Get("Location"))

	next := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for _, cookie := range w.Result().Cookies() {
		next.AddCookie(cookie)
	}
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = next
	assert.Equal(t, []Flash{{Type: FlashDanger, Message: "Please signin first."}}, Flashes(c))
}

func TestRequireAuthPassesSignedInUser(t *testing.T) {
	r := authRouter()
	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: signToken(t, testSecret, 1, time.Now().Add(time.Hour))})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "page", w.Body.String())
}

func TestRequireAPIAuthRejectsAnonymous(t *testing.T) {
	r := authRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code_type":"unAuthorized"`)
}

func TestFlashesIncludePendingAndClearCookie(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	SetFlash(c, FlashSuccess, "saved")
	SetFlash(c, FlashDanger, "but check this")

	assert.Equal(t, []Flash{
		{Type: FlashSuccess, Message: "saved"},
		{Type: FlashDanger, Message: "but check this"},
	}, Flashes(c))
	assert.Empty(t, Flashes(c))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	last := cookies[len(cookies)-1]
	assert.Equal(t, "flash", last.Name)
	assert.Negative(t, last.MaxAge)
}

func TestFlashesIgnoreMalformedCookie(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: "flash", Value: "%%%"})

	assert.Empty(t, Flashes(c))
}

func TestMethodOverride(t *testing.T) {
	r := gin.New()
	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
		r.Handle(method, "/thing", func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) })
	}
	h := MethodOverride(r)

	tests := []struct {
		method string
		target string
		want   string
	}{
		{http.MethodPost, "/thing?_method=PUT", http.MethodPut},
		{http.MethodPost, "/thing?_method=delete", http.MethodDelete},
		{http.MethodPost, "/thing?_method=TRACE", http.MethodPost},
		{http.MethodPost, "/thing", http.MethodPost},
		{http.MethodGet, "/thing?_method=DELETE", http.MethodGet},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))
		assert.Equal(t, tt.want, w.Body.String(), tt.target)
	}
}

func TestErrorHandlerRendersErrorPage(t *testing.T) {
	r := gin.New()
	r.SetHTMLTemplate(views.Templates())
	r.Use(Recovery(testutil.Logger()))
	r.Use(ErrorHandler(testutil.Logger(), helper.NewHTTPHelper()))
	r.GET("/missing", func(c *gin.Context) { c.Error(models.ErrQuestionNotFound) })
	r.GET("/broken", func(c *gin.Context) { panic("boom") })
	r.GET("/written", func(c *gin.Context) {
		c.String(http.StatusAccepted, "done")
		c.Error(models.ErrQuestionNotFound)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "question not found")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/broken", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/written", nil))
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "done", w.Body.String())
}

func TestSetFlashKeepsUnreadNotices(t *testing.T) {
	first := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(first)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	SetFlash(c, FlashDanger, "earlier notice")

	w := httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range first.Result().Cookies() {
		c.Request.AddCookie(cookie)
	}
	SetFlash(c, FlashSuccess, "later notice")

	want := []Flash{
		{Type: FlashDanger, Message: "earlier notice"},
		{Type: FlashSuccess, Message: "later notice"},
	}

	next, _ := gin.CreateTestContext(httptest.NewRecorder())
	next.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	next.Request.AddCookie(cookies[len(cookies)-1])
	assert.Equal(t, want, Flashes(next))

	assert.Equal(t, want, Flashes(c))
}
