package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	FlashSuccess = "success"
	FlashDanger  = "danger"

	flashCookie  = "flash"
	flashContext = "flash_pending"
)

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// SetFlash queues a notice for the next page the client renders. Notices
// still unread from earlier requests are kept.
func SetFlash(c *gin.Context, kind, message string) {
	pending, ok := pendingFlashes(c)
	if !ok {
		pending = readFlashCookie(c)
	}
	pending = append(pending, Flash{Type: kind, Message: message})
	c.Set(flashContext, pending)
	writeFlashCookie(c, pending)
}

// Flashes returns the notices queued by earlier requests, plus any queued
// during this one, and clears them.
func Flashes(c *gin.Context) []Flash {
	flashes, ok := pendingFlashes(c)
	if !ok {
		flashes = readFlashCookie(c)
	}
	c.Set(flashContext, []Flash(nil))
	if len(flashes) > 0 {
		http.SetCookie(c.Writer, &http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1, HttpOnly: true})
	}
	return flashes
}

func readFlashCookie(c *gin.Context) []Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}
	return flashes
}

// pendingFlashes reports the notices held for this request. ok is false until
// SetFlash or Flashes has run.
func pendingFlashes(c *gin.Context) ([]Flash, bool) {
	v, ok := c.Get(flashContext)
	if !ok {
		return nil, false
	}
	pending, _ := v.([]Flash)
	return pending, true
}

func writeFlashCookie(c *gin.Context, flashes []Flash) {
	data, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
