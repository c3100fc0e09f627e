package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"qna-board/middleware"
	"qna-board/models"

	"github.com/gin-gonic/gin"
)

// render fills in the values every page layout reads: pending flashes and
// the signed-in user.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["flashes"] = middleware.Flashes(c)
	if userID, ok := middleware.CurrentUserID(c); ok {
		data["currentUser"] = &models.User{ID: userID, Username: c.GetString("username")}
	}
	c.HTML(status, name, data)
}

// pathID parses the :id segment. A malformed id cannot name a record, so it
// is reported as notFound.
func pathID(c *gin.Context, notFound error) (uint, bool) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.Error(notFound)
		return 0, false
	}
	return id, true
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errors.New("id must be positive")
	}
	return uint(id), nil
}

func flashAll(c *gin.Context, kind string, messages []string) {
	for _, msg := range messages {
		middleware.SetFlash(c, kind, msg)
	}
}

func redirectTo(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
