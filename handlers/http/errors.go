package httpHandler

import (
	"errors"
	"net/http"
	"todo-server/usecases"
	"todo-server/views"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// respondError maps a use case error to a page. Every error is logged.
func respondError(c *gin.Context, l *log.Logger, err error) {
	switch {
	case errors.Is(err, usecases.ErrUserNotFound):
		// The session outlived its account
		l.Warn("session user no longer exists", "user", currentUserID(c))
		clearSession(c)
		c.Redirect(http.StatusFound, "/login")
	case errors.Is(err, usecases.ErrListNotFound):
		l.Info("list not found", "path", c.Request.URL.Path, "err", err)
		renderError(c, http.StatusNotFound, "List not found", "There is no list with that name.")
	case errors.Is(err, usecases.ErrEmptyListName):
		l.Info("rejected list name", "err", err)
		renderError(c, http.StatusBadRequest, "Invalid list name", "Please give the list a name.")
	case errors.Is(err, usecases.ErrInvalidListName):
		l.Info("rejected list name", "err", err)
		renderError(c, http.StatusBadRequest, "Invalid list name", "List names cannot contain '/'.")
	default:
		l.Error("request failed", "path", c.Request.URL.Path, "err", err)
		renderError(c, http.StatusInternalServerError, "Something went wrong", "Please try again later.")
	}
}

func renderError(c *gin.Context, status int, title, message string) {
	c.HTML(status, views.Error, gin.H{
		"title":   title,
		"message": message,
	})
}
