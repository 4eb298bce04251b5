package httpHandler

import (
	"net/http"
	"todo-server/sessions"
	"todo-server/usecases"
	"todo-server/views"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth     *usecases.AuthUseCase
	sessions *sessions.Manager
	log      *log.Logger
}

func NewAuthHandler(auth *usecases.AuthUseCase, sm *sessions.Manager, l *log.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sm, log: l.With("handler", "auth")}
}

// LoginPage handles GET /login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, views.Login, nil)
}

// RegisterPage handles GET /register
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, views.Register, nil)
}

// Register handles POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	user, err := h.auth.Register(c.Request.Context(), usecases.RegisterInput{
		FirstName: c.PostForm("firstName"),
		LastName:  c.PostForm("lastName"),
		Username:  c.PostForm("username"),
		Password:  c.PostForm("password"),
	})
	if err != nil {
		h.log.Warn("registration failed", "username", c.PostForm("username"), "err", err)
		c.Redirect(http.StatusFound, "/register")
		return
	}

	if !h.startSession(c, user.ID) {
		c.Redirect(http.StatusFound, "/register")
		return
	}
	h.log.Info("user registered", "user", user.ID)
	c.Redirect(http.StatusFound, "/")
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	user, err := h.auth.Login(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		h.log.Warn("login failed", "username", c.PostForm("username"), "err", err)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if !h.startSession(c, user.ID) {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	clearSession(c)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) startSession(c *gin.Context, userID string) bool {
	token, err := h.sessions.Issue(userID)
	if err != nil {
		h.log.Error("could not issue session", "user", userID, "err", err)
		return false
	}
	setSession(c, h.sessions, token)
	return true
}
