package httpHandler

import (
	"net/http"
	"todo-server/sessions"

	"github.com/gin-gonic/gin"
)

const ctxUserID = "userID"

// RequireAuth lets the request through only with a valid session cookie;
// everyone else is sent to the login form.
func RequireAuth(sm *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(sessions.CookieName)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		claims, err := sm.Parse(raw)
		if err != nil {
			clearSession(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID())
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func setSession(c *gin.Context, sm *sessions.Manager, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessions.CookieName, token, int(sm.TTL().Seconds()), "/", "", c.Request.TLS != nil, true)
}

func clearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessions.CookieName, "", -1, "/", "", c.Request.TLS != nil, true)
}
