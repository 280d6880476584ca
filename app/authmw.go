package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartlib/db"
	"smartlib/models"
	"smartlib/session"
)

const AppSessionCookie = "app_session"

// AuthRequired resolves the session cookie to a live user and stashes
// it in the context. Stale sessions for deleted users are cleaned up on
// the way out.
func AuthRequired(appSess *session.AppSessionStore, users db.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(AppSessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		as, err := appSess.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}

		u, err := users.FindUserByID(c.Request.Context(), as.UserID)
		if err != nil {
			_ = appSess.Delete(c.Request.Context(), ck.Value)
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}

		c.Set("sessionID", ck.Value)
		c.Set("userID", u.ID)
		c.Set("user", u)
		c.Set("isAdmin", u.IsAdmin())
		c.Next()
	}
}

// AdminOnly gates staff endpoints. Must run after AuthRequired.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if v, ok := c.Get("isAdmin"); !ok || v != true {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// CurrentUser pulls the user AuthRequired stored on the context.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get("user")
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

// SessionID pulls the session id AuthRequired stored on the context.
func SessionID(c *gin.Context) string {
	v, _ := c.Get("sessionID")
	s, _ := v.(string)
	return s
}
