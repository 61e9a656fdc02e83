package httpapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"frontdesk/internal/apiclient"
	"frontdesk/internal/domain"
	"frontdesk/internal/repository"
	"frontdesk/internal/service"
)

const (
	headerRequestID = "X-Request-ID"
	sessionCookie   = "frontdesk_sid"

	keyRequestID = "request_id"
	keySession   = "session"
)

// requestID takes the caller's X-Request-ID or generates one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(keyRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"request_id", c.GetString(keyRequestID),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.String())
		}
		switch {
		case status >= 500:
			log.Error("http request", attrs...)
		case status >= 400:
			log.Warn("http request", attrs...)
		default:
			log.Info("http request", attrs...)
		}
	}
}

func recovery(log *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		log.Error("panic", "request_id", c.GetString(keyRequestID), "path", c.Request.URL.Path, "panic", rec)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	})
}

// loadSession attaches the browser session and the user's API token.
// A new session is started when the cookie is missing or expired.
func (s *Server) loadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess repository.Session
		id, err := c.Cookie(sessionCookie)
		if err == nil {
			sess, err = s.sessions.Get(id)
		}
		if err != nil {
			sess = s.startSession(c)
		}
		c.Set(keySession, sess)
		c.Request = c.Request.WithContext(apiclient.WithToken(c.Request.Context(), sess.Token))
		c.Next()
	}
}

// startSession creates a session, sets its cookie and makes it current.
func (s *Server) startSession(c *gin.Context) repository.Session {
	sess := s.sessions.Create()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, sess.ID, 0, "/", "", false, true)
	c.Set(keySession, sess)
	return sess
}

func currentSession(c *gin.Context) repository.Session {
	v, _ := c.Get(keySession)
	sess, _ := v.(repository.Session)
	return sess
}

// requireRole guards dashboards. This is UI routing only: the remote API
// enforces permissions. Admin may open every dashboard.
func (s *Server) requireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		api := strings.HasPrefix(c.Request.URL.Path, "/api/") || c.Request.URL.Path == "/events"
		if sess.User == nil {
			if api {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
				return
			}
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		if sess.User.Role == domain.RoleAdmin || len(roles) == 0 {
			c.Next()
			return
		}
		for _, r := range roles {
			if sess.User.Role == r {
				c.Next()
				return
			}
		}
		if api {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not allowed for role " + string(sess.User.Role)})
			return
		}
		s.flash(c, repository.FlashError, "That dashboard is not available for your role")
		c.Redirect(http.StatusSeeOther, service.DashboardPath(sess.User.Role))
		c.Abort()
	}
}

func (s *Server) flash(c *gin.Context, level repository.FlashLevel, msg string) {
	sess := currentSession(c)
	if sess.ID == "" {
		return
	}
	_ = s.sessions.Update(sess.ID, func(st *repository.Session) {
		st.Flashes = append(st.Flashes, repository.Flash{Level: level, Message: msg})
	})
}

// finish ends a form action: flash the outcome and redirect back.
func (s *Server) finish(c *gin.Context, back string, err error, ok string) {
	if err != nil {
		_ = c.Error(err)
		s.flash(c, repository.FlashError, userMessage(err))
	} else if ok != "" {
		s.flash(c, repository.FlashSuccess, ok)
	}
	c.Redirect(http.StatusSeeOther, back)
}
