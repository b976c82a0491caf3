package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/muhammadolammi/careerreadiness/internal/quiz"
)

const (
	sessionCookie = "cr_session"
	cookieMaxAge  = 2 * 60 * 60
)

// session returns the caller's session, creating one and setting the
// cookie when there is none or it has expired.
func (s *Server) session(c *gin.Context) *quiz.Session {
	if raw, err := c.Cookie(sessionCookie); err == nil {
		if id, err := uuid.Parse(raw); err == nil {
			if sess, err := s.store.Get(id); err == nil {
				return sess
			}
		}
	}
	sess := s.store.Create()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, sess.ID.String(), cookieMaxAge, "/", "", false, true)
	return sess
}

// update runs fn against the caller's stored session. The returned session
// is never nil.
func (s *Server) update(c *gin.Context, fn func(*quiz.Session) error) (*quiz.Session, error) {
	sess := s.session(c)
	updated, err := s.store.Update(sess.ID, fn)
	if updated == nil {
		return sess, err
	}
	return updated, err
}
