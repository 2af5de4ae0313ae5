// Package session wraps the cookie-backed gin session with helpers for the
// logged-in user and one-shot flash messages.
package session

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	loginUser = "LOGIN_USER"
	flashKey  = "FLASH"
)

// LoginUser is the per-client authentication state: just enough to identify
// the acting user without re-reading the store on every request.
type LoginUser struct {
	Id       int
	Username string
}

// Flash is a one-shot severity-tagged notice shown on the next rendered
// page. Severity is one of success, danger, warning, info.
type Flash struct {
	Severity string
	Message  string
}

func init() {
	gob.Register(LoginUser{})
	gob.Register([]Flash{})
}

func SetLoginUser(c *gin.Context, user LoginUser) error {
	s := sessions.Default(c)
	s.Set(loginUser, user)
	return s.Save()
}

func GetLoginUser(c *gin.Context) *LoginUser {
	s := sessions.Default(c)
	if obj := s.Get(loginUser); obj != nil {
		if user, ok := obj.(LoginUser); ok {
			return &user
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}

// AddFlash queues a flash message for the next rendered page.
func AddFlash(c *gin.Context, severity string, message string) error {
	s := sessions.Default(c)
	flashes, _ := s.Get(flashKey).([]Flash)
	flashes = append(flashes, Flash{Severity: severity, Message: message})
	s.Set(flashKey, flashes)
	return s.Save()
}

// TakeFlashes returns queued flash messages and clears them.
func TakeFlashes(c *gin.Context) []Flash {
	s := sessions.Default(c)
	flashes, ok := s.Get(flashKey).([]Flash)
	if !ok || len(flashes) == 0 {
		return nil
	}
	s.Delete(flashKey)
	if err := s.Save(); err != nil {
		return flashes
	}
	return flashes
}

// ClearLoginUser removes only the login user, leaving the rest of the
// session (queued flashes included) intact.
func ClearLoginUser(c *gin.Context) error {
	s := sessions.Default(c)
	s.Delete(loginUser)
	return s.Save()
}
