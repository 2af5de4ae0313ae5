// Package controller provides the HTTP request handlers for the goblog
// panel: the public feed, authentication flows, and post management.
package controller

import (
	"net/http"

	"goblog/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides functionality shared by all controllers.
type BaseController struct{}

// loginRequired returns a middleware that redirects anonymous clients to the
// login page, flashing msg as a warning.
func (a *BaseController) loginRequired(msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.IsLogin(c) {
			session.AddFlash(c, "warning", msg)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
		} else {
			c.Next()
		}
	}
}

// checkLogin guards routes with the generic login prompt.
func (a *BaseController) checkLogin(c *gin.Context) {
	a.loginRequired("Please log in first.")(c)
}
