package controller

import (
	"net/http"
	"strconv"

	"goblog/database"
	"goblog/logger"
	"goblog/web/service"

	"github.com/gin-gonic/gin"
)

// APIController exposes a read-only JSON view of the feed and a diagnostics
// log endpoint under /panel/api.
type APIController struct {
	BaseController

	blogService service.BlogService
}

// NewAPIController creates an APIController and registers its routes.
func NewAPIController(g *gin.RouterGroup) *APIController {
	a := &APIController{}
	a.initRouter(g)
	return a
}

func (a *APIController) initRouter(g *gin.RouterGroup) {
	api := g.Group("/panel/api")

	api.GET("/posts", a.posts)
	api.GET("/posts/:id", a.post)
	api.GET("/logs", a.checkLogin, a.logs)
}

func (a *APIController) posts(c *gin.Context) {
	posts, err := a.blogService.AllPosts()
	jsonObj(c, posts, err)
}

func (a *APIController) post(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	post, err := a.blogService.GetPostView(id)
	if database.IsNotFound(err) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	jsonObj(c, post, err)
}

// logs returns recent log lines for diagnostics, newest first.
func (a *APIController) logs(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "50"))
	if err != nil || count <= 0 {
		count = 50
	}
	level := c.DefaultQuery("level", "info")
	jsonObj(c, logger.GetLogs(count, level), nil)
}
