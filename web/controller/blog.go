package controller

import (
	"net/http"
	"strconv"

	"goblog/database"
	"goblog/database/model"
	"goblog/logger"
	"goblog/web/service"
	"goblog/web/session"

	"github.com/gin-gonic/gin"
)

// PostForm is the post create/edit form submission. The image arrives as a
// separate multipart file part.
type PostForm struct {
	Title   string `form:"title"`
	Content string `form:"content"`
}

// BlogController handles the dashboard and the post lifecycle.
type BlogController struct {
	BaseController

	userService   service.UserService
	blogService   service.BlogService
	uploadService service.UploadService
}

// NewBlogController creates a BlogController and registers its routes.
func NewBlogController(g *gin.RouterGroup) *BlogController {
	a := &BlogController{}
	a.initRouter(g)
	return a
}

func (a *BlogController) initRouter(g *gin.RouterGroup) {
	g.GET("/details_blog/:id", a.details)

	// /add_blog carries its own login prompt
	createLogin := a.loginRequired("Please log in to create a blog post.")
	g.GET("/add_blog", createLogin, a.addPage)
	g.POST("/add_blog", createLogin, a.add)

	auth := g.Group("")
	auth.Use(a.checkLogin)
	auth.GET("/dashboard", a.dashboard)
	auth.GET("/delete_blog/:id", a.delete)
	auth.GET("/edit_blog/:id", a.editPage)
	auth.POST("/edit_blog/:id", a.edit)
}

// dashboard lists the current user's posts, newest first.
func (a *BlogController) dashboard(c *gin.Context) {
	loginUser := session.GetLoginUser(c)
	user, err := a.userService.GetUser(loginUser.Id)
	if err != nil {
		logger.Error("load dashboard user err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	posts, err := a.blogService.PostsByAuthor(user.Id)
	if err != nil {
		logger.Error("load dashboard posts err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	html(c, "dashboard.html", "Dashboard", gin.H{"user": user, "posts": posts})
}

func (a *BlogController) addPage(c *gin.Context) {
	html(c, "create_blog.html", "New Post", gin.H{"uploads": a.uploadService.Enabled()})
}

// add creates a post authored by the session user. Title and content are
// validated independently; a disallowed image extension drops the image but
// still creates the post.
func (a *BlogController) add(c *gin.Context) {
	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		session.AddFlash(c, "warning", "Invalid form data.")
		c.Redirect(http.StatusFound, "/add_blog")
		return
	}
	if form.Title == "" {
		session.AddFlash(c, "warning", "Title cannot be empty.")
		c.Redirect(http.StatusFound, "/add_blog")
		return
	}
	if form.Content == "" {
		session.AddFlash(c, "warning", "Content cannot be empty.")
		c.Redirect(http.StatusFound, "/add_blog")
		return
	}

	image := ""
	if file, err := c.FormFile("image"); err == nil {
		image, err = a.uploadService.SaveImage(file)
		if err != nil {
			logger.Error("save upload err:", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
	}

	loginUser := session.GetLoginUser(c)
	if _, err := a.blogService.CreatePost(loginUser.Id, form.Title, form.Content, image); err != nil {
		logger.Error("create post err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	session.AddFlash(c, "success", "Your blog post was submitted successfully.")
	c.Redirect(http.StatusFound, "/dashboard")
}

// details shows one post to anyone. A missing id is a not-found response.
func (a *BlogController) details(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	post, err := a.blogService.GetPostView(id)
	if database.IsNotFound(err) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	} else if err != nil {
		logger.Error("load post err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	html(c, "blog_detail.html", post.Title, gin.H{"post": post})
}

// delete removes a post after an ownership check. The original left this
// route wide open; here only the author can delete their post.
func (a *BlogController) delete(c *gin.Context) {
	post, ok := a.ownedPost(c)
	if !ok {
		return
	}

	if err := a.blogService.DeletePost(post.Id); err != nil {
		logger.Error("delete post err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	session.AddFlash(c, "success", "Blog deleted successfully.")
	c.Redirect(http.StatusFound, "/dashboard")
}

func (a *BlogController) editPage(c *gin.Context) {
	post, ok := a.ownedPost(c)
	if !ok {
		return
	}
	html(c, "edit_blog.html", "Edit Post", gin.H{"post": post, "uploads": a.uploadService.Enabled()})
}

// edit updates title, content and optionally the image. When no valid new
// image is supplied the existing reference stays untouched.
func (a *BlogController) edit(c *gin.Context) {
	post, ok := a.ownedPost(c)
	if !ok {
		return
	}

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		session.AddFlash(c, "warning", "Invalid form data.")
		c.Redirect(http.StatusFound, "/edit_blog/"+strconv.Itoa(post.Id))
		return
	}
	if form.Title == "" {
		session.AddFlash(c, "warning", "Title cannot be empty.")
		c.Redirect(http.StatusFound, "/edit_blog/"+strconv.Itoa(post.Id))
		return
	}
	if form.Content == "" {
		session.AddFlash(c, "warning", "Content cannot be empty.")
		c.Redirect(http.StatusFound, "/edit_blog/"+strconv.Itoa(post.Id))
		return
	}

	post.Title = form.Title
	post.Content = form.Content

	if file, err := c.FormFile("image"); err == nil {
		image, err := a.uploadService.SaveImage(file)
		if err != nil {
			logger.Error("save upload err:", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if image != "" {
			post.Image = image
		}
	}

	if err := a.blogService.UpdatePost(post); err != nil {
		logger.Error("update post err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	session.AddFlash(c, "success", "Blog post updated successfully.")
	c.Redirect(http.StatusFound, "/dashboard")
}

// ownedPost loads the post named in the route and verifies the session user
// authored it. Missing posts are a 404; someone else's post is a 403.
func (a *BlogController) ownedPost(c *gin.Context) (*model.Post, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return nil, false
	}

	post, err := a.blogService.GetPost(id)
	if database.IsNotFound(err) {
		c.AbortWithStatus(http.StatusNotFound)
		return nil, false
	} else if err != nil {
		logger.Error("load post err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return nil, false
	}

	loginUser := session.GetLoginUser(c)
	if post.AuthorId != loginUser.Id {
		logger.Warningf("%s denied access to post %d, IP: %s, req: %s", loginUser.Username, post.Id, getRemoteIp(c), getRequestId(c))
		c.AbortWithStatus(http.StatusForbidden)
		return nil, false
	}
	return post, true
}
