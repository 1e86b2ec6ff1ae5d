package web

import (
	"errors"
	"net/http"
	"strconv"
	"yatube/models"

	"github.com/gin-gonic/gin"
)

// pageNumber reads the 1-based ?page= parameter; anything unusable is page 1
func pageNumber(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func Index(c *gin.Context) {
	page, err := models.PostsPage(models.PostFilter{}, pageNumber(c))
	if err != nil {
		internalError(c, err)
		return
	}
	render(c, http.StatusOK, "index.tmpl", gin.H{
		"page_obj": &page,
	})
}

func GroupPosts(c *gin.Context) {
	slug := c.Param("slug")
	group, err := models.GroupBySlug(slug)
	if errors.Is(err, models.ErrNotFound) {
		renderNotFound(c)
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	page, err := models.PostsPage(models.PostFilter{GroupSlug: slug}, pageNumber(c))
	if err != nil {
		internalError(c, err)
		return
	}
	render(c, http.StatusOK, "group_list.tmpl", gin.H{
		"group":    &group,
		"page_obj": &page,
	})
}

func Profile(c *gin.Context) {
	username := c.Param("username")
	author, err := models.UserByUsername(username)
	if errors.Is(err, models.ErrNotFound) {
		renderNotFound(c)
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	page, err := models.PostsPage(models.PostFilter{Username: username}, pageNumber(c))
	if err != nil {
		internalError(c, err)
		return
	}
	render(c, http.StatusOK, "profile.tmpl", gin.H{
		"author":   &author,
		"page_obj": &page,
	})
}
