package web

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strconv"
	"yatube/models"
	"yatube/storage"
	"yatube/utils"

	"github.com/gin-gonic/gin"
)

const thumbSize = 640

func postID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		renderNotFound(c)
		return 0, false
	}
	return id, true
}

func PostDetail(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	post, err := models.PostByID(id)
	if errors.Is(err, models.ErrNotFound) {
		renderNotFound(c)
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	comments, err := models.CommentsForPost(id)
	if err != nil {
		internalError(c, err)
		return
	}
	render(c, http.StatusOK, "post_detail.tmpl", gin.H{
		"post":     &post,
		"comments": comments,
	})
}

func renderPostForm(c *gin.Context, form *PostForm, errs FieldErrors, post *models.Post) {
	groups, err := models.GroupList()
	if err != nil {
		internalError(c, err)
		return
	}
	data := gin.H{
		"form":   form,
		"errors": errs,
		"groups": groups,
	}
	if post != nil {
		data["post"] = post
	}
	render(c, http.StatusOK, "create_post.tmpl", data)
}

func PostCreateForm(c *gin.Context, user *models.User) {
	renderPostForm(c, &PostForm{}, nil, nil)
}

func PostCreateSubmit(c *gin.Context, user *models.User) {
	form := PostForm{}
	if err := c.ShouldBind(&form); err != nil {
		renderPostForm(c, &form, FieldErrors{"text": ErrRequired}, nil)
		return
	}
	payload, errs := form.Validate()
	if len(errs) > 0 {
		// Nothing was written; the submission comes back with the errors attached
		renderPostForm(c, &form, errs, nil)
		return
	}
	post, err := models.PostCreate(user.ID, payload.Text, payload.GroupID)
	if err != nil {
		internalError(c, err)
		return
	}
	attachImage(c, &post)
	c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
}

// loadOwnPost resolves the post and enforces the author-only rule before
// anything can be mutated. Non-authors are bounced to the detail page.
func loadOwnPost(c *gin.Context, user *models.User) (models.Post, bool) {
	id, ok := postID(c)
	if !ok {
		return models.Post{}, false
	}
	post, err := models.PostByID(id)
	if errors.Is(err, models.ErrNotFound) {
		renderNotFound(c)
		return models.Post{}, false
	}
	if err != nil {
		internalError(c, err)
		return models.Post{}, false
	}
	if post.UserID != user.ID {
		c.Redirect(http.StatusFound, "/posts/"+strconv.FormatUint(post.ID, 10)+"/")
		return models.Post{}, false
	}
	return post, true
}

func PostEditForm(c *gin.Context, user *models.User) {
	post, ok := loadOwnPost(c, user)
	if !ok {
		return
	}
	form := PostForm{Text: post.Text}
	if post.GroupID != nil {
		form.Group = strconv.FormatUint(*post.GroupID, 10)
	}
	renderPostForm(c, &form, nil, &post)
}

func PostEditSubmit(c *gin.Context, user *models.User) {
	post, ok := loadOwnPost(c, user)
	if !ok {
		return
	}
	form := PostForm{}
	if err := c.ShouldBind(&form); err != nil {
		renderPostForm(c, &form, FieldErrors{"text": ErrRequired}, &post)
		return
	}
	payload, errs := form.Validate()
	if len(errs) > 0 {
		renderPostForm(c, &form, errs, &post)
		return
	}
	edited, err := models.PostEdit(post.ID, payload.Text, payload.GroupID)
	if errors.Is(err, models.ErrNotFound) {
		renderNotFound(c)
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	if _, ferr := c.FormFile("image"); ferr == nil {
		edited.DeleteImageFiles()
		attachImage(c, &edited)
	}
	c.Redirect(http.StatusFound, "/posts/"+strconv.FormatUint(edited.ID, 10)+"/")
}

func CommentSubmit(c *gin.Context, user *models.User) {
	id, ok := postID(c)
	if !ok {
		return
	}
	form := CommentForm{}
	_ = c.ShouldBind(&form)
	target := "/posts/" + strconv.FormatUint(id, 10) + "/"
	if errs := form.Validate(); len(errs) > 0 {
		c.Redirect(http.StatusFound, target)
		return
	}
	_, err := models.CommentCreate(id, user.ID, form.Text)
	if errors.Is(err, models.ErrNotFound) {
		renderNotFound(c)
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

// attachImage stores an optional uploaded image plus a thumbnail.
// A post is complete without one, so failures only log.
func attachImage(c *gin.Context, post *models.Post) {
	file, err := c.FormFile("image")
	if err != nil {
		return // no image attached
	}
	s := storage.GetDefaultStorage()
	if s == nil {
		log.Printf("image for post %d skipped: no bucket configured", post.ID)
		return
	}
	if free := s.GetFreeSpace(); free > 0 && free < uint64(file.Size)*2 {
		log.Printf("image for post %d skipped: bucket almost full", post.ID)
		return
	}
	reader, err := file.Open()
	if err != nil {
		log.Printf("cannot open upload for post %d: %v", post.ID, err)
		return
	}
	defer reader.Close()

	name := utils.NewImageName()
	imagePath := "posts/" + name
	if _, err = s.Save(imagePath, reader); err != nil {
		log.Printf("cannot save image for post %d: %v", post.ID, err)
		return
	}
	mimeType := file.Header.Get("Content-Type")
	if err = s.UpdateRemoteFile(imagePath, mimeType); err != nil {
		log.Printf("cannot upload image for post %d: %v", post.ID, err)
		_ = s.Delete(imagePath)
		return
	}

	thumbPath := ""
	var buf, thumb bytes.Buffer
	if _, err = s.Load(imagePath, &buf); err == nil {
		if _, err = utils.CreateThumb(thumbSize, &buf, &thumb); err == nil {
			thumbPath = "posts/thumb_" + name
			if _, err = s.Save(thumbPath, &thumb); err != nil {
				thumbPath = ""
			} else if err = s.UpdateRemoteFile(thumbPath, "image/jpeg"); err != nil {
				_ = s.Delete(thumbPath)
				thumbPath = ""
			}
		}
	}

	if err = post.SetImage(imagePath, thumbPath); err != nil {
		log.Printf("cannot record image for post %d: %v", post.ID, err)
	}
	s.ReleaseLocalFile(imagePath)
	if thumbPath != "" {
		s.ReleaseLocalFile(thumbPath)
	}
}
