package web

import (
	"yatube/auth"

	"github.com/gin-gonic/gin"
)

// Register wires every page of the site onto the engine
func Register(router *gin.Engine) {
	router.GET("/", Index)
	router.GET("/group/:slug/", GroupPosts)
	router.GET("/profile/:username/", Profile)
	router.GET("/posts/:id/", PostDetail)

	router.GET("/auth/signup/", SignupView)
	router.POST("/auth/signup/", SignupSubmit)
	router.GET("/auth/login/", LoginView)
	router.POST("/auth/login/", LoginSubmit)
	router.POST("/auth/logout/", Logout)

	router.GET("/media/*path", Media)

	// Mutating pages require a logged-in user
	authRouter := &auth.Router{Base: router}
	authRouter.GET("/create/", PostCreateForm)
	authRouter.POST("/create/", PostCreateSubmit)
	authRouter.GET("/posts/:id/edit/", PostEditForm)
	authRouter.POST("/posts/:id/edit/", PostEditSubmit)
	authRouter.POST("/posts/:id/comment/", CommentSubmit)

	router.NoRoute(NotFoundPage)
}

func NotFoundPage(c *gin.Context) {
	renderNotFound(c)
}
