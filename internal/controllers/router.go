package controllers

import (
	"net/http"

	"github.com/Brayzonn/shortlink/internal/config"
	"github.com/Brayzonn/shortlink/internal/controllers/middlewares"
	"github.com/gin-gonic/gin"
)

type RouterParams struct {
	LinkService LinkShortener
	UserService UserProvider
	Refresher   HealthRefresher
	AppConf     *config.Config
}

func SetupRouter(params RouterParams) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"errMsg": msgServerError})
	}))
	r.Use(middlewares.LoggerMiddleware(params.AppConf.Logger))

	jwtSecret := []byte(params.AppConf.JWTSecret)

	linksController := NewLinksController(params.LinkService, params.Refresher)
	authController := NewAuthController(params.UserService, params.LinkService, params.Refresher, jwtSecret)

	// редиректы: /a/ зарегистрированные, /b/ анонимные. Пространство кодов
	// общее, пути различаются только префиксом.
	r.GET("/a/:code", linksController.Redirect)
	r.GET("/b/:code", linksController.Redirect)

	api := r.Group("/api")
	api.POST("/signup", authController.Signup)
	api.POST("/signin", authController.Signin)

	visitor := api.Group("")
	visitor.Use(middlewares.VisitorCookieMiddleware(jwtSecret))
	visitor.POST("/submiturl", linksController.SubmitFree)
	visitor.GET("/getfreeurl", linksController.GetFreeLinks)

	user := api.Group("/user")
	user.Use(middlewares.BearerAuthMiddleware(jwtSecret))
	user.POST("/submiturl", linksController.SubmitUser)
	user.GET("/dashboard", authController.Dashboard)

	return r
}
