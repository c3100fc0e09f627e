// Package router wires handlers, middleware and templates into one
// http.Handler.
package router

import (
	"net/http"

	"qna-board/config"
	"qna-board/handlers"
	"qna-board/helper"
	"qna-board/middleware"
	"qna-board/notifier"
	"qna-board/services"
	"qna-board/views"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Deps struct {
	Config    *config.Config
	Log       *logrus.Logger
	Auth      services.AuthService
	Questions services.QuestionService
	Answers   services.AnswerService
	Hub       *notifier.Hub
}

func New(deps Deps) http.Handler {
	cfg := deps.Config
	httpHelper := helper.NewHTTPHelper()
	auth := middleware.NewAuth(cfg.JWTSecret, httpHelper)

	authHandler := handlers.NewAuthHandler(deps.Auth, httpHelper, cfg.JWTExpiration, cfg.CookieSecure)
	questionHandler := handlers.NewQuestionHandler(deps.Questions, httpHelper)
	answerHandler := handlers.NewAnswerHandler(deps.Answers, httpHelper)
	notificationHandler := handlers.NewNotificationHandler(deps.Hub)

	router := gin.New()
	router.Use(middleware.Recovery(deps.Log))
	router.Use(secure.New(secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	router.Use(middleware.RequestLogger(deps.Log))
	router.Use(middleware.ErrorHandler(deps.Log, httpHelper))
	router.Use(auth.LoadUser())

	router.SetHTMLTemplate(views.Templates())
	router.Static(cfg.UploadURLPrefix, cfg.UploadDir)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		httpHelper.SendSuccess(c, "healthy", httpHelper.EmptyJsonMap())
	})

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/questions")
	})

	// Session routes
	router.GET("/signup", authHandler.SignUpPage)
	router.POST("/signup", authHandler.SignUp)
	router.GET("/signin", authHandler.SignInPage)
	router.POST("/signin", authHandler.SignIn)
	router.POST("/signout", authHandler.SignOut)

	questions := router.Group("/questions")
	{
		questions.GET("", questionHandler.Index)
		questions.GET("/new", auth.RequireAuth(), questionHandler.New)
		questions.POST("", auth.RequireAuth(), questionHandler.Create)
		questions.GET("/:id", questionHandler.Show)
		questions.GET("/:id/edit", auth.RequireAuth(), questionHandler.Edit)
		questions.PUT("/:id", questionHandler.Update)
		questions.DELETE("/:id", auth.RequireAuth(), questionHandler.Delete)
		questions.POST("/:id/answers", auth.RequireAuth(), answerHandler.Create)
	}

	router.GET("/answers/:id", answerHandler.GetAnswer)
	router.GET("/ws", auth.RequireAPIAuth(), notificationHandler.Connect)

	return middleware.MethodOverride(router)
}
