package http

import (
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
	"github.com/mikiasgoitom/articleboard/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/articleboard/internal/usecase/contract"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	userHandler        *UserHandler
	articleHandler     *ArticleHandler
	commentHandler     *CommentHandler
	interactionHandler *InteractionHandler
	apiV2Handler       *APIV2Handler
	authenticator      middleware.Authenticator
	ratePerSecond      float64
}

func NewRouter(
	userUsecase usecasecontract.IUserUseCase,
	articleUsecase usecasecontract.IArticleUseCase,
	commentUsecase usecasecontract.ICommentUseCase,
	reactionUsecase usecasecontract.IReactionUseCase,
	config usecasecontract.IConfigProvider,
	ratePerSecond float64,
) *Router {
	return &Router{
		userHandler:        NewUserHandler(userUsecase, config.GetAppBaseURL()),
		articleHandler:     NewArticleHandler(articleUsecase),
		commentHandler:     NewCommentHandler(commentUsecase),
		interactionHandler: NewInteractionHandler(reactionUsecase, config.GetStrictReactions()),
		apiV2Handler:       NewAPIV2Handler(articleUsecase),
		authenticator:      userUsecase,
		ratePerSecond:      ratePerSecond,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if r.ratePerSecond > 0 {
		lmt := tollbooth.NewLimiter(r.ratePerSecond, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
		lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
		lmt.SetMessage("Too many requests, please try again later.")
		router.Use(middleware.RateLimiter(lmt))
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.AuthMiddleWare(r.authenticator)

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Public routes (no authentication required)
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.CreateUser)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.RefreshToken)
	}
	v1.POST("/logout", r.userHandler.Logout)

	v1.GET("/users/:id/profile", r.userHandler.GetProfilePage)
	v1.GET("/avatars/:fileID", r.userHandler.GetAvatar)

	v1.GET("/articles", r.articleHandler.GetArticlesHandler)
	v1.GET("/articles/:id", r.articleHandler.GetArticleDetailHandler)
	v1.GET("/articles/:id/comments", r.commentHandler.GetArticleComments)
	v1.GET("/articles/:id/likers", r.interactionHandler.LikersHandler(entity.LikeableArticle))
	v1.GET("/comments/:id/likers", r.interactionHandler.LikersHandler(entity.LikeableComment))

	// Protected routes (authentication required)
	protected := v1.Group("/")
	protected.Use(auth)
	{
		// Current user routes
		protected.GET("/me", r.userHandler.GetCurrentUser)
		protected.PUT("/me", r.userHandler.UpdateUser)
		protected.PUT("/me/password", r.userHandler.ChangePassword)

		// Article routes
		protected.POST("/articles", r.articleHandler.CreateArticleHandler)
		protected.PUT("/articles/:id", r.articleHandler.UpdateArticleHandler)
		protected.DELETE("/articles/:id", r.articleHandler.DeleteArticleHandler)

		// Comment routes
		protected.POST("/articles/:id/comments", r.commentHandler.CreateComment)
		protected.DELETE("/comments/:id", r.commentHandler.DeleteComment)

		// Like toggles take a form body: action=post plus articlepk or commentpk
		protected.POST("/articles/like", r.interactionHandler.LikeArticleHandler)
		protected.POST("/comments/like", r.interactionHandler.LikeCommentHandler)
		protected.GET("/articles/:id/liked", r.interactionHandler.LikedHandler(entity.LikeableArticle))
		protected.GET("/comments/:id/liked", r.interactionHandler.LikedHandler(entity.LikeableComment))
	}

	v2 := router.Group("/api/v2")
	v2.Use(auth)
	{
		v2.GET("/articles", r.apiV2Handler.ListArticles)
		v2.POST("/articles", r.apiV2Handler.CreateArticle)
		v2.PUT("/articles/:id", r.apiV2Handler.UpdateArticle)
	}
}
