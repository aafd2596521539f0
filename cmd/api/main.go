package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	handlerHttp "github.com/mikiasgoitom/articleboard/internal/handler/http"
	redisclient "github.com/mikiasgoitom/articleboard/internal/infrastructure/cache"
	"github.com/mikiasgoitom/articleboard/internal/infrastructure/config"
	database "github.com/mikiasgoitom/articleboard/internal/infrastructure/database"
	"github.com/mikiasgoitom/articleboard/internal/infrastructure/htmltext"
	"github.com/mikiasgoitom/articleboard/internal/infrastructure/jwt"
	"github.com/mikiasgoitom/articleboard/internal/infrastructure/logger"
	"github.com/mikiasgoitom/articleboard/internal/infrastructure/messaging"
	passwordservice "github.com/mikiasgoitom/articleboard/internal/infrastructure/password_service"
	"github.com/mikiasgoitom/articleboard/internal/infrastructure/repository/gormsql"
	"github.com/mikiasgoitom/articleboard/internal/infrastructure/repository/mongodb"
	"github.com/mikiasgoitom/articleboard/internal/infrastructure/store"
	"github.com/mikiasgoitom/articleboard/internal/infrastructure/uuidgen"
	"github.com/mikiasgoitom/articleboard/internal/infrastructure/validator"
	"github.com/mikiasgoitom/articleboard/internal/usecase"
)

func main() {
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appLogger := logger.NewLogger(appConfig.LogLevel, appConfig.LogFormat)

	// Establish MySQL connection
	db, err := database.NewMySQL(database.MySQLOptions{
		DSN:          appConfig.MySQLDSN,
		MaxOpenConns: appConfig.MySQLMaxOpenConns,
		MaxIdleConns: appConfig.MySQLMaxIdleConns,
		Debug:        appConfig.LogLevel == "debug",
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MySQL: %v", err)
	}
	defer database.CloseMySQL(db)
	if err := gormsql.AutoMigrate(db); err != nil {
		appLogger.Fatalf("Failed to migrate schema: %v", err)
	}

	// Register custom validators
	validator.RegisterCustomValidators()

	// Initialize Gin router
	router := gin.Default()

	// Dependency Injection: Repositories
	userRepo := gormsql.NewUserRepository(db)
	tokenRepo := gormsql.NewTokenRepository(db)
	articleRepo := gormsql.NewArticleRepository(db)
	commentRepo := gormsql.NewCommentRepository(db)
	reactionRepo := gormsql.NewReactionRepository(db)

	// Dependency Injection: Services
	hasher := passwordservice.NewHasher()
	uuidGenerator := uuidgen.NewGenerator()
	jwtManager := jwt.NewJWTManager(appConfig.JWTSecret, appConfig.AccessTokenExpiry, appConfig.RefreshTokenExpiry)
	jwtService := jwt.NewJWTService(jwtManager, uuidGenerator)
	appValidator := validator.NewValidator()
	previewer := htmltext.NewPreviewer(200)

	// Dependency Injection: Usecases
	userUsecase := usecase.NewUserUsecase(userRepo, tokenRepo, articleRepo, hasher, jwtService, appLogger, appConfig, appValidator)
	articleUsecase := usecase.NewArticleUsecase(articleRepo, commentRepo, reactionRepo, previewer, appLogger)
	commentUsecase := usecase.NewCommentUsecase(commentRepo, articleRepo, appLogger)
	reactionUsecase := usecase.NewReactionUsecase(reactionRepo, appLogger)

	// Optional: avatars in MongoDB GridFS
	if appConfig.MongoURI != "" {
		mongoClient, err := database.NewMongoDBClient(appConfig.MongoURI, appConfig.MongoDBName)
		if err != nil {
			appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer mongoClient.Disconnect()
		userUsecase.SetAvatarStorage(mongodb.NewAvatarRepository(mongoClient.Avatars, uuidGenerator))
	} else {
		appLogger.Warnf("MONGODB_URI not set, avatar uploads are disabled")
	}

	// Optional: Redis article cache
	if appConfig.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := redisclient.NewRedisFromURL(ctx, appConfig.RedisURL)
		cancel()
		if err != nil {
			appLogger.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisclient.Close(rdb)
		articleCache := store.NewArticleCacheStore(rdb)
		articleUsecase.SetArticleCache(articleCache)
		commentUsecase.SetArticleCache(articleCache)
		reactionUsecase.SetArticleCache(articleCache)
	}

	// Optional: reaction events on RabbitMQ
	if appConfig.RabbitURL != "" {
		publisher, err := messaging.NewRabbitPublisher(appConfig.RabbitURL, appConfig.RabbitQueue)
		if err != nil {
			appLogger.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		reactionUsecase.SetEventPublisher(publisher)
	}

	// Setup API routes
	appRouter := handlerHttp.NewRouter(userUsecase, articleUsecase, commentUsecase, reactionUsecase, appConfig, appConfig.RateLimitPerSecond)
	appRouter.SetupRoutes(router)

	// Start the server
	appLogger.Infof("Server running on port %s", appConfig.Port)
	if err := router.Run(":" + appConfig.Port); err != nil {
		appLogger.Fatalf("Failed to start server: %v", err)
	}
}
