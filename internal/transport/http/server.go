package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	appsvc "noteworthy/internal/app"
	"noteworthy/internal/bootstrap"
	"noteworthy/internal/cache"
	"noteworthy/internal/pkg/jwtutil"
	"noteworthy/internal/pkg/mailer"
	"noteworthy/internal/pkg/resettoken"
	"noteworthy/internal/repository"
	"noteworthy/internal/transport/http/handler"
	"noteworthy/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	cfg := app.Config

	gin.SetMode(cfg.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.AllowedHosts(cfg.App.AllowedHosts))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	tokens := jwtutil.NewManager(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.AccessTokenMinute)*time.Minute,
		time.Duration(cfg.Auth.RefreshTokenMinute)*time.Minute,
	)
	resetTokens := resettoken.NewGenerator(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.ResetTokenMinute)*time.Minute,
	)
	sender := mailer.NewSender(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)
	blacklist := cache.NewTokenBlacklist(app.Redis)

	userRepo := repository.NewUserRepository(app.MySQL)
	noteRepo := repository.NewNoteRepository(app.MySQL)
	profileRepo := repository.NewProfileRepository(app.MySQL)

	authService := appsvc.NewAuthService(userRepo, tokens, blacklist)
	userService := appsvc.NewUserService(userRepo)
	noteService := appsvc.NewNoteService(noteRepo)
	profileService := appsvc.NewProfileService(profileRepo, app.S3)
	resetService := appsvc.NewPasswordResetService(userRepo, resetTokens, sender, cfg.Frontend.BaseURL)

	healthHandler := handler.NewHealthHandler()
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	noteHandler := handler.NewNoteHandler(noteService)
	profileHandler := handler.NewProfileHandler(profileService)
	resetHandler := handler.NewPasswordResetHandler(resetService)

	router.GET("/health", healthHandler.Check)
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.POST("/token/refresh", authHandler.Refresh)
	router.POST("/send-password-reset-email", resetHandler.SendEmail)
	router.GET("/validate-token/:uid/:token", resetHandler.Validate)
	router.POST("/reset-password/:uid/:token", resetHandler.Reset)

	authed := router.Group("")
	authed.Use(middleware.AuthJWT(tokens))
	authed.POST("/logout", authHandler.Logout)
	authed.GET("/user-details", userHandler.Details)
	authed.PUT("/user-details", userHandler.Update)
	authed.DELETE("/delete-user", userHandler.Delete)
	authed.GET("/profile", profileHandler.Get)
	authed.PUT("/profile", profileHandler.Replace)
	authed.DELETE("/profile", profileHandler.Clear)
	authed.GET("/notes", noteHandler.List)
	authed.POST("/notes", noteHandler.Create)
	authed.GET("/notes/:slug", noteHandler.Get)
	authed.PUT("/notes/:slug", noteHandler.Update)
	authed.DELETE("/notes/:slug", noteHandler.Delete)
	authed.GET("/notes-search", noteHandler.Search)

	return router
}
