package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"fryegg/api/internal/apperr"
	"fryegg/api/internal/config"
	"fryegg/api/internal/middleware"
	"fryegg/api/internal/repository"
	"fryegg/api/internal/service"
	"fryegg/api/internal/storage"
)

type HandlerSet struct {
	log            zerolog.Logger
	cfg            *config.AppConfig
	authService    *service.AuthService
	seatService    *service.SeatService
	surveyService  *service.SurveyService
	profileService *service.ProfileService
	db             *pgxpool.Pool
	cache          *redis.Client
	store          *storage.ObjectStore
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	occupantRepo := repository.NewOccupantRepository(db)
	surveyRepo := repository.NewSurveyRepository(db)

	auth := service.NewAuthService(userRepo, sessionRepo, occupantRepo, cfg, log)
	seats := service.NewSeatService(occupantRepo, surveyRepo, cache, cfg.Seats.CacheTTL, log)
	surveys := service.NewSurveyService(surveyRepo, log)
	profile := service.NewProfileService(occupantRepo, userRepo, store, log)

	return HandlerSet{
		log:            log,
		cfg:            cfg,
		authService:    auth,
		seatService:    seats,
		surveyService:  surveys,
		profileService: profile,
		db:             db,
		cache:          cache,
		store:          store,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth")
		guest := auth.Group("")
		guest.Use(middleware.GuestOnly(h.authService))
		guest.POST("/sign-up", h.SignUp)
		guest.POST("/sign-in", h.SignIn)
		guest.POST("/reset-password", h.ResetPassword)
		guest.POST("/resend-verification", h.ResendVerification)

		protected := auth.Group("")
		protected.Use(
			middleware.Auth(h.authService),
			middleware.Signature(h.cfg, h.cache),
		)
		protected.POST("/sign-out", h.SignOut)
		protected.GET("/me", h.Me)
	}

	seats := v1.Group("/seats")
	seats.GET("", h.ListSeats)
	seats.GET("/:seat/target", h.SeatTarget)
	seats.GET("/:seat/results", h.SeatResults)

	profile := v1.Group("/profile")
	profile.Use(
		middleware.Auth(h.authService),
		middleware.Signature(h.cfg, h.cache),
	)
	profile.GET("", h.Profile)
	profile.PUT("", h.UpdateProfile)

	pictures := v1.Group("/pictures")
	pictures.Use(
		middleware.Auth(h.authService),
		middleware.Signature(h.cfg, h.cache),
	)
	pictures.POST("/signed-url", h.SignedPictureURL)

	surveys := v1.Group("/surveys")
	surveys.Use(
		middleware.Auth(h.authService),
		middleware.Signature(h.cfg, h.cache),
	)
	surveys.POST("", h.SubmitSurvey)
	surveys.GET("/me", h.MySurvey)
}

// respondError maps a service failure onto its kind's status and
// localized message; handlers never echo backend message strings.
func (h HandlerSet) respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindUnknown {
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	}
	c.JSON(kind.HTTPStatus(), gin.H{
		"error":   string(kind),
		"message": kind.Message(),
	})
}
