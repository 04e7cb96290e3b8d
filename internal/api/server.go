package api

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/espacios-app/reservas-api/docs"
	v1 "github.com/espacios-app/reservas-api/internal/api/handler/v1"
	"github.com/espacios-app/reservas-api/internal/api/middleware"
	"github.com/espacios-app/reservas-api/internal/config"
	"github.com/espacios-app/reservas-api/internal/repository"
	"github.com/espacios-app/reservas-api/internal/repository/dao"
	"github.com/espacios-app/reservas-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	redis     *redis.Client
	publisher service.EventPublisher
}

func NewServer(conf *config.AppConfig, db *gorm.DB, rdb *redis.Client, publisher service.EventPublisher) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config:    conf,
		Router:    engine,
		redis:     rdb,
		publisher: publisher,
	}

	s.MountMiddlewares()

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	spaceRepo := repository.NewSpaceRepository(dao.NewSpaceDAO(db))
	reservationRepo := repository.NewReservationRepository(dao.NewReservationDAO(db))

	authHandler := v1.NewAuthHandler(conf.API, service.NewAuthService(userRepo))
	userSvc := service.NewUserService(userRepo, reservationRepo)
	userHandler := v1.NewUserHandler(userSvc)
	spaceHandler := v1.NewSpaceHandler(
		service.NewSpaceService(spaceRepo, reservationRepo),
		middleware.NewCacheInvalidator(rdb, s.cachePrefix()),
	)
	reservationHandler := v1.NewReservationHandler(
		service.NewReservationService(reservationRepo, spaceRepo, publisher),
		userSvc,
	)

	s.MountHandlers(authHandler, userHandler, spaceHandler, reservationHandler)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	spaceHandler *v1.SpaceHandler,
	reservationHandler *v1.ReservationHandler,
) {
	const basePath = "/api"

	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()
	catalogCache := middleware.CatalogCache(s.redis, s.cachePrefix(), s.cacheTTL())

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/register", authHandler.HandleRegister)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	espacios := s.Router.Group(basePath + "/espacios")
	{
		espacios.GET("", catalogCache, spaceHandler.HandleGetSpaces)
		espacios.GET("/tipos", catalogCache, spaceHandler.HandleGetSpaceTypes)
		espacios.GET("/:spaceID", catalogCache, spaceHandler.HandleGetSpace)

		admin := espacios.Group("", verifyJWT, middleware.RequireAdmin())
		{
			admin.POST("", spaceHandler.HandleCreateSpace)
			admin.PUT("/:spaceID", spaceHandler.HandleUpdateSpace)
			admin.DELETE("/:spaceID", spaceHandler.HandleDeleteSpace)
			admin.POST("/tipos", spaceHandler.HandleCreateSpaceType)
			admin.PUT("/tipos/:typeID", spaceHandler.HandleUpdateSpaceType)
		}
	}

	reservas := s.Router.Group(basePath+"/reservas", verifyJWT)
	{
		reservas.GET("/mis-reservas", reservationHandler.HandleGetMyReservations)
		reservas.GET("", middleware.RequireAdmin(), reservationHandler.HandleGetAllReservations)
		reservas.POST("", reservationHandler.HandleCreateReservation)
		reservas.PUT("/:reservationID", reservationHandler.HandleUpdateReservation)
		reservas.DELETE("/:reservationID", reservationHandler.HandleCancelReservation)
		reservas.GET("/disponibilidad/:spaceID/:date", reservationHandler.HandleGetAvailability)
	}

	users := s.Router.Group(basePath+"/users", verifyJWT)
	{
		users.GET("/profile", userHandler.HandleGetProfile)
		users.PUT("/profile", userHandler.HandleUpdateProfile)
		users.PUT("/change-password", userHandler.HandleChangePassword)
		users.GET("", middleware.RequireAdmin(), userHandler.HandleGetUsers)
		users.DELETE("/:userID", middleware.RequireAdmin(), userHandler.HandleDeleteUser)
	}

	s.Router.GET(basePath+"/health", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Espacios Reservation API"
	docs.SwaggerInfo.Description = "REST API for browsing spaces and managing reservations."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

func (s *Server) cachePrefix() string {
	if s.Config.Redis != nil && s.Config.Redis.CacheKeyPrefix != "" {
		return s.Config.Redis.CacheKeyPrefix
	}

	return "espacios:catalog"
}

func (s *Server) cacheTTL() time.Duration {
	if s.Config.Redis != nil && s.Config.Redis.CacheTTLSecs > 0 {
		return time.Duration(s.Config.Redis.CacheTTLSecs) * time.Second
	}

	return time.Minute
}
