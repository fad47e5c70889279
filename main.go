package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/juancarlosGilardi/flask-marcaciones/attendance"
	"github.com/juancarlosGilardi/flask-marcaciones/config"
	authcontroller "github.com/juancarlosGilardi/flask-marcaciones/controllers/auth"
	checkpointcontroller "github.com/juancarlosGilardi/flask-marcaciones/controllers/checkpoint"
	markingcontroller "github.com/juancarlosGilardi/flask-marcaciones/controllers/marking"
	systemcontroller "github.com/juancarlosGilardi/flask-marcaciones/controllers/system"
	"github.com/juancarlosGilardi/flask-marcaciones/location"
	"github.com/juancarlosGilardi/flask-marcaciones/middlewares"
	"github.com/juancarlosGilardi/flask-marcaciones/models"
	"github.com/juancarlosGilardi/flask-marcaciones/notify"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	db, err := models.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}

	validator := location.NewValidator(cfg.GPS)
	store := attendance.NewGormStore(db, cfg.LockWait)
	sequencer := attendance.NewSequencer(store, cfg.Timezone)
	mailer := notify.NewMailer(cfg.SMTP)

	authHandler := authcontroller.NewHandler(db, cfg.JWTKey)
	markingHandler := markingcontroller.NewHandler(db, validator, sequencer, mailer, cfg.GPS.Region)
	checkpointHandler := checkpointcontroller.NewHandler(db)
	systemHandler := systemcontroller.NewHandler(db, cfg.GPS)

	markingcontroller.RegisterValidations()

	router := gin.Default()
	router.Use(middlewares.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	v1 := router.Group("/v1")
	{
		v1.POST("/register", authHandler.Register)
		v1.POST("/login", authHandler.Login)
		v1.POST("/logout", authHandler.Logout)
		v1.GET("/health", systemHandler.Health)
		v1.GET("/config", systemHandler.Config)

		api := v1.Group("/api")
		api.Use(middlewares.Auth(db, cfg.JWTKey))
		{
			api.POST("/attendance/mark", markingHandler.Mark)
			api.POST("/location/validate", markingHandler.Validate)
			api.POST("/qr/info", markingHandler.QRInfo)
			api.GET("/attendance/today", markingHandler.Today)
			api.GET("/attendance/history", markingHandler.History)
			api.GET("/checkpoints", checkpointHandler.List)
			api.GET("/user", authHandler.Me)
		}
	}

	log.Printf("Server is running on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
