package main

import (
	"fmt"
	"log"
	"net/http"

	"wedbricks/config"
	"wedbricks/internal/domain/chat"
	"wedbricks/internal/domain/notification"
	"wedbricks/internal/handler"
	"wedbricks/internal/middleware"
	"wedbricks/internal/redis"
	"wedbricks/internal/repository"
	"wedbricks/internal/server"
	"wedbricks/internal/services"
	"wedbricks/pkg/database"
	"wedbricks/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	logMode := logger.DevelopmentMode
	if cfg.AppMode == "release" {
		gin.SetMode(gin.ReleaseMode)
		logMode = logger.ProductionMode
	}
	appLog := logger.New(logMode)
	logger.SetGlobalLogger(appLog)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&chat.Chat{},
		&chat.Message{},
		&notification.Notification{},
	); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	redisClient := redis.NewClient(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	presence := redis.NewPresenceStore(redisClient, 0)
	unreadCache := redis.NewUnreadCache(redisClient, redis.DefaultUnreadCacheConfig())
	limiter := redis.NewRateLimiter(redisClient, redis.DefaultRateLimitConfig())

	chatRepo := repository.NewChatRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	hub := server.NewHub(appLog, presence)

	deliverySvc := services.NewDeliveryService(chatRepo, messageRepo, notifRepo, hub, unreadCache, appLog)
	chatSvc := services.NewChatService(chatRepo, messageRepo, unreadCache, appLog)
	notifSvc := services.NewNotificationService(notifRepo)
	authSvc := services.NewAuthService(cfg.JWTSecret)

	wsHandler := server.NewWebSocketHandler(hub, deliverySvc, appLog)
	chatHandler := handler.NewChatHandler(chatSvc)
	notifHandler := handler.NewNotificationHandler(notifSvc)
	bookingHandler := handler.NewBookingHandler(deliverySvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware(appLog))
	r.Use(middleware.ErrorHandler(appLog))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/ws", wsHandler.Handle)

	api := r.Group("/api")
	{
		chats := api.Group("/chats")
		chats.POST("/start", chatHandler.Start)
		chats.GET("/user/:userId", chatHandler.ListUserChats)
		chats.GET("/vendor/:vendorId", chatHandler.ListVendorChats)
		chats.GET("/unread/:participantId", chatHandler.UnreadCount)
		chats.GET("/:chatId/messages", chatHandler.Messages)
		chats.POST("/:chatId/message", middleware.MessageRateLimitMiddleware(limiter), chatHandler.SaveMessage)
		chats.PUT("/:chatId/read", chatHandler.MarkRead)

		notifications := api.Group("/notifications")
		notifications.GET("/:receiverId/:receiverKind", notifHandler.List)
		notifications.PUT("/mark-read/:id", notifHandler.MarkRead)

		bookings := api.Group("/bookings")
		bookings.POST("/events", middleware.AuthMiddleware(authSvc), bookingHandler.EmitEvent)
	}

	appLog.Infof("Starting server on port %s", cfg.AppPort)
	if err := r.Run(fmt.Sprintf(":%s", cfg.AppPort)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
