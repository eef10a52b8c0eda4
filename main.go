package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/sportmeet/sportmeet/config"
	"github.com/sportmeet/sportmeet/internal/chat"
	"github.com/sportmeet/sportmeet/internal/consumer"
	"github.com/sportmeet/sportmeet/internal/flow"
	"github.com/sportmeet/sportmeet/internal/handler"
	"github.com/sportmeet/sportmeet/internal/middleware"
	"github.com/sportmeet/sportmeet/internal/models"
	"github.com/sportmeet/sportmeet/internal/notify"
	"github.com/sportmeet/sportmeet/internal/repository"
	"github.com/sportmeet/sportmeet/internal/service"
	"github.com/sportmeet/sportmeet/internal/session"
	"github.com/sportmeet/sportmeet/pkg/database"
	"github.com/sportmeet/sportmeet/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	sportRepo := repository.NewSportRepository(db)
	eventRepo := repository.NewEventRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	weightRepo := repository.NewWeightRepository(db)
	broadcastRepo := repository.NewBroadcastRepository(db)

	if err := sportRepo.Seed(context.Background(), models.DefaultSports); err != nil {
		log.Fatalf("failed to seed sport catalog: %v", err)
	}

	// Services
	dispatcher := notify.NewAMQPDispatcher(publisher, 5*time.Second)
	profileSvc := service.NewProfileService(userRepo, sportRepo)
	eventSvc := service.NewEventService(eventRepo)
	applicationSvc := service.NewApplicationService(appRepo, eventRepo, participantRepo)
	weightSvc := service.NewWeightService(weightRepo)
	broadcastSvc := service.NewBroadcastService(broadcastRepo, userRepo, dispatcher)

	// Conversational engine
	engine := flow.NewEngine(
		session.NewMemoryStore(),
		flow.NewRegistrationFlow(profileSvc, sportRepo),
		flow.NewEventCreationFlow(eventSvc, sportRepo),
		flow.NewWeightLoggingFlow(weightSvc),
		flow.NewWeightProgressFlow(weightSvc),
		flow.NewBroadcastFlow(broadcastSvc),
		flow.NewPersonalMessageFlow(profileSvc, broadcastSvc),
	)
	router := chat.NewRouter(engine, profileSvc, eventSvc, applicationSvc, dispatcher)

	// Chat updates from the gateway queue
	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}
	consumer.NewChatConsumer(router).Start(msgs)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "sportmeet"})
	})

	handler.NewApplicationHandler(applicationSvc).RegisterRoutes(e)
	handler.NewWebhookHandler(router).RegisterRoutes(e)

	log.Printf("Sportmeet service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
