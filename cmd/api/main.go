package main

import (
	"context"

	"hotelluxury/internal/auth"
	authhandler "hotelluxury/internal/auth/handler"
	bookinghandler "hotelluxury/internal/bookings/handler"
	bookingrepository "hotelluxury/internal/bookings/repository"
	bookingservice "hotelluxury/internal/bookings/service"
	bookingvalidator "hotelluxury/internal/bookings/validator"
	"hotelluxury/internal/events"
	roomhandler "hotelluxury/internal/rooms/handler"
	roomrepository "hotelluxury/internal/rooms/repository"
	roomservice "hotelluxury/internal/rooms/service"
	"hotelluxury/pkg/app"
	"hotelluxury/pkg/config"
	"hotelluxury/pkg/contracts"
	"hotelluxury/pkg/kafka"
	kafkamiddleware "hotelluxury/pkg/kafka/middleware"
	"hotelluxury/pkg/validation"
)

const ServiceName = "hotel-luxury-api"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.SetMongo()

	cfg.Log.Info("Starting Hotel Luxury API")
	serverApp := app.NewApplication(cfg)
	publisher := initPublisher(cfg, serverApp)
	handlers := initHandlers(cfg, publisher)

	if err := serverApp.SetApp(handlers...); err != nil {
		cfg.Log.Fatal("Failed to configure application", "error", err)
	}
	serverApp.Run()
}

// initPublisher returns a Kafka-backed publisher when brokers are configured.
func initPublisher(cfg *config.Config, serverApp *app.Application) events.Publisher {
	if !cfg.Kafka.Enabled {
		cfg.Log.Info("Kafka disabled, change events will not be published")
		return events.NopPublisher{}
	}

	producer, err := kafka.NewProducer(cfg.Kafka, cfg.Kafka.BookingTopic, cfg.Kafka.BookingDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if cfg.Kafka.EnableMiddleware {
		producer.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafkamiddleware.NewProducerMetrics(serverApp.Registry()).Middleware())
	}
	serverApp.OnShutdown("kafka producer", producer)

	cfg.Log.Info("Kafka producer initialized", "topic", cfg.Kafka.BookingTopic)
	return events.NewKafkaPublisher(producer, ServiceName, cfg.Kafka.PublishTimeout, cfg.Log)
}

func initHandlers(cfg *config.Config, publisher events.Publisher) []contracts.Handler {
	tokens, err := auth.NewTokenManager(cfg.AccessTokenSecret)
	if err != nil {
		cfg.Log.Fatal("Failed to create token manager", "error", err)
	}
	gate := auth.NewGate(tokens, cfg.Log)

	mutationGuard := auth.RouteGuard(auth.Open)
	if cfg.RequireAuthForMutations {
		mutationGuard = gate.Require
		cfg.Log.Info("Booking and room mutations require a session")
	}

	validate, err := validation.New()
	if err != nil {
		cfg.Log.Fatal("Failed to create validator", "error", err)
	}

	roomService := roomservice.NewRoomService(
		roomrepository.NewMongoRoomRepository(cfg),
		validate,
		publisher,
		cfg.Log,
	)

	lockRepo := bookingrepository.NewBookingLockRepository(cfg)
	if cfg.BookingLockEnabled {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
		defer cancel()
		if err := lockRepo.EnsureIndexes(ctx); err != nil {
			cfg.Log.Fatal("Failed to ensure booking lock indexes", "error", err)
		}
		cfg.Log.Info("Booking locks enabled")
	}

	bookingService := bookingservice.NewBookingService(
		bookingrepository.NewMongoBookingRepository(cfg),
		lockRepo,
		bookingvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)
	return []contracts.Handler{
		authhandler.NewSessionHandler(tokens, auth.NewCookiePolicy(cfg.IsProduction()), cfg.Log),
		roomhandler.NewRoomHandler(roomService, mutationGuard, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, gate.Require, mutationGuard, cfg.Log),
	}
}
