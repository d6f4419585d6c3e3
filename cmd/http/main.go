package main

import (
	"carepulse-service/internal/app/config"
	"carepulse-service/internal/app/contracts"
	"carepulse-service/internal/app/delivery/http/controllers"
	"carepulse-service/internal/app/delivery/http/middlewares"
	"carepulse-service/internal/app/delivery/http/routers"
	"carepulse-service/internal/app/drivers/database"
	"carepulse-service/internal/app/drivers/logger"
	"carepulse-service/internal/app/drivers/messaging"
	"carepulse-service/internal/app/drivers/storage"
	"carepulse-service/internal/app/forms"
	"carepulse-service/internal/app/services/core/appointments"
	"carepulse-service/internal/app/services/core/identities"
	"carepulse-service/internal/app/services/core/patients"
	"carepulse-service/internal/app/services/shared/formtoken"
	"carepulse-service/internal/app/services/shared/locker"
	"carepulse-service/internal/app/services/shared/notification"
	"carepulse-service/internal/app/services/shared/redis"
	minioStorage "carepulse-service/internal/app/services/shared/storage"
	"carepulse-service/internal/app/services/shared/submission"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	logger := logger.NewZapLogger(driverConfig, internalConfig)
	logger.Info("Starting carepulse-service",
		zap.String("version", Version),
		zap.String("tag", Tag),
		zap.String("env", internalConfig.App.Env),
	)

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	storage.EnsureBucket(minioClient, internalConfig.Minio.BucketName)

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Logger:         logger,
		RabbitMQ:       rabbitMQ,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	if err := bootstrapingTheApp(bootstrap, minioStorage.NewMinioStorage(minioClient)); err != nil {
		logger.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler: bootstrap.Router,
	}

	go func() {
		logger.Info("Server listening", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logger.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Failed to close dependencies: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap, storageService contracts.Storage) error {
	logger := bootstrap.Logger
	internalConfig := bootstrap.InternalConfig
	dbName := internalConfig.MongoDB.CarepulseDBName

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockerService(redisRepository, logger)
	submissionGuard := submission.NewSubmissionGuard(
		lockerService,
		logger,
		time.Duration(internalConfig.FormToken.BusyTTLInSeconds)*time.Second,
	)

	// Form tokens
	formTokenService, err := formtoken.NewFormTokenService(
		internalConfig.FormToken.Secret,
		time.Duration(internalConfig.FormToken.ExpTimeInMinutes)*time.Minute,
	)
	if err != nil {
		return err
	}

	// Notifications
	notificationPublisher, err := notification.NewSMSQueuePublisher(bootstrap.RabbitMQ, logger, internalConfig.RabbitMQ.SMSQueue)
	if err != nil {
		return err
	}

	// Repositories
	identityMongoRepository := identities.NewIdentityMongoRepository(bootstrap.MongoDB, dbName)
	patientMongoRepository := patients.NewPatientMongoRepository(bootstrap.MongoDB, dbName)
	appointmentMongoRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB, dbName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err = database.EnsureIndexes(ctx, logger, identityMongoRepository, patientMongoRepository, appointmentMongoRepository)
	if err != nil {
		return err
	}

	// Usecases
	identityUsecase := identities.NewIdentityUsecase(identityMongoRepository, logger)
	patientUsecase := patients.NewPatientUsecase(patientMongoRepository, storageService, internalConfig, logger)
	appointmentUsecase := appointments.NewAppointmentUsecase(appointmentMongoRepository, identityMongoRepository, notificationPublisher, logger)

	// Forms
	renderer, err := forms.NewRenderer()
	if err != nil {
		return err
	}
	formController := controllers.NewFormController(
		logger,
		internalConfig,
		formTokenService,
		submissionGuard,
		identityUsecase,
		patientUsecase,
		appointmentUsecase,
		renderer,
	)

	middlewares := middlewares.NewMiddlewares(logger, internalConfig)
	routers.SetupRoutes(bootstrap.Router, internalConfig, middlewares, formController)
	return nil
}
