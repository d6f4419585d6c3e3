package main

import (
	"carepulse-service/internal/app/config"
	"carepulse-service/internal/app/drivers/database"
	"carepulse-service/internal/app/drivers/logger"
	"carepulse-service/internal/app/services/core/appointments"
	"carepulse-service/internal/app/services/core/identities"
	"carepulse-service/internal/app/services/core/patients"
	"context"
	"log"
	"time"

	"go.uber.org/zap"
)

// main creates the MongoDB indexes without starting the server.
func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	logger := logger.NewZapLogger(driverConfig, internalConfig)

	mongoDB := database.NewMongoDB(driverConfig)
	dbName := internalConfig.MongoDB.CarepulseDBName

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	err := database.EnsureIndexes(ctx, logger,
		identities.NewIdentityMongoRepository(mongoDB, dbName),
		patients.NewPatientMongoRepository(mongoDB, dbName),
		appointments.NewAppointmentMongoRepository(mongoDB, dbName),
	)
	if err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}

	if err := mongoDB.Disconnect(ctx); err != nil {
		log.Printf("Failed to disconnect MongoDB: %v", err)
	}
	_ = logger.Sync()
	log.Println("Migration finished")
}
