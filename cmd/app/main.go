package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"laundry/cmd"
	httpadapter "laundry/internal/adapters/in/http"
	"laundry/internal/adapters/out/postgres/assignmentrepo"
	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/adapters/out/rabbitmq"
	"laundry/internal/core/ports"
	"laundry/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultStaleOrderThreshold = 2 * time.Hour

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	notifier := createNotifier(configs, logger)

	app := cmd.NewCompositionRoot(configs, gormDB, notifier, logger)

	jobManager := jobs.NewJobManager(
		app.CreateGetStaleOrdersQueryHandler(),
		staleOrderThreshold(configs, logger),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		RabbitMQURL:         goDotEnvVariable("RABBITMQ_URL"),
		StaleOrderThreshold: goDotEnvVariable("STALE_ORDER_THRESHOLD"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.HistoryDTO{},
		&assignmentrepo.AssignmentDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return gormDB
}

// createNotifier returns the RabbitMQ publisher, or a no-op one when no
// broker is configured. The engine runs fine without notifications.
func createNotifier(configs cmd.Config, logger *slog.Logger) ports.StatusNotifier {
	if configs.RabbitMQURL == "" {
		logger.Warn("RABBITMQ_URL is not set, status notifications are disabled")
		return ports.NoopStatusNotifier{}
	}

	notifier, err := rabbitmq.NewNotifier(configs.RabbitMQURL)
	if err != nil {
		log.Fatalf("Error connecting to rabbitmq: %v", err)
	}
	return notifier
}

func staleOrderThreshold(configs cmd.Config, logger *slog.Logger) time.Duration {
	if configs.StaleOrderThreshold == "" {
		return defaultStaleOrderThreshold
	}

	threshold, err := time.ParseDuration(configs.StaleOrderThreshold)
	if err != nil || threshold <= 0 {
		logger.Warn("Invalid STALE_ORDER_THRESHOLD, using default",
			"value", configs.StaleOrderThreshold,
			"default", defaultStaleOrderThreshold.String())
		return defaultStaleOrderThreshold
	}
	return threshold
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpadapter.NewServer(
		app.CreateApplyTransitionCommandHandler(),
		app.CreateGetAllowedTransitionsQueryHandler(),
		app.CreateGetTeamOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
