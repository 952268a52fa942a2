package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/webblog/api/internal/blogservice"
	"github.com/webblog/api/internal/common"
	"github.com/webblog/api/internal/mailservice"
	"github.com/webblog/api/internal/userservice"
)

type application struct {
	config      *Config
	logger      *slog.Logger
	userService *userservice.UserService
	blogService *blogservice.BlogService
}

func main() {
	configPath := flag.String("config", ".env", "path to the dotenv configuration file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := run(*configPath, logger); err != nil {
		logger.Error("exiting", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run returns instead of exiting so the deferred closes always execute.
func run(configPath string, logger *slog.Logger) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// No listener is opened until the parameters are loaded and the database answers.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	params, err := loadDBParams(ctx, cfg, nil)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to load database parameters from %s: %w", cfg.ParameterSource, err)
	}

	db, err := common.NewDB(cfg.dbConfig(params))
	if err != nil {
		return fmt.Errorf("failed to connect to the %s database at %s: %w", cfg.DB.Driver, params.Host, err)
	}
	defer common.CloseDB(db)

	logger.Info("database connection established", slog.String("driver", cfg.DB.Driver), slog.String("host", params.Host), slog.String("database", params.Database))

	var producer common.MessageProducer
	if cfg.brokerEnabled() {
		broker, err := common.NewMessageBroker(cfg.rabbitMQURI())
		if err != nil {
			return fmt.Errorf("failed to connect to the message broker: %w", err)
		}
		defer broker.Close()

		err = common.SetupUserExchange(broker)
		if err != nil {
			return fmt.Errorf("failed to setup the user exchange: %w", err)
		}
		producer = broker

		if cfg.mailEnabled() {
			mailService := mailservice.NewMailService(broker, mailservice.Config{
				Host:     cfg.Mail.Host,
				Port:     cfg.Mail.Port,
				Username: cfg.Mail.User,
				Password: cfg.Mail.Password,
				Sender:   cfg.Mail.Sender,
			}, logger)

			err = mailService.SendWelcomeEmail()
			if err != nil {
				return fmt.Errorf("failed to start the welcome email consumer: %w", err)
			}
			defer mailService.Close()
		}
	}

	app := &application{
		config:      cfg,
		logger:      logger,
		userService: userservice.NewUserService(db, producer, logger),
		blogService: blogservice.NewBlogService(db),
	}

	return app.serve()
}
