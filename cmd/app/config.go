package main

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"

	"github.com/webblog/api/internal/common"
)

const (
	parameterSourceSSM = "ssm"
	parameterSourceEnv = "env"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	Version     string `mapstructure:"VERSION"`

	ParameterSource string `mapstructure:"PARAMETER_SOURCE"`
	ParameterPrefix string `mapstructure:"PARAMETER_PREFIX"`
	AWSRegion       string `mapstructure:"AWS_REGION"`

	DB struct {
		Driver       string        `mapstructure:"DB_DRIVER"`
		SSLMode      string        `mapstructure:"DB_SSLMODE"`
		MaxOpenConns int           `mapstructure:"DB_MAX_OPEN_CONNS"`
		MaxIdleConns int           `mapstructure:"DB_MAX_IDLE_CONNS"`
		MaxIdleTime  time.Duration `mapstructure:"DB_MAX_IDLE_TIME"`

		// only read when PARAMETER_SOURCE=env
		Host     string `mapstructure:"DB_HOST"`
		Port     string `mapstructure:"DB_PORT"`
		User     string `mapstructure:"DB_USER"`
		Password string `mapstructure:"DB_PASSWORD"`
		Name     string `mapstructure:"DB_NAME"`
	} `mapstructure:",squash"`

	Mail struct {
		Host     string `mapstructure:"MAIL_HOST"`
		Port     int    `mapstructure:"MAIL_PORT"`
		User     string `mapstructure:"MAIL_USER"`
		Password string `mapstructure:"MAIL_PASSWORD"`
		Sender   string `mapstructure:"MAIL_SENDER"`
	} `mapstructure:",squash"`

	RabbitMQ struct {
		Host     string `mapstructure:"RABBITMQ_HOST"`
		Port     string `mapstructure:"RABBITMQ_PORT"`
		User     string `mapstructure:"RABBITMQ_USER"`
		Password string `mapstructure:"RABBITMQ_PASSWORD"`
	} `mapstructure:",squash"`
}

// defaults registers every key so AutomaticEnv can override it even when the
// config file does not mention it.
var defaults = map[string]any{
	"PORT":              "5000",
	"ENVIRONMENT":       "development",
	"VERSION":           "",
	"PARAMETER_SOURCE":  parameterSourceSSM,
	"PARAMETER_PREFIX":  "/webblog/db",
	"AWS_REGION":        "ap-southeast-1",
	"DB_DRIVER":         string(common.DriverPostgres),
	"DB_SSLMODE":        "disable",
	"DB_MAX_OPEN_CONNS": 25,
	"DB_MAX_IDLE_CONNS": 25,
	"DB_MAX_IDLE_TIME":  "15m",
	"DB_HOST":           "",
	"DB_PORT":           "",
	"DB_USER":           "",
	"DB_PASSWORD":       "",
	"DB_NAME":           "",
	"MAIL_HOST":         "",
	"MAIL_PORT":         587,
	"MAIL_USER":         "",
	"MAIL_PASSWORD":     "",
	"MAIL_SENDER":       "",
	"RABBITMQ_HOST":     "",
	"RABBITMQ_PORT":     "5672",
	"RABBITMQ_USER":     "guest",
	"RABBITMQ_PASSWORD": "guest",
}

// loadConfig reads the dotenv file at path, then lets environment variables
// override it. A missing file is not an error.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	switch common.Driver(c.DB.Driver) {
	case common.DriverPostgres, common.DriverMySQL:
	default:
		return fmt.Errorf("%w: %q", common.ErrUnsupportedDriver, c.DB.Driver)
	}

	switch c.ParameterSource {
	case parameterSourceSSM, parameterSourceEnv:
	default:
		return fmt.Errorf("unknown parameter source %q", c.ParameterSource)
	}

	return nil
}

func (c *Config) brokerEnabled() bool {
	return c.RabbitMQ.Host != ""
}

func (c *Config) mailEnabled() bool {
	return c.brokerEnabled() && c.Mail.Host != ""
}

func (c *Config) rabbitMQURI() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}

// dbConfig combines the remote connection parameters with the local pool settings.
func (c *Config) dbConfig(p *common.DBParams) common.DBConfig {
	return common.DBConfig{
		Driver:       common.Driver(c.DB.Driver),
		Host:         p.Host,
		Port:         p.Port,
		User:         p.User,
		Password:     p.Password,
		Name:         p.Database,
		SSLMode:      c.DB.SSLMode,
		MaxOpenConns: c.DB.MaxOpenConns,
		MaxIdleConns: c.DB.MaxIdleConns,
		MaxIdleTime:  c.DB.MaxIdleTime,
	}
}
