package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/yourusername/quiz-store/internal/service/stats"
	"github.com/yourusername/quiz-store/pkg/database"
)

// Config хранит все настройки приложения
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Stats    StatsConfig    `mapstructure:"stats"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// DatabaseConfig содержит настройки подключения к хранилищу
type DatabaseConfig struct {
	// Driver: "postgres", "mysql" (MariaDB) или "sqlite"
	Driver   string `mapstructure:"driver" validate:"required,oneof=postgres mysql sqlite"`
	Host     string `mapstructure:"host" validate:"required_unless=Driver sqlite"`
	Port     string `mapstructure:"port" validate:"required_unless=Driver sqlite"`
	User     string `mapstructure:"user" validate:"required_unless=Driver sqlite"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname" validate:"required_unless=Driver sqlite"`
	SSLMode  string `mapstructure:"sslmode"`

	// Path: файл базы sqlite (":memory:" для хранилища в памяти)
	Path string `mapstructure:"path" validate:"required_if=Driver sqlite"`

	// MaxOpenConns: по умолчанию 1, хранилище работает через одно общее соединение
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=1"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// LogConfig содержит настройки логирования
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
}

// StatsConfig содержит настройки агрегации статистики
type StatsConfig struct {
	// TimeZone: зона, в которой определяются дни и недели (IANA, например "Europe/Berlin")
	TimeZone string `mapstructure:"timezone"`
	// WeekRule: "iso", "de" (понедельник, 4 дня) или "us" (воскресенье, 1 день)
	WeekRule string `mapstructure:"week_rule" validate:"oneof=iso de us"`
}

// MetricsConfig содержит настройки метрик
type MetricsConfig struct {
	Namespace string `mapstructure:"namespace" validate:"required"`
}

// DSN формирует строку подключения для выбранного драйвера
func (d *DatabaseConfig) DSN() string {
	switch database.Driver(d.Driver) {
	case database.DriverMySQL:
		cfg := mysqlDriver.NewConfig()
		cfg.User = d.User
		cfg.Passwd = d.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(d.Host, d.Port)
		cfg.DBName = d.DBName
		cfg.ParseTime = true
		cfg.MultiStatements = true
		cfg.ClientFoundRows = true
		cfg.Params = map[string]string{"charset": "utf8mb4"}
		return cfg.FormatDSN()
	case database.DriverSQLite:
		return fmt.Sprintf("file:%s?_foreign_keys=on", d.Path)
	default:
		return d.PostgresConnectionString()
	}
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Options переводит конфигурацию в параметры database.Open
func (d *DatabaseConfig) Options(log logrus.FieldLogger) database.Options {
	return database.Options{
		Driver:          database.Driver(d.Driver),
		DSN:             d.DSN(),
		MaxOpenConns:    d.MaxOpenConns,
		ConnMaxLifetime: d.ConnMaxLifetime,
		Logger:          log,
	}
}

// Location возвращает часовой пояс статистики; пустая зона означает time.Local
func (s StatsConfig) Location() (*time.Location, error) {
	if s.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid stats timezone %q: %w", s.TimeZone, err)
	}
	return loc, nil
}

// Rule возвращает правило нумерации недель
func (s StatsConfig) Rule() stats.WeekRule {
	switch strings.ToLower(s.WeekRule) {
	case "de":
		return stats.GermanWeekRule
	case "us":
		return stats.USWeekRule
	default:
		return stats.ISOWeekRule
	}
}

// Load загружает конфигурацию из файла (если он задан) и переменных окружения
func Load(configPath string, log logrus.FieldLogger) (*Config, error) {
	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния

	// 1. Значения по умолчанию
	vip.SetDefault("database.driver", string(database.DriverPostgres))
	vip.SetDefault("database.host", "localhost")
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.path", "quiz.db")
	vip.SetDefault("database.max_open_conns", 1)
	vip.SetDefault("log.level", "info")
	vip.SetDefault("stats.week_rule", "iso")
	vip.SetDefault("metrics.namespace", "quiz")

	// 2. Привязываем переменные окружения ЯВНО
	_ = vip.BindEnv("database.driver", "DATABASE_DRIVER")
	_ = vip.BindEnv("database.host", "DATABASE_HOST")
	_ = vip.BindEnv("database.port", "DATABASE_PORT")
	_ = vip.BindEnv("database.user", "DATABASE_USER")
	_ = vip.BindEnv("database.password", "DATABASE_PASSWORD")
	_ = vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	_ = vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	_ = vip.BindEnv("database.path", "DATABASE_PATH")
	_ = vip.BindEnv("database.max_open_conns", "DATABASE_MAX_OPEN_CONNS")
	_ = vip.BindEnv("database.conn_max_lifetime", "DATABASE_CONN_MAX_LIFETIME")

	_ = vip.BindEnv("log.level", "LOG_LEVEL")
	_ = vip.BindEnv("stats.timezone", "STATS_TIMEZONE")
	_ = vip.BindEnv("stats.week_rule", "STATS_WEEK_RULE")
	_ = vip.BindEnv("metrics.namespace", "METRICS_NAMESPACE")

	// 3. Файл конфигурации необязателен: при его отсутствии работают env и умолчания
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				log.Infof("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.WithError(err).Warnf("Не удалось прочитать файл конфигурации '%s'", configPath)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"db_driver":    cfg.Database.Driver,
		"db_host":      cfg.Database.Host,
		"db_name":      cfg.Database.DBName,
		"db_path":      cfg.Database.Path,
		"password_set": cfg.Database.Password != "",
		"week_rule":    cfg.Stats.WeekRule,
		"timezone":     cfg.Stats.TimeZone,
	}).Debug("Загруженные значения конфигурации")

	return &cfg, nil
}

// Validate проверяет обязательные параметры конфигурации
func Validate(cfg *Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := cfg.Stats.Location(); err != nil {
		return err
	}
	return nil
}
