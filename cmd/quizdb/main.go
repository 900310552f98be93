// Команда quizdb обслуживает хранилище викторины: миграции схемы, демонстрационные данные
// и выгрузку статистики точности ответов.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-store/internal/config"
	"github.com/yourusername/quiz-store/internal/repository/gormrepo"
	"github.com/yourusername/quiz-store/internal/service"
	"github.com/yourusername/quiz-store/pkg/database"
	"github.com/yourusername/quiz-store/pkg/logger"
	"github.com/yourusername/quiz-store/pkg/metrics"
)

const usage = `usage: quizdb [-config path] <command> [args]

commands:
  migrate               apply all pending migrations
  version               print the current schema version
  force <version>       set the schema version and clear the dirty flag
  seed [-rounds n]      insert demo content and play n random rounds
  stats                 print accuracy per day, week and theme
  export <file.xlsx>    write the accuracy workbook
`

var errUsage = errors.New("invalid arguments")

// app - зависимости, общие для всех подкоманд
type app struct {
	cfg  *config.Config
	log  *logrus.Entry
	db   *gorm.DB
	data *service.DataManager
}

func main() {
	// .env необязателен, переменные окружения имеют приоритет
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		fmt.Fprintf(os.Stderr, "quizdb: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("quizdb", flag.ContinueOnError)
	configPath := fs.String("config", defaultConfigPath(), "path to the config file")
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage) }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	a, err := newApp(*configPath)
	if err != nil {
		return err
	}
	defer a.close()

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "migrate":
		return database.MigrateDB(a.db, a.driver(), a.log)
	case "version":
		return a.version()
	case "force":
		return a.force(rest)
	}

	// Остальные команды работают с данными и требуют актуальной схемы
	if err := a.prepare(); err != nil {
		return err
	}

	switch cmd {
	case "seed":
		return a.seed(rest)
	case "stats":
		return a.printStats(os.Stdout, rest)
	case "export":
		return a.export(rest)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// newApp загружает конфигурацию и открывает хранилище
func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath, logger.New("quizdb"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.NewWithLevel("quizdb", cfg.Log.Level)

	db, err := database.Open(cfg.Database.Options(log))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &app{cfg: cfg, log: log, db: db}, nil
}

func (a *app) close() {
	if err := database.Close(a.db); err != nil {
		a.log.WithError(err).Warn("failed to close database")
	}
}

func (a *app) driver() database.Driver {
	return database.Driver(a.cfg.Database.Driver)
}

// prepare применяет миграции и собирает репозитории и сервисы
func (a *app) prepare() error {
	if err := database.MigrateDB(a.db, a.driver(), a.log); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	storeMetrics := metrics.NewStoreMetrics(a.cfg.Metrics.Namespace, prometheus.NewRegistry())
	repos := gormrepo.NewRepositories(a.db, a.log, storeMetrics)
	tx := gormrepo.NewTransactor(a.db, a.log, storeMetrics)
	a.data = service.NewDataManager(repos, tx, a.log)
	return nil
}

func defaultConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config/config.yaml"
}
