package database

import (
	"context"
	"embed"
	"errors"
	"fmt"

	migrateV4 "github.com/golang-migrate/migrate/v4"
	migrateMysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratePostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migrateSqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// migrationsFS содержит SQL-миграции для каждого диалекта в migrations/<driver>
//
//go:embed migrations
var migrationsFS embed.FS

// MigrateDB применяет миграции "вверх" для выбранного диалекта
func MigrateDB(db *gorm.DB, driver Driver, log logrus.FieldLogger) error {
	log.WithField("driver", driver).Info("Запуск применения миграций базы данных...")

	m, release, err := newMigrate(db, driver)
	if err != nil {
		return err
	}
	defer release()

	err = m.Up()
	if err != nil && !errors.Is(err, migrateV4.ErrNoChange) {
		log.WithError(err).Error("Ошибка применения миграций")
		return fmt.Errorf("failed to apply migrations: %w", err)
	} else if errors.Is(err, migrateV4.ErrNoChange) {
		log.Info("Изменений в миграциях не найдено, база данных уже актуальна.")
	} else {
		log.Info("Миграции успешно применены.")
	}
	return nil
}

// ForceVersion принудительно выставляет версию миграций и снимает флаг dirty
func ForceVersion(db *gorm.DB, driver Driver, version int, log logrus.FieldLogger) error {
	m, release, err := newMigrate(db, driver)
	if err != nil {
		return err
	}
	defer release()

	log.WithFields(logrus.Fields{"driver": driver, "version": version}).Warn("Принудительная установка версии миграций")
	if err := m.Force(version); err != nil {
		return fmt.Errorf("failed to force migration version %d: %w", version, err)
	}
	return nil
}

// MigrationVersion возвращает текущую версию схемы и флаг dirty
func MigrationVersion(db *gorm.DB, driver Driver) (uint, bool, error) {
	m, release, err := newMigrate(db, driver)
	if err != nil {
		return 0, false, err
	}
	defer release()

	version, dirty, err := m.Version()
	if errors.Is(err, migrateV4.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, dirty, nil
}

// newMigrate создает экземпляр migrate поверх уже открытого пула.
// Для postgres и mysql берется отдельное *sql.Conn, поэтому release закрывает только его.
// Драйвер sqlite3 при Close закрывает весь *sql.DB, поэтому для него закрывается лишь источник.
func newMigrate(db *gorm.DB, driver Driver) (*migrateV4.Migrate, func(), error) {
	sqlDB, err := GetSQLDB(db)
	if err != nil {
		return nil, nil, err
	}

	src, err := iofs.New(migrationsFS, "migrations/"+string(driver))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open embedded migrations for %s: %w", driver, err)
	}

	ctx := context.Background()
	switch driver {
	case DriverPostgres, DriverMySQL:
		conn, err := sqlDB.Conn(ctx)
		if err != nil {
			_ = src.Close()
			return nil, nil, fmt.Errorf("failed to acquire connection for migrate: %w", err)
		}

		var m *migrateV4.Migrate
		if driver == DriverPostgres {
			var drv *migratePostgres.Postgres
			drv, err = migratePostgres.WithConnection(ctx, conn, &migratePostgres.Config{})
			if err == nil {
				m, err = migrateV4.NewWithInstance("iofs", src, string(driver), drv)
			}
		} else {
			var drv *migrateMysql.Mysql
			drv, err = migrateMysql.WithConnection(ctx, conn, &migrateMysql.Config{})
			if err == nil {
				m, err = migrateV4.NewWithInstance("iofs", src, string(driver), drv)
			}
		}
		if err != nil {
			_ = conn.Close()
			_ = src.Close()
			return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
		}
		return m, func() { _, _ = m.Close() }, nil

	case DriverSQLite:
		drv, err := migrateSqlite.WithInstance(sqlDB, &migrateSqlite.Config{})
		if err != nil {
			_ = src.Close()
			return nil, nil, fmt.Errorf("failed to create sqlite3 driver for migrate: %w", err)
		}
		m, err := migrateV4.NewWithInstance("iofs", src, string(driver), drv)
		if err != nil {
			_ = src.Close()
			return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
		}
		return m, func() { _ = src.Close() }, nil

	default:
		_ = src.Close()
		return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
