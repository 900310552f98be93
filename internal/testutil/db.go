// Package testutil содержит вспомогательные функции для тестов с хранилищем.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-store/pkg/database"
	"github.com/yourusername/quiz-store/pkg/logger"
)

// SQLiteMemoryDSN - DSN хранилища в памяти с включенными внешними ключами
const SQLiteMemoryDSN = "file::memory:?_foreign_keys=on"

// OpenSQLite открывает чистое хранилище sqlite в памяти с примененными миграциями.
// Хранилище закрывается автоматически по окончании теста.
func OpenSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(database.Options{
		Driver:       database.DriverSQLite,
		DSN:          SQLiteMemoryDSN,
		MaxOpenConns: 1,
	})
	require.NoError(t, err, "Не удалось открыть sqlite в памяти")
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.MigrateDB(db, database.DriverSQLite, logger.Discard()))
	return db
}
