package database

import (
	"errors"
	"testing"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "github.com/yourusername/quiz-store/internal/pkg/errors"
)

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(Options{Driver: DriverSQLite, DSN: "file::memory:?_foreign_keys=on"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(Options{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}

func TestOpen_SingleConnection(t *testing.T) {
	db := openMemory(t)

	sqlDB, err := GetSQLDB(db)
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections, "По умолчанию используется одно соединение")
}

func TestMigrateDB_SQLite(t *testing.T) {
	// Arrange
	db := openMemory(t)

	// Act
	require.NoError(t, MigrateDB(db, DriverSQLite, discardLogger()))
	// повторный запуск не должен падать (ErrNoChange)
	require.NoError(t, MigrateDB(db, DriverSQLite, discardLogger()))

	// Assert
	version, dirty, err := MigrationVersion(db, DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	for _, table := range []string{"theme", "question", "answer", "statistic"} {
		assert.True(t, db.Migrator().HasTable(table), "Таблица %s должна существовать", table)
	}
}

func TestForceVersion_SQLite(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, MigrateDB(db, DriverSQLite, discardLogger()))

	require.NoError(t, ForceVersion(db, DriverSQLite, 1, discardLogger()))

	version, dirty, err := MigrationVersion(db, DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
}

func TestClassify_ForeignKeyViolationFromSQLite(t *testing.T) {
	// Arrange
	db := openMemory(t)
	require.NoError(t, MigrateDB(db, DriverSQLite, discardLogger()))

	// Act: вопрос ссылается на несуществующую тему
	err := db.Exec("INSERT INTO question (theme_id, title, text) VALUES (?, ?, ?)", 999, "Q", "T").Error

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, Classify(err), apperrors.ErrInvalidReference)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "record not found", err: gorm.ErrRecordNotFound, want: apperrors.ErrNotFound},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, want: apperrors.ErrConflict},
		{name: "gorm foreign key", err: gorm.ErrForeignKeyViolated, want: apperrors.ErrInvalidReference},
		{name: "pgx unique", err: &pgconn.PgError{Code: "23505"}, want: apperrors.ErrConflict},
		{name: "pgx foreign key", err: &pgconn.PgError{Code: "23503"}, want: apperrors.ErrInvalidReference},
		{name: "pq unique", err: &pq.Error{Code: "23505"}, want: apperrors.ErrConflict},
		{name: "mysql duplicate", err: &mysqlDriver.MySQLError{Number: 1062}, want: apperrors.ErrConflict},
		{name: "mysql no parent", err: &mysqlDriver.MySQLError{Number: 1452}, want: apperrors.ErrInvalidReference},
		{name: "sqlite unique", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, want: apperrors.ErrConflict},
		{name: "sqlite foreign key", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, want: apperrors.ErrInvalidReference},
		{name: "прочая ошибка", err: errors.New("connection reset"), want: apperrors.ErrStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}

	assert.NoError(t, Classify(nil))
}

func TestClassify_HidesDriverChain(t *testing.T) {
	driverErr := &pgconn.PgError{Code: "08006", Message: "connection failure"}

	got := Classify(driverErr)

	assert.ErrorIs(t, got, apperrors.ErrStore)
	var pgErr *pgconn.PgError
	assert.False(t, errors.As(got, &pgErr), "Ошибка драйвера не должна быть доступна через errors.As")
	assert.Contains(t, got.Error(), "connection failure")
}
