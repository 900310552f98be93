// Package logger создает логгеры logrus с JSON-форматом и уровнем из LOG_LEVEL.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New создает логгер компонента. Уровень берется из переменной окружения LOG_LEVEL.
// Логи пишутся в stderr, stdout остается для вывода команд.
func New(component string) *logrus.Entry {
	return NewWithLevel(component, os.Getenv("LOG_LEVEL"))
}

// NewWithLevel создает логгер компонента с явно заданным уровнем
// (debug, info, warn, error). Неизвестный уровень трактуется как info.
func NewWithLevel(component, level string) *logrus.Entry {
	log := logrus.New()

	log.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	log.SetOutput(os.Stderr)
	log.SetLevel(ParseLevel(level))

	return log.WithField("component", component)
}

// ParseLevel переводит строковый уровень в logrus.Level
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Discard возвращает логгер, который ничего не пишет. Используется в тестах.
func Discard() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}
