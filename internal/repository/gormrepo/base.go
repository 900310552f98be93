// Package gormrepo реализует репозитории хранилища викторин на gorm.
// Один и тот же код работает с postgres, mysql и sqlite.
package gormrepo

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	apperrors "github.com/yourusername/quiz-store/internal/pkg/errors"
	"github.com/yourusername/quiz-store/pkg/database"
	"github.com/yourusername/quiz-store/pkg/metrics"
)

type base struct {
	db      *gorm.DB
	log     logrus.FieldLogger
	metrics *metrics.StoreMetrics
	repo    string
}

func newBase(db *gorm.DB, log logrus.FieldLogger, m *metrics.StoreMetrics, repo string) base {
	return base{db: db, log: log.WithField("repo", repo), metrics: m, repo: repo}
}

// finish классифицирует ошибку хранилища, пишет ее в лог и учитывает операцию в метриках
func (b base) finish(op string, start time.Time, err error, fields logrus.Fields) error {
	classified := database.Classify(err)
	b.metrics.Observe(b.repo, op, classified, time.Since(start))
	if classified == nil {
		return nil
	}

	entry := b.log.WithField("op", op).WithFields(fields)
	switch {
	case errors.Is(classified, apperrors.ErrNotFound):
		entry.Debug("record not found")
	case errors.Is(classified, apperrors.ErrInvalidReference):
		entry.WithError(err).Warn("invalid reference")
	default:
		entry.WithError(err).Error("store operation failed")
	}
	return classified
}

// affected превращает UPDATE/DELETE без затронутых строк в ErrRecordNotFound
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
