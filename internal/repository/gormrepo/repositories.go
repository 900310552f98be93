package gormrepo

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-store/internal/domain/repository"
	"github.com/yourusername/quiz-store/pkg/database"
	"github.com/yourusername/quiz-store/pkg/metrics"
)

// NewRepositories создает набор репозиториев поверх одного подключения (или транзакции)
func NewRepositories(db *gorm.DB, log logrus.FieldLogger, m *metrics.StoreMetrics) repository.Repositories {
	return repository.Repositories{
		Themes:     NewThemeRepo(db, log, m),
		Questions:  NewQuestionRepo(db, log, m),
		Answers:    NewAnswerRepo(db, log, m),
		Statistics: NewStatisticRepo(db, log, m),
	}
}

// Transactor реализует repository.Transactor через gorm.DB.Transaction
type Transactor struct {
	db      *gorm.DB
	log     logrus.FieldLogger
	metrics *metrics.StoreMetrics
}

// NewTransactor создает Transactor
func NewTransactor(db *gorm.DB, log logrus.FieldLogger, m *metrics.StoreMetrics) *Transactor {
	return &Transactor{db: db, log: log, metrics: m}
}

// WithinTransaction выполняет fn в транзакции. Ошибка fn откатывает транзакцию.
func (t *Transactor) WithinTransaction(fn func(repos repository.Repositories) error) error {
	start := time.Now()
	err := t.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx, t.log, t.metrics))
	})

	classified := database.Classify(err)
	t.metrics.Observe("tx", "transaction", classified, time.Since(start))
	// ошибки репозиториев уже залогированы; сюда доходят только ошибки begin/commit
	if classified != nil && classified != err {
		t.log.WithField("op", "transaction").WithError(err).Error("transaction failed")
	}
	return classified
}
