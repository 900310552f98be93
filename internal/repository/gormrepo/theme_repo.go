package gormrepo

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-store/internal/domain/entity"
	"github.com/yourusername/quiz-store/pkg/metrics"
)

// ThemeRepo реализует repository.ThemeRepository
type ThemeRepo struct {
	base
}

// NewThemeRepo создает новый репозиторий тем
func NewThemeRepo(db *gorm.DB, log logrus.FieldLogger, m *metrics.StoreMetrics) *ThemeRepo {
	return &ThemeRepo{base: newBase(db, log, m, "theme")}
}

// GetByID возвращает тему по ID
func (r *ThemeRepo) GetByID(id int64) (*entity.Theme, error) {
	start := time.Now()
	var theme entity.Theme
	if err := r.db.First(&theme, id).Error; err != nil {
		return nil, r.finish("get_by_id", start, err, logrus.Fields{"theme_id": id})
	}
	return &theme, r.finish("get_by_id", start, nil, nil)
}

// List возвращает все темы, упорядоченные по id
func (r *ThemeRepo) List() ([]entity.Theme, error) {
	start := time.Now()
	var themes []entity.Theme
	if err := r.db.Order("id").Find(&themes).Error; err != nil {
		return nil, r.finish("list", start, err, nil)
	}
	return themes, r.finish("list", start, nil, nil)
}

// Create вставляет тему и записывает сгенерированный id
func (r *ThemeRepo) Create(theme *entity.Theme) error {
	start := time.Now()
	prevID := theme.ID
	theme.ID = 0
	if err := r.db.Create(theme).Error; err != nil {
		theme.ID = prevID
		return r.finish("create", start, err, logrus.Fields{"title": theme.Title})
	}
	return r.finish("create", start, nil, nil)
}

// Update обновляет заголовок и описание темы
func (r *ThemeRepo) Update(theme *entity.Theme) error {
	start := time.Now()
	res := r.db.Model(&entity.Theme{}).Where("id = ?", theme.ID).Updates(map[string]interface{}{
		"title": theme.Title,
		"text":  theme.Text,
	})
	return r.finish("update", start, affected(res), logrus.Fields{"theme_id": theme.ID})
}

// Delete удаляет тему; вопросы и ответы удаляются каскадом
func (r *ThemeRepo) Delete(id int64) error {
	start := time.Now()
	res := r.db.Delete(&entity.Theme{}, id)
	return r.finish("delete", start, affected(res), logrus.Fields{"theme_id": id})
}
