package repositories

import (
	"strings"

	"qna-board/helper"
	"qna-board/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionRepository interface {
	Create(question *models.Question) error
	GetByID(id uint) (*models.Question, error)
	GetList(params models.QuestionListParams) ([]models.Question, int64, error)
	Update(question *models.Question) error
	Delete(id uint) error
	IncrementReads(id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *models.Question) error {
	return r.db.Omit(clause.Associations).Create(question).Error
}

func (r *questionRepository) GetByID(id uint) (*models.Question, error) {
	var question models.Question
	err := r.db.Preload("Author").First(&question, id).Error
	return &question, err
}

func (r *questionRepository) GetList(params models.QuestionListParams) ([]models.Question, int64, error) {
	var questions []models.Question
	var total int64

	search := matchTerm(params.Term)

	if err := r.db.Model(&models.Question{}).Scopes(search).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (params.Page - 1) * params.Limit
	err := r.db.Scopes(search).
		Preload("Author").
		Order("created_at desc").
		Order("id desc").
		Offset(offset).
		Limit(params.Limit).
		Find(&questions).Error

	return questions, total, err
}

// Update writes the editable columns only, so concurrent counter increments
// are never overwritten with a stale value.
func (r *questionRepository) Update(question *models.Question) error {
	return r.db.Model(question).
		Select(append(models.EditableColumns, "updated_at")).
		Omit(clause.Associations).
		Updates(question).Error
}

func (r *questionRepository) Delete(id uint) error {
	return r.db.Delete(&models.Question{}, id).Error
}

func (r *questionRepository) IncrementReads(id uint) error {
	res := r.db.Model(&models.Question{}).
		Where("id = ?", id).
		UpdateColumn("num_reads", gorm.Expr("num_reads + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// matchTerm filters on a case-insensitive substring of title or content. The
// term is matched literally. On SQLite, LOWER is the Unicode-aware function
// registered by config.SQLite.
func matchTerm(term string) func(*gorm.DB) *gorm.DB {
	term = strings.TrimSpace(term)
	return func(db *gorm.DB) *gorm.DB {
		if term == "" {
			return db
		}
		pattern := "%" + likeEscaper.Replace(helper.FoldCase(term)) + "%"
		return db.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
}
