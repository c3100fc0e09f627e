package repositories

import (
	"qna-board/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepository interface {
	CreateForQuestion(answer *models.Answer) error
	GetByID(id uint) (*models.Answer, error)
	GetByQuestionID(questionID uint) ([]models.Answer, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

// CreateForQuestion inserts the answer and bumps the parent's answer counter in
// one transaction. A missing or deleted parent rolls the insert back with
// gorm.ErrRecordNotFound.
func (r *answerRepository) CreateForQuestion(answer *models.Answer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(answer).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Question{}).
			Where("id = ?", answer.QuestionID).
			UpdateColumn("num_answers", gorm.Expr("num_answers + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *answerRepository) GetByID(id uint) (*models.Answer, error) {
	var answer models.Answer
	err := r.db.Preload("Author").First(&answer, id).Error
	return &answer, err
}

func (r *answerRepository) GetByQuestionID(questionID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := r.db.Where("question_id = ?", questionID).
		Preload("Author").
		Order("created_at asc").
		Order("id asc").
		Find(&answers).Error
	return answers, err
}
