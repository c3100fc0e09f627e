package services

import (
	"errors"
	"fmt"
	"mime/multipart"

	"qna-board/helper"
	"qna-board/models"
	"qna-board/repositories"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type QuestionService interface {
	GetQuestions(params *models.QuestionListParams) ([]models.Question, int64, error)
	GetQuestion(id uint) (*models.Question, error)
	ViewQuestion(id uint) (*models.Question, []models.Answer, error)
	CreateQuestion(req models.QuestionRequest, authorID uint, img *multipart.FileHeader) (*models.Question, error)
	UpdateQuestion(id uint, req models.QuestionRequest) (*models.Question, error)
	DeleteQuestion(id uint) error
}

type questionService struct {
	questionRepo repositories.QuestionRepository
	answerRepo   repositories.AnswerRepository
	uploads      UploadService
}

func NewQuestionService(questionRepo repositories.QuestionRepository, answerRepo repositories.AnswerRepository, uploads UploadService) QuestionService {
	return &questionService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		uploads:      uploads,
	}
}

// GetQuestions fills in default and capped paging on params before querying,
// so callers can build page links from the values actually used.
func (s *questionService) GetQuestions(params *models.QuestionListParams) ([]models.Question, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = DefaultPageSize
	}
	if params.Limit > MaxPageSize {
		params.Limit = MaxPageSize
	}
	return s.questionRepo.GetList(*params)
}

func (s *questionService) GetQuestion(id uint) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(id)
	if err != nil {
		return nil, translateNotFound(err, models.ErrQuestionNotFound)
	}
	return question, nil
}

// ViewQuestion counts a read and loads the question with its answers. Every
// call counts; there is no per-viewer deduplication.
func (s *questionService) ViewQuestion(id uint) (*models.Question, []models.Answer, error) {
	if err := s.questionRepo.IncrementReads(id); err != nil {
		return nil, nil, translateNotFound(err, models.ErrQuestionNotFound)
	}

	question, err := s.GetQuestion(id)
	if err != nil {
		return nil, nil, err
	}

	answers, err := s.answerRepo.GetByQuestionID(question.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("load answers: %w", err)
	}

	return question, answers, nil
}

func (s *questionService) CreateQuestion(req models.QuestionRequest, authorID uint, img *multipart.FileHeader) (*models.Question, error) {
	question := &models.Question{AuthorID: authorID}
	applyQuestionRequest(question, req)

	if img != nil {
		imgPath, err := s.uploads.SaveImage(img)
		if err != nil {
			return nil, err
		}
		question.Img = imgPath
	}

	if err := s.questionRepo.Create(question); err != nil {
		return nil, err
	}

	return question, nil
}

func (s *questionService) UpdateQuestion(id uint, req models.QuestionRequest) (*models.Question, error) {
	question, err := s.GetQuestion(id)
	if err != nil {
		return nil, err
	}

	applyQuestionRequest(question, req)

	if err := s.questionRepo.Update(question); err != nil {
		return nil, err
	}

	return question, nil
}

// DeleteQuestion removes the question only. Its answers stay in place and can
// still be fetched by id.
func (s *questionService) DeleteQuestion(id uint) error {
	return s.questionRepo.Delete(id)
}

func applyQuestionRequest(question *models.Question, req models.QuestionRequest) {
	question.Title = req.Title
	question.Content = req.Content
	question.Sponsor = req.Sponsor
	question.Field = req.Field
	question.Applicant = req.Applicant
	question.Period = req.Period
	question.Manager = req.Manager
	question.Tel = req.Tel
	question.Radio = req.Radio
	question.Tags = helper.SplitTags(req.Tags)
}

func translateNotFound(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}
