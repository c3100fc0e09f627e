package services

import (
	"fmt"

	"qna-board/models"
	"qna-board/repositories"

	"github.com/sirupsen/logrus"
)

// EventAnswered is emitted to a question's author when it receives an answer.
const EventAnswered = "answered"

// Notifier delivers real-time events to every connection of one user.
type Notifier interface {
	EmitToUser(userID uint, event string, payload interface{})
}

type AnswerService interface {
	CreateAnswer(questionID, authorID uint, req models.CreateAnswerRequest) (*models.Answer, error)
	GetAnswer(id uint) (*models.Answer, error)
}

type answerService struct {
	answerRepo   repositories.AnswerRepository
	questionRepo repositories.QuestionRepository
	notifier     Notifier
	log          *logrus.Logger
}

func NewAnswerService(answerRepo repositories.AnswerRepository, questionRepo repositories.QuestionRepository, notifier Notifier, log *logrus.Logger) AnswerService {
	return &answerService{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		notifier:     notifier,
		log:          log,
	}
}

func (s *answerService) CreateAnswer(questionID, authorID uint, req models.CreateAnswerRequest) (*models.Answer, error) {
	if _, err := s.questionRepo.GetByID(questionID); err != nil {
		return nil, translateNotFound(err, models.ErrQuestionNotFound)
	}

	answer := &models.Answer{
		AuthorID:   authorID,
		QuestionID: questionID,
		Content:    req.Content,
	}
	if err := s.answerRepo.CreateForQuestion(answer); err != nil {
		return nil, translateNotFound(err, models.ErrQuestionNotFound)
	}

	// Reload so the payload carries the incremented counter.
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, translateNotFound(err, models.ErrQuestionNotFound)
	}

	payload := models.AnsweredPayload{
		URL:      AnswerURL(question.ID, answer.ID),
		Question: question,
	}
	s.notifier.EmitToUser(question.AuthorID, EventAnswered, payload)

	s.log.WithFields(logrus.Fields{
		"question_id": question.ID,
		"answer_id":   answer.ID,
		"recipient":   question.AuthorID,
	}).Info("answer notification emitted")

	return answer, nil
}

func (s *answerService) GetAnswer(id uint) (*models.Answer, error) {
	answer, err := s.answerRepo.GetByID(id)
	if err != nil {
		return nil, translateNotFound(err, models.ErrAnswerNotFound)
	}
	return answer, nil
}

// AnswerURL links to an answer on its question's page.
func AnswerURL(questionID, answerID uint) string {
	return fmt.Sprintf("/questions/%d#%d", questionID, answerID)
}
