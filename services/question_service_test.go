package services

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"qna-board/models"
	"qna-board/repositories"
	"qna-board/testutil"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type emitted struct {
	UserID  uint
	Event   string
	Payload interface{}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []emitted
}

func (n *recordingNotifier) EmitToUser(userID uint, event string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, emitted{UserID: userID, Event: event, Payload: payload})
}

func fileHeader(t *testing.T, filename, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="img"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(body)
	w.Close()

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["img"][0]
}

type ServiceTestSuite struct {
	suite.Suite
	db        *gorm.DB
	uploadDir string
	notifier  *recordingNotifier
	questions QuestionService
	answers   AnswerService
	author    *models.User
	replier   *models.User
}

func (suite *ServiceTestSuite) SetupTest() {
	suite.db = testutil.NewDB(suite.T())
	suite.uploadDir = suite.T().TempDir()
	suite.notifier = &recordingNotifier{}

	questionRepo := repositories.NewQuestionRepository(suite.db)
	answerRepo := repositories.NewAnswerRepository(suite.db)
	uploads := NewUploadService(suite.uploadDir, "/images/uploads")

	suite.questions = NewQuestionService(questionRepo, answerRepo, uploads)
	suite.answers = NewAnswerService(answerRepo, questionRepo, suite.notifier, testutil.Logger())

	suite.author = testutil.CreateUser(suite.T(), suite.db, "asker")
	suite.replier = testutil.CreateUser(suite.T(), suite.db, "replier")
}

func (suite *ServiceTestSuite) newQuestion(title string) *models.Question {
	q, err := suite.questions.CreateQuestion(models.QuestionRequest{
		Title:   title,
		Content: "content of " + title,
		Tags:    "go  web",
		Radio:   "online",
	}, suite.author.ID, nil)
	suite.Require().NoError(err)
	return q
}

func (suite *ServiceTestSuite) TestCreateQuestionSplitsTags() {
	q := suite.newQuestion("Tagged")

	got, err := suite.questions.GetQuestion(q.ID)
	suite.Require().NoError(err)
	suite.Equal([]string{"go", "web"}, got.Tags)
	suite.Equal("online", got.Radio)
	suite.Equal(suite.author.ID, got.AuthorID)
	suite.Empty(got.Img)
}

func (suite *ServiceTestSuite) TestCreateQuestionStoresPNG() {
	img := fileHeader(suite.T(), "cat.png", "image/png", []byte("\x89PNG fake"))

	q, err := suite.questions.CreateQuestion(models.QuestionRequest{Title: "Pic", Content: "x"}, suite.author.ID, img)
	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(q.Img, "/images/uploads/"))
	suite.True(strings.HasSuffix(q.Img, ".png"))

	stored := filepath.Join(suite.uploadDir, filepath.Base(q.Img))
	data, err := os.ReadFile(stored)
	suite.Require().NoError(err)
	suite.Equal("\x89PNG fake", string(data))
}

func (suite *ServiceTestSuite) TestCreateQuestionRejectsPDF() {
	img := fileHeader(suite.T(), "doc.pdf", "application/pdf", []byte("%PDF-1.4"))

	_, err := suite.questions.CreateQuestion(models.QuestionRequest{Title: "Doc", Content: "x"}, suite.author.ID, img)
	suite.True(errors.Is(err, models.ErrUnsupportedMediaType))
	suite.EqualError(err, "unsupported media type")

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Question{}).Count(&count).Error)
	suite.Zero(count)

	entries, err := os.ReadDir(suite.uploadDir)
	suite.Require().NoError(err)
	suite.Empty(entries)
}

func (suite *ServiceTestSuite) TestGetQuestionsDefaultsAndCaps() {
	for i := 0; i < 12; i++ {
		suite.newQuestion(fmt.Sprintf("Q%d", i))
	}

	params := models.QuestionListParams{}
	list, total, err := suite.questions.GetQuestions(&params)
	suite.Require().NoError(err)
	suite.Equal(int64(12), total)
	suite.Len(list, DefaultPageSize)
	suite.Equal(models.QuestionListParams{Page: 1, Limit: DefaultPageSize}, params)

	params = models.QuestionListParams{Page: 1, Limit: 5000}
	list, _, err = suite.questions.GetQuestions(&params)
	suite.Require().NoError(err)
	suite.Len(list, 12)
	suite.Equal(MaxPageSize, params.Limit)
}

func (suite *ServiceTestSuite) TestViewQuestionCountsEveryRead() {
	q := suite.newQuestion("Popular")

	const views = 5
	for i := 0; i < views; i++ {
		_, _, err := suite.questions.ViewQuestion(q.ID)
		suite.Require().NoError(err)
	}

	got, answers, err := suite.questions.ViewQuestion(q.ID)
	suite.Require().NoError(err)
	suite.Equal(views+1, got.NumReads)
	suite.Empty(answers)
	suite.Equal("asker", got.Author.Username)
}

func (suite *ServiceTestSuite) TestViewMissingQuestion() {
	_, _, err := suite.questions.ViewQuestion(777)
	suite.True(errors.Is(err, models.ErrQuestionNotFound))
}

func (suite *ServiceTestSuite) TestUpdateQuestionOverwritesFields() {
	q := suite.newQuestion("Old")

	updated, err := suite.questions.UpdateQuestion(q.ID, models.QuestionRequest{
		Title:   "New",
		Content: "new content",
		Manager: "kim",
		Tags:    "one two three",
	})
	suite.Require().NoError(err)
	suite.Equal("New", updated.Title)

	got, err := suite.questions.GetQuestion(q.ID)
	suite.Require().NoError(err)
	suite.Equal("new content", got.Content)
	suite.Equal("kim", got.Manager)
	suite.Equal("", got.Radio)
	suite.Equal([]string{"one", "two", "three"}, got.Tags)
}

func (suite *ServiceTestSuite) TestUpdateMissingQuestionWritesNothing() {
	_, err := suite.questions.UpdateQuestion(4242, models.QuestionRequest{Title: "x", Content: "y"})
	suite.True(errors.Is(err, models.ErrQuestionNotFound))

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Question{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *ServiceTestSuite) TestCreateAnswerNotifiesAuthorOnce() {
	q := suite.newQuestion("Help")

	answer, err := suite.answers.CreateAnswer(q.ID, suite.replier.ID, models.CreateAnswerRequest{Content: "Try this"})
	suite.Require().NoError(err)

	got, err := suite.questions.GetQuestion(q.ID)
	suite.Require().NoError(err)
	suite.Equal(1, got.NumAnswers)

	suite.Require().Len(suite.notifier.events, 1)
	ev := suite.notifier.events[0]
	suite.Equal(suite.author.ID, ev.UserID)
	suite.Equal(EventAnswered, ev.Event)

	payload, ok := ev.Payload.(models.AnsweredPayload)
	suite.Require().True(ok)
	suite.Equal(fmt.Sprintf("/questions/%d#%d", q.ID, answer.ID), payload.URL)
	suite.Equal(1, payload.Question.NumAnswers)
}

func (suite *ServiceTestSuite) TestCreateAnswerForMissingQuestion() {
	_, err := suite.answers.CreateAnswer(999, suite.replier.ID, models.CreateAnswerRequest{Content: "?"})
	suite.True(errors.Is(err, models.ErrQuestionNotFound))
	suite.Empty(suite.notifier.events)
}

func (suite *ServiceTestSuite) TestDeleteQuestionOrphansAnswers() {
	q := suite.newQuestion("Temporary")
	answer, err := suite.answers.CreateAnswer(q.ID, suite.replier.ID, models.CreateAnswerRequest{Content: "kept"})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.questions.DeleteQuestion(q.ID))

	_, err = suite.questions.GetQuestion(q.ID)
	suite.True(errors.Is(err, models.ErrQuestionNotFound))

	got, err := suite.answers.GetAnswer(answer.ID)
	suite.Require().NoError(err)
	suite.Equal("kept", got.Content)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}
