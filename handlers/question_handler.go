package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"qna-board/helper"
	"qna-board/middleware"
	"qna-board/models"
	"qna-board/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService services.QuestionService
	Helper          *helper.HTTPHelper
}

func NewQuestionHandler(questionService services.QuestionService, httpHelper *helper.HTTPHelper) *QuestionHandler {
	return &QuestionHandler{questionService: questionService, Helper: httpHelper}
}

func (h *QuestionHandler) Index(c *gin.Context) {
	params := models.QuestionListParams{
		Page:  helper.IntOrDefault(c.Query("page"), 1),
		Limit: helper.IntOrDefault(c.Query("limit"), services.DefaultPageSize),
		Term:  strings.TrimSpace(c.Query("term")),
	}

	questions, total, err := h.questionService.GetQuestions(&params)
	if err != nil {
		c.Error(err)
		return
	}

	render(c, http.StatusOK, "questions/index", gin.H{
		"title":      "Questions",
		"questions":  questions,
		"term":       params.Term,
		"pagination": h.Helper.GeneratePaging(c, params.Page, params.Limit, total),
	})
}

func (h *QuestionHandler) New(c *gin.Context) {
	render(c, http.StatusOK, "questions/new", gin.H{
		"title":    "Ask a question",
		"question": &models.Question{},
	})
}

func (h *QuestionHandler) Create(c *gin.Context) {
	var req models.QuestionRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.SetFlash(c, middleware.FlashDanger, err.Error())
		h.Helper.RedirectBack(c, "/questions/new")
		return
	}
	if messages := h.Helper.ValidateStruct(req); len(messages) > 0 {
		flashAll(c, middleware.FlashDanger, messages)
		h.Helper.RedirectBack(c, "/questions/new")
		return
	}

	img, err := formImage(c, "img")
	if err != nil {
		c.Error(err)
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	if _, err := h.questionService.CreateQuestion(req, userID, img); err != nil {
		if errors.Is(err, models.ErrUnsupportedMediaType) {
			middleware.SetFlash(c, middleware.FlashDanger, "Only image files are allowed!")
			h.Helper.RedirectBack(c, "/questions/new")
			return
		}
		c.Error(err)
		return
	}

	middleware.SetFlash(c, middleware.FlashSuccess, "Successfully posted")
	redirectTo(c, "/questions")
}

func (h *QuestionHandler) Show(c *gin.Context) {
	id, ok := pathID(c, models.ErrQuestionNotFound)
	if !ok {
		return
	}

	question, answers, err := h.questionService.ViewQuestion(id)
	if err != nil {
		c.Error(err)
		return
	}

	render(c, http.StatusOK, "questions/show", gin.H{
		"title":    question.Title,
		"question": question,
		"answers":  answers,
	})
}

func (h *QuestionHandler) Edit(c *gin.Context) {
	id, ok := pathID(c, models.ErrQuestionNotFound)
	if !ok {
		return
	}

	question, err := h.questionService.GetQuestion(id)
	if err != nil {
		c.Error(err)
		return
	}

	render(c, http.StatusOK, "questions/edit", gin.H{
		"title":    "Edit question",
		"question": question,
	})
}

func (h *QuestionHandler) Update(c *gin.Context) {
	id, ok := pathID(c, models.ErrQuestionNotFound)
	if !ok {
		return
	}

	var req models.QuestionRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.SetFlash(c, middleware.FlashDanger, err.Error())
		h.Helper.RedirectBack(c, "/questions")
		return
	}

	if _, err := h.questionService.UpdateQuestion(id, req); err != nil {
		if errors.Is(err, models.ErrQuestionNotFound) {
			middleware.SetFlash(c, middleware.FlashDanger, "Not exist question")
			h.Helper.RedirectBack(c, "/questions")
			return
		}
		c.Error(err)
		return
	}

	middleware.SetFlash(c, middleware.FlashSuccess, "Successfully updated")
	redirectTo(c, "/questions")
}

func (h *QuestionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, models.ErrQuestionNotFound)
	if !ok {
		return
	}

	if err := h.questionService.DeleteQuestion(id); err != nil {
		c.Error(err)
		return
	}

	middleware.SetFlash(c, middleware.FlashSuccess, "Successfully deleted")
	redirectTo(c, "/questions")
}

// formImage returns the uploaded file under name, or nil when the form has none.
func formImage(c *gin.Context, name string) (*multipart.FileHeader, error) {
	img, err := c.FormFile(name)
	switch {
	case err == nil:
		return img, nil
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return nil, nil
	default:
		return nil, err
	}
}
