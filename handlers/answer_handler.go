package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"qna-board/helper"
	"qna-board/middleware"
	"qna-board/models"
	"qna-board/services"

	"github.com/gin-gonic/gin"
)

type AnswerHandler struct {
	answerService services.AnswerService
	Helper        *helper.HTTPHelper
}

func NewAnswerHandler(answerService services.AnswerService, httpHelper *helper.HTTPHelper) *AnswerHandler {
	return &AnswerHandler{answerService: answerService, Helper: httpHelper}
}

func (h *AnswerHandler) Create(c *gin.Context) {
	questionID, ok := pathID(c, models.ErrQuestionNotFound)
	if !ok {
		return
	}
	back := fmt.Sprintf("/questions/%d", questionID)

	var req models.CreateAnswerRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.SetFlash(c, middleware.FlashDanger, err.Error())
		h.Helper.RedirectBack(c, back)
		return
	}
	if messages := h.Helper.ValidateStruct(req); len(messages) > 0 {
		flashAll(c, middleware.FlashDanger, messages)
		h.Helper.RedirectBack(c, back)
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	if _, err := h.answerService.CreateAnswer(questionID, userID, req); err != nil {
		if errors.Is(err, models.ErrQuestionNotFound) {
			middleware.SetFlash(c, middleware.FlashDanger, "Not exist question")
			h.Helper.RedirectBack(c, "/questions")
			return
		}
		c.Error(err)
		return
	}

	middleware.SetFlash(c, middleware.FlashSuccess, "Successfully answered")
	redirectTo(c, back)
}

func (h *AnswerHandler) GetAnswer(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.Helper.SendNotFoundError(c, "Answer not found", h.Helper.EmptyJsonMap())
		return
	}

	answer, err := h.answerService.GetAnswer(id)
	if err != nil {
		if h.Helper.GetStatusCode(err) == http.StatusNotFound {
			h.Helper.SendNotFoundError(c, "Answer not found", h.Helper.EmptyJsonMap())
			return
		}
		h.Helper.SendBadRequest(c, "Error ", err.Error())
		return
	}

	h.Helper.SendSuccess(c, "Answer loaded", answer)
}
