package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fryegg/api/internal/models"
	"fryegg/api/internal/service"
	"fryegg/api/internal/survey"
)

type questionPayload struct {
	Title    string `json:"title"`
	Kind     string `json:"kind"`
	Content  any    `json:"content"`
	Required bool   `json:"required"`
}

type submitSurveyRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Questions   []questionPayload `json:"questions" binding:"required"`
}

type surveyResponse struct {
	ID          int64             `json:"id"`
	CreatedAt   string            `json:"createdAt"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Questions   []questionPayload `json:"questions"`
}

// SubmitSurvey stores the caller's survey draft. Each author has one
// survey; resubmitting replaces the stored questions in place.
func (h HandlerSet) SubmitSurvey(c *gin.Context) {
	user := c.MustGet("current_user").(models.User)

	var req submitSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	questions := make([]survey.Question, 0, len(req.Questions))
	for _, q := range req.Questions {
		questions = append(questions, survey.Question{
			Title:    q.Title,
			Kind:     survey.Kind(q.Kind),
			Content:  q.Content,
			Required: q.Required,
		})
	}

	row, err := h.surveyService.Submit(c.Request.Context(), service.SubmitInput{
		Author:      user.ID,
		Title:       req.Title,
		Description: req.Description,
		Questions:   questions,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, surveyResponse{
		ID:          row.ID,
		CreatedAt:   row.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Title:       row.Title,
		Description: row.TitleContents,
		Questions:   toQuestionPayloads(questions),
	})
}

// MySurvey returns the caller's stored survey in authoring form so the
// editor can reload it.
func (h HandlerSet) MySurvey(c *gin.Context) {
	user := c.MustGet("current_user").(models.User)

	row, questions, err := h.surveyService.MySurvey(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, surveyResponse{
		ID:          row.ID,
		CreatedAt:   row.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Title:       row.Title,
		Description: row.TitleContents,
		Questions:   toQuestionPayloads(questions),
	})
}

func toQuestionPayloads(questions []survey.Question) []questionPayload {
	out := make([]questionPayload, 0, len(questions))
	for _, q := range questions {
		out = append(out, questionPayload{
			Title:    q.Title,
			Kind:     string(q.Kind),
			Content:  q.Content,
			Required: q.Required,
		})
	}
	return out
}
