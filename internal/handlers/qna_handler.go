package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/models"
	"github.com/kumarharsh15334/alumni-connect-backend/internal/services"
)

type qnaApplicationService interface {
	List(ctx context.Context) ([]models.Question, error)
	Ask(ctx context.Context, askedByIdentity, question string) ([]models.Question, error)
	Answer(ctx context.Context, questionID uuid.UUID, answeredByIdentity, body string) ([]models.Question, error)
}

type QnaHandler struct {
	service qnaApplicationService
}

func NewQnaHandler(service qnaApplicationService) *QnaHandler {
	return &QnaHandler{service: service}
}

type askQuestionRequest struct {
	Question string `json:"question"`
	AskedBy  string `json:"asked_by"`
}

type answerQuestionRequest struct {
	Answer string `json:"answer"`
	By     string `json:"by"`
}

func (h *QnaHandler) List(c *fiber.Ctx) error {
	qna, err := h.service.List(c.Context())
	if err != nil {
		return mapQnaError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"qna": qna})
}

func (h *QnaHandler) Ask(c *fiber.Ctx) error {
	var req askQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Question == "" || req.AskedBy == "" {
		return respondError(c, fiber.StatusBadRequest, "Missing fields")
	}

	qna, err := h.service.Ask(c.Context(), req.AskedBy, req.Question)
	if err != nil {
		return mapQnaError(c, err)
	}
	return respond(c, fiber.StatusCreated, fiber.Map{"qna": qna})
}

func (h *QnaHandler) Answer(c *fiber.Ctx) error {
	questionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid question id")
	}

	var req answerQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Answer == "" || req.By == "" {
		return respondError(c, fiber.StatusBadRequest, "Missing fields")
	}

	qna, err := h.service.Answer(c.Context(), questionID, req.By, req.Answer)
	if err != nil {
		return mapQnaError(c, err)
	}
	return respond(c, fiber.StatusCreated, fiber.Map{"qna": qna})
}

func mapQnaError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, "Missing or invalid fields")
	case errors.Is(err, services.ErrProfileNotFound):
		return respondError(c, fiber.StatusNotFound, "Profile not found")
	case errors.Is(err, services.ErrQuestionNotFound):
		return respondError(c, fiber.StatusNotFound, "Question not found")
	default:
		return respondError(c, fiber.StatusInternalServerError, "Failed to process Q&A request")
	}
}
