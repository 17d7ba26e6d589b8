package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/models"
	"github.com/kumarharsh15334/alumni-connect-backend/internal/services"
)

type stubQnaService struct {
	listResult     []models.Question
	listErr        error
	askErr         error
	answerErr      error
	lastIdentity   string
	lastQuestion   string
	lastAnswer     string
	lastQuestionID uuid.UUID
}

func (s *stubQnaService) List(_ context.Context) ([]models.Question, error) {
	return s.listResult, s.listErr
}

func (s *stubQnaService) Ask(_ context.Context, askedByIdentity, question string) ([]models.Question, error) {
	s.lastIdentity = askedByIdentity
	s.lastQuestion = question
	return s.listResult, s.askErr
}

func (s *stubQnaService) Answer(_ context.Context, questionID uuid.UUID, answeredByIdentity, body string) ([]models.Question, error) {
	s.lastQuestionID = questionID
	s.lastIdentity = answeredByIdentity
	s.lastAnswer = body
	return s.listResult, s.answerErr
}

func newQnaTestApp(service qnaApplicationService) *fiber.App {
	handler := NewQnaHandler(service)
	app := fiber.New()
	app.Get("/api/qna", handler.List)
	app.Post("/api/qna", handler.Ask)
	app.Post("/api/qna/:id/answers", handler.Answer)
	return app
}

func TestAskQuestionReturnsRefreshedBoard(t *testing.T) {
	service := &stubQnaService{
		listResult: []models.Question{
			{
				ID:       uuid.New(),
				Question: "How do I prepare for system design rounds?",
				AskedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
				AskedBy:  models.QnaAuthor{ExternalID: "stu-1", Name: "Asha Rao"},
				Answers:  []models.Answer{},
			},
		},
	}
	app := newQnaTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/qna", strings.NewReader(`{
		"question": "How do I prepare for system design rounds?",
		"asked_by": "stu-1"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastIdentity != "stu-1" {
		t.Fatalf("expected identity stu-1, got %q", service.lastIdentity)
	}

	var body struct {
		Success bool              `json:"success"`
		Qna     []models.Question `json:"qna"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(body.Qna) != 1 || body.Qna[0].AskedBy.Name != "Asha Rao" {
		t.Fatalf("unexpected board: %+v", body.Qna)
	}
}

func TestAskQuestionRejectsMissingFields(t *testing.T) {
	service := &stubQnaService{}
	app := newQnaTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/qna", strings.NewReader(`{"question":"anyone?"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAnswerQuestionForwardsQuestionID(t *testing.T) {
	service := &stubQnaService{}
	app := newQnaTestApp(service)

	questionID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/qna/"+questionID.String()+"/answers", strings.NewReader(`{
		"answer": "Start with the fundamentals.",
		"by": "alum-1"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastQuestionID != questionID {
		t.Fatalf("expected question id %s, got %s", questionID, service.lastQuestionID)
	}
	if service.lastAnswer != "Start with the fundamentals." {
		t.Fatalf("unexpected answer %q", service.lastAnswer)
	}
}

func TestAnswerQuestionReturnsNotFoundForMissingQuestion(t *testing.T) {
	service := &stubQnaService{answerErr: services.ErrQuestionNotFound}
	app := newQnaTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/qna/"+uuid.New().String()+"/answers", strings.NewReader(`{
		"answer": "too late",
		"by": "alum-1"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestAnswerQuestionRejectsMalformedID(t *testing.T) {
	service := &stubQnaService{}
	app := newQnaTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/qna/not-a-uuid/answers", strings.NewReader(`{
		"answer": "hmm",
		"by": "alum-1"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
