package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/models"
	"github.com/kumarharsh15334/alumni-connect-backend/internal/repository"
)

const foreignKeyViolation = "23503"

// QnAService runs the public question board. Any member may answer any
// question; mutations return the refreshed feed so clients render the whole
// board from one response.
type QnAService struct {
	qnaRepo     *repository.QnaRepository
	profileRepo *repository.ProfileRepository
}

func NewQnAService(qnaRepo *repository.QnaRepository, profileRepo *repository.ProfileRepository) *QnAService {
	return &QnAService{
		qnaRepo:     qnaRepo,
		profileRepo: profileRepo,
	}
}

func (s *QnAService) List(ctx context.Context) ([]models.Question, error) {
	return s.qnaRepo.ListQuestions(ctx)
}

func (s *QnAService) Ask(ctx context.Context, askedByIdentity, question string) ([]models.Question, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrInvalidInput
	}

	author, err := s.resolveProfile(ctx, askedByIdentity)
	if err != nil {
		return nil, err
	}
	if err := s.qnaRepo.CreateQuestion(ctx, author.ID, question); err != nil {
		return nil, err
	}
	return s.qnaRepo.ListQuestions(ctx)
}

func (s *QnAService) Answer(ctx context.Context, questionID uuid.UUID, answeredByIdentity, body string) ([]models.Question, error) {
	body = strings.TrimSpace(body)
	if body == "" || questionID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	author, err := s.resolveProfile(ctx, answeredByIdentity)
	if err != nil {
		return nil, err
	}
	if err := s.qnaRepo.CreateAnswer(ctx, questionID, author.ID, body); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return s.qnaRepo.ListQuestions(ctx)
}

func (s *QnAService) resolveProfile(ctx context.Context, identity string) (*models.Profile, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return nil, ErrInvalidInput
	}
	profile, err := s.profileRepo.GetByExternalID(ctx, identity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}
