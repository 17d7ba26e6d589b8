package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/models"
)

type QnaRepository struct {
	db DBTX
}

func NewQnaRepository(db DBTX) *QnaRepository {
	return &QnaRepository{db: db}
}

// ListQuestions returns the full board newest-first. Answers are fetched in
// a second query and stitched in; the board is small enough that two round
// trips beat a grouped-JSON query nobody can read.
func (r *QnaRepository) ListQuestions(ctx context.Context) ([]models.Question, error) {
	rows, err := r.db.Query(ctx, `
		SELECT q.id, q.question, q.asked_at, p.external_id, p.first_name || ' ' || p.last_name
		FROM questions q
		JOIN profiles p ON p.id = q.asked_by
		ORDER BY q.asked_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]models.Question, 0)
	questionIDs := make([]uuid.UUID, 0)
	for rows.Next() {
		var question models.Question
		if err := rows.Scan(
			&question.ID,
			&question.Question,
			&question.AskedAt,
			&question.AskedBy.ExternalID,
			&question.AskedBy.Name,
		); err != nil {
			return nil, err
		}
		question.Answers = make([]models.Answer, 0)
		questions = append(questions, question)
		questionIDs = append(questionIDs, question.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return questions, nil
	}

	answersByQuestion, err := r.listAnswers(ctx, questionIDs)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		if answers, ok := answersByQuestion[questions[i].ID]; ok {
			questions[i].Answers = answers
		}
	}
	return questions, nil
}

func (r *QnaRepository) listAnswers(ctx context.Context, questionIDs []uuid.UUID) (map[uuid.UUID][]models.Answer, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.question_id, a.id, a.body, a.answered_at, p.external_id, p.first_name || ' ' || p.last_name
		FROM answers a
		JOIN profiles p ON p.id = a.answered_by
		WHERE a.question_id = ANY($1)
		ORDER BY a.answered_at, a.id
	`, questionIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byQuestion := make(map[uuid.UUID][]models.Answer)
	for rows.Next() {
		var questionID uuid.UUID
		var answer models.Answer
		if err := rows.Scan(
			&questionID,
			&answer.ID,
			&answer.Body,
			&answer.AnsweredAt,
			&answer.AnsweredBy.ExternalID,
			&answer.AnsweredBy.Name,
		); err != nil {
			return nil, err
		}
		byQuestion[questionID] = append(byQuestion[questionID], answer)
	}
	return byQuestion, rows.Err()
}

func (r *QnaRepository) CreateQuestion(ctx context.Context, askedBy uuid.UUID, question string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO questions (asked_by, question)
		VALUES ($1, $2)
	`, askedBy, question)
	return err
}

func (r *QnaRepository) CreateAnswer(ctx context.Context, questionID uuid.UUID, answeredBy uuid.UUID, body string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO answers (question_id, answered_by, body)
		VALUES ($1, $2, $3)
	`, questionID, answeredBy, body)
	return err
}
