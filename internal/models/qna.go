package models

import (
	"time"

	"github.com/google/uuid"
)

type Question struct {
	ID       uuid.UUID  `json:"id"`
	Question string     `json:"question"`
	AskedAt  time.Time  `json:"asked_at"`
	AskedBy  QnaAuthor  `json:"asked_by"`
	Answers  []Answer   `json:"answers"`
}

type Answer struct {
	ID         uuid.UUID `json:"id"`
	Body       string    `json:"body"`
	AnsweredAt time.Time `json:"answered_at"`
	AnsweredBy QnaAuthor `json:"answered_by"`
}

type QnaAuthor struct {
	ExternalID string `json:"id"`
	Name       string `json:"name"`
}
