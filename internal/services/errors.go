package services

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrServiceOwnership    = errors.New("service does not belong to the alumni")
	ErrInsufficientBalance = errors.New("insufficient balance")
)
