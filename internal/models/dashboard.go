package models

import "github.com/shopspring/decimal"

type AlumniOverview struct {
	TotalSessions  int             `json:"total_sessions"`
	TotalStudents  int             `json:"total_students"`
	TotalServices  int             `json:"total_services"`
	Earnings       decimal.Decimal `json:"earnings"`
	UnreadMessages int             `json:"unread_messages"`
	Balance        decimal.Decimal `json:"balance"`
}

type StudentOverview struct {
	TotalBookings   int             `json:"total_bookings"`
	OngoingBookings int             `json:"ongoing_bookings"`
	Mentors         int             `json:"mentors"`
	QuestionsAsked  int             `json:"questions_asked"`
	UnreadMessages  int             `json:"unread_messages"`
	Balance         decimal.Decimal `json:"balance"`
}
