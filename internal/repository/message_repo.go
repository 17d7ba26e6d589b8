package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/models"
)

type MessageRepository struct {
	db DBTX
}

func NewMessageRepository(db DBTX) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(
	ctx context.Context,
	senderID uuid.UUID,
	receiverID uuid.UUID,
	content string,
) (*models.Message, error) {
	query := `
		INSERT INTO messages (sender_id, receiver_id, content, is_read)
		VALUES ($1, $2, $3, FALSE)
		RETURNING id, sender_id, receiver_id, content, is_read, sent_at
	`

	var message models.Message
	err := r.db.QueryRow(ctx, query, senderID, receiverID, content).Scan(
		&message.ID,
		&message.SenderID,
		&message.ReceiverID,
		&message.Content,
		&message.IsRead,
		&message.SentAt,
	)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// ListThreads collapses the caller's message history into one row per
// distinct counterparty: the peer's identity, the latest message in either
// direction, the unread peer-to-caller count, and whether the peer holds a
// booking with the caller (meaningful when the caller is an alumni).
func (r *MessageRepository) ListThreads(ctx context.Context, profileID uuid.UUID) ([]models.ThreadSummary, error) {
	query := `
		SELECT
			p.external_id,
			p.first_name || ' ' || p.last_name,
			COALESCE(p.profile_image, ''),
			lm.content,
			lm.sent_at,
			COALESCE(uc.unread, 0),
			EXISTS (
				SELECT 1 FROM bookings b
				WHERE b.alumni_id = $1 AND b.student_id = t.peer_id
			)
		FROM (
			SELECT DISTINCT
				CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END AS peer_id
			FROM messages
			WHERE sender_id = $1 OR receiver_id = $1
		) t
		JOIN profiles p ON p.id = t.peer_id
		LEFT JOIN LATERAL (
			SELECT content, sent_at
			FROM messages
			WHERE (sender_id = $1 AND receiver_id = t.peer_id)
			   OR (sender_id = t.peer_id AND receiver_id = $1)
			ORDER BY sent_at DESC, id DESC
			LIMIT 1
		) lm ON TRUE
		LEFT JOIN LATERAL (
			SELECT COUNT(*) AS unread
			FROM messages
			WHERE sender_id = t.peer_id
			  AND receiver_id = $1
			  AND is_read = FALSE
		) uc ON TRUE
		ORDER BY lm.sent_at DESC NULLS LAST
	`

	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]models.ThreadSummary, 0)
	for rows.Next() {
		var summary models.ThreadSummary
		var lastContent sql.NullString
		var lastSentAt sql.NullTime

		if err := rows.Scan(
			&summary.PeerID,
			&summary.PeerName,
			&summary.PeerImage,
			&lastContent,
			&lastSentAt,
			&summary.UnreadCount,
			&summary.Priority,
		); err != nil {
			return nil, err
		}
		if lastContent.Valid {
			summary.LastMessage = lastContent.String
		}
		if lastSentAt.Valid {
			sentAt := lastSentAt.Time
			summary.UpdatedAt = &sentAt
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// ListConversation returns the full exchange between the two profiles in
// ascending send order, each entry keyed by the sender's external identity.
func (r *MessageRepository) ListConversation(
	ctx context.Context,
	profileID uuid.UUID,
	peerID uuid.UUID,
) ([]models.ThreadMessage, error) {
	query := `
		SELECT p.external_id, m.content, m.sent_at
		FROM messages m
		JOIN profiles p ON p.id = m.sender_id
		WHERE (m.sender_id = $1 AND m.receiver_id = $2)
		   OR (m.sender_id = $2 AND m.receiver_id = $1)
		ORDER BY m.sent_at, m.id
	`

	rows, err := r.db.Query(ctx, query, profileID, peerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.ThreadMessage, 0)
	for rows.Next() {
		var message models.ThreadMessage
		if err := rows.Scan(&message.Sender, &message.Body, &message.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}

// MarkThreadRead flips every unread peer-to-reader message. It matches the
// read-time filter, not a snapshot, so a message committed between the
// conversation read and this update is marked along with the rest.
func (r *MessageRepository) MarkThreadRead(
	ctx context.Context,
	readerID uuid.UUID,
	peerID uuid.UUID,
) error {
	_, err := r.db.Exec(ctx, `
		UPDATE messages
		SET is_read = TRUE
		WHERE sender_id = $2
		  AND receiver_id = $1
		  AND is_read = FALSE
	`, readerID, peerID)
	return err
}
