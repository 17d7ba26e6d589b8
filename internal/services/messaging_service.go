package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/models"
	"github.com/kumarharsh15334/alumni-connect-backend/internal/repository"
)

// MessagingService persists direct messages between two members and hands
// the delivery back so the caller can fan it out to live connections.
type MessagingService struct {
	db          *pgxpool.Pool
	messageRepo *repository.MessageRepository
	profileRepo *repository.ProfileRepository
}

// MessageDelivery is what a completed send looks like to the realtime layer.
type MessageDelivery struct {
	Message           *models.Message
	SenderIdentity    string
	RecipientIdentity string
}

func NewMessagingService(
	db *pgxpool.Pool,
	messageRepo *repository.MessageRepository,
	profileRepo *repository.ProfileRepository,
) *MessagingService {
	return &MessagingService{
		db:          db,
		messageRepo: messageRepo,
		profileRepo: profileRepo,
	}
}

func (s *MessagingService) SendMessage(ctx context.Context, fromIdentity, toIdentity, body string) (*MessageDelivery, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrInvalidInput
	}
	fromIdentity = strings.TrimSpace(fromIdentity)
	toIdentity = strings.TrimSpace(toIdentity)
	if fromIdentity == "" || toIdentity == "" || fromIdentity == toIdentity {
		return nil, ErrInvalidInput
	}

	sender, err := s.resolveProfile(ctx, fromIdentity)
	if err != nil {
		return nil, err
	}
	recipient, err := s.resolveProfile(ctx, toIdentity)
	if err != nil {
		return nil, err
	}

	message, err := s.messageRepo.Create(ctx, sender.ID, recipient.ID, body)
	if err != nil {
		return nil, err
	}

	return &MessageDelivery{
		Message:           message,
		SenderIdentity:    sender.ExternalID,
		RecipientIdentity: recipient.ExternalID,
	}, nil
}

// ListThreads summarizes the caller's inbox per counterparty. For alumni
// callers, peers who hold a booking with them are flagged as priority
// regardless of message recency.
func (s *MessagingService) ListThreads(ctx context.Context, identity, role string) ([]models.ThreadSummary, error) {
	profile, err := s.resolveProfile(ctx, identity)
	if err != nil {
		return nil, err
	}

	threads, err := s.messageRepo.ListThreads(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	if role != models.RoleAlumni {
		for i := range threads {
			threads[i].Priority = false
		}
	}
	return threads, nil
}

// OpenThread returns the full conversation and marks the unread peer-to-self
// messages read inside the same transaction as the read. The mark matches
// the read-time filter: a message arriving between the snapshot and the
// update is marked along with the rest, accepted as a narrow non-fatal race.
func (s *MessagingService) OpenThread(ctx context.Context, identity, peerIdentity string) ([]models.ThreadMessage, error) {
	me, err := s.resolveProfile(ctx, identity)
	if err != nil {
		return nil, err
	}
	peer, err := s.resolveProfile(ctx, peerIdentity)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txMessageRepo := repository.NewMessageRepository(tx)

	messages, err := txMessageRepo.ListConversation(ctx, me.ID, peer.ID)
	if err != nil {
		return nil, err
	}
	if err := txMessageRepo.MarkThreadRead(ctx, me.ID, peer.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *MessagingService) resolveProfile(ctx context.Context, identity string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByExternalID(ctx, strings.TrimSpace(identity))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func FormatChatTimestamp(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339)
}
