package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/models"
	"github.com/kumarharsh15334/alumni-connect-backend/internal/repository"
)

func newIntegrationMessagingService(pool *pgxpool.Pool) *MessagingService {
	return NewMessagingService(
		pool,
		repository.NewMessageRepository(pool),
		repository.NewProfileRepository(pool),
	)
}

func TestOpenThreadClearsUnreadCount(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationMessagingService(pool)

	student := createTestProfile(t, ctx, pool, models.RoleStudent, "0.00")
	alumni := createTestProfile(t, ctx, pool, models.RoleAlumni, "0.00")
	t.Cleanup(func() { cleanupTestProfiles(t, ctx, pool, student.ExternalID, alumni.ExternalID) })

	for _, body := range []string{"hi", "are you free this week?", "I have a resume question"} {
		if _, err := service.SendMessage(ctx, student.ExternalID, alumni.ExternalID, body); err != nil {
			t.Fatalf("SendMessage: %v", err)
		}
	}

	threads, err := service.ListThreads(ctx, alumni.ExternalID, models.RoleAlumni)
	if err != nil {
		t.Fatalf("ListThreads: %v", err)
	}
	if len(threads) != 1 {
		t.Fatalf("expected 1 thread, got %d", len(threads))
	}
	if threads[0].PeerID != student.ExternalID {
		t.Fatalf("expected peer %q, got %q", student.ExternalID, threads[0].PeerID)
	}
	if threads[0].UnreadCount != 3 {
		t.Fatalf("expected 3 unread, got %d", threads[0].UnreadCount)
	}
	if threads[0].LastMessage != "I have a resume question" {
		t.Fatalf("unexpected last message %q", threads[0].LastMessage)
	}

	conversation, err := service.OpenThread(ctx, alumni.ExternalID, student.ExternalID)
	if err != nil {
		t.Fatalf("OpenThread: %v", err)
	}
	if len(conversation) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(conversation))
	}
	if conversation[0].Sender != student.ExternalID {
		t.Fatalf("expected messages keyed by sender identity, got %q", conversation[0].Sender)
	}

	threads, err = service.ListThreads(ctx, alumni.ExternalID, models.RoleAlumni)
	if err != nil {
		t.Fatalf("ListThreads after open: %v", err)
	}
	if len(threads) != 1 || threads[0].UnreadCount != 0 {
		t.Fatalf("expected unread count cleared, got %+v", threads)
	}
}

func TestListThreadsFlagsBookedPeersForAlumniOnly(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	messaging := newIntegrationMessagingService(pool)
	bookings := newIntegrationBookingService(pool)

	student := createTestProfile(t, ctx, pool, models.RoleStudent, "100.00")
	alumni := createTestProfile(t, ctx, pool, models.RoleAlumni, "0.00")
	t.Cleanup(func() { cleanupTestProfiles(t, ctx, pool, student.ExternalID, alumni.ExternalID) })

	offering := createTestService(t, ctx, pool, alumni.ID, "25.00", 1)
	if _, err := bookings.CreateBooking(ctx, CreateBookingInput{
		StudentIdentity: student.ExternalID,
		AlumniIdentity:  alumni.ExternalID,
		ServiceID:       offering.ID,
	}); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if _, err := messaging.SendMessage(ctx, student.ExternalID, alumni.ExternalID, "booked!"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	alumniThreads, err := messaging.ListThreads(ctx, alumni.ExternalID, models.RoleAlumni)
	if err != nil {
		t.Fatalf("ListThreads alumni: %v", err)
	}
	if len(alumniThreads) != 1 || !alumniThreads[0].Priority {
		t.Fatalf("expected booked student flagged as priority, got %+v", alumniThreads)
	}

	studentThreads, err := messaging.ListThreads(ctx, student.ExternalID, models.RoleStudent)
	if err != nil {
		t.Fatalf("ListThreads student: %v", err)
	}
	if len(studentThreads) != 1 || studentThreads[0].Priority {
		t.Fatalf("expected no priority flag for student view, got %+v", studentThreads)
	}
}

func TestSendMessageRejectsSelfAndUnknownPeers(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationMessagingService(pool)

	student := createTestProfile(t, ctx, pool, models.RoleStudent, "0.00")
	t.Cleanup(func() { cleanupTestProfiles(t, ctx, pool, student.ExternalID) })

	if _, err := service.SendMessage(ctx, student.ExternalID, student.ExternalID, "note to self"); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for self-send, got %v", err)
	}
	if _, err := service.SendMessage(ctx, student.ExternalID, "no-such-identity", "hello?"); err != ErrProfileNotFound {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
