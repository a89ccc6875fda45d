package notifications

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"example.com/moneyquest/backend/internal/models"
)

// TestHubPublishSubscribe проверяет доставку событий подписчику.
func TestHubPublishSubscribe(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()

	hub.Publish(userID, Event{Type: "test"})

	select {
	case event := <-ch:
		if event.Type != "test" {
			t.Fatalf("expected event type test, got %s", event.Type)
		}
		if event.Timestamp.IsZero() {
			t.Fatal("expected timestamp to be set")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected event to be delivered")
	}
}

// TestHubUnsubscribe проверяет закрытие канала после отписки.
func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	unsubscribe()

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed")
	}
}

// TestHubPublishOtherUser проверяет изоляцию событий между пользователями.
func TestHubPublishOtherUser(t *testing.T) {
	hub := NewHub()

	ch, unsubscribe := hub.Subscribe(uuid.New())
	defer unsubscribe()

	hub.Publish(uuid.New(), Event{Type: "test"})

	select {
	case event := <-ch:
		t.Fatalf("unexpected event delivered: %s", event.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

// TestPublishBudgetAlert проверяет форму события алерта.
func TestPublishBudgetAlert(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()

	alert := models.SpendingAlert{
		ID:       uuid.New(),
		UserID:   userID,
		Category: "Food",
		Severity: models.SeverityDanger,
		Message:  "Careful! You're at 92% of your Food budget",
	}
	PublishBudgetAlert(hub, userID, alert)

	select {
	case event := <-ch:
		if event.Type != EventBudgetAlert {
			t.Fatalf("expected %s, got %s", EventBudgetAlert, event.Type)
		}
		data, ok := event.Data.(map[string]interface{})
		if !ok {
			t.Fatalf("unexpected data type %T", event.Data)
		}
		if data["severity"] != "danger" {
			t.Fatalf("expected severity danger, got %v", data["severity"])
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected event to be delivered")
	}
}

// TestPublishNilHub проверяет, что nil-хаб не вызывает панику.
func TestPublishNilHub(t *testing.T) {
	PublishLevelUp(nil, uuid.New(), 2)
	PublishXPAwarded(nil, uuid.New(), 10, "transaction")
	PublishBadgeUnlocked(nil, uuid.New(), "first_transaction")
}
