package notifications

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"example.com/moneyquest/backend/internal/models"
)

const (
	EventBudgetAlert        = "budget_alert"
	EventChallengeCompleted = "challenge_completed"
	EventLevelUp            = "level_up"
	EventXPAwarded          = "xp_awarded"
	EventBadgeUnlocked      = "badge_unlocked"
)

type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

type Hub struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]map[chan Event]struct{}
}

// NewHub создает хаб для SSE-подписок.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[uuid.UUID]map[chan Event]struct{}),
	}
}

// Subscribe подписывает пользователя на события и возвращает канал и функцию отписки.
func (h *Hub) Subscribe(userID uuid.UUID) (<-chan Event, func()) {
	ch := make(chan Event, 10)

	h.mu.Lock()
	defer h.mu.Unlock()

	userSubs, ok := h.subscribers[userID]
	if !ok {
		userSubs = make(map[chan Event]struct{})
		h.subscribers[userID] = userSubs
	}
	userSubs[ch] = struct{}{}

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if subs, exists := h.subscribers[userID]; exists {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(h.subscribers, userID)
			}
		}
		close(ch)
	}
}

// Publish отправляет событие всем подписчикам пользователя.
func (h *Hub) Publish(userID uuid.UUID, event Event) {
	event.Timestamp = time.Now().UTC()

	h.mu.RLock()
	defer h.mu.RUnlock()

	subs, ok := h.subscribers[userID]
	if !ok {
		return
	}

	for ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// PublishBudgetAlert уведомляет пользователя о новом алерте по лимиту.
func PublishBudgetAlert(hub *Hub, userID uuid.UUID, alert models.SpendingAlert) {
	if hub == nil {
		return
	}

	hub.Publish(userID, Event{
		Type: EventBudgetAlert,
		Data: map[string]interface{}{
			"alert_id": alert.ID.String(),
			"category": alert.Category,
			"severity": string(alert.Severity),
			"message":  alert.Message,
		},
	})
}

// PublishChallengeCompleted уведомляет о выполнении челленджа.
func PublishChallengeCompleted(hub *Hub, userID uuid.UUID, definitionID string, xpReward int64) {
	if hub == nil {
		return
	}

	hub.Publish(userID, Event{
		Type: EventChallengeCompleted,
		Data: map[string]interface{}{
			"definition_id": definitionID,
			"xp_reward":     xpReward,
		},
	})
}

// PublishLevelUp уведомляет о повышении уровня.
func PublishLevelUp(hub *Hub, userID uuid.UUID, level int) {
	if hub == nil {
		return
	}

	hub.Publish(userID, Event{
		Type: EventLevelUp,
		Data: map[string]interface{}{"level": level},
	})
}

// PublishXPAwarded уведомляет о начислении XP.
func PublishXPAwarded(hub *Hub, userID uuid.UUID, amount int64, reason string) {
	if hub == nil {
		return
	}

	hub.Publish(userID, Event{
		Type: EventXPAwarded,
		Data: map[string]interface{}{
			"amount": amount,
			"reason": reason,
		},
	})
}

// PublishBadgeUnlocked уведомляет о новом бейдже.
func PublishBadgeUnlocked(hub *Hub, userID uuid.UUID, badgeID string) {
	if hub == nil {
		return
	}

	hub.Publish(userID, Event{
		Type: EventBadgeUnlocked,
		Data: map[string]interface{}{"badge_id": badgeID},
	})
}
