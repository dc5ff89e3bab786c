package service

import (
	"testing"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
)

func TestSession_SubscribeDeliversCurrentStateImmediately(t *testing.T) {
	alice := &domain.User{ID: "u1", Email: "alice@example.com"}
	sess := NewSession(alice)

	var got []*domain.User
	sess.Subscribe(func(u *domain.User) { got = append(got, u) })

	if len(got) != 1 || got[0] != alice {
		t.Fatalf("expected immediate delivery of the current profile, got %+v", got)
	}
}

func TestSession_SetNotifiesSubscribers(t *testing.T) {
	sess := NewSession(nil)

	var got []*domain.User
	sess.Subscribe(func(u *domain.User) { got = append(got, u) })

	alice := &domain.User{ID: "u1", Sectors: []string{"north"}}
	sess.Set(alice)

	if len(got) != 2 {
		t.Fatalf("expected initial nil plus one update, got %d deliveries", len(got))
	}
	if got[0] != nil {
		t.Errorf("initial delivery should be nil before any Set, got %+v", got[0])
	}
	if got[1] != alice {
		t.Errorf("expected the updated profile, got %+v", got[1])
	}
	if sess.Current() != alice {
		t.Errorf("Current must reflect the last Set")
	}
}

func TestSession_UnsubscribeStopsDelivery(t *testing.T) {
	sess := NewSession(nil)

	calls := 0
	unsubscribe := sess.Subscribe(func(*domain.User) { calls++ })
	if calls != 1 {
		t.Fatalf("expected 1 immediate delivery, got %d", calls)
	}

	unsubscribe()
	unsubscribe() // idempotent
	sess.Set(&domain.User{ID: "u1"})

	if calls != 1 {
		t.Errorf("unsubscribed callback must not fire, got %d calls", calls)
	}
}

func TestSession_MultipleSubscribers(t *testing.T) {
	sess := NewSession(nil)

	a, b := 0, 0
	sess.Subscribe(func(*domain.User) { a++ })
	sess.Subscribe(func(*domain.User) { b++ })

	sess.Set(&domain.User{ID: "u1"})

	if a != 2 || b != 2 {
		t.Errorf("every subscriber sees every change: a=%d b=%d", a, b)
	}
}

func TestSession_CloseTearsDown(t *testing.T) {
	sess := NewSession(&domain.User{ID: "u1"})

	calls := 0
	sess.Subscribe(func(*domain.User) { calls++ })

	sess.Close()
	sess.Close() // safe to repeat

	sess.Set(&domain.User{ID: "u2"})
	if calls != 1 {
		t.Errorf("Set after Close must be ignored, got %d calls", calls)
	}
	if sess.Current() != nil {
		t.Errorf("closed session holds no profile, got %+v", sess.Current())
	}

	// Subscribing after Close is a no-op: no immediate delivery either.
	late := 0
	unsubscribe := sess.Subscribe(func(*domain.User) { late++ })
	unsubscribe()
	if late != 0 {
		t.Errorf("subscribe after Close must not deliver, got %d", late)
	}
}
