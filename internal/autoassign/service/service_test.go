package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"leaddesk_backend/internal/autoassign/repository"
	"leaddesk_backend/internal/autoassign/transport"
	"leaddesk_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeSettings struct {
	enabled []repository.Setting
	all     []repository.Setting
	saved   map[uuid.UUID][2]interface{}
}

func (f *fakeSettings) ListEnabled(ctx context.Context) ([]repository.Setting, error) {
	return f.enabled, nil
}

func (f *fakeSettings) ListAll(ctx context.Context) ([]repository.Setting, error) {
	return f.all, nil
}

func (f *fakeSettings) Upsert(ctx context.Context, userID uuid.UUID, dailyLimit int, isEnabled bool) error {
	if f.saved == nil {
		f.saved = make(map[uuid.UUID][2]interface{})
	}
	f.saved[userID] = [2]interface{}{dailyLimit, isEnabled}
	return nil
}

type fakeClaimer struct {
	pool   int
	errFor map[uuid.UUID]error
	claims map[uuid.UUID]int
}

func (f *fakeClaimer) ClaimPool(ctx context.Context, userID uuid.UUID, limit int, day time.Time) ([]uuid.UUID, error) {
	if err := f.errFor[userID]; err != nil {
		return nil, err
	}
	n := limit
	if n > f.pool {
		n = f.pool
	}
	f.pool -= n
	if f.claims == nil {
		f.claims = make(map[uuid.UUID]int)
	}
	f.claims[userID] = n
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	return ids, nil
}

func setting(name string, limit int, active bool) repository.Setting {
	return repository.Setting{
		UserID:       uuid.New(),
		Username:     name,
		DailyLimit:   limit,
		IsEnabled:    true,
		UserIsActive: active,
	}
}

func TestRunDistributesUpToDailyLimit(t *testing.T) {
	alice := setting("alice", 5, true)
	bob := setting("bob", 3, true)
	settings := &fakeSettings{enabled: []repository.Setting{alice, bob}}
	claimer := &fakeClaimer{pool: 20}
	svc := New(settings, claimer, nil, logger.New("development"))

	resp, err := svc.Run(context.Background(), "test")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if resp.TotalAssigned != 8 {
		t.Fatalf("TotalAssigned = %d, want 8", resp.TotalAssigned)
	}
	if claimer.claims[alice.UserID] != 5 || claimer.claims[bob.UserID] != 3 {
		t.Fatalf("claims = %v, want alice 5 bob 3", claimer.claims)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(resp.Results))
	}
	if resp.Results[0].Status != "Assigned 5 leads" {
		t.Fatalf("first status = %q", resp.Results[0].Status)
	}
}

func TestRunSkipsInactiveUsers(t *testing.T) {
	inactive := setting("ghost", 5, false)
	active := setting("alice", 2, true)
	settings := &fakeSettings{enabled: []repository.Setting{inactive, active}}
	claimer := &fakeClaimer{pool: 10}
	svc := New(settings, claimer, nil, logger.New("development"))

	resp, err := svc.Run(context.Background(), "test")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(resp.Results) != 1 {
		t.Fatalf("got %d results, want 1 (inactive user skipped)", len(resp.Results))
	}
	if _, claimed := claimer.claims[inactive.UserID]; claimed {
		t.Fatalf("inactive user received leads")
	}
}

func TestRunReportsEmptyPool(t *testing.T) {
	alice := setting("alice", 5, true)
	settings := &fakeSettings{enabled: []repository.Setting{alice}}
	svc := New(settings, &fakeClaimer{pool: 0}, nil, logger.New("development"))

	resp, err := svc.Run(context.Background(), "test")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if resp.Results[0].Status != "No leads available" {
		t.Fatalf("status = %q, want No leads available", resp.Results[0].Status)
	}
	if resp.TotalAssigned != 0 {
		t.Fatalf("TotalAssigned = %d, want 0", resp.TotalAssigned)
	}
}

func TestRunIsolatesClaimFailures(t *testing.T) {
	broken := setting("broken", 4, true)
	alice := setting("alice", 2, true)
	settings := &fakeSettings{enabled: []repository.Setting{broken, alice}}
	claimer := &fakeClaimer{
		pool:   10,
		errFor: map[uuid.UUID]error{broken.UserID: errors.New("db down")},
	}
	svc := New(settings, claimer, nil, logger.New("development"))

	resp, err := svc.Run(context.Background(), "test")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if resp.TotalAssigned != 2 {
		t.Fatalf("TotalAssigned = %d, want 2", resp.TotalAssigned)
	}
	if resp.Results[0].Assigned != 0 {
		t.Fatalf("failed user assigned = %d, want 0", resp.Results[0].Assigned)
	}
	if resp.Results[1].Status != "Assigned 2 leads" {
		t.Fatalf("second status = %q", resp.Results[1].Status)
	}
}

func TestSaveUpsertsEveryListedUser(t *testing.T) {
	settings := &fakeSettings{}
	svc := New(settings, &fakeClaimer{}, nil, logger.New("development"))

	alice := uuid.New()
	bob := uuid.New()
	err := svc.Save(context.Background(), transport.SaveSettingsRequest{
		Settings: []transport.SettingInput{
			{UserID: alice, DailyLimit: 7, IsEnabled: true},
			{UserID: bob, DailyLimit: 0, IsEnabled: false},
		},
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if len(settings.saved) != 2 {
		t.Fatalf("persisted %d settings, want 2", len(settings.saved))
	}
	got := settings.saved[alice]
	if got[0] != 7 || got[1] != true {
		t.Fatalf("persisted setting = %v, want limit 7 enabled", got)
	}
}
