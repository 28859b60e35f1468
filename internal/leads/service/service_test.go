package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"leaddesk_backend/internal/leads/repository"
	"leaddesk_backend/internal/leads/transport"
	"leaddesk_backend/platform/apperr"

	"github.com/google/uuid"
)

type fakeRepo struct {
	created     []repository.CreateLeadParams
	createErr   error
	pool        []repository.Lead
	claimErrFor map[uuid.UUID]error
	leads       map[uuid.UUID]repository.Lead
	updated     map[uuid.UUID]repository.UpdateLeadParams
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		claimErrFor: make(map[uuid.UUID]error),
		leads:       make(map[uuid.UUID]repository.Lead),
		updated:     make(map[uuid.UUID]repository.UpdateLeadParams),
	}
}

func (f *fakeRepo) CreateLeads(ctx context.Context, params []repository.CreateLeadParams) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, params...)
	return nil
}

func (f *fakeRepo) ClaimPool(ctx context.Context, userID uuid.UUID, limit int, day time.Time) ([]uuid.UUID, error) {
	if err := f.claimErrFor[userID]; err != nil {
		return nil, err
	}
	n := limit
	if n > len(f.pool) {
		n = len(f.pool)
	}
	var ids []uuid.UUID
	for _, lead := range f.pool[:n] {
		ids = append(ids, lead.ID)
	}
	f.pool = f.pool[n:]
	return ids, nil
}

func (f *fakeRepo) CountPool(ctx context.Context) (int, error) {
	return len(f.pool), nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return repository.Lead{}, repository.ErrNotFound
	}
	return lead, nil
}

func (f *fakeRepo) UpdateLead(ctx context.Context, id uuid.UUID, params repository.UpdateLeadParams) (repository.Lead, error) {
	lead := f.leads[id]
	if params.Status != nil {
		lead.Status = *params.Status
	}
	if params.SubStatus != nil {
		lead.SubStatus = params.SubStatus
	}
	if params.Notes != nil {
		lead.Notes = *params.Notes
	}
	f.leads[id] = lead
	f.updated[id] = params
	return lead, nil
}

func (f *fakeRepo) SetActiveClient(ctx context.Context, id uuid.UUID, active bool) (repository.Lead, error) {
	lead := f.leads[id]
	lead.IsActiveClient = active
	f.leads[id] = lead
	return lead, nil
}

func (f *fakeRepo) List(ctx context.Context, params repository.ListLeadsParams) ([]repository.Lead, error) {
	var out []repository.Lead
	for _, lead := range f.leads {
		if params.AssignedTo != nil && (lead.AssignedTo == nil || *lead.AssignedTo != *params.AssignedTo) {
			continue
		}
		out = append(out, lead)
	}
	return out, nil
}

func (f *fakeRepo) SearchByIdentifier(ctx context.Context, query string, limit int) ([]repository.Lead, error) {
	return nil, nil
}

func (f *fakeRepo) ListTracked(ctx context.Context) ([]repository.Lead, error) {
	return nil, nil
}

func newTestService(repo *fakeRepo) *Service {
	s := New(repo, nil)
	s.now = func() time.Time {
		return time.Date(2025, 6, 18, 14, 30, 0, 0, time.UTC)
	}
	return s
}

func TestUploadRoundRobin(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	userA := uuid.New()
	userB := uuid.New()
	identifiers := []string{"lead-1", "lead-2", "lead-3", "lead-4", "lead-5"}

	count, err := svc.Upload(context.Background(), uuid.New(), identifiers, []uuid.UUID{userA, userB})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if count != 5 {
		t.Fatalf("Upload() count = %d, want 5", count)
	}
	if len(repo.created) != 5 {
		t.Fatalf("created %d leads, want 5", len(repo.created))
	}

	wantOwner := []uuid.UUID{userA, userB, userA, userB, userA}
	for i, p := range repo.created {
		if p.AssignedTo == nil {
			t.Fatalf("lead %d has no assignee", i)
		}
		if *p.AssignedTo != wantOwner[i] {
			t.Errorf("lead %d assigned to %s, want %s", i, *p.AssignedTo, wantOwner[i])
		}
		if p.AssignedDate == nil {
			t.Fatalf("lead %d has no assigned date", i)
		}
		want := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)
		if !p.AssignedDate.Equal(want) {
			t.Errorf("lead %d assigned date = %v, want %v", i, p.AssignedDate, want)
		}
	}
}

func TestUploadWithoutTargetsGoesToPool(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	count, err := svc.Upload(context.Background(), uuid.New(), []string{"a", "b"}, nil)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if count != 2 {
		t.Fatalf("Upload() count = %d, want 2", count)
	}
	for i, p := range repo.created {
		if p.AssignedTo != nil {
			t.Errorf("lead %d unexpectedly assigned", i)
		}
		if p.AssignedDate != nil {
			t.Errorf("lead %d unexpectedly dated", i)
		}
	}
}

func TestUploadEmpty(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Upload(context.Background(), uuid.New(), nil, nil)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("Upload() error = %v, want validation error", err)
	}
}

func TestManualAssignTruncatesOnEmptyPool(t *testing.T) {
	repo := newFakeRepo()
	for i := 0; i < 3; i++ {
		repo.pool = append(repo.pool, repository.Lead{ID: uuid.New()})
	}
	svc := newTestService(repo)

	userA := uuid.New()
	userB := uuid.New()
	total, errs := svc.ManualAssign(context.Background(), []transport.ManualAssignment{
		{UserID: userA, Count: 5},
		{UserID: userB, Count: 2},
	})

	// The pool holds 3, so the first user takes everything and the second
	// entry is dropped without an error.
	if total != 3 {
		t.Fatalf("ManualAssign() total = %d, want 3", total)
	}
	if len(errs) != 0 {
		t.Fatalf("ManualAssign() errors = %v, want none", errs)
	}
}

func TestManualAssignIsolatesFailures(t *testing.T) {
	repo := newFakeRepo()
	for i := 0; i < 4; i++ {
		repo.pool = append(repo.pool, repository.Lead{ID: uuid.New()})
	}
	userA := uuid.New()
	userB := uuid.New()
	repo.claimErrFor[userA] = errors.New("db down")
	svc := newTestService(repo)

	total, errs := svc.ManualAssign(context.Background(), []transport.ManualAssignment{
		{UserID: userA, Count: 2},
		{UserID: userB, Count: 2},
	})

	if total != 2 {
		t.Fatalf("ManualAssign() total = %d, want 2", total)
	}
	if len(errs) != 1 {
		t.Fatalf("ManualAssign() errors = %v, want one", errs)
	}
}

func TestManualAssignSkipsNonPositiveCounts(t *testing.T) {
	repo := newFakeRepo()
	repo.pool = append(repo.pool, repository.Lead{ID: uuid.New()})
	svc := newTestService(repo)

	total, errs := svc.ManualAssign(context.Background(), []transport.ManualAssignment{
		{UserID: uuid.New(), Count: 0},
		{UserID: uuid.New(), Count: -3},
	})

	if total != 0 || len(errs) != 0 {
		t.Fatalf("ManualAssign() = (%d, %v), want (0, none)", total, errs)
	}
	if len(repo.pool) != 1 {
		t.Fatalf("pool size = %d, want untouched 1", len(repo.pool))
	}
}

func TestUpdateStatusAuthorization(t *testing.T) {
	repo := newFakeRepo()
	owner := uuid.New()
	lead := repository.Lead{ID: uuid.New(), Status: "pending", AssignedTo: &owner}
	repo.leads[lead.ID] = lead
	svc := newTestService(repo)

	status := "done"
	req := transport.UpdateLeadStatusRequest{Status: &status}

	_, err := svc.UpdateStatus(context.Background(), lead.ID, Actor{ID: uuid.New()}, req)
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("UpdateStatus() error = %v, want unauthorized", err)
	}
	if repo.leads[lead.ID].Status != "pending" {
		t.Fatalf("lead mutated by unauthorized caller")
	}

	resp, err := svc.UpdateStatus(context.Background(), lead.ID, Actor{ID: owner}, req)
	if err != nil {
		t.Fatalf("UpdateStatus() as owner error = %v", err)
	}
	if resp.Status != "done" {
		t.Fatalf("UpdateStatus() status = %q, want done", resp.Status)
	}
}

func TestUpdateStatusAdminBypassesOwnership(t *testing.T) {
	repo := newFakeRepo()
	lead := repository.Lead{ID: uuid.New(), Status: "pending"}
	repo.leads[lead.ID] = lead
	svc := newTestService(repo)

	sub := "Booked"
	resp, err := svc.UpdateStatus(context.Background(), lead.ID, Actor{ID: uuid.New(), Admin: true}, transport.UpdateLeadStatusRequest{SubStatus: &sub})
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if resp.SubStatus == nil || *resp.SubStatus != "Booked" {
		t.Fatalf("UpdateStatus() subStatus = %v, want Booked", resp.SubStatus)
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	id := uuid.New()

	_, err := svc.UpdateStatus(context.Background(), id, Actor{Admin: true}, transport.UpdateLeadStatusRequest{})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("empty update error = %v, want validation", err)
	}

	bad := "archived"
	_, err = svc.UpdateStatus(context.Background(), id, Actor{Admin: true}, transport.UpdateLeadStatusRequest{Status: &bad})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("invalid status error = %v, want validation", err)
	}

	badSub := "Ghosted"
	_, err = svc.UpdateStatus(context.Background(), id, Actor{Admin: true}, transport.UpdateLeadStatusRequest{SubStatus: &badSub})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("invalid sub status error = %v, want validation", err)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo())

	status := "done"
	_, err := svc.UpdateStatus(context.Background(), uuid.New(), Actor{Admin: true}, transport.UpdateLeadStatusRequest{Status: &status})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("UpdateStatus() error = %v, want not found", err)
	}
}

func TestPoolBalance(t *testing.T) {
	repo := newFakeRepo()
	for i := 0; i < 7; i++ {
		repo.pool = append(repo.pool, repository.Lead{ID: uuid.New()})
	}
	svc := newTestService(repo)

	_, _ = svc.ManualAssign(context.Background(), []transport.ManualAssignment{{UserID: uuid.New(), Count: 3}})

	count, err := svc.PoolBalance(context.Background())
	if err != nil {
		t.Fatalf("PoolBalance() error = %v", err)
	}
	if count != 4 {
		t.Fatalf("PoolBalance() = %d, want 4", count)
	}
}
