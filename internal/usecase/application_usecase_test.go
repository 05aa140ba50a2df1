package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"gigboard/internal/domain/application"
	"gigboard/internal/domain/job"
	"gigboard/internal/domain/user"

	"github.com/google/uuid"
)

type applicationFixture struct {
	uc     *Applications
	users  *memUserRepo
	jobs   *memJobRepo
	apps   *memAppRepo
	notifs *memNotifRepo
	cache  *memCache
	push   *memPusher

	employer user.User
	worker   user.User
	job      job.Job
	now      time.Time
}

func newApplicationFixture(t *testing.T, quota int) *applicationFixture {
	t.Helper()

	f := &applicationFixture{
		users:  newMemUserRepo(),
		jobs:   newMemJobRepo(),
		apps:   newMemAppRepo(),
		notifs: &memNotifRepo{},
		cache:  newMemCache(),
		push:   &memPusher{},
		now:    time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC),
	}

	f.employer, _ = f.users.Create(context.Background(), user.User{Email: "boss@example.com", IsEmployer: true})
	f.worker, _ = f.users.Create(context.Background(), user.User{Email: "worker@example.com", IsWorker: true})

	f.job, _ = f.jobs.Create(context.Background(), job.Job{
		EmployerID:   f.employer.ID,
		Title:        "Event crew",
		Type:         job.TypeEvent,
		StartDate:    f.now.AddDate(0, 0, 7),
		DurationDays: 2,
		WorkerQuota:  quota,
	})

	f.uc = NewApplicationUsecase(f.apps, f.jobs, f.users, f.notifs, f.cache, f.push, testLogger)
	f.uc.now = func() time.Time { return f.now }
	return f
}

func (f *applicationFixture) addWorker(t *testing.T, email string) user.User {
	t.Helper()
	w, err := f.users.Create(context.Background(), user.User{Email: email, IsWorker: true})
	if err != nil {
		t.Fatalf("create worker: %v", err)
	}
	return w
}

func TestApplications_Apply_CreatesPending(t *testing.T) {
	f := newApplicationFixture(t, 2)

	a, err := f.uc.Apply(context.Background(), f.job.ID, f.worker.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.Status != application.StatusPending {
		t.Fatalf("status = %s, want pending", a.Status)
	}
	if len(f.notifs.created) != 1 || f.notifs.created[0].UserID != f.employer.ID {
		t.Fatalf("expected one notification for the employer")
	}
	if len(f.push.pushed) != 1 {
		t.Fatalf("expected notification pushed")
	}
}

func TestApplications_Apply_RequiresWorkerRole(t *testing.T) {
	f := newApplicationFixture(t, 2)

	_, err := f.uc.Apply(context.Background(), f.job.ID, f.employer.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestApplications_Apply_UnknownJob_NotFound(t *testing.T) {
	f := newApplicationFixture(t, 2)

	_, err := f.uc.Apply(context.Background(), uuid.New(), f.worker.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApplications_Apply_FullJob_Conflict(t *testing.T) {
	f := newApplicationFixture(t, 1)

	first, err := f.uc.Apply(context.Background(), f.job.ID, f.worker.ID)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := f.uc.Accept(context.Background(), first.ID, f.employer.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	other := f.addWorker(t, "late@example.com")
	_, err = f.uc.Apply(context.Background(), f.job.ID, other.ID)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for full job, got %v", err)
	}
}

func TestApplications_Apply_DuplicateActive_Conflict(t *testing.T) {
	f := newApplicationFixture(t, 2)

	a, err := f.uc.Apply(context.Background(), f.job.ID, f.worker.ID)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	_, err = f.uc.Apply(context.Background(), f.job.ID, f.worker.ID)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate, got %v", err)
	}

	// A cancelled application no longer blocks re-applying.
	if _, err := f.uc.Cancel(context.Background(), a.ID, f.worker.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := f.uc.Apply(context.Background(), f.job.ID, f.worker.ID); err != nil {
		t.Fatalf("re-apply after cancel: %v", err)
	}
}

func TestApplications_Apply_AfterRejection_Succeeds(t *testing.T) {
	f := newApplicationFixture(t, 2)

	a, err := f.uc.Apply(context.Background(), f.job.ID, f.worker.ID)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := f.uc.Reject(context.Background(), a.ID, f.employer.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	// A rejected application does not hold the slot.
	again, err := f.uc.Apply(context.Background(), f.job.ID, f.worker.ID)
	if err != nil {
		t.Fatalf("re-apply after reject: %v", err)
	}
	if again.ID == a.ID {
		t.Fatalf("expected a fresh application row")
	}
	if again.Status != application.StatusPending {
		t.Fatalf("status = %s, want pending", again.Status)
	}
}

func TestApplications_Accept_QuotaEnforced(t *testing.T) {
	f := newApplicationFixture(t, 1)
	other := f.addWorker(t, "second@example.com")

	first, err := f.uc.Apply(context.Background(), f.job.ID, f.worker.ID)
	if err != nil {
		t.Fatalf("apply first: %v", err)
	}
	second, err := f.uc.Apply(context.Background(), f.job.ID, other.ID)
	if err != nil {
		t.Fatalf("apply second: %v", err)
	}

	accepted, err := f.uc.Accept(context.Background(), first.ID, f.employer.ID)
	if err != nil {
		t.Fatalf("accept first: %v", err)
	}
	if accepted.Status != application.StatusAccepted {
		t.Fatalf("status = %s, want accepted", accepted.Status)
	}
	if f.cache.invalidations == 0 {
		t.Fatalf("expected listing cache invalidation after accept")
	}

	_, err = f.uc.Accept(context.Background(), second.ID, f.employer.ID)
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}

	// The losing application stays pending; quota never auto-rejects.
	got, err := f.apps.GetByID(context.Background(), second.ID)
	if err != nil {
		t.Fatalf("get second: %v", err)
	}
	if got.Status != application.StatusPending {
		t.Fatalf("second status = %s, want pending", got.Status)
	}
}

func TestApplications_Accept_OnlyJobOwner(t *testing.T) {
	f := newApplicationFixture(t, 1)
	stranger, _ := f.users.Create(context.Background(), user.User{Email: "other-boss@example.com", IsEmployer: true})

	a, err := f.uc.Apply(context.Background(), f.job.ID, f.worker.ID)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	_, err = f.uc.Accept(context.Background(), a.ID, stranger.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestApplications_Reject_Terminal(t *testing.T) {
	f := newApplicationFixture(t, 1)

	a, err := f.uc.Apply(context.Background(), f.job.ID, f.worker.ID)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	rejected, err := f.uc.Reject(context.Background(), a.ID, f.employer.ID)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != application.StatusRejected {
		t.Fatalf("status = %s, want rejected", rejected.Status)
	}

	// Rejected is terminal for the employer side.
	if _, err := f.uc.Accept(context.Background(), a.ID, f.employer.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState accepting a rejected application, got %v", err)
	}
	if _, err := f.uc.Reject(context.Background(), a.ID, f.employer.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState re-rejecting, got %v", err)
	}
}

func TestApplications_Complete_Flow(t *testing.T) {
	f := newApplicationFixture(t, 1)

	a, err := f.uc.Apply(context.Background(), f.job.ID, f.worker.ID)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := f.uc.Accept(context.Background(), a.ID, f.employer.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	done, err := f.uc.Complete(context.Background(), f.job.ID, f.worker.ID, f.employer.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != application.StatusCompleted {
		t.Fatalf("status = %s, want completed", done.Status)
	}

	// Completing again finds no accepted application.
	_, err = f.uc.Complete(context.Background(), f.job.ID, f.worker.ID, f.employer.ID)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestApplications_Complete_PendingWorker_InvalidState(t *testing.T) {
	f := newApplicationFixture(t, 1)

	if _, err := f.uc.Apply(context.Background(), f.job.ID, f.worker.ID); err != nil {
		t.Fatalf("apply: %v", err)
	}

	_, err := f.uc.Complete(context.Background(), f.job.ID, f.worker.ID, f.employer.ID)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for pending worker, got %v", err)
	}
}

func TestApplications_ConfirmPaid(t *testing.T) {
	f := newApplicationFixture(t, 1)

	a, err := f.uc.Apply(context.Background(), f.job.ID, f.worker.ID)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	// Not completed yet.
	if err := f.uc.ConfirmPaid(context.Background(), a.ID, f.worker.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState before completion, got %v", err)
	}

	if _, err := f.uc.Accept(context.Background(), a.ID, f.employer.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := f.uc.Complete(context.Background(), f.job.ID, f.worker.ID, f.employer.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if err := f.uc.ConfirmPaid(context.Background(), a.ID, f.employer.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	if err := f.uc.ConfirmPaid(context.Background(), a.ID, f.worker.ID); err != nil {
		t.Fatalf("confirm paid: %v", err)
	}
	// Idempotent.
	if err := f.uc.ConfirmPaid(context.Background(), a.ID, f.worker.ID); err != nil {
		t.Fatalf("confirm paid again: %v", err)
	}

	got, err := f.apps.GetByID(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.PaidConfirmed {
		t.Fatalf("expected paid_confirmed set")
	}
}

func TestApplications_Cancel_States(t *testing.T) {
	f := newApplicationFixture(t, 1)

	a, err := f.uc.Apply(context.Background(), f.job.ID, f.worker.ID)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if _, err := f.uc.Cancel(context.Background(), a.ID, f.employer.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner cancel, got %v", err)
	}

	if _, err := f.uc.Accept(context.Background(), a.ID, f.employer.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := f.uc.Complete(context.Background(), f.job.ID, f.worker.ID, f.employer.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	_, err = f.uc.Cancel(context.Background(), a.ID, f.worker.ID)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState cancelling completed work, got %v", err)
	}
}

func TestApplications_ListForJob_OwnerOnly(t *testing.T) {
	f := newApplicationFixture(t, 2)
	other := f.addWorker(t, "w2@example.com")

	if _, err := f.uc.Apply(context.Background(), f.job.ID, f.worker.ID); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := f.uc.Apply(context.Background(), f.job.ID, other.ID); err != nil {
		t.Fatalf("apply: %v", err)
	}

	apps, err := f.uc.ListForJob(context.Background(), f.job.ID, f.employer.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(apps))
	}

	if _, err := f.uc.ListForJob(context.Background(), f.job.ID, f.worker.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
}

func TestApplications_ListForWorker(t *testing.T) {
	f := newApplicationFixture(t, 2)
	other := f.addWorker(t, "w2@example.com")

	if _, err := f.uc.Apply(context.Background(), f.job.ID, f.worker.ID); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := f.uc.Apply(context.Background(), f.job.ID, other.ID); err != nil {
		t.Fatalf("apply: %v", err)
	}

	apps, err := f.uc.ListForWorker(context.Background(), f.worker.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(apps) != 1 || apps[0].WorkerID != f.worker.ID {
		t.Fatalf("expected only the worker's own application, got %d", len(apps))
	}

	empty, err := f.uc.ListForWorker(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no applications, got %d", len(empty))
	}
}
