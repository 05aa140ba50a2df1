package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"time"

	"gigboard/internal/domain/application"
	"gigboard/internal/domain/job"
	"gigboard/internal/domain/notification"
	"gigboard/internal/domain/review"
	"gigboard/internal/domain/user"
	"gigboard/internal/repository"

	"github.com/google/uuid"
)

var testLogger = log.New(io.Discard, "", 0)

type memUserRepo struct {
	users            map[uuid.UUID]user.User
	workerProfiles   map[uuid.UUID]user.WorkerProfile
	employerProfiles map[uuid.UUID]user.EmployerProfile
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users:            map[uuid.UUID]user.User{},
		workerProfiles:   map[uuid.UUID]user.WorkerProfile{},
		employerProfiles: map[uuid.UUID]user.EmployerProfile{},
	}
}

func (m *memUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return user.User{}, repository.ErrEmailTaken
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, repository.ErrUserNotFound
}

func (m *memUserRepo) Update(_ context.Context, u user.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return repository.ErrUserNotFound
	}
	for _, other := range m.users {
		if other.ID != u.ID && other.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) GetWorkerProfile(_ context.Context, userID uuid.UUID) (user.WorkerProfile, error) {
	p, ok := m.workerProfiles[userID]
	if !ok {
		return user.WorkerProfile{}, repository.ErrProfileNotFound
	}
	return p, nil
}

func (m *memUserRepo) UpsertWorkerProfile(_ context.Context, p user.WorkerProfile) error {
	m.workerProfiles[p.UserID] = p
	return nil
}

func (m *memUserRepo) GetEmployerProfile(_ context.Context, userID uuid.UUID) (user.EmployerProfile, error) {
	p, ok := m.employerProfiles[userID]
	if !ok {
		return user.EmployerProfile{}, repository.ErrProfileNotFound
	}
	return p, nil
}

func (m *memUserRepo) UpsertEmployerProfile(_ context.Context, p user.EmployerProfile) error {
	m.employerProfiles[p.UserID] = p
	return nil
}

func (m *memUserRepo) HasEmployerProfile(_ context.Context, userID uuid.UUID) (bool, error) {
	_, ok := m.employerProfiles[userID]
	return ok, nil
}

type memJobRepo struct {
	jobs  map[uuid.UUID]job.Job
	order []uuid.UUID
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{jobs: map[uuid.UUID]job.Job{}}
}

func (m *memJobRepo) Create(_ context.Context, j job.Job) (job.Job, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	m.jobs[j.ID] = j
	m.order = append(m.order, j.ID)
	return j, nil
}

func (m *memJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := m.jobs[id]
	if !ok {
		return job.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (m *memJobRepo) GetByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]job.Job, error) {
	out := map[uuid.UUID]job.Job{}
	for _, id := range ids {
		if j, ok := m.jobs[id]; ok {
			out[id] = j
		}
	}
	return out, nil
}

func (m *memJobRepo) Update(_ context.Context, j job.Job) error {
	if _, ok := m.jobs[j.ID]; !ok {
		return repository.ErrJobNotFound
	}
	m.jobs[j.ID] = j
	return nil
}

func (m *memJobRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.jobs[id]; !ok {
		return repository.ErrJobNotFound
	}
	delete(m.jobs, id)
	return nil
}

func (m *memJobRepo) List(_ context.Context, f repository.JobListFilter) ([]job.Job, error) {
	out := make([]job.Job, 0, len(m.order))
	for _, id := range m.order {
		j, ok := m.jobs[id]
		if !ok {
			continue
		}
		if f.Type != "" && j.Type != f.Type {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (m *memJobRepo) ListByEmployer(_ context.Context, employerID uuid.UUID) ([]job.Job, error) {
	out := []job.Job{}
	for _, id := range m.order {
		j, ok := m.jobs[id]
		if !ok {
			continue
		}
		if j.EmployerID == employerID {
			out = append(out, j)
		}
	}
	return out, nil
}

type memAppRepo struct {
	apps  map[uuid.UUID]application.Application
	order []uuid.UUID
}

func newMemAppRepo() *memAppRepo {
	return &memAppRepo{apps: map[uuid.UUID]application.Application{}}
}

func (m *memAppRepo) Create(_ context.Context, jobID, workerID uuid.UUID) (application.Application, error) {
	for _, a := range m.apps {
		live := a.Status == application.StatusPending || a.Status == application.StatusAccepted
		if a.JobID == jobID && a.WorkerID == workerID && live {
			return application.Application{}, repository.ErrActiveApplicationExists
		}
	}
	a := application.Application{
		ID:        uuid.New(),
		JobID:     jobID,
		WorkerID:  workerID,
		Status:    application.StatusPending,
		AppliedAt: time.Now(),
	}
	m.apps[a.ID] = a
	m.order = append(m.order, a.ID)
	return a, nil
}

func (m *memAppRepo) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	a, ok := m.apps[id]
	if !ok {
		return application.Application{}, repository.ErrApplicationNotFound
	}
	return a, nil
}

func (m *memAppRepo) GetByJobAndWorker(_ context.Context, jobID, workerID uuid.UUID, status application.Status) (application.Application, error) {
	for _, a := range m.apps {
		if a.JobID == jobID && a.WorkerID == workerID && a.Status == status {
			return a, nil
		}
	}
	return application.Application{}, repository.ErrApplicationNotFound
}

func (m *memAppRepo) ListByJob(_ context.Context, jobID uuid.UUID) ([]application.Application, error) {
	out := []application.Application{}
	for _, id := range m.order {
		if a, ok := m.apps[id]; ok && a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAppRepo) ListByWorker(_ context.Context, workerID uuid.UUID) ([]application.Application, error) {
	out := []application.Application{}
	for _, id := range m.order {
		if a, ok := m.apps[id]; ok && a.WorkerID == workerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAppRepo) CountsByJob(_ context.Context, jobID uuid.UUID) (job.ApplicationCounts, error) {
	var c job.ApplicationCounts
	for _, a := range m.apps {
		if a.JobID != jobID {
			continue
		}
		switch a.Status {
		case application.StatusPending:
			c.Pending++
		case application.StatusAccepted:
			c.Accepted++
		case application.StatusCompleted:
			c.Completed++
		}
	}
	return c, nil
}

func (m *memAppRepo) CountsByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID]job.ApplicationCounts, error) {
	out := map[uuid.UUID]job.ApplicationCounts{}
	for _, id := range jobIDs {
		c, _ := m.CountsByJob(ctx, id)
		out[id] = c
	}
	return out, nil
}

func (m *memAppRepo) Accept(ctx context.Context, id, jobID uuid.UUID, quota int) error {
	c, _ := m.CountsByJob(ctx, jobID)
	if quota > 0 && c.Accepted >= quota {
		return repository.ErrQuotaFull
	}
	a, ok := m.apps[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	if a.Status != application.StatusPending {
		return repository.ErrWrongStatus
	}
	a.Status = application.StatusAccepted
	m.apps[id] = a
	return nil
}

func (m *memAppRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to application.Status) error {
	a, ok := m.apps[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	if a.Status != from {
		return repository.ErrWrongStatus
	}
	a.Status = to
	m.apps[id] = a
	return nil
}

func (m *memAppRepo) Cancel(_ context.Context, id uuid.UUID) error {
	a, ok := m.apps[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	if a.Status != application.StatusPending && a.Status != application.StatusAccepted {
		return repository.ErrWrongStatus
	}
	a.Status = application.StatusCancelled
	m.apps[id] = a
	return nil
}

func (m *memAppRepo) ConfirmPaid(_ context.Context, id uuid.UUID) error {
	a, ok := m.apps[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	if a.Status != application.StatusCompleted {
		return repository.ErrWrongStatus
	}
	a.PaidConfirmed = true
	m.apps[id] = a
	return nil
}

type memNotifRepo struct {
	created []notification.Notification
}

func (m *memNotifRepo) Create(_ context.Context, n notification.Notification) (notification.Notification, error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = time.Now()
	m.created = append(m.created, n)
	return n, nil
}

func (m *memNotifRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]notification.Notification, error) {
	out := []notification.Notification{}
	for _, n := range m.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNotifRepo) MarkRead(_ context.Context, id, userID uuid.UUID) error {
	for i, n := range m.created {
		if n.ID == id && n.UserID == userID {
			now := time.Now()
			m.created[i].IsRead = true
			m.created[i].ReadAt = &now
			return nil
		}
	}
	return repository.ErrNotificationNotFound
}

func (m *memNotifRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	for i, n := range m.created {
		if n.ID == id && n.UserID == userID {
			m.created = append(m.created[:i], m.created[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotificationNotFound
}

type memReviewRepo struct {
	reviews []review.Review

	// optional; when set, Create refreshes the reviewee's rating
	// aggregate the way the Postgres repository does in its transaction
	users *memUserRepo
}

func (m *memReviewRepo) Create(_ context.Context, rev review.Review) (review.Review, error) {
	for _, r := range m.reviews {
		if r.JobID == rev.JobID && r.ReviewerID == rev.ReviewerID && r.RevieweeID == rev.RevieweeID {
			return review.Review{}, repository.ErrReviewExists
		}
	}
	if rev.ID == uuid.Nil {
		rev.ID = uuid.New()
	}
	rev.CreatedAt = time.Now()
	m.reviews = append(m.reviews, rev)
	m.refreshAggregate(rev.RevieweeID)
	return rev, nil
}

func (m *memReviewRepo) refreshAggregate(revieweeID uuid.UUID) {
	if m.users == nil {
		return
	}
	u, ok := m.users.users[revieweeID]
	if !ok {
		return
	}
	sum, count := 0, 0
	for _, r := range m.reviews {
		if r.RevieweeID == revieweeID {
			sum += r.Rating
			count++
		}
	}
	u.RatingCount = count
	u.RatingAvg = 0
	if count > 0 {
		u.RatingAvg = float64(sum) / float64(count)
	}
	m.users.users[revieweeID] = u
}

func (m *memReviewRepo) ListByReviewee(_ context.Context, revieweeID uuid.UUID) ([]review.Review, error) {
	out := []review.Review{}
	for _, r := range m.reviews {
		if r.RevieweeID == revieweeID {
			out = append(out, r)
		}
	}
	return out, nil
}

type memCache struct {
	entries       map[string][]byte
	invalidations int
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (m *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = b
	return nil
}

func (m *memCache) InvalidateJobListings(_ context.Context) error {
	m.entries = map[string][]byte{}
	m.invalidations++
	return nil
}

type memPusher struct {
	pushed []notification.Notification
}

func (m *memPusher) Push(n notification.Notification) {
	m.pushed = append(m.pushed, n)
}
