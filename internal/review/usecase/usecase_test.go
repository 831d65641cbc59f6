package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/pkg/goroutine"
	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/learnnect/platform-api/internal/pkg/jwt"
	"github.com/learnnect/platform-api/internal/pkg/validator"
	"github.com/learnnect/platform-api/internal/review/entity"
)

type fakeDB struct {
	mu      sync.Mutex
	reviews map[int64]entity.Review
}

func newFakeDB() *fakeDB {
	return &fakeDB{reviews: map[int64]entity.Review{}}
}

func (f *fakeDB) CreateReview(_ context.Context, rev entity.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviews[rev.ID] = rev
	return nil
}

func (f *fakeDB) GetReview(_ context.Context, id int64) (*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rev, ok := f.reviews[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &rev, nil
}

func (f *fakeDB) ListApproved(_ context.Context, courseID string, _, _ int32) ([]entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Review
	for _, rev := range f.reviews {
		if rev.Status != entity.StatusApproved {
			continue
		}
		if courseID != "" && rev.CourseID != courseID {
			continue
		}
		out = append(out, rev)
	}
	return out, nil
}

func (f *fakeDB) Moderate(_ context.Context, id int64, status entity.Status, moderatorID int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rev, ok := f.reviews[id]
	if !ok || rev.Status != entity.StatusPending {
		return goerror.ErrNotFound
	}
	rev.Status = status
	rev.ModeratedBy = moderatorID
	rev.ModeratedAt = &at
	f.reviews[id] = rev
	return nil
}

type fakeMessaging struct {
	mu     sync.Mutex
	events []ReviewSubmittedEvent
}

func (f *fakeMessaging) PublishReviewSubmitted(_ context.Context, msg ReviewSubmittedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, msg)
	return nil
}

func (f *fakeMessaging) published() []ReviewSubmittedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ReviewSubmittedEvent(nil), f.events...)
}

type seqUID struct {
	next int64
}

func (s *seqUID) Generate() int64 {
	s.next++
	return s.next
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

func newEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		t.Fatalf("new enforcer: %v", err)
	}

	if _, err := e.AddPolicy("moderator", "reviews", "moderate"); err != nil {
		t.Fatalf("add policy: %v", err)
	}
	if _, err := e.AddGroupingPolicy("99", "moderator"); err != nil {
		t.Fatalf("add grouping policy: %v", err)
	}

	return e
}

type fixture struct {
	uc  *Usecase
	db  *fakeDB
	msg *fakeMessaging
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	fdb := newFakeDB()
	fmsg := &fakeMessaging{}

	uc := New(Dependency{
		RepoDB:     fdb,
		RepoMsg:    fmsg,
		UID:        &seqUID{},
		Clock:      &fakeClock{now: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)},
		Validator:  v,
		Enforcer:   newEnforcer(t),
		Goroutine:  goroutine.NewManager(4),
		Instrument: instrument.NewNoop(),
	})

	return &fixture{uc: uc, db: fdb, msg: fmsg}
}

func moderatorCtx(userID int64, subject string) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{Subject: subject},
		UserID:           userID,
	})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func submit(t *testing.T, f *fixture) int64 {
	t.Helper()

	out, err := f.uc.SubmitReview(context.Background(), SubmitReviewInput{
		CourseID: "go-fundamentals",
		Name:     "Priya",
		Email:    "priya@example.com",
		Rating:   5,
		Comment:  "Great course.",
	})
	if err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
	return out.ReviewID
}

func TestSubmitReviewStartsPending(t *testing.T) {
	f := newFixture(t)

	id := submit(t, f)

	rev, err := f.db.GetReview(context.Background(), id)
	if err != nil {
		t.Fatalf("GetReview: %v", err)
	}
	if rev.Status != entity.StatusPending {
		t.Fatalf("status = %q, want pending", rev.Status)
	}

	waitFor(t, func() bool { return len(f.msg.published()) == 1 })
	if ev := f.msg.published()[0]; ev.ReviewID != id || ev.Rating != 5 {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestSubmitReviewRejectsOutOfRangeRating(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.SubmitReview(context.Background(), SubmitReviewInput{
		CourseID: "go-fundamentals",
		Name:     "Priya",
		Email:    "priya@example.com",
		Rating:   6,
		Comment:  "Great course.",
	})
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestListReviewsShowsOnlyApproved(t *testing.T) {
	f := newFixture(t)

	approved := submit(t, f)
	submit(t, f)

	if err := f.db.Moderate(context.Background(), approved, entity.StatusApproved, 99, time.Now()); err != nil {
		t.Fatalf("Moderate: %v", err)
	}

	out, err := f.uc.ListReviews(context.Background(), ListReviewsInput{CourseID: "go-fundamentals"})
	if err != nil {
		t.Fatalf("ListReviews: %v", err)
	}
	if len(out.Reviews) != 1 || out.Reviews[0].ID != approved {
		t.Fatalf("unexpected reviews %+v", out.Reviews)
	}
}

func TestModerateReviewRecordsDecision(t *testing.T) {
	f := newFixture(t)
	id := submit(t, f)

	out, err := f.uc.ModerateReview(moderatorCtx(99, "99"), ModerateReviewInput{
		ReviewID: id,
		Action:   ModerateActionReject,
	})
	if err != nil {
		t.Fatalf("ModerateReview: %v", err)
	}
	if out.Status != entity.StatusRejected {
		t.Fatalf("status = %q, want rejected", out.Status)
	}

	rev, err := f.db.GetReview(context.Background(), id)
	if err != nil {
		t.Fatalf("GetReview: %v", err)
	}
	if rev.ModeratedBy != 99 || rev.ModeratedAt == nil {
		t.Fatalf("moderation not recorded: %+v", rev)
	}
}

func TestModerateReviewTwice(t *testing.T) {
	f := newFixture(t)
	id := submit(t, f)

	if _, err := f.uc.ModerateReview(moderatorCtx(99, "99"), ModerateReviewInput{
		ReviewID: id,
		Action:   ModerateActionApprove,
	}); err != nil {
		t.Fatalf("first decision: %v", err)
	}

	if _, err := f.uc.ModerateReview(moderatorCtx(99, "99"), ModerateReviewInput{
		ReviewID: id,
		Action:   ModerateActionReject,
	}); err == nil {
		t.Fatal("second decision must fail")
	}
}

func TestModerateReviewRequiresAuthorization(t *testing.T) {
	f := newFixture(t)
	id := submit(t, f)

	if _, err := f.uc.ModerateReview(context.Background(), ModerateReviewInput{
		ReviewID: id,
		Action:   ModerateActionApprove,
	}); err == nil {
		t.Fatal("anonymous request must be rejected")
	}

	if _, err := f.uc.ModerateReview(moderatorCtx(7, "7"), ModerateReviewInput{
		ReviewID: id,
		Action:   ModerateActionApprove,
	}); err == nil {
		t.Fatal("unprivileged subject must be rejected")
	}
}
