package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/learnnect/platform-api/internal/engagement/entity"
	"github.com/learnnect/platform-api/internal/pkg/config"
	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/pkg/goroutine"
	"github.com/learnnect/platform-api/internal/pkg/idempotency"
	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/learnnect/platform-api/internal/pkg/jwt"
	"github.com/learnnect/platform-api/internal/pkg/storage"
	"github.com/learnnect/platform-api/internal/pkg/uid"
	"github.com/learnnect/platform-api/internal/pkg/validator"
	verificationuc "github.com/learnnect/platform-api/internal/verification/usecase"
)

type fakeDB struct {
	mu        sync.Mutex
	leads     []entity.Lead
	createErr error
}

func (f *fakeDB) CreateLead(_ context.Context, lead entity.Lead) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leads = append(f.leads, lead)
	return nil
}

func (f *fakeDB) ListLeads(_ context.Context, _ entity.LeadListFilter) ([]entity.Lead, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.leads, int64(len(f.leads)), nil
}

func (f *fakeDB) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.leads)
}

type fakeStash struct {
	forms map[string]entity.PendingForm
}

func newFakeStash() *fakeStash {
	return &fakeStash{forms: map[string]entity.PendingForm{}}
}

func stashKey(formType entity.FormType, email string) string {
	return formType.String() + ":" + email
}

func (f *fakeStash) Put(_ context.Context, form entity.PendingForm, _ time.Duration) error {
	f.forms[stashKey(form.FormType, form.Email)] = form
	return nil
}

func (f *fakeStash) Pop(_ context.Context, formType entity.FormType, email string) (*entity.PendingForm, error) {
	form, ok := f.forms[stashKey(formType, email)]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	delete(f.forms, stashKey(formType, email))
	return &form, nil
}

func (f *fakeStash) Delete(_ context.Context, formType entity.FormType, email string) error {
	delete(f.forms, stashKey(formType, email))
	return nil
}

type fakeMessaging struct {
	mu     sync.Mutex
	events []FormSubmittedEvent
}

func (f *fakeMessaging) PublishFormSubmitted(_ context.Context, msg FormSubmittedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, msg)
	return nil
}

func (f *fakeMessaging) published() []FormSubmittedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FormSubmittedEvent(nil), f.events...)
}

type fakeOTP struct {
	sendOut   *verificationuc.SendOutput
	verifyOut *verificationuc.VerifyOutput
	sends     []verificationuc.SendEmailOTPInput
	verifies  []verificationuc.VerifyOTPInput
}

func (f *fakeOTP) SendEmailOTP(_ context.Context, in verificationuc.SendEmailOTPInput) (*verificationuc.SendOutput, error) {
	f.sends = append(f.sends, in)
	if f.sendOut != nil {
		return f.sendOut, nil
	}
	return &verificationuc.SendOutput{Sent: true, Message: "OTP sent to " + in.Destination + ". Please check your inbox."}, nil
}

func (f *fakeOTP) VerifyOTP(_ context.Context, in verificationuc.VerifyOTPInput) (*verificationuc.VerifyOutput, error) {
	f.verifies = append(f.verifies, in)
	if f.verifyOut != nil {
		return f.verifyOut, nil
	}
	return &verificationuc.VerifyOutput{Verified: true, Message: verificationuc.MsgVerified}, nil
}

type fakeStorage struct {
	objects map[string][]byte
	putErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) PutObject(_ context.Context, bucket, key string, r io.Reader, opts storage.PutOptions) (storage.ObjectInfo, error) {
	if f.putErr != nil {
		return storage.ObjectInfo{}, f.putErr
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return storage.ObjectInfo{}, err
	}
	f.objects[bucket+"/"+key] = body
	return storage.ObjectInfo{Bucket: bucket, Key: key, Size: int64(len(body)), ContentType: opts.ContentType}, nil
}

func (f *fakeStorage) GetObject(context.Context, string, string, storage.GetOptions) (io.ReadCloser, storage.ObjectInfo, error) {
	return nil, storage.ObjectInfo{}, goerror.ErrNotFound
}

func (f *fakeStorage) StatObject(context.Context, string, string) (storage.ObjectInfo, error) {
	return storage.ObjectInfo{}, goerror.ErrNotFound
}

func (f *fakeStorage) DeleteObject(context.Context, string, string) error { return nil }

func (f *fakeStorage) ListObjects(context.Context, string, string, storage.ListOptions) ([]storage.ObjectInfo, error) {
	return nil, nil
}

func (f *fakeStorage) PresignGet(context.Context, string, string, time.Duration) (string, error) {
	return "", storage.ErrMissingSigner
}

func (f *fakeStorage) PresignPut(context.Context, string, string, storage.PutOptions, time.Duration) (string, error) {
	return "", storage.ErrMissingSigner
}

func (f *fakeStorage) Close() error { return nil }

type fakeIdempotency struct {
	execErr error
	calls   int
}

func (f *fakeIdempotency) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (f *fakeIdempotency) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdempotency) MarkFailed(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdempotency) Exec(ctx context.Context, _ string, fn func(context.Context) error, _ ...idempotency.Option) error {
	f.calls++
	if f.execErr != nil {
		return f.execErr
	}
	return fn(ctx)
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

// stubConfig drives the verification gate and leaves every other key at
// its built-in default.
type stubConfig struct {
	config.Config
	requireOTP bool
}

func (c stubConfig) GetBool(string) bool            { return c.requireOTP }
func (c stubConfig) GetMap(string) map[string]string { return nil }
func (c stubConfig) GetMinute(string) time.Duration { return 0 }
func (c stubConfig) GetString(string) string        { return "learnnect-uploads" }

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

	if _, err := e.AddPolicy("admin", "leads", "read"); err != nil {
		t.Fatalf("add policy: %v", err)
	}
	if _, err := e.AddGroupingPolicy("42", "admin"); err != nil {
		t.Fatalf("add grouping policy: %v", err)
	}

	return e
}

type fixture struct {
	uc      *Usecase
	db      *fakeDB
	stash   *fakeStash
	msg     *fakeMessaging
	otp     *fakeOTP
	storage *fakeStorage
	idemp   *fakeIdempotency
	cfg     *stubConfig
}

func newFixture(t *testing.T, requireOTP bool) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	keys, err := uid.NewObjectIDGenerator()
	if err != nil {
		t.Fatalf("new object id generator: %v", err)
	}

	fdb := &fakeDB{}
	fst := newFakeStash()
	fmsg := &fakeMessaging{}
	fotp := &fakeOTP{}
	fsto := newFakeStorage()
	fid := &fakeIdempotency{}
	cfg := &stubConfig{requireOTP: requireOTP}

	uc := New(Dependency{
		RepoDB:      fdb,
		Stash:       fst,
		RepoMsg:     fmsg,
		OTP:         fotp,
		Storage:     fsto,
		Idempotency: fid,
		UID:         &seqUID{},
		Keys:        keys,
		Clock:       &fakeClock{now: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)},
		Config:      cfg,
		Validator:   v,
		Enforcer:    newEnforcer(t),
		Goroutine:   goroutine.NewManager(4),
		Instrument:  instrument.NewNoop(),
	})

	return &fixture{uc: uc, db: fdb, stash: fst, msg: fmsg, otp: fotp, storage: fsto, idemp: fid, cfg: cfg}
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

func TestSubmitFormWithoutVerificationStoresLead(t *testing.T) {
	f := newFixture(t, false)

	out, err := f.uc.SubmitForm(context.Background(), SubmitFormInput{
		FormType: entity.FormTypeEnquiry,
		Fields:   map[string]string{"name": "Priya", "email": "priya@example.com", "phone": "9876543210"},
	})
	if err != nil {
		t.Fatalf("SubmitForm: %v", err)
	}
	if out.OTPRequired {
		t.Fatal("expected no verification requirement")
	}
	if out.LeadID == 0 {
		t.Fatal("expected an assigned lead id")
	}
	if f.db.count() != 1 {
		t.Fatalf("leads stored = %d, want 1", f.db.count())
	}
	if len(f.otp.sends) != 0 {
		t.Fatal("no code should be sent when verification is off")
	}

	waitFor(t, func() bool { return len(f.msg.published()) == 1 })
	ev := f.msg.published()[0]
	if ev.LeadID != out.LeadID || ev.Email != "priya@example.com" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestSubmitFormWithVerificationStashesPayload(t *testing.T) {
	f := newFixture(t, true)

	out, err := f.uc.SubmitForm(context.Background(), SubmitFormInput{
		FormType: entity.FormTypeContact,
		Fields:   map[string]string{"name": "Arjun", "email": "arjun@example.com"},
	})
	if err != nil {
		t.Fatalf("SubmitForm: %v", err)
	}
	if !out.OTPRequired {
		t.Fatal("expected verification requirement")
	}
	if out.Message != "OTP sent to arjun@example.com. Please check your inbox." {
		t.Fatalf("unexpected message %q", out.Message)
	}
	if f.db.count() != 0 {
		t.Fatal("lead must not be stored before verification")
	}
	if len(f.otp.sends) != 1 || f.otp.sends[0].Destination != "arjun@example.com" {
		t.Fatalf("unexpected send calls %+v", f.otp.sends)
	}
	if _, ok := f.stash.forms[stashKey(entity.FormTypeContact, "arjun@example.com")]; !ok {
		t.Fatal("pending form not stashed")
	}
}

func TestSubmitFormRejectsInvalidEmail(t *testing.T) {
	f := newFixture(t, true)

	_, err := f.uc.SubmitForm(context.Background(), SubmitFormInput{
		FormType: entity.FormTypeEnquiry,
		Fields:   map[string]string{"email": "test@domain"},
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	var ge *goerror.Error
	if !errors.As(err, &ge) || ge.Msg() != "Email domain must contain at least one dot" {
		t.Fatalf("unexpected error %v", err)
	}
	if len(f.otp.sends) != 0 {
		t.Fatal("no code should be sent for an invalid address")
	}
}

func TestCompleteFormStoresStashedLead(t *testing.T) {
	f := newFixture(t, true)

	if _, err := f.uc.SubmitForm(context.Background(), SubmitFormInput{
		FormType: entity.FormTypeContact,
		Fields:   map[string]string{"name": "Arjun", "email": "arjun@example.com"},
	}); err != nil {
		t.Fatalf("SubmitForm: %v", err)
	}

	out, err := f.uc.CompleteForm(context.Background(), CompleteFormInput{
		FormType: entity.FormTypeContact,
		Email:    "arjun@example.com",
		Code:     "123456",
	})
	if err != nil {
		t.Fatalf("CompleteForm: %v", err)
	}
	if !out.Completed {
		t.Fatal("expected completion")
	}
	if f.db.count() != 1 {
		t.Fatalf("leads stored = %d, want 1", f.db.count())
	}
	if len(f.otp.verifies) != 1 || f.otp.verifies[0].Channel != "email" {
		t.Fatalf("unexpected verify calls %+v", f.otp.verifies)
	}
	if len(f.stash.forms) != 0 {
		t.Fatal("stash must be drained after completion")
	}
}

func TestCompleteFormReportsWrongCode(t *testing.T) {
	f := newFixture(t, true)
	remaining := 2
	f.otp.verifyOut = &verificationuc.VerifyOutput{
		Verified:          false,
		Message:           "Incorrect OTP. 2 attempts remaining.",
		RemainingAttempts: &remaining,
	}

	out, err := f.uc.CompleteForm(context.Background(), CompleteFormInput{
		FormType: entity.FormTypeContact,
		Email:    "arjun@example.com",
		Code:     "000000",
	})
	if err != nil {
		t.Fatalf("CompleteForm: %v", err)
	}
	if out.Completed {
		t.Fatal("wrong code must not complete the form")
	}
	if out.RemainingAttempts == nil || *out.RemainingAttempts != 2 {
		t.Fatalf("unexpected remaining attempts %v", out.RemainingAttempts)
	}
	if f.idemp.calls != 0 {
		t.Fatal("failed verification must not reach persistence")
	}
}

func TestCompleteFormWithoutPendingSubmission(t *testing.T) {
	f := newFixture(t, true)

	_, err := f.uc.CompleteForm(context.Background(), CompleteFormInput{
		FormType: entity.FormTypeContact,
		Email:    "arjun@example.com",
		Code:     "123456",
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	var ge *goerror.Error
	if !errors.As(err, &ge) || ge.Msg() != "No pending submission found. Please submit the form again." {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestCompleteFormDuplicateCallback(t *testing.T) {
	f := newFixture(t, true)
	f.idemp.execErr = idempotency.ErrAlreadyCompleted

	out, err := f.uc.CompleteForm(context.Background(), CompleteFormInput{
		FormType: entity.FormTypeContact,
		Email:    "arjun@example.com",
		Code:     "123456",
	})
	if err != nil {
		t.Fatalf("CompleteForm: %v", err)
	}
	if !out.Completed {
		t.Fatal("duplicate callback must still report success")
	}
	if f.db.count() != 0 {
		t.Fatal("duplicate callback must not insert a lead")
	}
}

func TestUploadAttachmentRejectsUnknownExtension(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.uc.UploadAttachment(context.Background(), UploadAttachmentInput{
		Filename: "resume.exe",
		Body:     strings.NewReader("binary"),
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(f.storage.objects) != 0 {
		t.Fatal("nothing should reach storage")
	}
}

func TestUploadAttachmentStoresObject(t *testing.T) {
	f := newFixture(t, false)

	out, err := f.uc.UploadAttachment(context.Background(), UploadAttachmentInput{
		Filename:    "resume.pdf",
		ContentType: "application/pdf",
		Size:        -1,
		Body:        strings.NewReader("%PDF-1.7"),
	})
	if err != nil {
		t.Fatalf("UploadAttachment: %v", err)
	}
	if !strings.HasPrefix(out.Key, "attachments/") || !strings.HasSuffix(out.Key, ".pdf") {
		t.Fatalf("unexpected key %q", out.Key)
	}
	if id := strings.TrimSuffix(strings.TrimPrefix(out.Key, "attachments/"), ".pdf"); len(id) != 64 {
		t.Fatalf("storage key id %q must be a 64-char object id", id)
	}
	if _, ok := f.storage.objects["learnnect-uploads/"+out.Key]; !ok {
		t.Fatal("object not stored")
	}
}

func TestLeadListRequiresAuthorization(t *testing.T) {
	f := newFixture(t, false)

	if _, err := f.uc.LeadList(context.Background(), LeadListInput{}); err == nil {
		t.Fatal("anonymous request must be rejected")
	}

	ctx := jwt.SetAuth(context.Background(), jwt.Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{Subject: "7"},
	})
	if _, err := f.uc.LeadList(ctx, LeadListInput{}); err == nil {
		t.Fatal("unprivileged subject must be rejected")
	}

	ctx = jwt.SetAuth(context.Background(), jwt.Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{Subject: "42"},
	})
	out, err := f.uc.LeadList(ctx, LeadListInput{})
	if err != nil {
		t.Fatalf("LeadList: %v", err)
	}
	if out.Total != 0 {
		t.Fatalf("unexpected total %d", out.Total)
	}
}

func TestSubmitFormUnknownType(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.uc.SubmitForm(context.Background(), SubmitFormInput{
		FormType: entity.FormTypeFromString("survey"),
		Fields:   map[string]string{"email": "a@b.com"},
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	var ge *goerror.Error
	if !errors.As(err, &ge) {
		t.Fatalf("unexpected error type %T", err)
	}
}
