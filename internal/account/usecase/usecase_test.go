package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/learnnect/platform-api/internal/account/entity"
	"github.com/learnnect/platform-api/internal/account/outbound/googleauth"
	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/pkg/hash"
	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/learnnect/platform-api/internal/pkg/jwt"
	"github.com/learnnect/platform-api/internal/pkg/validator"
	verificationuc "github.com/learnnect/platform-api/internal/verification/usecase"
	"golang.org/x/crypto/bcrypt"
)

type storedUser struct {
	user     entity.User
	password string
}

type fakeDB struct {
	users map[string]*storedUser
}

func newFakeDB() *fakeDB {
	return &fakeDB{users: map[string]*storedUser{}}
}

func (f *fakeDB) CreateUser(_ context.Context, user entity.NewUser, hashedPassword string) error {
	if _, ok := f.users[user.Email]; ok {
		return goerror.ErrConflict
	}
	f.users[user.Email] = &storedUser{
		user: entity.User{
			ID:        user.ID,
			Email:     user.Email,
			FullName:  user.FullName,
			AvatarURL: user.AvatarURL,
			Status:    user.Status,
		},
		password: hashedPassword,
	}
	return nil
}

func (f *fakeDB) UpsertGoogleUser(_ context.Context, user entity.GoogleUser) (int64, bool, error) {
	if su, ok := f.users[user.Email]; ok {
		su.user.FullName = user.FullName
		su.user.AvatarURL = user.AvatarURL
		su.user.Status = entity.UserStatusActive
		return su.user.ID, false, nil
	}
	f.users[user.Email] = &storedUser{
		user: entity.User{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Status:   entity.UserStatusActive,
		},
	}
	return user.ID, true, nil
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	su, ok := f.users[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	u := su.user
	return &u, nil
}

func (f *fakeDB) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	for _, su := range f.users {
		if su.user.ID == id {
			u := su.user
			return &u, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetUserLoginInfo(_ context.Context, email string) (*entity.UserLoginInfo, error) {
	su, ok := f.users[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &entity.UserLoginInfo{
		ID:       su.user.ID,
		Email:    su.user.Email,
		Status:   su.user.Status,
		Password: su.password,
	}, nil
}

func (f *fakeDB) ActivateUser(_ context.Context, userID int64) error {
	for _, su := range f.users {
		if su.user.ID == userID && su.user.Status == entity.UserStatusUnverified {
			su.user.Status = entity.UserStatusActive
			return nil
		}
	}
	return goerror.ErrNotFound
}

func (f *fakeDB) UpdatePassword(_ context.Context, userID int64, hashedPassword string) error {
	for _, su := range f.users {
		if su.user.ID == userID {
			su.password = hashedPassword
			return nil
		}
	}
	return goerror.ErrNotFound
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

type fakeGoogle struct {
	profile *googleauth.Profile
	err     error
}

func (f *fakeGoogle) ExchangeCode(context.Context, string) (*googleauth.Profile, error) {
	return f.profile, f.err
}

func (f *fakeGoogle) VerifyIDToken(context.Context, string) (*googleauth.Profile, error) {
	return f.profile, f.err
}

type fakeJWT struct{}

func (fakeJWT) Generate(uid int64, email string) (string, error) {
	return fmt.Sprintf("token-%d-%s", uid, email), nil
}

func (fakeJWT) Verify(string) (jwt.Claims, error) {
	return jwt.Claims{}, jwt.ErrInvalidToken
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

type fixture struct {
	uc     *Usecase
	db     *fakeDB
	otp    *fakeOTP
	google *fakeGoogle
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	fdb := newFakeDB()
	fotp := &fakeOTP{}
	fgoogle := &fakeGoogle{}

	uc := New(Dependency{
		RepoDB:     fdb,
		OTP:        fotp,
		Google:     fgoogle,
		Bcrypt:     hash.NewBcrypt(bcrypt.MinCost, ""),
		JWT:        fakeJWT{},
		UID:        &seqUID{},
		Clock:      &fakeClock{now: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)},
		Validator:  v,
		Instrument: instrument.NewNoop(),
	})

	return &fixture{uc: uc, db: fdb, otp: fotp, google: fgoogle}
}

func register(t *testing.T, f *fixture) *RegisterOutput {
	t.Helper()

	out, err := f.uc.Register(context.Background(), RegisterInput{
		FullName: "Priya Sharma",
		Email:    "priya@example.com",
		Password: "Sup3rSecret",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return out
}

func TestRegisterCreatesUnverifiedAccount(t *testing.T) {
	f := newFixture(t)

	out := register(t, f)

	su, ok := f.db.users["priya@example.com"]
	if !ok {
		t.Fatal("user not stored")
	}
	if su.user.Status != entity.UserStatusUnverified {
		t.Fatalf("status = %v, want unverified", su.user.Status)
	}
	if su.password == "Sup3rSecret" || su.password == "" {
		t.Fatal("password must be stored hashed")
	}
	if len(f.otp.sends) != 1 || f.otp.sends[0].Purpose != "signup" {
		t.Fatalf("unexpected otp sends %+v", f.otp.sends)
	}
	if !strings.Contains(out.Message, "priya@example.com") {
		t.Fatalf("unexpected message %q", out.Message)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Register(context.Background(), RegisterInput{
		FullName: "Priya Sharma",
		Email:    "priya@example.com",
		Password: "alllowercase1",
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(f.db.users) != 0 {
		t.Fatal("no account should be created")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	register(t, f)
	f.db.users["priya@example.com"].user.Status = entity.UserStatusActive

	_, err := f.uc.Register(context.Background(), RegisterInput{
		FullName: "Priya Sharma",
		Email:    "priya@example.com",
		Password: "Sup3rSecret",
	})
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestRegisterVerifyActivatesAccount(t *testing.T) {
	f := newFixture(t)
	register(t, f)

	out, err := f.uc.RegisterVerify(context.Background(), RegisterVerifyInput{
		Email: "priya@example.com",
		Code:  "123456",
	})
	if err != nil {
		t.Fatalf("RegisterVerify: %v", err)
	}
	if !out.Verified {
		t.Fatal("expected verification")
	}
	if f.db.users["priya@example.com"].user.Status != entity.UserStatusActive {
		t.Fatal("account not activated")
	}
}

func TestRegisterVerifyAlreadyActiveIsNoop(t *testing.T) {
	f := newFixture(t)
	register(t, f)
	f.db.users["priya@example.com"].user.Status = entity.UserStatusActive

	out, err := f.uc.RegisterVerify(context.Background(), RegisterVerifyInput{
		Email: "priya@example.com",
		Code:  "123456",
	})
	if err != nil {
		t.Fatalf("RegisterVerify: %v", err)
	}
	if !out.Verified {
		t.Fatal("verifying an active account must succeed")
	}
}

func TestRegisterVerifyWrongCode(t *testing.T) {
	f := newFixture(t)
	register(t, f)
	remaining := 1
	f.otp.verifyOut = &verificationuc.VerifyOutput{
		Verified:          false,
		Message:           "Incorrect OTP. 1 attempts remaining.",
		RemainingAttempts: &remaining,
	}

	out, err := f.uc.RegisterVerify(context.Background(), RegisterVerifyInput{
		Email: "priya@example.com",
		Code:  "000000",
	})
	if err != nil {
		t.Fatalf("RegisterVerify: %v", err)
	}
	if out.Verified {
		t.Fatal("wrong code must not verify")
	}
	if f.db.users["priya@example.com"].user.Status != entity.UserStatusUnverified {
		t.Fatal("account must stay unverified")
	}
	if out.RemainingAttempts == nil || *out.RemainingAttempts != 1 {
		t.Fatalf("unexpected remaining attempts %v", out.RemainingAttempts)
	}
}

func TestLoginHappyPath(t *testing.T) {
	f := newFixture(t)
	register(t, f)
	f.db.users["priya@example.com"].user.Status = entity.UserStatusActive

	out, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "priya@example.com",
		Password: "Sup3rSecret",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if out.AccessToken == "" {
		t.Fatal("expected an access token")
	}
}

func TestLoginRejectsUnverifiedAccount(t *testing.T) {
	f := newFixture(t)
	register(t, f)

	if _, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "priya@example.com",
		Password: "Sup3rSecret",
	}); err == nil {
		t.Fatal("unverified account must not log in")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture(t)
	register(t, f)
	f.db.users["priya@example.com"].user.Status = entity.UserStatusActive

	if _, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "priya@example.com",
		Password: "WrongSecret1",
	}); err == nil {
		t.Fatal("wrong password must be rejected")
	}
}

func TestSocialGoogleCreatesActiveAccount(t *testing.T) {
	f := newFixture(t)
	f.google.profile = &googleauth.Profile{
		Subject:  "google-sub-1",
		Email:    "arjun@example.com",
		FullName: "Arjun Mehta",
	}

	out, err := f.uc.SocialGoogle(context.Background(), SocialGoogleInput{IDToken: "tok"})
	if err != nil {
		t.Fatalf("SocialGoogle: %v", err)
	}
	if !out.NewUser {
		t.Fatal("first sign-in must report a new user")
	}
	if f.db.users["arjun@example.com"].user.Status != entity.UserStatusActive {
		t.Fatal("google accounts must be active immediately")
	}

	again, err := f.uc.SocialGoogle(context.Background(), SocialGoogleInput{IDToken: "tok"})
	if err != nil {
		t.Fatalf("SocialGoogle again: %v", err)
	}
	if again.NewUser {
		t.Fatal("second sign-in must not report a new user")
	}
}

func TestSocialGoogleRequiresExactlyOneCredential(t *testing.T) {
	f := newFixture(t)

	if _, err := f.uc.SocialGoogle(context.Background(), SocialGoogleInput{}); err == nil {
		t.Fatal("missing credentials must be rejected")
	}
	if _, err := f.uc.SocialGoogle(context.Background(), SocialGoogleInput{Code: "c", IDToken: "t"}); err == nil {
		t.Fatal("both credentials must be rejected")
	}
}

func TestPasswordForgotSilentOnUnknownEmail(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.PasswordForgot(context.Background(), PasswordForgotInput{Email: "nobody@example.com"})
	if err != nil {
		t.Fatalf("PasswordForgot: %v", err)
	}
	if out.Message != msgResetRequested {
		t.Fatalf("unexpected message %q", out.Message)
	}
	if len(f.otp.sends) != 0 {
		t.Fatal("no code should be sent for an unknown email")
	}
}

func TestPasswordResetReplacesHash(t *testing.T) {
	f := newFixture(t)
	register(t, f)
	f.db.users["priya@example.com"].user.Status = entity.UserStatusActive
	oldHash := f.db.users["priya@example.com"].password

	out, err := f.uc.PasswordReset(context.Background(), PasswordResetInput{
		Email:       "priya@example.com",
		Code:        "123456",
		NewPassword: "N3wSecret99",
	})
	if err != nil {
		t.Fatalf("PasswordReset: %v", err)
	}
	if !out.Reset {
		t.Fatal("expected a reset")
	}
	if f.db.users["priya@example.com"].password == oldHash {
		t.Fatal("stored hash must change")
	}

	if _, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "priya@example.com",
		Password: "N3wSecret99",
	}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestProfileRequiresAuthentication(t *testing.T) {
	f := newFixture(t)
	register(t, f)

	if _, err := f.uc.Profile(context.Background()); err == nil {
		t.Fatal("anonymous request must be rejected")
	}

	ctx := jwt.SetAuth(context.Background(), jwt.Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{Subject: "1"},
		UserID:           1,
	})
	out, err := f.uc.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if out.User.Email != "priya@example.com" {
		t.Fatalf("unexpected profile %+v", out.User)
	}
}
