package usecase

import (
	"context"
	"log/slog"

	"github.com/learnnect/platform-api/internal/account/entity"
	"github.com/learnnect/platform-api/internal/account/outbound/googleauth"
	"github.com/learnnect/platform-api/internal/pkg/goerror"
)

// SocialGoogleInput carries exactly one credential: an OAuth
// authorization code from the redirect flow or an ID token from the
// one-tap widget.
type SocialGoogleInput struct {
	Code    string
	IDToken string
}

type SocialGoogleOutput struct {
	AccessToken string
	UserID      int64
	Email       string
	FullName    string
	NewUser     bool
}

// SocialGoogle signs a user in with Google, creating the account on
// first contact. Google vouches for the address, so the account is
// active immediately.
func (s *Usecase) SocialGoogle(ctx context.Context, in SocialGoogleInput) (*SocialGoogleOutput, error) {
	ctx, span := s.startSpan(ctx, "SocialGoogle")
	defer span.End()

	if (in.Code == "") == (in.IDToken == "") {
		return nil, goerror.NewInvalidFormat("exactly one of code or id_token is required")
	}

	var (
		profile *googleauth.Profile
		err     error
	)
	if in.Code != "" {
		profile, err = s.google.ExchangeCode(ctx, in.Code)
	} else {
		profile, err = s.google.VerifyIDToken(ctx, in.IDToken)
	}
	if err != nil {
		slog.WarnContext(ctx, "google sign-in rejected", "error", err)
		return nil, goerror.NewBusiness("Google sign-in failed", goerror.CodeUnauthorized)
	}

	userID, created, err := s.repoDB.UpsertGoogleUser(ctx, entity.GoogleUser{
		ID:        s.uid.Generate(),
		Email:     profile.Email,
		FullName:  profile.FullName,
		AvatarURL: profile.AvatarURL,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to upsert google user", "email", profile.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	token, err := s.jwt.Generate(userID, profile.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &SocialGoogleOutput{
		AccessToken: token,
		UserID:      userID,
		Email:       profile.Email,
		FullName:    profile.FullName,
		NewUser:     created,
	}, nil
}
