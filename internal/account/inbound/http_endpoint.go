package inbound

import (
	"github.com/learnnect/platform-api/internal/account/usecase"
	"github.com/learnnect/platform-api/internal/pkg/router"
)

// HTTPEndpoint exposes account management: registration with email
// verification, password and Google sign-in, and password recovery.
type HTTPEndpoint struct {
	uc uc
}

// Register creates an unverified account and emails a verification code.
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{UserID: resp.UserID, Message: resp.Message}, nil
}

// RegisterVerify activates the account once the emailed code checks out.
func (h *HTTPEndpoint) RegisterVerify(r *router.Request) (any, error) {
	var req RegisterVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RegisterVerify(r.Context(), usecase.RegisterVerifyInput{
		Email: req.Email,
		Code:  req.Code,
	})
	if err != nil {
		return nil, err
	}

	return RegisterVerifyResponse{
		Verified:          resp.Verified,
		Message:           resp.Message,
		RemainingAttempts: resp.RemainingAttempts,
	}, nil
}

func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{AccessToken: resp.AccessToken}, nil
}

// SocialGoogle signs a user in with a Google authorization code or ID token.
func (h *HTTPEndpoint) SocialGoogle(r *router.Request) (any, error) {
	var req SocialGoogleRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SocialGoogle(r.Context(), usecase.SocialGoogleInput{
		Code:    req.Code,
		IDToken: req.IDToken,
	})
	if err != nil {
		return nil, err
	}

	return SocialGoogleResponse{
		AccessToken: resp.AccessToken,
		UserID:      resp.UserID,
		Email:       resp.Email,
		FullName:    resp.FullName,
		NewUser:     resp.NewUser,
	}, nil
}

func (h *HTTPEndpoint) PasswordForgot(r *router.Request) (any, error) {
	var req PasswordForgotRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PasswordForgot(r.Context(), usecase.PasswordForgotInput{Email: req.Email})
	if err != nil {
		return nil, err
	}

	return PasswordForgotResponse{Message: resp.Message}, nil
}

func (h *HTTPEndpoint) PasswordReset(r *router.Request) (any, error) {
	var req PasswordResetRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PasswordReset(r.Context(), usecase.PasswordResetInput{
		Email:       req.Email,
		Code:        req.Code,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return nil, err
	}

	return PasswordResetResponse{
		Reset:             resp.Reset,
		Message:           resp.Message,
		RemainingAttempts: resp.RemainingAttempts,
	}, nil
}

func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileResponse{
		ID:        resp.User.ID,
		Email:     resp.User.Email,
		FullName:  resp.User.FullName,
		AvatarURL: resp.User.AvatarURL,
		Status:    resp.User.Status.String(),
		CreatedAt: resp.User.CreatedAt,
	}, nil
}
