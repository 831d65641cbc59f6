package inbound

import (
	"context"

	"github.com/learnnect/platform-api/internal/account/usecase"
	"github.com/learnnect/platform-api/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	RegisterVerify(ctx context.Context, in usecase.RegisterVerifyInput) (*usecase.RegisterVerifyOutput, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	SocialGoogle(ctx context.Context, in usecase.SocialGoogleInput) (*usecase.SocialGoogleOutput, error)
	PasswordForgot(ctx context.Context, in usecase.PasswordForgotInput) (*usecase.PasswordForgotOutput, error)
	PasswordReset(ctx context.Context, in usecase.PasswordResetInput) (*usecase.PasswordResetOutput, error)
	Profile(ctx context.Context) (*usecase.ProfileOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/account/register", end.Register)
	r.POST("/api/v1/account/register/verify", end.RegisterVerify)
	r.POST("/api/v1/account/login", end.Login)
	r.POST("/api/v1/account/social/google", end.SocialGoogle)
	r.POST("/api/v1/account/password/forgot", end.PasswordForgot)
	r.POST("/api/v1/account/password/reset", end.PasswordReset)
	r.GET("/api/v1/account/profile", end.Profile) // need authenticated
}
