package inbound

import (
	"context"

	"github.com/learnnect/platform-api/internal/pkg/router"
	"github.com/learnnect/platform-api/internal/verification/usecase"
)

type uc interface {
	SendEmailOTP(ctx context.Context, in usecase.SendEmailOTPInput) (*usecase.SendOutput, error)
	SendSMSOTP(ctx context.Context, in usecase.SendSMSOTPInput) (*usecase.SendOutput, error)
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) (*usecase.VerifyOutput, error)
	ResendOTP(ctx context.Context, in usecase.ResendOTPInput) (*usecase.SendOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/verification/otp/email", end.SendEmailOTP)
	r.POST("/api/v1/verification/otp/sms", end.SendSMSOTP)
	r.POST("/api/v1/verification/otp/verify", end.VerifyOTP)
	r.POST("/api/v1/verification/otp/resend", end.ResendOTP)
}
