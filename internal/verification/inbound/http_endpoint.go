package inbound

import (
	"github.com/learnnect/platform-api/internal/pkg/router"
	"github.com/learnnect/platform-api/internal/verification/entity"
	"github.com/learnnect/platform-api/internal/verification/usecase"
)

// HTTPEndpoint exposes the one-time-code workflow. All outcomes that have
// a user story (wrong code, expired, exhausted, delivery failure) come
// back as 200 with success=false and the contract message.
type HTTPEndpoint struct {
	uc uc
}

// SendEmailOTP issues and emails a fresh code for the address.
func (h *HTTPEndpoint) SendEmailOTP(r *router.Request) (any, error) {
	var req SendEmailOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SendEmailOTP(r.Context(), usecase.SendEmailOTPInput{
		Destination: req.Email,
		Purpose:     entity.PurposeFromString(req.Purpose),
	})
	if err != nil {
		return nil, err
	}

	return SendOTPResponse{Success: resp.Sent, Message: resp.Message}, nil
}

// SendSMSOTP issues and texts a fresh code for the mobile number.
func (h *HTTPEndpoint) SendSMSOTP(r *router.Request) (any, error) {
	var req SendSMSOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SendSMSOTP(r.Context(), usecase.SendSMSOTPInput{
		Destination: req.Phone,
		Purpose:     entity.PurposeFromString(req.Purpose),
	})
	if err != nil {
		return nil, err
	}

	return SendOTPResponse{Success: resp.Sent, Message: resp.Message}, nil
}

// VerifyOTP checks a submitted code.
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyOTP(r.Context(), usecase.VerifyOTPInput{
		Destination: req.Destination,
		Code:        req.Code,
		Channel:     entity.ChannelFromString(req.Channel),
	})
	if err != nil {
		return nil, err
	}

	return VerifyOTPResponse{
		Success:           resp.Verified,
		Message:           resp.Message,
		RemainingAttempts: resp.RemainingAttempts,
	}, nil
}

// ResendOTP invalidates the current code and sends a new one.
func (h *HTTPEndpoint) ResendOTP(r *router.Request) (any, error) {
	var req ResendOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ResendOTP(r.Context(), usecase.ResendOTPInput{
		Destination: req.Destination,
		Channel:     entity.ChannelFromString(req.Channel),
		Purpose:     entity.PurposeFromString(req.Purpose),
	})
	if err != nil {
		return nil, err
	}

	return SendOTPResponse{Success: resp.Sent, Message: resp.Message}, nil
}
