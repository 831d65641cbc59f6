package inbound

import "time"

type SubmitFormRequest struct {
	FormType      string            `json:"form_type"`
	Fields        map[string]string `json:"fields"`
	AttachmentKey string            `json:"attachment_key"`
}

type SubmitFormResponse struct {
	OTPRequired bool   `json:"otp_required"`
	LeadID      int64  `json:"lead_id,string,omitempty"`
	Message     string `json:"message"`
}

type CompleteFormRequest struct {
	FormType string `json:"form_type"`
	Email    string `json:"email"`
	Code     string `json:"code"`
}

type CompleteFormResponse struct {
	Success           bool   `json:"success"`
	LeadID            int64  `json:"lead_id,string,omitempty"`
	Message           string `json:"message"`
	RemainingAttempts *int   `json:"remaining_attempts,omitempty"`
}

type UploadAttachmentResponse struct {
	Key string `json:"key"`
}

type LeadResponse struct {
	ID            int64             `json:"id,string"`
	FormType      string            `json:"form_type"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	Fields        map[string]string `json:"fields"`
	AttachmentKey string            `json:"attachment_key,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

type LeadListResponse struct {
	Leads []LeadResponse `json:"leads"`
	Total int64          `json:"total"`
}
