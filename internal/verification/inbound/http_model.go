package inbound

type SendEmailOTPRequest struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
}

type SendSMSOTPRequest struct {
	Phone   string `json:"phone"`
	Purpose string `json:"purpose"`
}

type VerifyOTPRequest struct {
	Destination string `json:"destination"`
	Code        string `json:"code"`
	Channel     string `json:"channel"`
}

type ResendOTPRequest struct {
	Destination string `json:"destination"`
	Channel     string `json:"channel"`
	Purpose     string `json:"purpose"`
}

type SendOTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type VerifyOTPResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	RemainingAttempts *int   `json:"remaining_attempts,omitempty"`
}
