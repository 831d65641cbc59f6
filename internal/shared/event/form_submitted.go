package event

const FormSubmittedDestination string = "form_submitted"
const FormSubmittedConsumerNotification string = "form_submitted_notification"

type FormSubmittedMessage struct {
	LeadID   int64             `json:"lead_id"`
	FormType string            `json:"form_type"`
	Email    string            `json:"email"`
	Name     string            `json:"name"`
	Fields   map[string]string `json:"fields"`
}
