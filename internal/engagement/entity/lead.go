package entity

import "time"

// Lead is a persisted form submission.
type Lead struct {
	ID            int64
	FormType      FormType
	Name          string
	Email         string
	Phone         string
	Fields        map[string]string
	AttachmentKey string
	CreatedAt     time.Time
}

// PendingForm is a submission parked in the stash while its email address
// is being verified.
type PendingForm struct {
	FormType      FormType          `json:"form_type"`
	Email         string            `json:"email"`
	Fields        map[string]string `json:"fields"`
	AttachmentKey string            `json:"attachment_key,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// LeadListFilter narrows the admin lead listing.
type LeadListFilter struct {
	FormType FormType
	Limit    int32
	Offset   int32
}
