package entity

import "time"

// Status tracks a review through moderation.
type Status string

const (
	StatusUnknown  Status = ""
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Ensure() Status {
	switch s {
	case StatusPending:
		return StatusPending
	case StatusApproved:
		return StatusApproved
	case StatusRejected:
		return StatusRejected
	default:
		return StatusUnknown
	}
}

// Review is a course review. It stays pending and invisible to the public
// listing until a moderator approves it.
type Review struct {
	ID          int64
	CourseID    string
	Name        string
	Email       string
	Rating      int16
	Comment     string
	Status      Status
	ModeratedBy int64
	ModeratedAt *time.Time
	CreatedAt   time.Time
}
