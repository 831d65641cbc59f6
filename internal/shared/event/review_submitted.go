package event

const ReviewSubmittedDestination string = "review_submitted"
const ReviewSubmittedConsumerNotification string = "review_submitted_notification"

type ReviewSubmittedMessage struct {
	ReviewID int64  `json:"review_id"`
	CourseID string `json:"course_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Rating   int    `json:"rating"`
}
