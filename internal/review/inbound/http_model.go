package inbound

import "time"

type SubmitReviewRequest struct {
	CourseID string `json:"course_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Rating   int16  `json:"rating"`
	Comment  string `json:"comment"`
}

type SubmitReviewResponse struct {
	ReviewID int64  `json:"review_id,string"`
	Status   string `json:"status"`
}

type ReviewResponse struct {
	ID        int64     `json:"id,string"`
	CourseID  string    `json:"course_id"`
	Name      string    `json:"name"`
	Rating    int16     `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type ListReviewsResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
}

type ModerateReviewRequest struct {
	Action string `json:"action"`
}

type ModerateReviewResponse struct {
	ReviewID int64  `json:"review_id,string"`
	Status   string `json:"status"`
}
