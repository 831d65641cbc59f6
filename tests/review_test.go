package tests

import (
	"net/http"
	"testing"
)

func TestSubmitReview(t *testing.T) {

	// Arrange
	payload := map[string]any{
		"course_id": "data-science-101",
		"name":      "Test Reviewer",
		"email":     uniqueEmail("real-review"),
		"rating":    5,
		"comment":   "Great course, well structured.",
	}

	// Act
	status, body := doJSON(t, http.MethodPost, "/api/v1/reviews", payload, "")

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("submit review failed: status=%d message=%q", status, errEnv.Message)
	}

	var data struct {
		ReviewID string `json:"review_id"`
		Status   string `json:"status"`
	}
	decodeSuccess(t, body, &data)
	if data.ReviewID == "" {
		t.Fatal("expected a review id")
	}
	if data.Status != "pending" {
		t.Fatalf("a fresh review must await moderation, got status %q", data.Status)
	}
}

func TestSubmitReviewRejectsBadRating(t *testing.T) {

	// Arrange
	payload := map[string]any{
		"course_id": "data-science-101",
		"name":      "Test Reviewer",
		"email":     uniqueEmail("real-review-bad"),
		"rating":    9,
		"comment":   "out of range",
	}

	// Act
	status, _ := doJSON(t, http.MethodPost, "/api/v1/reviews", payload, "")

	// Assert
	if status == http.StatusOK {
		t.Fatal("a rating outside 1..5 must be rejected")
	}
}

func TestListReviewsIsPublic(t *testing.T) {

	// Act
	status, body := doJSON(t, http.MethodGet, "/api/v1/reviews", nil, "")

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("list reviews failed: status=%d message=%q", status, errEnv.Message)
	}

	var data struct {
		Reviews []map[string]any `json:"reviews"`
	}
	decodeSuccess(t, body, &data)
	for _, r := range data.Reviews {
		if _, ok := r["email"]; ok {
			t.Fatal("public listing must not expose reviewer emails")
		}
	}
}

func TestModerateReviewRequiresToken(t *testing.T) {

	// Arrange
	payload := map[string]string{"action": "approve"}

	// Act
	status, _ := doJSON(t, http.MethodPatch, "/api/v1/reviews/1/moderate", payload, "")

	// Assert
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", status)
	}
}
