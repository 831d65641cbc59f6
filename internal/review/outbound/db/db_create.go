package db

import (
	"context"

	"github.com/learnnect/platform-api/internal/review/entity"
)

const createReviewSQL = `
INSERT INTO course_reviews (id, course_id, name, email, rating, comment, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func (s *DB) CreateReview(ctx context.Context, rev entity.Review) (err error) {
	ctx, span := s.startSpan(ctx, "CreateReview")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, createReviewSQL,
		rev.ID,
		rev.CourseID,
		rev.Name,
		rev.Email,
		rev.Rating,
		rev.Comment,
		rev.Status.String(),
		rev.CreatedAt,
	)
	err = s.mapError(err)
	return err
}
