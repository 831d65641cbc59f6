package db

import (
	"context"

	"github.com/learnnect/platform-api/internal/review/entity"
)

const getReviewSQL = `
SELECT id, course_id, name, email, rating, comment, status, moderated_by, moderated_at, created_at
FROM course_reviews
WHERE id = $1
`

func (s *DB) GetReview(ctx context.Context, id int64) (rev *entity.Review, err error) {
	ctx, span := s.startSpan(ctx, "GetReview")
	defer func() { s.endSpan(span, err) }()

	var (
		r           entity.Review
		status      string
		moderatedBy *int64
	)
	err = s.conn.QueryRow(ctx, getReviewSQL, id).Scan(
		&r.ID,
		&r.CourseID,
		&r.Name,
		&r.Email,
		&r.Rating,
		&r.Comment,
		&status,
		&moderatedBy,
		&r.ModeratedAt,
		&r.CreatedAt,
	)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	r.Status = entity.Status(status).Ensure()
	if moderatedBy != nil {
		r.ModeratedBy = *moderatedBy
	}
	return &r, nil
}

const listApprovedSQL = `
SELECT id, course_id, name, email, rating, comment, status, moderated_by, moderated_at, created_at
FROM course_reviews
WHERE status = 'approved' AND ($1 = '' OR course_id = $1)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`

func (s *DB) ListApproved(ctx context.Context, courseID string, limit, offset int32) (revs []entity.Review, err error) {
	ctx, span := s.startSpan(ctx, "ListApproved")
	defer func() { s.endSpan(span, err) }()

	if limit <= 0 {
		limit = 20
	}

	rows, err := s.conn.Query(ctx, listApprovedSQL, courseID, limit, offset)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}
	defer rows.Close()

	revs = make([]entity.Review, 0, limit)
	for rows.Next() {
		var (
			r           entity.Review
			status      string
			moderatedBy *int64
		)
		if err = rows.Scan(&r.ID, &r.CourseID, &r.Name, &r.Email, &r.Rating, &r.Comment, &status, &moderatedBy, &r.ModeratedAt, &r.CreatedAt); err != nil {
			return nil, err
		}

		r.Status = entity.Status(status).Ensure()
		if moderatedBy != nil {
			r.ModeratedBy = *moderatedBy
		}
		revs = append(revs, r)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return revs, nil
}
