package db

import (
	"context"
	"time"

	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/review/entity"
)

const moderateReviewSQL = `
UPDATE course_reviews
SET status = $2, moderated_by = $3, moderated_at = $4
WHERE id = $1 AND status = 'pending'
`

// Moderate transitions a pending review and records who decided when. A
// review that is missing or already decided reports not found.
func (s *DB) Moderate(ctx context.Context, id int64, status entity.Status, moderatorID int64, at time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "Moderate")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, moderateReviewSQL, id, status.String(), moderatorID, at)
	if err != nil {
		err = s.mapError(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}
