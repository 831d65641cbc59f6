package db

import (
	"context"

	"github.com/learnnect/platform-api/internal/account/entity"
	"github.com/learnnect/platform-api/internal/pkg/goerror"
)

const activateUserSQL = `
UPDATE account_users
SET status = $2, updated_at = NOW()
WHERE id = $1 AND status = $3
`

// ActivateUser flips an unverified account to active. Reports not found
// when the account is missing or no longer unverified.
func (s *DB) ActivateUser(ctx context.Context, userID int64) (err error) {
	ctx, span := s.startSpan(ctx, "ActivateUser")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, activateUserSQL, userID, int16(entity.UserStatusActive), int16(entity.UserStatusUnverified))
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

const updatePasswordSQL = `
UPDATE account_users
SET password = $2, updated_at = NOW()
WHERE id = $1
`

func (s *DB) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdatePassword")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, updatePasswordSQL, userID, hashedPassword)
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
