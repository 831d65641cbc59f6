package db

import (
	"context"

	"github.com/learnnect/platform-api/internal/account/entity"
)

const createUserSQL = `
INSERT INTO account_users (id, email, full_name, avatar_url, status, password, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
`

func (s *DB) CreateUser(ctx context.Context, user entity.NewUser, hashedPassword string) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, createUserSQL,
		user.ID,
		user.Email,
		user.FullName,
		user.AvatarURL,
		int16(user.Status),
		hashedPassword,
	)
	err = s.mapError(err)
	return err
}

const upsertGoogleUserSQL = `
INSERT INTO account_users (id, email, full_name, avatar_url, status, password, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, '', NOW(), NOW())
ON CONFLICT (email) DO UPDATE
SET full_name = EXCLUDED.full_name, avatar_url = EXCLUDED.avatar_url, status = $5, updated_at = NOW()
RETURNING id, (xmax = 0) AS inserted
`

// UpsertGoogleUser creates or refreshes a federated account and reports
// whether this sign-in created the row. A pre-existing password account
// is activated in place, which is how the email gets verified by Google.
func (s *DB) UpsertGoogleUser(ctx context.Context, user entity.GoogleUser) (userID int64, created bool, err error) {
	ctx, span := s.startSpan(ctx, "UpsertGoogleUser")
	defer func() { s.endSpan(span, err) }()

	err = s.conn.QueryRow(ctx, upsertGoogleUserSQL,
		user.ID,
		user.Email,
		user.FullName,
		user.AvatarURL,
		int16(entity.UserStatusActive),
	).Scan(&userID, &created)
	if err != nil {
		err = s.mapError(err)
		return 0, false, err
	}

	return userID, created, nil
}
