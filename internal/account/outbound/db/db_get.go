package db

import (
	"context"

	"github.com/learnnect/platform-api/internal/account/entity"
)

const getUserByEmailSQL = `
SELECT id, email, full_name, avatar_url, status, created_at
FROM account_users
WHERE email = $1
`

func (s *DB) GetUserByEmail(ctx context.Context, email string) (user *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	var (
		u      entity.User
		status int16
	)
	err = s.conn.QueryRow(ctx, getUserByEmailSQL, email).Scan(
		&u.ID,
		&u.Email,
		&u.FullName,
		&u.AvatarURL,
		&status,
		&u.CreatedAt,
	)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	u.Status = entity.UserStatus(status).Ensure()
	return &u, nil
}

const getUserByIDSQL = `
SELECT id, email, full_name, avatar_url, status, created_at
FROM account_users
WHERE id = $1
`

func (s *DB) GetUserByID(ctx context.Context, id int64) (user *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	var (
		u      entity.User
		status int16
	)
	err = s.conn.QueryRow(ctx, getUserByIDSQL, id).Scan(
		&u.ID,
		&u.Email,
		&u.FullName,
		&u.AvatarURL,
		&status,
		&u.CreatedAt,
	)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	u.Status = entity.UserStatus(status).Ensure()
	return &u, nil
}

const getUserLoginInfoSQL = `
SELECT id, email, status, password
FROM account_users
WHERE email = $1
`

func (s *DB) GetUserLoginInfo(ctx context.Context, email string) (info *entity.UserLoginInfo, err error) {
	ctx, span := s.startSpan(ctx, "GetUserLoginInfo")
	defer func() { s.endSpan(span, err) }()

	var (
		i      entity.UserLoginInfo
		status int16
	)
	err = s.conn.QueryRow(ctx, getUserLoginInfoSQL, email).Scan(&i.ID, &i.Email, &status, &i.Password)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	i.Status = entity.UserStatus(status).Ensure()
	return &i, nil
}
