package entity

import "time"

type User struct {
	ID        int64
	Email     string
	FullName  string
	AvatarURL string
	Status    UserStatus
	CreatedAt time.Time
}

type NewUser struct {
	ID        int64
	Email     string
	FullName  string
	AvatarURL string
	Status    UserStatus
}

// UserLoginInfo carries the hashed password alongside the fields the
// login path gates on.
type UserLoginInfo struct {
	ID       int64
	Email    string
	Status   UserStatus
	Password string
}

// GoogleUser is the profile a federated sign-in upserts.
type GoogleUser struct {
	ID        int64
	Email     string
	FullName  string
	AvatarURL string
}
