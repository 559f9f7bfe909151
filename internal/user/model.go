package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID
	Email    string
	Password string
	IsAdmin  bool
}

type Profile struct {
	ID        uuid.UUID
	Email     string
	FullName  *string
	AvatarURL *string
	Phone     *string
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UpdateProfileParams struct {
	UserID    uuid.UUID
	FullName  *string
	AvatarURL *string
	Phone     *string
}
