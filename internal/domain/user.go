package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is a user record enriched with relationship data relative to a viewer.
type Profile struct {
	User
	IsFollowing    bool `json:"is_following"`
	FollowerCount  int  `json:"follower_count"`
	FollowingCount int  `json:"following_count"`
}
