package domain

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a directed edge: FollowerID follows FollowingID.
// The reverse direction is a separate edge.
type Follow struct {
	ID          uuid.UUID `json:"id"`
	FollowerID  uuid.UUID `json:"follower_id"`
	FollowingID uuid.UUID `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}
