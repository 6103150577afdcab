package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crave-social/crave/internal/domain"
	"github.com/crave-social/crave/internal/repository"
)

// IdentityService resolves user IDs to profile records. Lookups are two-tier:
// a keyed read first, then a field query if that misses. Records returned
// here cross trust boundaries, so the password hash is stripped on every
// path before a record leaves this component.
type IdentityService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewIdentityService(userRepo repository.UserRepository, log *zap.Logger) *IdentityService {
	return &IdentityService{userRepo: userRepo, log: log}
}

// Resolve returns the user for id, or nil if the user cannot be found.
// Failures on the fallback tier are treated as absence rather than surfaced:
// downstream callers want "user not found", not a store error, and the lists
// they build filter out nils.
func (s *IdentityService) Resolve(ctx context.Context, id uuid.UUID) *domain.User {
	user, err := s.userRepo.GetByID(ctx, id)
	if err == nil && user != nil {
		return strip(user)
	}
	if err != nil {
		s.log.Warn("user point lookup failed, falling back to query",
			zap.String("user_id", id.String()), zap.Error(err))
	}

	user, err = s.userRepo.FindByID(ctx, id)
	if err != nil {
		s.log.Warn("user fallback query failed, treating as absent",
			zap.String("user_id", id.String()), zap.Error(err))
		return nil
	}
	if user == nil {
		return nil
	}
	return strip(user)
}

func strip(user *domain.User) *domain.User {
	user.PasswordHash = ""
	return user
}
