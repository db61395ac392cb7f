package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/salon-server/internal/logger"
	"github.com/dtroode/salon-server/internal/model"
)

// Identity turns bearer tokens into requesters. Tokens are minted by the
// external identity provider; the role used for authorization is always the
// one stored with the user.
type Identity struct {
	manager model.TokenManager
	users   model.UserStore
	logger  *logger.Logger
}

func NewIdentity(manager model.TokenManager, users model.UserStore, logger *logger.Logger) *Identity {
	return &Identity{manager: manager, users: users, logger: logger}
}

// Authenticate validates token and returns the requester it belongs to.
// Unknown users yield ErrUnauthenticated and banned ones ErrUserInactive.
func (s *Identity) Authenticate(ctx context.Context, token string) (model.Requester, error) {
	claims, err := s.manager.ParseAccessToken(token)
	if err != nil {
		return model.Requester{}, fmt.Errorf("%w: %v", model.ErrUnauthenticated, err)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Requester{}, model.ErrUnauthenticated
	}
	if err != nil {
		return model.Requester{}, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		s.logger.Debug("Identity service: inactive user rejected", "user_id", user.ID)
		return model.Requester{}, model.ErrUserInactive
	}

	if claims.Role != "" && claims.Role != user.Role {
		s.logger.Debug("Identity service: token role differs from stored role",
			"user_id", user.ID, "token_role", claims.Role, "role", user.Role)
	}

	return model.Requester{ID: user.ID, Role: user.Role}, nil
}
