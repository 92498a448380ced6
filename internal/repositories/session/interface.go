package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/sipcrew/partyround/internal/repositories/session Repository

import (
	"context"

	"github.com/sipcrew/partyround/internal/models"
)

// Repository defines the interface for session data persistence
type Repository interface {
	// SaveSession persists a session, guarded by its version token
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves a session by its join code
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// DeleteSession removes a session
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error

	// GetActiveSessions retrieves all sessions currently in play
	GetActiveSessions(ctx context.Context, input *GetActiveSessionsInput) (*GetActiveSessionsOutput, error)
}
