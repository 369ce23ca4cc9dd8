// Package session turns successful logins into explicit Session values.
// The manager keeps no notion of a current user; whoever calls Login owns
// the returned Session and passes it to every journal operation.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/studentverse/internal/common"
	"github.com/dmitrijs2005/studentverse/internal/logging"
	"github.com/dmitrijs2005/studentverse/internal/models"
	"golang.org/x/time/rate"
)

// Authenticator is the part of services.AuthService the manager needs.
type Authenticator interface {
	Register(ctx context.Context, username string, password []byte) (*models.User, error)
	Authenticate(ctx context.Context, username string, password []byte) (*models.User, error)
}

type Manager struct {
	auth    Authenticator
	limiter *rate.Limiter
	clock   func() time.Time
	log     logging.Logger
}

// NewManager builds a Manager allowing ratePerSec sustained login attempts
// with bursts of burst.
func NewManager(auth Authenticator, ratePerSec float64, burst int, clock func() time.Time, log logging.Logger) *Manager {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{
		auth:    auth,
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), burst),
		clock:   clock,
		log:     log,
	}
}

func (m *Manager) Register(ctx context.Context, username string, password []byte) (*models.User, error) {
	return m.auth.Register(ctx, username, password)
}

// Login waits for a login slot, bounded by ctx, and authenticates. When ctx
// ends before a slot frees up the error wraps common.ErrStorageBusy.
func (m *Manager) Login(ctx context.Context, username string, password []byte) (models.Session, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		m.log.Warn(ctx, "login throttled", "username", models.NormalizeUserName(username))
		return models.Session{}, fmt.Errorf("%w: too many login attempts: %w", common.ErrStorageBusy, err)
	}

	user, err := m.auth.Authenticate(ctx, username, password)
	if err != nil {
		return models.Session{}, err
	}

	return models.Session{
		UserID:    user.ID,
		UserName:  user.UserName,
		StartedAt: m.clock().UTC(),
	}, nil
}
