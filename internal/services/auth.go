package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/studentverse/internal/common"
	"github.com/dmitrijs2005/studentverse/internal/cryptox"
	"github.com/dmitrijs2005/studentverse/internal/models"
	"github.com/dmitrijs2005/studentverse/internal/repositories/repomanager"
	"github.com/google/uuid"
)

// AuthService registers and authenticates users.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      cryptox.Hasher
	opts        Options
}

// NewAuthService constructs an AuthService. hasher is used for new
// registrations; existing users are verified with the hasher recorded on
// their row.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, hasher cryptox.Hasher, opts Options) *AuthService {
	return &AuthService{db: db, repomanager: m, hasher: hasher, opts: opts.withDefaults()}
}

// Register creates a user under the normalized form of username. It returns
// common.ErrValidation for an empty name or password and
// common.ErrAlreadyExists when the name is taken.
func (s *AuthService) Register(ctx context.Context, username string, password []byte) (*models.User, error) {
	name, err := models.ValidateUserName(username)
	if err != nil {
		return nil, err
	}
	if err := models.ValidatePassword(password); err != nil {
		return nil, err
	}

	salt := cryptox.NewSalt()
	user := &models.User{
		ID:        uuid.NewString(),
		UserName:  name,
		Salt:      salt,
		Hash:      s.hasher.Hash(password, salt),
		KDF:       s.hasher.ID(),
		CreatedAt: s.opts.now(),
	}

	repo := s.repomanager.Users(s.db)
	err = s.opts.run(ctx, func(ctx context.Context) error {
		return repo.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			s.opts.Logger.Info(ctx, "registration rejected, username taken", "username", name)
			return nil, fmt.Errorf("username %q: %w", name, common.ErrAlreadyExists)
		}
		s.opts.Logger.Error(ctx, "registration failed", "username", name, "error", err)
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.opts.Logger.Info(ctx, "user registered", "username", name, "user_id", user.ID)
	return user, nil
}

// Authenticate checks password against the stored credential of username.
// An unknown user and a wrong password both yield
// common.ErrInvalidCredentials; a lookup miss returns without key derivation.
func (s *AuthService) Authenticate(ctx context.Context, username string, password []byte) (*models.User, error) {
	name, err := models.ValidateUserName(username)
	if err != nil {
		// No such name can have been registered.
		s.opts.Logger.Warn(ctx, "authentication failed", "error", err)
		return nil, common.ErrInvalidCredentials
	}

	var user *models.User
	repo := s.repomanager.Users(s.db)
	err = s.opts.run(ctx, func(ctx context.Context) error {
		var err error
		user, err = repo.GetByUserName(ctx, name)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.opts.Logger.Warn(ctx, "authentication failed", "username", name)
			return nil, common.ErrInvalidCredentials
		}
		s.opts.Logger.Error(ctx, "authentication lookup failed", "username", name, "error", err)
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	hasher, err := cryptox.ParseHasher(user.KDF)
	if err != nil {
		s.opts.Logger.Error(ctx, "stored credential unreadable", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}

	if !cryptox.Equal(user.Hash, hasher.Hash(password, user.Salt)) {
		s.opts.Logger.Warn(ctx, "authentication failed", "username", name)
		return nil, common.ErrInvalidCredentials
	}

	s.opts.Logger.Debug(ctx, "user authenticated", "user_id", user.ID)
	return user, nil
}
