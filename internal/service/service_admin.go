package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/validators"
	"github.com/MKhiriev/go-note-keeper/models"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

// usageConcurrency bounds the number of data directories walked at once.
const usageConcurrency = 4

type adminService struct {
	users      store.UserStore
	quota      QuotaEnforcer
	locks      *UserLocks
	validator  validators.Validator
	adminLogin string
	bcryptCost int

	logger *logger.Logger
}

func NewAdminService(users store.UserStore, quota QuotaEnforcer, locks *UserLocks, adminLogin string, logger *logger.Logger) AdminService {
	return &adminService{
		users:      users,
		quota:      quota,
		locks:      locks,
		validator:  validators.NewCredentialsValidator(),
		adminLogin: adminLogin,
		bcryptCost: bcrypt.DefaultCost,
		logger:     logger,
	}
}

// ListUsers returns every account sorted by name together with its storage
// usage. Usage is computed concurrently.
func (s *adminService) ListUsers(ctx context.Context) ([]models.UserInfo, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	infos := make([]models.UserInfo, len(users))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(usageConcurrency)
	for i, user := range users {
		g.Go(func() error {
			usage, err := s.quota.Usage(gctx, user.Username)
			if err != nil {
				return fmt.Errorf("user %s: %w", user.Username, err)
			}

			infos[i] = models.UserInfo{
				Username:  user.Username,
				CreatedAt: user.CreatedAt,
				Usage:     usage,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.FromContext(ctx).Err(err).Msg("error computing storage usage")
		return nil, err
	}

	return infos, nil
}

// SetUserPassword replaces the password of username.
func (s *adminService) SetUserPassword(ctx context.Context, username, newPassword string) error {
	log := logger.FromContext(ctx)

	err := s.validator.Validate(ctx, models.Credentials{Password: newPassword}, validators.FieldPassword)
	if err != nil {
		log.Error().Err(err).Str("user", username).Msg("invalid password provided")
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.users.UpdatePasswordHash(ctx, username, string(hash)); err != nil {
		log.Err(err).Str("user", username).Msg("error updating password")
		return fmt.Errorf("error updating password: %w", err)
	}

	log.Info().Str("user", username).Msg("password reset by administrator")
	return nil
}

// DeleteUser removes an account and all of its data. The deletion holds the
// user's lock so that no note write races the cascade.
func (s *adminService) DeleteUser(ctx context.Context, username string) error {
	log := logger.FromContext(ctx)

	if s.adminLogin != "" && username == s.adminLogin {
		return ErrAdminUndeletable
	}

	unlock := s.locks.Lock(username)
	defer unlock()

	start := time.Now()
	if err := s.users.DeleteUser(ctx, username); err != nil {
		log.Err(err).Str("user", username).Msg("error deleting user")
		return fmt.Errorf("error deleting user: %w", err)
	}

	log.Info().Str("user", username).Dur("took", time.Since(start)).Msg("user deleted")
	return nil
}
