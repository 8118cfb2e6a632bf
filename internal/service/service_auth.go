package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/internal/validators"
	"github.com/MKhiriev/go-note-keeper/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, administrator
// bootstrap and JWT token lifecycle. Passwords are stored as bcrypt hashes
// in the UserStore, which is the only source of truth for credentials.
type authService struct {
	// userStore is the registry used to create and look up users.
	userStore store.UserStore

	// validator checks login and password before they reach the store.
	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// adminLogin and adminPassword describe the bootstrap administrator.
	adminLogin    string
	adminPassword string

	// bcryptCost is the work factor passed to bcrypt.
	bcryptCost int

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserStore
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userStore store.UserStore, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userStore:     userStore,
		validator:     validators.NewCredentialsValidator(),
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		adminLogin:    cfg.AdminLogin,
		adminPassword: cfg.AdminPassword,
		bcryptCost:    bcrypt.DefaultCost,
		logger:        logger,
	}
}

// RegisterUser creates a new user account.
//
// Returns the persisted user or:
//   - ErrValidation if the login or password is unacceptable.
//   - store.ErrUserLimitReached if the registry is full.
//   - store.ErrUserAlreadyExists if the login is taken.
func (a *authService) RegisterUser(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, credentials); err != nil {
		log.Error().Err(err).Str("login", credentials.Login).Msg("invalid credentials provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	hash, err := a.hashPassword(credentials.Password)
	if err != nil {
		log.Err(err).Msg("error hashing password")
		return models.User{}, err
	}

	registeredUser, err := a.userStore.CreateUser(ctx, models.User{
		Username:     credentials.Login,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		log.Err(err).Str("login", credentials.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user. An unknown login and a wrong
// password both yield ErrWrongPassword.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	if credentials.Login == "" || credentials.Password == "" {
		log.Warn().Str("login", credentials.Login).Msg("login attempt with empty credentials")
		return models.User{}, ErrWrongPassword
	}

	foundUser, err := a.userStore.FindUser(ctx, credentials.Login)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Warn().Str("login", credentials.Login).Msg("login attempt for unknown user")
		return models.User{}, ErrWrongPassword
	}
	if err != nil {
		log.Err(err).Str("login", credentials.Login).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(credentials.Password)); err != nil {
		log.Warn().Str("login", credentials.Login).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.Username, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors. A token whose subject is no longer registered is
// rejected the same way.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		log.Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	_, err = a.userStore.FindUser(ctx, token.Username)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Warn().Str("user", token.Username).Msg("token of a deleted user rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}
	if err != nil {
		log.Err(err).Str("user", token.Username).Msg("user lookup for token failed")
		return models.Token{}, fmt.Errorf("user lookup for token failed: %w", err)
	}

	return token, nil
}

// EnsureAdmin makes sure the configured administrator exists and that its
// password matches the configured one. It is a no-op when no administrator
// password is configured, and only warns when the registry has no free slot.
func (a *authService) EnsureAdmin(ctx context.Context) error {
	if a.adminLogin == "" || a.adminPassword == "" {
		a.logger.Warn().Msg("administrator credentials are not configured, skipping bootstrap")
		return nil
	}

	credentials := models.Credentials{Login: a.adminLogin, Password: a.adminPassword}
	if err := a.validator.Validate(ctx, credentials); err != nil {
		return fmt.Errorf("%w: administrator credentials: %w", ErrValidation, err)
	}

	hash, err := a.hashPassword(a.adminPassword)
	if err != nil {
		return err
	}

	_, err = a.userStore.FindUser(ctx, a.adminLogin)
	switch {
	case err == nil:
		if err := a.userStore.UpdatePasswordHash(ctx, a.adminLogin, hash); err != nil {
			return fmt.Errorf("error resetting administrator password: %w", err)
		}
		a.logger.Info().Str("admin", a.adminLogin).Msg("administrator password synchronized")
	case errors.Is(err, store.ErrNoUserWasFound):
		_, err := a.userStore.CreateUser(ctx, models.User{
			Username:     a.adminLogin,
			PasswordHash: hash,
			CreatedAt:    time.Now().UTC(),
		})
		if errors.Is(err, store.ErrUserLimitReached) {
			a.logger.Warn().Str("admin", a.adminLogin).Msg("user registry is full, starting without an administrator account")
			return nil
		}
		if err != nil {
			return fmt.Errorf("error creating administrator: %w", err)
		}
		a.logger.Info().Str("admin", a.adminLogin).Msg("administrator account created")
	default:
		return fmt.Errorf("error looking up administrator: %w", err)
	}

	return nil
}

// IsAdmin reports whether username is the configured administrator.
func (a *authService) IsAdmin(username string) bool {
	return a.adminLogin != "" && username == a.adminLogin
}

func (a *authService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}
