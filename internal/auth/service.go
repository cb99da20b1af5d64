package auth

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"

	errors "github.com/fabianopolone123/ERP-TI/internal"
	userDatamodel "github.com/fabianopolone123/ERP-TI/internal/core/datamodel/user"
	"github.com/fabianopolone123/ERP-TI/internal/credential"
)

type RepositoryAPI interface {
	FindByUsername(ctx context.Context, username string) (*userDatamodel.User, error)
	GetUserByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	AnyCredentials(ctx context.Context) (bool, error)
	UsernameTaken(ctx context.Context, username string, exceptUserID int64) (bool, error)
	MigratePassword(ctx context.Context, userID int64, hash string) error
	SetCredentials(ctx context.Context, userID int64, username, hash string) error
}

// Service is the main auth service with dependencies
type Service struct {
	repo   RepositoryAPI
	hasher *credential.Hasher
	tokens TokenGenerator
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, hasher *credential.Hasher, tokens TokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Authenticate resolves a username and password to an identity. Every failure is the
// same ErrInvalidCredentials.
//
// A stored digest is authoritative when it parses. Otherwise a legacy plaintext match
// is accepted once and immediately replaced by a digest. While no user has any
// credentials at all, any non-empty username is let in as a bootstrap identity.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (errors.Identity, error) {
	username := strings.TrimSpace(dto.Username)
	password := strings.TrimSpace(dto.Password)
	if username == "" {
		return errors.Identity{}, ErrInvalidCredentials
	}

	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Error("failed to look up user", "error", err)
		return errors.Identity{}, errors.NewInternalError("failed to look up user", err)
	}

	if u != nil && password != "" {
		ok, err := s.checkPassword(ctx, u, password)
		if err != nil {
			return errors.Identity{}, err
		}
		if ok {
			s.logger.Info("user authenticated", "user_id", u.ID)
			return identityFor(u), nil
		}
	}

	configured, err := s.repo.AnyCredentials(ctx)
	if err != nil {
		return errors.Identity{}, errors.NewInternalError("failed to check stored credentials", err)
	}
	if !configured {
		s.logger.Warn("bootstrap login accepted: no credentials are configured yet", "username", username)
		return errors.Identity{Name: username, Bootstrap: true}, nil
	}

	s.logger.Info("authentication failed", "username", username)
	return errors.Identity{}, ErrInvalidCredentials
}

func (s *Service) checkPassword(ctx context.Context, u *userDatamodel.User, password string) (bool, error) {
	if s.hasher.IsValidDigest(u.PasswordHash) {
		return s.hasher.Verify(password, u.PasswordHash), nil
	}

	stored := strings.TrimSpace(u.Password)
	if stored == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return false, nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, errors.NewInternalError("failed to hash password", err)
	}
	if err := s.repo.MigratePassword(ctx, u.ID, hash); err != nil {
		s.logger.Error("failed to migrate plaintext password", "user_id", u.ID, "error", err)
		return false, errors.NewInternalError("failed to migrate password", err)
	}
	s.logger.Info("plaintext password migrated to digest", "user_id", u.ID)
	return true, nil
}

// Login authenticates and issues a token pair.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (LoginResponse, error) {
	id, err := s.Authenticate(ctx, dto)
	if err != nil {
		return LoginResponse{}, err
	}
	tokens, err := s.issue(Principal{UserID: id.UserID, Name: id.Name, Bootstrap: id.Bootstrap})
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{AuthTokens: tokens, Identity: id}, nil
}

// RefreshTokens validates a refresh token and returns a new pair. Bootstrap sessions
// end once real credentials exist.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	p := Principal{UserID: claims.UserID, Name: claims.Name, Bootstrap: claims.Bootstrap}
	switch {
	case p.UserID != 0:
		u, err := s.repo.GetUserByID(ctx, p.UserID)
		if err != nil {
			return AuthTokens{}, errors.NewInternalError("failed to load user", err)
		}
		if u == nil {
			return AuthTokens{}, ErrInvalidToken
		}
		p.Name = identityFor(u).Name
	case p.Bootstrap:
		configured, err := s.repo.AnyCredentials(ctx)
		if err != nil {
			return AuthTokens{}, errors.NewInternalError("failed to check stored credentials", err)
		}
		if configured {
			return AuthTokens{}, ErrInvalidToken
		}
	}
	return s.issue(p)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateAccessToken(tokenString)
}

// SetCredentials stores a username and a fresh digest and clears any plaintext.
func (s *Service) SetCredentials(ctx context.Context, userID int64, dto SetCredentialsDTO) error {
	dto = dto.Trimmed()
	if err := dto.Validate(); err != nil {
		return err
	}

	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return errors.NewInternalError("failed to load user", err)
	}
	if u == nil {
		return errors.ErrUserNotFound
	}

	taken, err := s.repo.UsernameTaken(ctx, dto.Username, userID)
	if err != nil {
		return errors.NewInternalError("failed to check username", err)
	}
	if taken {
		return errors.ErrDuplicateUsername
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		return errors.NewInternalError("failed to hash password", err)
	}
	if err := s.repo.SetCredentials(ctx, userID, dto.Username, hash); err != nil {
		s.logger.Error("failed to store credentials", "user_id", userID, "error", err)
		return errors.NewInternalError("failed to store credentials", err)
	}

	s.logger.Info("credentials updated", "user_id", userID)
	return nil
}

func (s *Service) issue(p Principal) (AuthTokens, error) {
	access, err := s.tokens.GenerateAccessToken(p)
	if err != nil {
		return AuthTokens{}, errors.NewInternalError("failed to sign access token", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(p)
	if err != nil {
		return AuthTokens{}, errors.NewInternalError("failed to sign refresh token", err)
	}
	return AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}

// identityFor names the session after the user's full name, or the login when blank.
func identityFor(u *userDatamodel.User) errors.Identity {
	name := strings.TrimSpace(u.FullName)
	if name == "" {
		name = strings.TrimSpace(u.Username)
	}
	return errors.Identity{UserID: u.ID, Name: name}
}
