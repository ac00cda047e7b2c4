package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"woa-fleet/hangar/internal/auth"
	"woa-fleet/hangar/internal/common"
	"woa-fleet/hangar/internal/constants"
	"woa-fleet/hangar/internal/db/repositories"
	"woa-fleet/hangar/internal/logging"
	"woa-fleet/hangar/internal/metrics"
	"woa-fleet/hangar/internal/models/dtos"
	gormModels "woa-fleet/hangar/internal/models/gorm"
)

type AuthService struct {
	users          *repositories.UserRepositoryGORM
	invitations    *repositories.InvitationRepo
	tokens         *auth.TokenIssuer
	captcha        CaptchaVerifier
	cache          common.CacheInterface
	metrics        *metrics.MetricsRegistry
	invitationMode bool
}

// NewAuthService wires registration and login. captcha may be nil, in
// which case registrations are not checked.
func NewAuthService(
	db *gorm.DB,
	invitations *repositories.InvitationRepo,
	tokens *auth.TokenIssuer,
	captcha CaptchaVerifier,
	cache common.CacheInterface,
	m *metrics.MetricsRegistry,
	invitationMode bool,
) *AuthService {
	return &AuthService{
		users:          repositories.NewUserRepositoryGORM(db),
		invitations:    invitations,
		tokens:         tokens,
		captcha:        captcha,
		cache:          cache,
		metrics:        m,
		invitationMode: invitationMode,
	}
}

func normalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if !lengthBetween(username, constants.MinUsernameLength, constants.MaxUsernameLength) {
		return "", constants.ErrInvalidUsername
	}
	return username, nil
}

func validatePassword(password string) error {
	if !lengthBetween(password, constants.MinPasswordLength, constants.MaxPasswordLength) {
		return constants.ErrInvalidPassword
	}
	return nil
}

func (s *AuthService) issue(user *gormModels.User) (*dtos.AuthResponse, error) {
	token, expires, err := s.tokens.Issue(auth.Principal{UserID: user.ID, Role: user.Role})
	if err != nil {
		return nil, err
	}
	return &dtos.AuthResponse{Token: token, ExpiresAt: expires, User: dtos.NewUserResponse(*user)}, nil
}

// Register creates an account and signs the new user in. In invitation
// mode a use of the code is taken first and handed back if the account
// cannot be created.
func (s *AuthService) Register(ctx context.Context, req dtos.RegisterRequest, remoteIP string) (*dtos.AuthResponse, error) {
	username, err := normalizeUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	if s.captcha != nil {
		if err := s.captcha.Verify(ctx, req.CaptchaToken, remoteIP); err != nil {
			s.metrics.Registration("captcha_failed")
			return nil, err
		}
	}

	code := strings.TrimSpace(req.InvitationCode)
	if s.invitationMode {
		if code == "" {
			s.metrics.Registration("invalid_invitation")
			return nil, constants.ErrInvalidInvitation
		}
		if _, err := s.invitations.ConsumeUse(ctx, code); err != nil {
			s.metrics.Registration("invalid_invitation")
			return nil, err
		}
	}

	user, err := s.createUser(ctx, username, req.Password)
	if err != nil {
		if s.invitationMode {
			if restoreErr := s.invitations.RestoreUse(ctx, code); restoreErr != nil {
				logging.Error("Failed to restore invitation use", "code", code, "error", restoreErr)
			}
		}
		s.metrics.Registration("failed")
		return nil, err
	}

	s.metrics.Registration("success")
	logging.Info("User registered", "user_id", user.ID, "username", user.Username, "invited", s.invitationMode)
	return s.issue(user)
}

func (s *AuthService) createUser(ctx context.Context, username, password string) (*gormModels.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &gormModels.User{Username: username, PasswordHash: hash, Role: constants.RoleUser}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login answers unknown users and wrong passwords the same way.
func (s *AuthService) Login(ctx context.Context, req dtos.LoginRequest) (*dtos.AuthResponse, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, constants.ErrUserNotFound) {
		return nil, constants.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	ok, err := auth.CheckPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		logging.Warn("Failed login", "username", user.Username)
		return nil, constants.ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *AuthService) Me(ctx context.Context, p auth.Principal) (*gormModels.User, error) {
	return s.users.GetByID(ctx, p.UserID)
}

func (s *AuthService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	_, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, constants.ErrUserNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

func (s *AuthService) ChangeUsername(ctx context.Context, p auth.Principal, username string) (*gormModels.User, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateUsername(ctx, p.UserID, username); err != nil {
		return nil, err
	}
	s.cache.Delete(usernameKey(p.UserID))

	logging.Info("Username changed", "user_id", p.UserID, "username", username)
	return s.users.GetByID(ctx, p.UserID)
}

// Role is read from the database so a demoted admin loses access before
// their token expires.
func (s *AuthService) Role(ctx context.Context, userID string) (constants.UserRole, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}
