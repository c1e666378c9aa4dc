package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/domain/shared"
	"github.com/perfhub/backend/internal/infrastructure/auth"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("username", input.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if !user.IsActive() {
		s.logger.Warn("Login attempt for inactive account", zap.String("username", input.Username))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account has been deactivated")
	}

	if !user.CheckPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", input.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
		DepartmentID: user.DepartmentID,
	})
	if err != nil {
		s.logger.Error("Failed to generate tokens", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate tokens")
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	return &LoginResult{
		Tokens: tokens,
		User:   ToUserResponse(user),
	}, nil
}

// RefreshToken rotates a refresh token into a fresh token pair. The user is
// re-read so the new access token carries their current role and department.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
	}

	if revoked, err := s.blacklist.IsRevoked(ctx, claims.ID); err == nil && revoked {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Token has been revoked")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid token claims")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "User no longer exists")
	}
	if !user.IsActive() {
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account has been deactivated")
	}

	tokens, err := s.jwtService.RefreshTokenPair(input.RefreshToken, auth.GenerateTokenInput{
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
		DepartmentID: user.DepartmentID,
	})
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Failed to refresh tokens")
	}

	// The used refresh token is single-use.
	if ttl := time.Until(claims.ExpiresAt.Time); ttl > 0 {
		if err := s.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
			s.logger.Error("Failed to revoke used refresh token", zap.Error(err))
		}
	}

	return tokens, nil
}

// Logout revokes the presented access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	claims, err := s.jwtService.ValidateAccessToken(input.AccessToken)
	if err != nil {
		// An invalid token has nothing to revoke.
		return nil
	}

	if ttl := time.Until(claims.ExpiresAt.Time); ttl > 0 {
		if err := s.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
			s.logger.Error("Failed to revoke token on logout", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
		}
	}

	s.logger.Info("User logged out", zap.String("username", claims.Username))
	return nil
}

// GetCurrentUser returns the user identified by the given ID
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangePassword changes the user's password after verifying the old one
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.CheckPassword(input.OldPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}

	if err := user.SetPassword(input.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Password changed", zap.String("username", user.Username))
	return nil
}
