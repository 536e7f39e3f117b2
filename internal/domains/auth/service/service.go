package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"resto/config"
	"resto/infras/jwt"
	"resto/infras/otel"
	"resto/internal/domains/auth/model/dto"
	userModel "resto/internal/domains/user/model"
	userDto "resto/internal/domains/user/model/dto"
	userRepo "resto/internal/domains/user/repository"
	userService "resto/internal/domains/user/service"
	"resto/shared"
	"resto/shared/cache"
	"resto/shared/constant"
	"resto/shared/failure"
	"resto/shared/password"
	"resto/shared/timezone"

	"github.com/rs/zerolog/log"
)

const cacheRevokedToken = "auth:revoked"

var (
	errInvalidCredentials = failure.Unauthorized("invalid email or password")
	errInvalidSession     = failure.Unauthorized("session is no longer valid, please sign in again")
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	Logout(ctx context.Context, req dto.LogoutRequest) error
	Me(ctx context.Context) (userDto.UserResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
	Authenticate(ctx context.Context, accessToken string) (dto.Session, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.Get(ctx, userService.EmailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with unknown email")

		return res, errInvalidCredentials
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("user_id", user.ID).Msg("login attempt with wrong password")

		return res, errInvalidCredentials
	}

	if !user.IsActive {
		log.Warn().Str("user_id", user.ID).Msg("login attempt on deactivated account")

		return res, failure.Forbidden("account is deactivated")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	now := timezone.Now()
	lastLogin := dto.UpdateLastLoginRequest{LastLogin: now}

	if err := s.userRepo.Update(ctx, shared.TransformFields(lastLogin, user.ID), shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	} else {
		user.LastLogin = &now
	}

	log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("admin signed in")

	res.FromTokenPair(tokenPair)
	res.User.FromModel(user)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("invalid refresh token")

		return res, failure.Unauthorized("invalid refresh token")
	}

	user, err := s.activeUser(ctx, claims.UserID, claims.TokenID)
	if err != nil {
		return res, err
	}

	// Refresh tokens are single use: only the first caller to revoke one may rotate it.
	claimed, err := s.cache.Claim(ctx, shared.BuildCacheKey(cacheRevokedToken, claims.TokenID), claims.TokenID, s.cfg.JWT.RefreshExpireMin*constant.MinutesToSeconds)
	if err != nil {
		log.Error().Err(err).Str("token_id", claims.TokenID).Msg("failed to revoke refresh token")

		return res, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	if !claimed {
		log.Warn().Str("user_id", user.ID).Str("token_id", claims.TokenID).Msg("refresh token reused")

		return res, errInvalidSession
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) Logout(ctx context.Context, req dto.LogoutRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenID, _ := ctx.Value(constant.ContextKeyTokenID).(string)
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if tokenID == constant.Empty {
		return failure.Unauthorized("not signed in")
	}

	if err = s.revoke(ctx, tokenID, s.cfg.JWT.AccessExpireMin); err != nil {
		return err
	}

	if req.RefreshToken != constant.Empty {
		claims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
		if err == nil && claims.UserID == userID {
			if err := s.revoke(ctx, claims.TokenID, s.cfg.JWT.RefreshExpireMin); err != nil {
				return err
			}
		}
	}

	log.Info().Str("user_id", userID).Msg("admin signed out")

	return nil
}

func (s *serviceImpl) Me(ctx context.Context) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.Me")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	user, err := s.userRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found")
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found")
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatePassword := dto.UpdatePasswordRequest{Password: hashedPassword}

	if err = s.userRepo.Update(ctx, shared.TransformFields(updatePassword, userID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	log.Info().Str("user_id", userID).Msg("admin password changed")

	return nil
}

// Authenticate verifies an access token and that the admin behind it may still act.
// The role in the returned session is the stored one, not the one signed into the token.
func (s *serviceImpl) Authenticate(ctx context.Context, accessToken string) (res dto.Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.Authenticate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(ctx, accessToken, jwt.AccessToken)
	if errors.Is(err, jwt.ErrExpiredToken) {
		return res, failure.Unauthorized("token has expired")
	}

	if err != nil {
		return res, failure.Unauthorized("invalid token")
	}

	user, err := s.activeUser(ctx, claims.UserID, claims.TokenID)
	if err != nil {
		return res, err
	}

	return dto.Session{
		UserID:  user.ID,
		Email:   user.Email,
		Role:    user.Role,
		TokenID: claims.TokenID,
	}, nil
}

func (s *serviceImpl) activeUser(ctx context.Context, userID, tokenID string) (userModel.User, error) {
	revoked, err := s.cache.Exists(ctx, shared.BuildCacheKey(cacheRevokedToken, tokenID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check token revocation")

		return userModel.User{}, fmt.Errorf("failed to check token revocation: %w", err)
	}

	if revoked {
		return userModel.User{}, errInvalidSession
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty || !user.IsActive {
		return user, errInvalidSession
	}

	return user, nil
}

func (s *serviceImpl) revoke(ctx context.Context, tokenID string, expireMin int) error {
	key := shared.BuildCacheKey(cacheRevokedToken, tokenID)

	if err := s.cache.Save(ctx, key, tokenID, expireMin*constant.MinutesToSeconds); err != nil {
		log.Error().Err(err).Str("token_id", tokenID).Msg("failed to revoke token")

		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}
