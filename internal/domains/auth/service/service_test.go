package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"resto/config"
	"resto/infras/jwt"
	jwtMocks "resto/infras/jwt/mocks"
	"resto/infras/otel/mocks"
	"resto/internal/domains/auth/model/dto"
	"resto/internal/domains/auth/service"
	userMocks "resto/internal/domains/user/mocks"
	userModel "resto/internal/domains/user/model"
	cacheMocks "resto/shared/cache/mocks"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"
	"resto/shared/password"
)

type fixture struct {
	users *userMocks.MockUser
	cache *cacheMocks.MockRedisCache
	jwt   *jwtMocks.MockJWT
	svc   service.Auth
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.JWT.AccessExpireMin = 60
	cfg.JWT.RefreshExpireMin = 1440

	f := fixture{
		users: userMocks.NewMockUser(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		jwt:   jwtMocks.NewMockJWT(ctrl),
	}
	f.svc = service.New(f.users, cfg, f.cache, mocks.NewOtel(), f.jwt)

	return f
}

func hashed(t *testing.T, plain string) string {
	t.Helper()

	hash, err := password.Hash(plain)
	assert.NoError(t, err)

	return hash
}

func sessionCtx() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	return context.WithValue(ctx, constant.ContextKeyTokenID, "token-1")
}

var tokenPair = &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 3600}

func TestAuthService_Login(t *testing.T) {
	stored := userModel.User{
		ID:       "admin-1",
		Email:    "admin@example.com",
		Password: hashed(t, "correct-horse"),
		Role:     constant.RoleAdmin,
		IsActive: true,
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "successful login stamps last login",
			req:  dto.LoginRequest{Email: "Admin@Example.com", Password: "correct-horse"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "admin-1", "admin@example.com", constant.RoleAdmin).Return(tokenPair, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Contains(t, fields, userModel.FieldLastLogin)

						return nil
					})
			},
		},
		{
			name: "last login failure does not block sign in",
			req:  dto.LoginRequest{Email: "admin@example.com", Password: "correct-horse"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tokenPair, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "admin@example.com", Password: "wrong"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "deactivated admin",
			req:  dto.LoginRequest{Email: "admin@example.com", Password: "correct-horse"},
			setupMock: func(f fixture) {
				inactive := stored
				inactive.IsActive = false

				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "store error",
			req:  dto.LoginRequest{Email: "admin@example.com", Password: "correct-horse"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Login(context.Background(), tt.req)

			switch {
			case tt.wantCode != 0:
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			case tt.wantErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
				assert.Equal(t, "access", res.AccessToken)
				assert.Equal(t, "admin-1", res.User.ID)
			}
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	claims := &jwt.Claims{UserID: "admin-1", Email: "admin@example.com", Role: constant.RoleSuperAdmin, TokenID: "token-1"}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantRole  string
		wantCode  int
	}{
		{
			name: "valid session uses the stored role",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "access", jwt.AccessToken).Return(claims, nil)
				f.cache.EXPECT().Exists(gomock.Any(), "auth:revoked:token-1").Return(false, nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "admin-1", Role: constant.RoleAdmin, IsActive: true}, nil)
			},
			wantRole: constant.RoleAdmin,
		},
		{
			name: "expired token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "revoked token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(claims, nil)
				f.cache.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "admin deactivated after sign in",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(claims, nil)
				f.cache.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(false, nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "admin-1", IsActive: false}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "admin deleted after sign in",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(claims, nil)
				f.cache.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(false, nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			session, err := f.svc.Authenticate(context.Background(), "access")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantRole, session.Role)
			assert.Equal(t, "token-1", session.TokenID)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	claims := &jwt.Claims{UserID: "admin-1", TokenID: "refresh-1", Type: jwt.RefreshToken}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "rotates the refresh token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).Return(claims, nil)
				f.cache.EXPECT().Exists(gomock.Any(), "auth:revoked:refresh-1").Return(false, nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "admin-1", Email: "a@example.com", Role: constant.RoleAdmin, IsActive: true}, nil)
				f.cache.EXPECT().Claim(gomock.Any(), "auth:revoked:refresh-1", "refresh-1", 1440*60).Return(true, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "admin-1", "a@example.com", constant.RoleAdmin).Return(tokenPair, nil)
			},
		},
		{
			name: "reused refresh token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(claims, nil)
				f.cache.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "concurrent refresh loses the claim",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(claims, nil)
				f.cache.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(false, nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "admin-1", IsActive: true}, nil)
				f.cache.EXPECT().Claim(gomock.Any(), "auth:revoked:refresh-1", gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "revocation store down",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(claims, nil)
				f.cache.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(false, nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "admin-1", IsActive: true}, nil)
				f.cache.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "malformed token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, jwt.ErrInvalidToken)
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "access", res.AccessToken)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.LogoutRequest
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "revokes the access token",
			ctx:  sessionCtx(),
			setupMock: func(f fixture) {
				f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:token-1", "token-1", 60*60).Return(nil)
			},
		},
		{
			name: "revokes the refresh token too",
			ctx:  sessionCtx(),
			req:  dto.LogoutRequest{RefreshToken: "refresh"},
			setupMock: func(f fixture) {
				f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:token-1", gomock.Any(), gomock.Any()).Return(nil)
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).Return(&jwt.Claims{UserID: "admin-1", TokenID: "refresh-1"}, nil)
				f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:refresh-1", gomock.Any(), 1440*60).Return(nil)
			},
		},
		{
			name: "someone else's refresh token is ignored",
			ctx:  sessionCtx(),
			req:  dto.LogoutRequest{RefreshToken: "refresh"},
			setupMock: func(f fixture) {
				f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:token-1", gomock.Any(), gomock.Any()).Return(nil)
				f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(&jwt.Claims{UserID: "admin-2", TokenID: "refresh-9"}, nil)
			},
		},
		{
			name:      "no session",
			ctx:       context.Background(),
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "revocation store down",
			ctx:  sessionCtx(),
			setupMock: func(f fixture) {
				f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Logout(tt.ctx, tt.req)

			switch {
			case tt.wantCode != 0:
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			case tt.wantErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	stored := userModel.User{ID: "admin-1", Password: hashed(t, "old-password"), IsActive: true}

	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "changed",
			req:  dto.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						hash, _ := fields[userModel.FieldPassword].(string)
						assert.NoError(t, password.Verify("new-password", hash))

						return nil
					})
			},
		},
		{
			name: "wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "guess", NewPassword: "new-password"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "account gone",
			req:  dto.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.ChangePassword(sessionCtx(), tt.req)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestAuthService_Me(t *testing.T) {
	f := newFixture(t)

	f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "admin-1", Email: "admin@example.com", Role: constant.RoleAdmin}, nil)

	res, err := f.svc.Me(sessionCtx())

	assert.NoError(t, err)
	assert.Equal(t, "admin@example.com", res.Email)
}
