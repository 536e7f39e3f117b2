package jwt_test

import (
	"context"
	"resto/config"
	"resto/infras/jwt"
	"resto/infras/otel/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newService(accessMin int) jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "resto"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = accessMin
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg, mocks.NewOtel())
}

func TestService_GenerateAndValidate(t *testing.T) {
	ctx := context.Background()
	svc := newService(15)

	pair, err := svc.GenerateTokenPair(ctx, "admin-1", "owner@resto.test", "superadmin")
	assert.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID)
	assert.Equal(t, "owner@resto.test", claims.Email)
	assert.Equal(t, "superadmin", claims.Role)
	assert.NotEmpty(t, claims.TokenID)
	assert.Equal(t, claims.TokenID, claims.ID)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestService_ValidateToken_Errors(t *testing.T) {
	ctx := context.Background()
	svc := newService(15)

	pair, err := svc.GenerateTokenPair(ctx, "admin-1", "owner@resto.test", "admin")
	assert.NoError(t, err)

	_, err = svc.ValidateToken(ctx, pair.RefreshToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, "not-a-token", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	expired := newService(-1)
	stale, err := expired.GenerateTokenPair(ctx, "admin-1", "owner@resto.test", "admin")
	assert.NoError(t, err)

	_, err = expired.ValidateToken(ctx, stale.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestService_ValidateToken_ForeignIssuer(t *testing.T) {
	ctx := context.Background()

	other := newService(15)
	pair, err := other.GenerateTokenPair(ctx, "admin-1", "owner@resto.test", "admin")
	assert.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.Name = "another-app"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15

	_, err = jwt.New(cfg, mocks.NewOtel()).ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestService_ValidateToken_Refresh(t *testing.T) {
	ctx := context.Background()
	svc := newService(15)

	pair, err := svc.GenerateTokenPair(ctx, "admin-1", "owner@resto.test", "admin")
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, pair.RefreshToken, jwt.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, jwt.RefreshToken, claims.Type)

	_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer", header: "Bearer abc.def", want: "abc.def"},
		{name: "surrounding space", header: "Bearer  abc.def ", want: "abc.def"},
		{name: "empty", header: "", wantErr: true},
		{name: "other scheme", header: "Basic abc", wantErr: true},
		{name: "no token", header: "Bearer ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwt.ExtractTokenFromHeader(tt.header)

			if tt.wantErr {
				assert.ErrorIs(t, err, jwt.ErrMissingToken)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, token)
			}
		})
	}
}
