package usecase_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/stores/auth/usecase"
)

func TestSignAndParseToken(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret", time.Hour)
	tkn, err := u.SignToken(ctx, "user-1")
	assert.NoError(t, err)
	assert.NotEmpty(t, tkn)
	uid, err := u.ParseToken(ctx, tkn)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", uid)
}

func TestParseTokenRejects(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret", time.Hour)

	other, err := usecase.New("other-secret", time.Hour).SignToken(ctx, "user-1")
	assert.NoError(t, err)
	_, err = u.ParseToken(ctx, other)
	assert.Error(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.JwtCustomClaims{
		UserId:         "user-1",
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(-time.Minute).Unix()},
	}).SignedString([]byte("jwt-secret"))
	assert.NoError(t, err)
	_, err = u.ParseToken(ctx, expired)
	assert.Error(t, err)

	_, err = u.ParseToken(ctx, "garbage")
	assert.Error(t, err)
}
