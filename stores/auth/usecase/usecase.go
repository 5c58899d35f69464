package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/domain"
)

const defaultTokenTtl = 24 * time.Hour

type impl struct {
	jwtSecret []byte
	ttl       time.Duration
}

func New(jwtSecret string, ttl time.Duration) domain.AuthUsecase {
	if ttl <= 0 {
		ttl = defaultTokenTtl
	}
	return &impl{
		jwtSecret: []byte(jwtSecret),
		ttl:       ttl,
	}
}

func (im *impl) SignToken(ctx ctx.Ctx, userId string) (string, error) {
	claims := domain.JwtCustomClaims{
		UserId: userId,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(im.ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (string, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})

	if token != nil {
		if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid && claims.UserId != "" {
			return claims.UserId, nil
		}
	}

	if err == nil {
		err = domain.ErrUnauthorized
	}
	return "", err
}
