package domain

import (
	"github.com/golang-jwt/jwt"
	"github.com/x-xyz/swiftbid/base/ctx"
)

type JwtCustomClaims struct {
	UserId string `json:"userId"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	SignToken(ctx ctx.Ctx, userId string) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (userId string, err error)
}
