package domain

import (
	"github.com/golang-jwt/jwt"
	"github.com/x-xyz/marketplace/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"data"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	// SigningMessage returns the message an address has to sign to log in.
	SigningMessage(address Address) string
	SignToken(ctx ctx.Ctx, address Address, signature string) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (address string, err error)
}
