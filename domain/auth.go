package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/rsandx/oasis-nft-port/base/ctx"
)

// SignInMessage is the personal-sign challenge a wallet signs to obtain a
// session token.
const SignInMessage = "Sign in to Oasis NFT Portal"

type JwtCustomClaims struct {
	Address string `json:"address"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	// SignToken verifies the personal-sign signature over SignInMessage and
	// issues a session token for the recovered address.
	SignToken(ctx ctx.Ctx, address Address, signature string) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (Address, error)
}
