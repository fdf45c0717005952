package auth

import (
	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/domain"
)

// Issuer is the iss claim of every session token
const Issuer = "escrowapi"

// Claims of a session token, Subject holds the lower cased wallet address
type Claims struct {
	jwt.StandardClaims
}

func (c *Claims) Address() domain.Address {
	return domain.Address(c.Subject)
}

// Valid additionally rejects tokens issued by another service sharing the secret
func (c *Claims) Valid() error {
	if err := c.StandardClaims.Valid(); err != nil {
		return err
	}
	if !c.VerifyIssuer(Issuer, true) || c.Subject == "" {
		return domain.ErrInvalidToken
	}
	return nil
}

// UseCase signs callers in with a wallet signature over a one time nonce
type UseCase interface {
	Nonce(c ctx.Ctx, address domain.Address) (string, error)
	// Login checks the signature over the signing message and returns a token
	Login(c ctx.Ctx, address domain.Address, signature string) (string, error)
	SignToken(c ctx.Ctx, address domain.Address) (string, error)
	ParseToken(c ctx.Ctx, token string) (domain.Address, error)
}
