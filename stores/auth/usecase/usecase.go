package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/ethereum"
	"github.com/x-xyz/marketplace/base/validator"
	"github.com/x-xyz/marketplace/domain"
)

type impl struct {
	jwtSecret    []byte
	signatureMsg string
	ttl          time.Duration
}

// New returns an AuthUsecase. signatureMsg holds one %s replaced by the
// lower cased address of the signer.
func New(jwtSecret, signatureMsg string, ttl time.Duration) domain.AuthUsecase {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &impl{
		jwtSecret:    []byte(jwtSecret),
		signatureMsg: signatureMsg,
		ttl:          ttl,
	}
}

func (im *impl) SigningMessage(address domain.Address) string {
	return fmt.Sprintf(im.signatureMsg, address.ToLowerStr())
}

func (im *impl) SignToken(ctx ctx.Ctx, address domain.Address, signature string) (string, error) {
	if !validator.IsValidAddress(string(address)) {
		return "", domain.ErrInvalidAddress
	}

	msg := im.SigningMessage(address)
	if ok, err := ethereum.ValidateMsgSignature([]byte(msg), signature, string(address)); err != nil {
		ctx.WithField("err", err).Warn("ethereum.ValidateMsgSignature failed")
		return "", domain.ErrInvalidSignature
	} else if !ok {
		return "", domain.ErrInvalidSignature
	}

	claims := domain.JwtCustomClaims{
		Address: address.ToLowerStr(),
		StandardClaims: jwt.StandardClaims{
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
		if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
			return claims.Address, nil
		}
	}
	if err == nil {
		err = domain.ErrInvalidSignature
	}

	return "", err
}
