package usecase_test

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/ethereum"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/stores/auth/usecase"
)

func TestSignAndParseToken(t *testing.T) {
	key, err := crypto.GenerateKey()
	assert.NoError(t, err)
	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex())

	ctx := ctx.Background()
	u := usecase.New("jwt-secret", "sign in as %s", time.Hour)
	sig, err := ethereum.SignMessage(key, []byte(u.SigningMessage(address)))
	assert.NoError(t, err)

	tkn, err := u.SignToken(ctx, address, sig)
	assert.NoError(t, err)
	assert.NotEmpty(t, tkn)
	ads, err := u.ParseToken(ctx, tkn)
	assert.NoError(t, err)
	assert.Equal(t, address.ToLowerStr(), ads)
}

func TestSignTokenRejectsForeignSignature(t *testing.T) {
	key, err := crypto.GenerateKey()
	assert.NoError(t, err)
	other, err := crypto.GenerateKey()
	assert.NoError(t, err)
	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex())

	ctx := ctx.Background()
	u := usecase.New("jwt-secret", "sign in as %s", time.Hour)
	sig, err := ethereum.SignMessage(other, []byte(u.SigningMessage(address)))
	assert.NoError(t, err)

	_, err = u.SignToken(ctx, address, sig)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)

	_, err = u.SignToken(ctx, "not-an-address", sig)
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)
}

func TestParseTokenRejectsOtherSecret(t *testing.T) {
	key, err := crypto.GenerateKey()
	assert.NoError(t, err)
	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex())

	ctx := ctx.Background()
	u := usecase.New("jwt-secret", "sign in as %s", time.Hour)
	sig, err := ethereum.SignMessage(key, []byte(u.SigningMessage(address)))
	assert.NoError(t, err)
	tkn, err := u.SignToken(ctx, address, sig)
	assert.NoError(t, err)

	_, err = usecase.New("another-secret", "sign in as %s", time.Hour).ParseToken(ctx, tkn)
	assert.Error(t, err)
}
