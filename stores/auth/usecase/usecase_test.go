package usecase

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/rsandx/oasis-nft-port/base/ctx"
	"github.com/rsandx/oasis-nft-port/domain"
)

var mockCtx = ctx.Background()

func TestSignAndParseToken(t *testing.T) {
	req := require.New(t)

	key, err := crypto.GenerateKey()
	req.NoError(err)

	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex())

	sig, err := crypto.Sign(accounts.TextHash([]byte(domain.SignInMessage)), key)
	req.NoError(err)
	sig[crypto.RecoveryIDOffset] += 27

	im := New("test-secret")

	token, err := im.SignToken(mockCtx, address, hexutil.Encode(sig))
	req.NoError(err)
	req.NotEmpty(token)

	parsed, err := im.ParseToken(mockCtx, token)
	req.NoError(err)
	req.Equal(address.ToLower(), parsed)
}

func TestSignTokenRejectsForeignSignature(t *testing.T) {
	req := require.New(t)

	key, err := crypto.GenerateKey()
	req.NoError(err)

	sig, err := crypto.Sign(accounts.TextHash([]byte(domain.SignInMessage)), key)
	req.NoError(err)
	sig[crypto.RecoveryIDOffset] += 27

	im := New("test-secret")

	// claims an address that did not produce the signature
	_, err = im.SignToken(mockCtx, "0xce4468e7ce84aceb74363f4ea64e5a038176f369", hexutil.Encode(sig))
	req.Equal(domain.ErrInvalidSignature, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	req := require.New(t)

	im := New("test-secret")
	_, err := im.ParseToken(mockCtx, "not-a-jwt")
	req.Error(err)
}
