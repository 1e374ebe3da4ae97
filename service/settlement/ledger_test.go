package settlement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rsandx/oasis-nft-port/base/ctx"
	"github.com/rsandx/oasis-nft-port/domain"
)

var (
	mockCtx = ctx.Background()
	alice   = domain.Address("0xce4468e7ce84aceb74363f4ea64e5a038176f369")
	bob     = domain.Address("0xdf8650b0ca1260f7a2f4fdff9082aede554f65ad")
)

func TestTransfer(t *testing.T) {
	req := require.New(t)

	l := NewLedger()
	req.NoError(l.Credit(mockCtx, alice, decimal.NewFromInt(10)))

	receipt, err := l.Transfer(mockCtx, alice, bob, decimal.NewFromInt(3))
	req.NoError(err)
	req.NotEmpty(receipt.Id)
	req.Equal(alice, receipt.From)
	req.Equal(bob, receipt.To)

	aliceBalance, err := l.BalanceOf(mockCtx, alice)
	req.NoError(err)
	req.True(aliceBalance.Equal(decimal.NewFromInt(7)))

	bobBalance, err := l.BalanceOf(mockCtx, bob)
	req.NoError(err)
	req.True(bobBalance.Equal(decimal.NewFromInt(3)))
}

func TestTransferInsufficientFunds(t *testing.T) {
	req := require.New(t)

	l := NewLedger()
	req.NoError(l.Credit(mockCtx, alice, decimal.NewFromInt(1)))

	_, err := l.Transfer(mockCtx, alice, bob, decimal.NewFromInt(2))
	req.Equal(domain.ErrInsufficientFunds, err)

	// a failed transfer must not move anything
	aliceBalance, err := l.BalanceOf(mockCtx, alice)
	req.NoError(err)
	req.True(aliceBalance.Equal(decimal.NewFromInt(1)))

	bobBalance, err := l.BalanceOf(mockCtx, bob)
	req.NoError(err)
	req.True(bobBalance.IsZero())
}

func TestTransferNegativeValue(t *testing.T) {
	req := require.New(t)

	l := NewLedger()
	_, err := l.Transfer(mockCtx, alice, bob, decimal.NewFromInt(-1))
	req.Equal(domain.ErrBadParamInput, err)
}

func TestAddressCaseInsensitive(t *testing.T) {
	req := require.New(t)

	l := NewLedger()
	req.NoError(l.Credit(mockCtx, domain.Address("0xCE4468E7CE84ACEB74363F4EA64E5A038176F369"), decimal.NewFromInt(5)))

	balance, err := l.BalanceOf(mockCtx, alice)
	req.NoError(err)
	req.True(balance.Equal(decimal.NewFromInt(5)))
}
