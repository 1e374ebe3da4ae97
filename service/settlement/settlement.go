// Package settlement is the portal's fund-movement collaborator. The market
// ledger only ever asks it to move a value from one principal to another;
// how the value is backed (native ROSE on chain, a bank rail, a test
// ledger) is this package's concern.
package settlement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rsandx/oasis-nft-port/base/ctx"
	"github.com/rsandx/oasis-nft-port/domain"
)

// Receipt records one executed transfer.
type Receipt struct {
	Id    string          `json:"id"`
	From  domain.Address  `json:"from"`
	To    domain.Address  `json:"to"`
	Value decimal.Decimal `json:"value"`
	At    time.Time       `json:"at"`
}

type Service interface {
	// Transfer moves value from one account to another atomically.
	Transfer(ctx ctx.Ctx, from, to domain.Address, value decimal.Decimal) (*Receipt, error)
	BalanceOf(ctx ctx.Ctx, account domain.Address) (decimal.Decimal, error)
	// Credit mints value into an account. Used to seed genesis balances.
	Credit(ctx ctx.Ctx, account domain.Address, value decimal.Decimal) error
}
