package settlement

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rsandx/oasis-nft-port/base/ctx"
	"github.com/rsandx/oasis-nft-port/base/log"
	"github.com/rsandx/oasis-nft-port/domain"
)

type ledger struct {
	mu       sync.Mutex
	balances map[domain.Address]decimal.Decimal
}

// NewLedger returns an in-process ledger. Balances start at zero; seed them
// with Credit.
func NewLedger() Service {
	return &ledger{
		balances: map[domain.Address]decimal.Decimal{},
	}
}

func (l *ledger) Transfer(context ctx.Ctx, from, to domain.Address, value decimal.Decimal) (*Receipt, error) {
	if value.IsNegative() {
		return nil, domain.ErrBadParamInput
	}

	from = from.ToLower()
	to = to.ToLower()

	l.mu.Lock()
	defer l.mu.Unlock()

	balance := l.balances[from]
	if balance.LessThan(value) {
		context.WithFields(log.Fields{
			"from":    from,
			"balance": balance,
			"value":   value,
		}).Warn("transfer rejected")
		return nil, domain.ErrInsufficientFunds
	}

	l.balances[from] = balance.Sub(value)
	l.balances[to] = l.balances[to].Add(value)

	return &Receipt{
		Id:    uuid.NewString(),
		From:  from,
		To:    to,
		Value: value,
		At:    time.Now(),
	}, nil
}

func (l *ledger) BalanceOf(context ctx.Ctx, account domain.Address) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[account.ToLower()], nil
}

func (l *ledger) Credit(context ctx.Ctx, account domain.Address, value decimal.Decimal) error {
	if value.IsNegative() {
		return domain.ErrBadParamInput
	}

	account = account.ToLower()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[account] = l.balances[account].Add(value)
	return nil
}
