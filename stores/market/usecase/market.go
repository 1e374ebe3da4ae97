package usecase

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/rsandx/oasis-nft-port/base/ctx"
	"github.com/rsandx/oasis-nft-port/base/log"
	"github.com/rsandx/oasis-nft-port/base/metrics"
	"github.com/rsandx/oasis-nft-port/base/ptr"
	"github.com/rsandx/oasis-nft-port/domain"
	"github.com/rsandx/oasis-nft-port/domain/listing"
	"github.com/rsandx/oasis-nft-port/domain/token"
	"github.com/rsandx/oasis-nft-port/service/settlement"
)

// Config carries the deploy-time constants of one marketplace instance.
type Config struct {
	// MarketplaceAddress is the portal's own identity; escrowed tokens are
	// held by it while listed.
	MarketplaceAddress domain.Address
	// FeeAccount receives the listing fee. May equal MarketplaceAddress.
	FeeAccount domain.Address
	// ListingFee is charged on every successful List call, exact match.
	ListingFee decimal.Decimal
	// AllowSelfTrade permits a seller to buy their own listing.
	AllowSelfTrade bool
}

type impl struct {
	// mu serializes the mutating operations so each one observes and
	// commits a consistent ledger state.
	mu         sync.Mutex
	repo       listing.Repo
	token      token.Usecase
	settlement settlement.Service
	cfg        Config
	met        metrics.Service
}

func New(repo listing.Repo, token token.Usecase, settlement settlement.Service, cfg Config) listing.MarketUsecase {
	return &impl{
		repo:       repo,
		token:      token,
		settlement: settlement,
		cfg:        cfg,
		met:        metrics.New("market"),
	}
}

func (im *impl) ListingFee(ctx ctx.Ctx) decimal.Decimal {
	return im.cfg.ListingFee
}

// List escrows the token to the marketplace and opens a fresh listing.
// Every precondition is checked before the first side effect so a rejected
// call leaves both registry and ledger untouched.
func (im *impl) List(ctx ctx.Ctx, seller domain.Address, tokenId domain.TokenId, price, paidFee decimal.Decimal) (*listing.Listing, error) {
	defer im.met.BumpTime("time", "func", "list").End()

	im.mu.Lock()
	defer im.mu.Unlock()

	if price.IsNegative() {
		return nil, domain.ErrBadParamInput
	}

	owner, err := im.token.OwnerOf(ctx, tokenId)
	if err != nil {
		return nil, err
	}

	// checked before ownership: an escrowed token is owned by the
	// marketplace, and a relist attempt must surface as AlreadyListed
	// rather than NotOwner
	cnt, err := im.repo.Count(ctx, listing.WithTokenId(tokenId), listing.WithActive(true))
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
		}).Error("repo.Count failed")
		return nil, err
	}
	if cnt > 0 {
		return nil, domain.ErrAlreadyListed
	}

	if !owner.Equals(seller) {
		return nil, domain.ErrNotOwner
	}

	// listing fee is exact match, not at-least
	if paidFee.LessThan(im.cfg.ListingFee) {
		return nil, domain.ErrInsufficientFee
	}
	if paidFee.GreaterThan(im.cfg.ListingFee) {
		return nil, domain.ErrExcessFee
	}

	if _, err := im.settlement.Transfer(ctx, seller, im.cfg.FeeAccount, paidFee); err != nil {
		return nil, err
	}

	if err := im.token.Transfer(ctx, tokenId, seller, im.cfg.MarketplaceAddress); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
		}).Error("escrow transfer failed")
		return nil, err
	}

	itemId, err := im.repo.NextId(ctx)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err}).Error("repo.NextId failed")
		return nil, err
	}

	l := &listing.Listing{
		ItemId:   itemId,
		TokenId:  tokenId,
		Seller:   seller.ToLower(),
		Holder:   im.cfg.MarketplaceAddress.ToLower(),
		Price:    price.String(),
		Sold:     false,
		Active:   true,
		ListedAt: time.Now(),
	}

	if err := im.repo.Create(ctx, l); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"itemId": itemId,
		}).Error("repo.Create failed")
		return nil, err
	}

	ctx.WithFields(log.Fields{
		"itemId":  itemId,
		"tokenId": tokenId,
		"seller":  l.Seller,
		"price":   l.Price,
	}).Info("token listed")

	return l, nil
}

func (im *impl) Delist(ctx ctx.Ctx, seller domain.Address, itemId domain.ItemId) error {
	defer im.met.BumpTime("time", "func", "delist").End()

	im.mu.Lock()
	defer im.mu.Unlock()

	l, err := im.repo.FindOne(ctx, itemId)
	if err == domain.ErrNotFound {
		return domain.ErrUnknownListing
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"itemId": itemId,
		}).Error("repo.FindOne failed")
		return err
	}

	if !l.Active {
		return domain.ErrNotActive
	}
	if !l.Seller.Equals(seller) {
		return domain.ErrNotSeller
	}

	// custody returns to the seller before the row is closed
	if err := im.token.Transfer(ctx, l.TokenId, im.cfg.MarketplaceAddress, l.Seller); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": l.TokenId,
		}).Error("escrow return failed")
		return err
	}

	now := time.Now()
	err = im.repo.Patch(ctx, itemId, listing.PatchableListing{
		Active:     ptr.Bool(false),
		DelistedAt: &now,
	})
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"itemId": itemId,
		}).Error("repo.Patch failed")
		return err
	}

	ctx.WithFields(log.Fields{
		"itemId":  itemId,
		"tokenId": l.TokenId,
	}).Info("token delisted")

	return nil
}

func (im *impl) Buy(ctx ctx.Ctx, buyer domain.Address, itemId domain.ItemId, paidAmount decimal.Decimal) (*listing.Listing, error) {
	defer im.met.BumpTime("time", "func", "buy").End()

	im.mu.Lock()
	defer im.mu.Unlock()

	l, err := im.repo.FindOne(ctx, itemId)
	if err == domain.ErrNotFound {
		return nil, domain.ErrUnknownListing
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"itemId": itemId,
		}).Error("repo.FindOne failed")
		return nil, err
	}

	if l.Sold {
		return nil, domain.ErrAlreadySold
	}
	if !l.Active {
		return nil, domain.ErrNotActive
	}
	if !im.cfg.AllowSelfTrade && l.Seller.Equals(buyer) {
		return nil, domain.ErrSelfTradeForbidden
	}

	price, err := l.PriceDecimal()
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"itemId": itemId,
			"price":  l.Price,
		}).Error("stored price unparsable")
		return nil, xerrors.Errorf("decimal.NewFromString(%s) failed", l.Price)
	}

	// exact match keeps settlement deterministic; overpay is rejected too
	if !paidAmount.Equal(price) {
		return nil, domain.ErrWrongPaymentAmount
	}

	if _, err := im.settlement.Transfer(ctx, buyer, l.Seller, paidAmount); err != nil {
		return nil, err
	}

	if err := im.token.Transfer(ctx, l.TokenId, im.cfg.MarketplaceAddress, buyer); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": l.TokenId,
		}).Error("sale transfer failed")
		return nil, err
	}

	now := time.Now()
	holder := buyer.ToLower()
	err = im.repo.Patch(ctx, itemId, listing.PatchableListing{
		Holder: &holder,
		Sold:   ptr.Bool(true),
		Active: ptr.Bool(false),
		SoldAt: &now,
	})
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"itemId": itemId,
		}).Error("repo.Patch failed")
		return nil, err
	}

	ctx.WithFields(log.Fields{
		"itemId":  itemId,
		"tokenId": l.TokenId,
		"seller":  l.Seller,
		"buyer":   holder,
		"price":   l.Price,
	}).Info("market sale executed")

	sold := *l
	sold.Holder = holder
	sold.Sold = true
	sold.Active = false
	sold.SoldAt = &now
	return &sold, nil
}

// FetchMarketItems is the public unsold inventory, identical for every
// caller.
func (im *impl) FetchMarketItems(ctx ctx.Ctx) ([]*listing.Listing, error) {
	return im.repo.FindAll(ctx, listing.WithActive(true), listing.WithSold(false))
}

func (im *impl) FetchMyNFTs(ctx ctx.Ctx, owner domain.Address) ([]*token.Token, error) {
	return im.token.FindAll(ctx, token.WithOwner(owner))
}

func (im *impl) FetchMyListings(ctx ctx.Ctx, seller domain.Address) ([]*listing.Listing, error) {
	return im.repo.FindAll(ctx, listing.WithSeller(seller), listing.WithActive(true))
}
