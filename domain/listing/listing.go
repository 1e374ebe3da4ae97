package listing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rsandx/oasis-nft-port/base/ctx"
	"github.com/rsandx/oasis-nft-port/domain"
	"github.com/rsandx/oasis-nft-port/domain/token"
)

// Listing is one sale offer against a token. Rows are never deleted; delist
// and buy clear Active so historical listings stay queryable by id.
//
// While Active the underlying token is escrowed to the marketplace identity
// and Holder records marketplace-side possession: the marketplace itself
// until sold, then the buyer.
type Listing struct {
	ItemId     domain.ItemId  `json:"itemId" bson:"itemId"`
	TokenId    domain.TokenId `json:"tokenId" bson:"tokenId"`
	Seller     domain.Address `json:"seller" bson:"seller"`
	Holder     domain.Address `json:"holder" bson:"holder"`
	Price      string         `json:"price" bson:"price"`
	Sold       bool           `json:"sold" bson:"sold"`
	Active     bool           `json:"active" bson:"active"`
	ListedAt   time.Time      `json:"listedAt" bson:"listedAt"`
	SoldAt     *time.Time     `json:"soldAt,omitempty" bson:"soldAt,omitempty"`
	DelistedAt *time.Time     `json:"delistedAt,omitempty" bson:"delistedAt,omitempty"`
}

// PriceDecimal parses the stored price. Prices are validated on the way in,
// so failure here means a corrupted row.
func (l *Listing) PriceDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(l.Price)
}

type PatchableListing struct {
	Holder     *domain.Address `json:"holder" bson:"holder,omitempty"`
	Sold       *bool           `json:"sold" bson:"sold,omitempty"`
	Active     *bool           `json:"active" bson:"active,omitempty"`
	SoldAt     *time.Time      `json:"soldAt" bson:"soldAt,omitempty"`
	DelistedAt *time.Time      `json:"delistedAt" bson:"delistedAt,omitempty"`
}

type FindAllOptions struct {
	TokenId *domain.TokenId
	Seller  *domain.Address
	Sold    *bool
	Active  *bool
	SortDir *domain.SortDir
	Offset  *int32
	Limit   *int32
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithTokenId(tokenId domain.TokenId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.TokenId = &tokenId
		return nil
	}
}

func WithSeller(seller domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		lowered := seller.ToLower()
		options.Seller = &lowered
		return nil
	}
}

func WithSold(sold bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Sold = &sold
		return nil
	}
}

func WithActive(active bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Active = &active
		return nil
	}
}

func WithSortDir(dir domain.SortDir) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SortDir = &dir
		return nil
	}
}

func WithPagination(offset, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

// Repo stores listings. FindAll is ordered by itemId ascending unless a
// sort direction option says otherwise.
type Repo interface {
	NextId(ctx ctx.Ctx) (domain.ItemId, error)
	Create(ctx ctx.Ctx, listing *Listing) error
	FindOne(ctx ctx.Ctx, itemId domain.ItemId) (*Listing, error)
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	Count(ctx ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	Patch(ctx ctx.Ctx, itemId domain.ItemId, patchable PatchableListing) error
}

// MarketUsecase is the market ledger over the token registry: the four
// state transitions plus the three filtered views.
type MarketUsecase interface {
	List(ctx ctx.Ctx, seller domain.Address, tokenId domain.TokenId, price, paidFee decimal.Decimal) (*Listing, error)
	Delist(ctx ctx.Ctx, seller domain.Address, itemId domain.ItemId) error
	Buy(ctx ctx.Ctx, buyer domain.Address, itemId domain.ItemId, paidAmount decimal.Decimal) (*Listing, error)

	FetchMarketItems(ctx ctx.Ctx) ([]*Listing, error)
	FetchMyNFTs(ctx ctx.Ctx, owner domain.Address) ([]*token.Token, error)
	FetchMyListings(ctx ctx.Ctx, seller domain.Address) ([]*Listing, error)

	ListingFee(ctx ctx.Ctx) decimal.Decimal
}
