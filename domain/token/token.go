package token

import (
	"time"

	"github.com/rsandx/oasis-nft-port/base/ctx"
	"github.com/rsandx/oasis-nft-port/domain"
)

// Token is a minted asset record. TokenUri is fixed at mint time and the
// portal never dereferences it.
type Token struct {
	TokenId   domain.TokenId `json:"tokenId" bson:"tokenId"`
	Owner     domain.Address `json:"owner" bson:"owner"`
	Minter    domain.Address `json:"minter" bson:"minter"`
	TokenUri  string         `json:"tokenUri" bson:"tokenURI"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

type PatchableToken struct {
	Owner     *domain.Address `json:"owner" bson:"owner,omitempty"`
	UpdatedAt *time.Time      `json:"updatedAt" bson:"updatedAt,omitempty"`
}

type FindAllOptions struct {
	Owner   *domain.Address
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

func WithOwner(owner domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		lowered := owner.ToLower()
		options.Owner = &lowered
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

// Repo stores tokens. Implementations must keep FindAll ordered by tokenId
// ascending unless told otherwise.
type Repo interface {
	NextId(ctx ctx.Ctx) (domain.TokenId, error)
	Create(ctx ctx.Ctx, token *Token) error
	FindOne(ctx ctx.Ctx, tokenId domain.TokenId) (*Token, error)
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Token, error)
	Patch(ctx ctx.Ctx, tokenId domain.TokenId, patchable PatchableToken) error
}

// Usecase is the token registry: minting plus unconditional ownership
// transfer, with point lookups for owner and token uri.
type Usecase interface {
	Mint(ctx ctx.Ctx, minter domain.Address, tokenUri string) (*Token, error)
	Transfer(ctx ctx.Ctx, tokenId domain.TokenId, from, to domain.Address) error
	OwnerOf(ctx ctx.Ctx, tokenId domain.TokenId) (domain.Address, error)
	TokenURI(ctx ctx.Ctx, tokenId domain.TokenId) (string, error)
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Token, error)
}
