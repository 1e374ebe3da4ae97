package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rsandx/oasis-nft-port/base/ctx"
	"github.com/rsandx/oasis-nft-port/base/ptr"
	"github.com/rsandx/oasis-nft-port/domain"
	"github.com/rsandx/oasis-nft-port/domain/listing"
)

var (
	mockCtx     = ctx.Background()
	seller1     = domain.Address("0xce4468e7ce84aceb74363f4ea64e5a038176f369")
	seller2     = domain.Address("0xdf8650b0ca1260f7a2f4fdff9082aede554f65ad")
	marketplace = domain.Address("0x1a01ecd2263a9d5b5967667e508ea22db478bc4b")
)

func create(t *testing.T, repo listing.Repo, tokenId domain.TokenId, seller domain.Address) *listing.Listing {
	t.Helper()
	req := require.New(t)

	id, err := repo.NextId(mockCtx)
	req.NoError(err)

	l := &listing.Listing{
		ItemId:   id,
		TokenId:  tokenId,
		Seller:   seller,
		Holder:   marketplace,
		Price:    "1",
		Active:   true,
		ListedAt: time.Now(),
	}
	req.NoError(repo.Create(mockCtx, l))
	return l
}

func TestFindAllFilters(t *testing.T) {
	req := require.New(t)
	repo := NewListingRepoInMemory()

	l1 := create(t, repo, domain.TokenId(1), seller1)
	l2 := create(t, repo, domain.TokenId(2), seller2)
	l3 := create(t, repo, domain.TokenId(3), seller1)

	// mark l3 sold
	req.NoError(repo.Patch(mockCtx, l3.ItemId, listing.PatchableListing{
		Sold:   ptr.Bool(true),
		Active: ptr.Bool(false),
	}))

	open, err := repo.FindAll(mockCtx, listing.WithActive(true), listing.WithSold(false))
	req.NoError(err)
	req.Len(open, 2)
	req.Equal(l1.ItemId, open[0].ItemId)
	req.Equal(l2.ItemId, open[1].ItemId)

	bySeller, err := repo.FindAll(mockCtx, listing.WithSeller(seller1), listing.WithActive(true))
	req.NoError(err)
	req.Len(bySeller, 1)
	req.Equal(l1.ItemId, bySeller[0].ItemId)

	byToken, err := repo.FindAll(mockCtx, listing.WithTokenId(domain.TokenId(2)))
	req.NoError(err)
	req.Len(byToken, 1)
	req.Equal(l2.ItemId, byToken[0].ItemId)
}

func TestCount(t *testing.T) {
	req := require.New(t)
	repo := NewListingRepoInMemory()

	l1 := create(t, repo, domain.TokenId(1), seller1)
	create(t, repo, domain.TokenId(2), seller1)

	cnt, err := repo.Count(mockCtx, listing.WithTokenId(domain.TokenId(1)), listing.WithActive(true))
	req.NoError(err)
	req.Equal(1, cnt)

	req.NoError(repo.Patch(mockCtx, l1.ItemId, listing.PatchableListing{Active: ptr.Bool(false)}))

	cnt, err = repo.Count(mockCtx, listing.WithTokenId(domain.TokenId(1)), listing.WithActive(true))
	req.NoError(err)
	req.Equal(0, cnt)
}

func TestFindOne(t *testing.T) {
	req := require.New(t)
	repo := NewListingRepoInMemory()

	l1 := create(t, repo, domain.TokenId(1), seller1)

	found, err := repo.FindOne(mockCtx, l1.ItemId)
	req.NoError(err)
	req.Equal(l1.TokenId, found.TokenId)
	req.True(found.Active)

	_, err = repo.FindOne(mockCtx, domain.ItemId(404))
	req.Equal(domain.ErrNotFound, err)
}

func TestPatchHolder(t *testing.T) {
	req := require.New(t)
	repo := NewListingRepoInMemory()

	l1 := create(t, repo, domain.TokenId(1), seller1)

	now := time.Now()
	req.NoError(repo.Patch(mockCtx, l1.ItemId, listing.PatchableListing{
		Holder: &seller2,
		Sold:   ptr.Bool(true),
		Active: ptr.Bool(false),
		SoldAt: &now,
	}))

	found, err := repo.FindOne(mockCtx, l1.ItemId)
	req.NoError(err)
	req.Equal(seller2, found.Holder)
	req.True(found.Sold)
	req.False(found.Active)
	req.NotNil(found.SoldAt)
}
