package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rsandx/oasis-nft-port/base/ctx"
	"github.com/rsandx/oasis-nft-port/domain"
	"github.com/rsandx/oasis-nft-port/domain/token"
)

var (
	mockCtx = ctx.Background()
	user1   = domain.Address("0xce4468e7ce84aceb74363f4ea64e5a038176f369")
	user2   = domain.Address("0xdf8650b0ca1260f7a2f4fdff9082aede554f65ad")
)

func mustMint(t *testing.T, repo token.Repo, owner domain.Address, uri string) *token.Token {
	t.Helper()
	req := require.New(t)

	id, err := repo.NextId(mockCtx)
	req.NoError(err)

	now := time.Now()
	tok := &token.Token{
		TokenId:   id,
		Owner:     owner,
		Minter:    owner,
		TokenUri:  uri,
		CreatedAt: now,
		UpdatedAt: now,
	}
	req.NoError(repo.Create(mockCtx, tok))
	return tok
}

func TestNextIdMonotonic(t *testing.T) {
	req := require.New(t)
	repo := NewTokenRepoInMemory()

	prev := domain.TokenId(0)
	for i := 0; i < 5; i++ {
		id, err := repo.NextId(mockCtx)
		req.NoError(err)
		req.Greater(uint64(id), uint64(prev))
		prev = id
	}
}

func TestFindOne(t *testing.T) {
	req := require.New(t)
	repo := NewTokenRepoInMemory()

	minted := mustMint(t, repo, user1, "ipfs://token/1")

	found, err := repo.FindOne(mockCtx, minted.TokenId)
	req.NoError(err)
	req.Equal(minted.TokenId, found.TokenId)
	req.Equal(user1, found.Owner)
	req.Equal("ipfs://token/1", found.TokenUri)

	_, err = repo.FindOne(mockCtx, domain.TokenId(999))
	req.Equal(domain.ErrNotFound, err)
}

func TestFindAllByOwner(t *testing.T) {
	req := require.New(t)
	repo := NewTokenRepoInMemory()

	mustMint(t, repo, user1, "ipfs://token/1")
	mustMint(t, repo, user2, "ipfs://token/2")
	mustMint(t, repo, user1, "ipfs://token/3")

	res, err := repo.FindAll(mockCtx, token.WithOwner(user1))
	req.NoError(err)
	req.Len(res, 2)
	// ascending tokenId
	req.Less(uint64(res[0].TokenId), uint64(res[1].TokenId))

	all, err := repo.FindAll(mockCtx)
	req.NoError(err)
	req.Len(all, 3)
}

func TestPatchOwner(t *testing.T) {
	req := require.New(t)
	repo := NewTokenRepoInMemory()

	minted := mustMint(t, repo, user1, "ipfs://token/1")

	req.NoError(repo.Patch(mockCtx, minted.TokenId, token.PatchableToken{Owner: &user2}))

	found, err := repo.FindOne(mockCtx, minted.TokenId)
	req.NoError(err)
	req.Equal(user2, found.Owner)

	err = repo.Patch(mockCtx, domain.TokenId(999), token.PatchableToken{Owner: &user2})
	req.Equal(domain.ErrNotFound, err)
}
