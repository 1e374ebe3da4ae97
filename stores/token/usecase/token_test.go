package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/rsandx/oasis-nft-port/base/ctx"
	"github.com/rsandx/oasis-nft-port/domain"
	"github.com/rsandx/oasis-nft-port/domain/token"
	"github.com/rsandx/oasis-nft-port/stores/token/repository"
)

var (
	mockCtx = ctx.Background()
	user1   = domain.Address("0xce4468e7ce84aceb74363f4ea64e5a038176f369")
	user2   = domain.Address("0xdf8650b0ca1260f7a2f4fdff9082aede554f65ad")
)

type tokenSuite struct {
	suite.Suite
	im token.Usecase
}

func (s *tokenSuite) SetupTest() {
	s.im = New(repository.NewTokenRepoInMemory())
}

func TestTokenSuite(t *testing.T) {
	suite.Run(t, new(tokenSuite))
}

func (s *tokenSuite) TestMintAssignsIncreasingIds() {
	first, err := s.im.Mint(mockCtx, user1, "https://www.mytokenlocation.com")
	s.Require().NoError(err)
	s.Require().Equal(domain.TokenId(1), first.TokenId)

	second, err := s.im.Mint(mockCtx, user1, "https://www.mytokenlocation2.com")
	s.Require().NoError(err)
	s.Require().Equal(domain.TokenId(2), second.TokenId)

	s.Require().Equal(user1, first.Owner)
	s.Require().Equal(user1, first.Minter)
}

func (s *tokenSuite) TestMintRejectsEmptyMinter() {
	_, err := s.im.Mint(mockCtx, "", "https://www.mytokenlocation.com")
	s.Require().Equal(domain.ErrBadParamInput, err)
}

func (s *tokenSuite) TestTransfer() {
	minted, err := s.im.Mint(mockCtx, user1, "https://www.mytokenlocation.com")
	s.Require().NoError(err)

	s.Require().NoError(s.im.Transfer(mockCtx, minted.TokenId, user1, user2))

	owner, err := s.im.OwnerOf(mockCtx, minted.TokenId)
	s.Require().NoError(err)
	s.Require().Equal(user2, owner)
}

func (s *tokenSuite) TestTransferNotOwner() {
	minted, err := s.im.Mint(mockCtx, user1, "https://www.mytokenlocation.com")
	s.Require().NoError(err)

	err = s.im.Transfer(mockCtx, minted.TokenId, user2, user1)
	s.Require().Equal(domain.ErrNotOwner, err)

	// ownership unchanged after the rejection
	owner, err := s.im.OwnerOf(mockCtx, minted.TokenId)
	s.Require().NoError(err)
	s.Require().Equal(user1, owner)
}

func (s *tokenSuite) TestTransferUnknownToken() {
	err := s.im.Transfer(mockCtx, domain.TokenId(42), user1, user2)
	s.Require().Equal(domain.ErrUnknownToken, err)
}

func (s *tokenSuite) TestTokenURI() {
	minted, err := s.im.Mint(mockCtx, user1, "https://www.mytokenlocation.com")
	s.Require().NoError(err)

	uri, err := s.im.TokenURI(mockCtx, minted.TokenId)
	s.Require().NoError(err)
	s.Require().Equal("https://www.mytokenlocation.com", uri)

	_, err = s.im.TokenURI(mockCtx, domain.TokenId(42))
	s.Require().Equal(domain.ErrUnknownToken, err)
}

func (s *tokenSuite) TestOwnerOfUnknownToken() {
	_, err := s.im.OwnerOf(mockCtx, domain.TokenId(42))
	s.Require().Equal(domain.ErrUnknownToken, err)
}

func TestFindAllByOwner(t *testing.T) {
	req := require.New(t)
	im := New(repository.NewTokenRepoInMemory())

	_, err := im.Mint(mockCtx, user1, "uri-1")
	req.NoError(err)
	_, err = im.Mint(mockCtx, user2, "uri-2")
	req.NoError(err)
	_, err = im.Mint(mockCtx, user1, "uri-3")
	req.NoError(err)

	res, err := im.FindAll(mockCtx, token.WithOwner(user1))
	req.NoError(err)
	req.Len(res, 2)
	req.Equal(domain.TokenId(1), res[0].TokenId)
	req.Equal(domain.TokenId(3), res[1].TokenId)
}
