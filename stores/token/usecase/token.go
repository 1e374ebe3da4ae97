package usecase

import (
	"time"

	"github.com/rsandx/oasis-nft-port/base/ctx"
	"github.com/rsandx/oasis-nft-port/base/log"
	"github.com/rsandx/oasis-nft-port/domain"
	"github.com/rsandx/oasis-nft-port/domain/token"
)

type impl struct {
	repo token.Repo
}

func New(repo token.Repo) token.Usecase {
	return &impl{repo}
}

func (im *impl) Mint(ctx ctx.Ctx, minter domain.Address, tokenUri string) (*token.Token, error) {
	if minter.IsEmpty() {
		return nil, domain.ErrBadParamInput
	}

	tokenId, err := im.repo.NextId(ctx)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err}).Error("repo.NextId failed")
		return nil, err
	}

	now := time.Now()
	t := &token.Token{
		TokenId:   tokenId,
		Owner:     minter.ToLower(),
		Minter:    minter.ToLower(),
		TokenUri:  tokenUri,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := im.repo.Create(ctx, t); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
		}).Error("repo.Create failed")
		return nil, err
	}

	ctx.WithFields(log.Fields{
		"tokenId": tokenId,
		"minter":  t.Minter,
	}).Info("token minted")

	return t, nil
}

func (im *impl) Transfer(ctx ctx.Ctx, tokenId domain.TokenId, from, to domain.Address) error {
	t, err := im.repo.FindOne(ctx, tokenId)
	if err == domain.ErrNotFound {
		return domain.ErrUnknownToken
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
		}).Error("repo.FindOne failed")
		return err
	}

	if !t.Owner.Equals(from) {
		return domain.ErrNotOwner
	}

	now := time.Now()
	owner := to.ToLower()
	err = im.repo.Patch(ctx, tokenId, token.PatchableToken{
		Owner:     &owner,
		UpdatedAt: &now,
	})
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
			"from":    from,
			"to":      to,
		}).Error("repo.Patch failed")
		return err
	}

	return nil
}

func (im *impl) OwnerOf(ctx ctx.Ctx, tokenId domain.TokenId) (domain.Address, error) {
	t, err := im.repo.FindOne(ctx, tokenId)
	if err == domain.ErrNotFound {
		return "", domain.ErrUnknownToken
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
		}).Error("repo.FindOne failed")
		return "", err
	}
	return t.Owner, nil
}

func (im *impl) TokenURI(ctx ctx.Ctx, tokenId domain.TokenId) (string, error) {
	t, err := im.repo.FindOne(ctx, tokenId)
	if err == domain.ErrNotFound {
		return "", domain.ErrUnknownToken
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
		}).Error("repo.FindOne failed")
		return "", err
	}
	return t.TokenUri, nil
}

func (im *impl) FindAll(ctx ctx.Ctx, opts ...token.FindAllOptionsFunc) ([]*token.Token, error) {
	return im.repo.FindAll(ctx, opts...)
}
