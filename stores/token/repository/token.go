package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/rsandx/oasis-nft-port/base/ctx"
	"github.com/rsandx/oasis-nft-port/base/database/mongoclient"
	"github.com/rsandx/oasis-nft-port/base/log"
	"github.com/rsandx/oasis-nft-port/domain"
	"github.com/rsandx/oasis-nft-port/domain/token"
	"github.com/rsandx/oasis-nft-port/service/query"
)

const tokenIdCounter = "tokenId"

type tokenRepoImpl struct {
	q query.Mongo
}

func NewTokenRepo(q query.Mongo) token.Repo {
	return &tokenRepoImpl{q}
}

func (im *tokenRepoImpl) makeQuery(opts ...token.FindAllOptionsFunc) (bson.M, error) {
	options, err := token.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	qry := bson.M{}

	if options.Owner != nil {
		qry["owner"] = *options.Owner
	}

	return qry, nil
}

func (im *tokenRepoImpl) NextId(ctx ctx.Ctx) (domain.TokenId, error) {
	seq, err := im.q.Inc(ctx, domain.TableCounters, tokenIdCounter, 1)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err}).Error("failed to q.Inc")
		return 0, err
	}
	return domain.TokenId(seq), nil
}

func (im *tokenRepoImpl) Create(ctx ctx.Ctx, t *token.Token) error {
	stored := *t
	stored.Owner = stored.Owner.ToLower()
	stored.Minter = stored.Minter.ToLower()

	if err := im.q.Insert(ctx, domain.TableTokens, &stored); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": t.TokenId,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *tokenRepoImpl) FindOne(ctx ctx.Ctx, tokenId domain.TokenId) (*token.Token, error) {
	res := token.Token{}
	err := im.q.FindOne(ctx, domain.TableTokens, bson.M{"tokenId": tokenId}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *tokenRepoImpl) FindAll(ctx ctx.Ctx, opts ...token.FindAllOptionsFunc) ([]*token.Token, error) {
	options, err := token.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	qry, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err}).Error("im.makeQuery")
		return nil, err
	}

	offset, limit := 0, 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	sort := "tokenId"
	if options.SortDir != nil && *options.SortDir == domain.SortDirDesc {
		sort = "-tokenId"
	}

	res := []*token.Token{}
	if err := im.q.Search(ctx, domain.TableTokens, offset, limit, sort, qry, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}
	return res, nil
}

func (im *tokenRepoImpl) Patch(ctx ctx.Ctx, tokenId domain.TokenId, patchable token.PatchableToken) error {
	if patchable.Owner != nil {
		lowered := patchable.Owner.ToLower()
		patchable.Owner = &lowered
	}

	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"patchable": patchable,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Patch(ctx, domain.TableTokens, bson.M{"tokenId": tokenId}, updater)
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
		}).Error("failed to q.Patch")
		return err
	}
	return nil
}
