package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/rsandx/oasis-nft-port/base/ctx"
	"github.com/rsandx/oasis-nft-port/base/database/mongoclient"
	"github.com/rsandx/oasis-nft-port/base/log"
	"github.com/rsandx/oasis-nft-port/domain"
	"github.com/rsandx/oasis-nft-port/domain/listing"
	"github.com/rsandx/oasis-nft-port/service/query"
)

const itemIdCounter = "itemId"

type listingRepoImpl struct {
	q query.Mongo
}

func NewListingRepo(q query.Mongo) listing.Repo {
	return &listingRepoImpl{q}
}

func (im *listingRepoImpl) makeQuery(opts ...listing.FindAllOptionsFunc) (bson.M, error) {
	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	qry := bson.M{}

	if options.TokenId != nil {
		qry["tokenId"] = *options.TokenId
	}

	if options.Seller != nil {
		qry["seller"] = *options.Seller
	}

	if options.Sold != nil {
		qry["sold"] = *options.Sold
	}

	if options.Active != nil {
		qry["active"] = *options.Active
	}

	return qry, nil
}

func (im *listingRepoImpl) NextId(ctx ctx.Ctx) (domain.ItemId, error) {
	seq, err := im.q.Inc(ctx, domain.TableCounters, itemIdCounter, 1)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err}).Error("failed to q.Inc")
		return 0, err
	}
	return domain.ItemId(seq), nil
}

func (im *listingRepoImpl) Create(ctx ctx.Ctx, l *listing.Listing) error {
	stored := *l
	stored.Seller = stored.Seller.ToLower()
	stored.Holder = stored.Holder.ToLower()

	if err := im.q.Insert(ctx, domain.TableListings, &stored); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"itemId": l.ItemId,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *listingRepoImpl) FindOne(ctx ctx.Ctx, itemId domain.ItemId) (*listing.Listing, error) {
	res := listing.Listing{}
	err := im.q.FindOne(ctx, domain.TableListings, bson.M{"itemId": itemId}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"itemId": itemId,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *listingRepoImpl) FindAll(ctx ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	options, err := listing.GetFindAllOptions(opts...)
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

	sort := "itemId"
	if options.SortDir != nil && *options.SortDir == domain.SortDirDesc {
		sort = "-itemId"
	}

	res := []*listing.Listing{}
	if err := im.q.Search(ctx, domain.TableListings, offset, limit, sort, qry, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}
	return res, nil
}

func (im *listingRepoImpl) Count(ctx ctx.Ctx, opts ...listing.FindAllOptionsFunc) (int, error) {
	qry, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err}).Error("im.makeQuery")
		return 0, err
	}

	cnt, err := im.q.Count(ctx, domain.TableListings, qry)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Count")
		return 0, err
	}
	return cnt, nil
}

func (im *listingRepoImpl) Patch(ctx ctx.Ctx, itemId domain.ItemId, patchable listing.PatchableListing) error {
	if patchable.Holder != nil {
		lowered := patchable.Holder.ToLower()
		patchable.Holder = &lowered
	}

	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"patchable": patchable,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Patch(ctx, domain.TableListings, bson.M{"itemId": itemId}, updater)
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"itemId": itemId,
		}).Error("failed to q.Patch")
		return err
	}
	return nil
}
