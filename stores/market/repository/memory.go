package repository

import (
	"sort"
	"sync"

	"github.com/rsandx/oasis-nft-port/base/counter"
	"github.com/rsandx/oasis-nft-port/base/ctx"
	"github.com/rsandx/oasis-nft-port/domain"
	"github.com/rsandx/oasis-nft-port/domain/listing"
)

type memoryRepo struct {
	mu       sync.RWMutex
	ids      *counter.Counter
	listings map[domain.ItemId]listing.Listing
}

func NewListingRepoInMemory() listing.Repo {
	return &memoryRepo{
		ids:      counter.NewCounter(),
		listings: map[domain.ItemId]listing.Listing{},
	}
}

func (im *memoryRepo) NextId(context ctx.Ctx) (domain.ItemId, error) {
	return domain.ItemId(im.ids.Next()), nil
}

func (im *memoryRepo) Create(context ctx.Ctx, l *listing.Listing) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	if _, ok := im.listings[l.ItemId]; ok {
		return domain.ErrBadParamInput
	}

	stored := *l
	stored.Seller = stored.Seller.ToLower()
	stored.Holder = stored.Holder.ToLower()
	im.listings[stored.ItemId] = stored
	return nil
}

func (im *memoryRepo) FindOne(context ctx.Ctx, itemId domain.ItemId) (*listing.Listing, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	l, ok := im.listings[itemId]
	if !ok {
		return nil, domain.ErrNotFound
	}
	res := l
	return &res, nil
}

func (im *memoryRepo) match(l *listing.Listing, options *listing.FindAllOptions) bool {
	if options.TokenId != nil && l.TokenId != *options.TokenId {
		return false
	}
	if options.Seller != nil && !l.Seller.Equals(*options.Seller) {
		return false
	}
	if options.Sold != nil && l.Sold != *options.Sold {
		return false
	}
	if options.Active != nil && l.Active != *options.Active {
		return false
	}
	return true
}

func (im *memoryRepo) findAll(options *listing.FindAllOptions) []*listing.Listing {
	im.mu.RLock()
	res := []*listing.Listing{}
	for _, l := range im.listings {
		cp := l
		if im.match(&cp, options) {
			res = append(res, &cp)
		}
	}
	im.mu.RUnlock()

	desc := options.SortDir != nil && *options.SortDir == domain.SortDirDesc
	sort.Slice(res, func(i, j int) bool {
		if desc {
			return res[i].ItemId > res[j].ItemId
		}
		return res[i].ItemId < res[j].ItemId
	})
	return res
}

func (im *memoryRepo) FindAll(context ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	res := im.findAll(&options)

	if options.Offset != nil && options.Limit != nil {
		offset, limit := int(*options.Offset), int(*options.Limit)
		if offset >= len(res) {
			return []*listing.Listing{}, nil
		}
		end := offset + limit
		if limit <= 0 || end > len(res) {
			end = len(res)
		}
		res = res[offset:end]
	}

	return res, nil
}

func (im *memoryRepo) Count(context ctx.Ctx, opts ...listing.FindAllOptionsFunc) (int, error) {
	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		return 0, err
	}
	return len(im.findAll(&options)), nil
}

func (im *memoryRepo) Patch(context ctx.Ctx, itemId domain.ItemId, patchable listing.PatchableListing) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	l, ok := im.listings[itemId]
	if !ok {
		return domain.ErrNotFound
	}

	if patchable.Holder != nil {
		l.Holder = patchable.Holder.ToLower()
	}
	if patchable.Sold != nil {
		l.Sold = *patchable.Sold
	}
	if patchable.Active != nil {
		l.Active = *patchable.Active
	}
	if patchable.SoldAt != nil {
		l.SoldAt = patchable.SoldAt
	}
	if patchable.DelistedAt != nil {
		l.DelistedAt = patchable.DelistedAt
	}

	im.listings[itemId] = l
	return nil
}
