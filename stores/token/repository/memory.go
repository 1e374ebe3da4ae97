package repository

import (
	"sort"
	"sync"

	"github.com/rsandx/oasis-nft-port/base/counter"
	"github.com/rsandx/oasis-nft-port/base/ctx"
	"github.com/rsandx/oasis-nft-port/domain"
	"github.com/rsandx/oasis-nft-port/domain/token"
)

// memoryRepo keeps the registry in process memory. It is the authoritative
// backend for the strictly transactional execution model: every operation
// runs under the mutex and either fully commits or not at all.
type memoryRepo struct {
	mu     sync.RWMutex
	ids    *counter.Counter
	tokens map[domain.TokenId]token.Token
}

func NewTokenRepoInMemory() token.Repo {
	return &memoryRepo{
		ids:    counter.NewCounter(),
		tokens: map[domain.TokenId]token.Token{},
	}
}

func (im *memoryRepo) NextId(context ctx.Ctx) (domain.TokenId, error) {
	return domain.TokenId(im.ids.Next()), nil
}

func (im *memoryRepo) Create(context ctx.Ctx, t *token.Token) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	if _, ok := im.tokens[t.TokenId]; ok {
		return domain.ErrBadParamInput
	}

	stored := *t
	stored.Owner = stored.Owner.ToLower()
	stored.Minter = stored.Minter.ToLower()
	im.tokens[stored.TokenId] = stored
	return nil
}

func (im *memoryRepo) FindOne(context ctx.Ctx, tokenId domain.TokenId) (*token.Token, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	t, ok := im.tokens[tokenId]
	if !ok {
		return nil, domain.ErrNotFound
	}
	res := t
	return &res, nil
}

func (im *memoryRepo) FindAll(context ctx.Ctx, opts ...token.FindAllOptionsFunc) ([]*token.Token, error) {
	options, err := token.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	im.mu.RLock()
	res := []*token.Token{}
	for _, t := range im.tokens {
		if options.Owner != nil && !t.Owner.Equals(*options.Owner) {
			continue
		}
		cp := t
		res = append(res, &cp)
	}
	im.mu.RUnlock()

	desc := options.SortDir != nil && *options.SortDir == domain.SortDirDesc
	sort.Slice(res, func(i, j int) bool {
		if desc {
			return res[i].TokenId > res[j].TokenId
		}
		return res[i].TokenId < res[j].TokenId
	})

	if options.Offset != nil && options.Limit != nil {
		res = paginate(res, int(*options.Offset), int(*options.Limit))
	}

	return res, nil
}

func (im *memoryRepo) Patch(context ctx.Ctx, tokenId domain.TokenId, patchable token.PatchableToken) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	t, ok := im.tokens[tokenId]
	if !ok {
		return domain.ErrNotFound
	}

	if patchable.Owner != nil {
		t.Owner = patchable.Owner.ToLower()
	}
	if patchable.UpdatedAt != nil {
		t.UpdatedAt = *patchable.UpdatedAt
	}

	im.tokens[tokenId] = t
	return nil
}

func paginate(tokens []*token.Token, offset, limit int) []*token.Token {
	if offset >= len(tokens) {
		return []*token.Token{}
	}
	end := offset + limit
	if limit <= 0 || end > len(tokens) {
		end = len(tokens)
	}
	return tokens[offset:end]
}
