package query

import (
	"errors"

	"github.com/rsandx/oasis-nft-port/base/ctx"
	"github.com/rsandx/oasis-nft-port/domain"
)

var (
	// ErrNotFound will throw if the requested document does not exist
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateKey will throw on unique index violation
	ErrDuplicateKey = errors.New("duplicate key")
)

// Mongo is the table-level query surface the repositories talk to.
type Mongo interface {
	Insert(ctx ctx.Ctx, table domain.Table, insert interface{}) error
	FindOne(ctx ctx.Ctx, table domain.Table, query, result interface{}) error
	Search(ctx ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error
	Count(ctx ctx.Ctx, table domain.Table, selector interface{}) (int, error)
	Patch(ctx ctx.Ctx, table domain.Table, selector, update interface{}) error
	Upsert(ctx ctx.Ctx, table domain.Table, selector, update interface{}) error
	Remove(ctx ctx.Ctx, table domain.Table, selector interface{}) error
	// Inc atomically increments the named counter and returns the new value.
	Inc(ctx ctx.Ctx, table domain.Table, name string, delta int64) (int64, error)
}
