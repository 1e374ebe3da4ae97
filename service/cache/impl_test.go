package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rsandx/oasis-nft-port/base/ctx"
)

func TestSetGetDel(t *testing.T) {
	req := require.New(t)
	mockCtx := ctx.Background()

	c := New(1024 * 1024)

	_, err := c.Get(mockCtx, "missing")
	req.Equal(ErrNotFound, err)

	req.NoError(c.Set(mockCtx, "k", []byte("v"), time.Minute))

	val, err := c.Get(mockCtx, "k")
	req.NoError(err)
	req.Equal([]byte("v"), val)

	req.NoError(c.Del(mockCtx, "k"))

	_, err = c.Get(mockCtx, "k")
	req.Equal(ErrNotFound, err)
}
