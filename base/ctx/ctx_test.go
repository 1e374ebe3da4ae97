package ctx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithValue(t *testing.T) {
	req := require.New(t)

	parent := Background()
	child := WithValue(parent, "itemId", 42)

	req.Equal(42, child.Value("itemId"))
	req.Nil(parent.Value("itemId"))
}

func TestWithValues(t *testing.T) {
	req := require.New(t)

	c := WithValues(Background(), map[string]interface{}{
		"tokenId": 1,
		"seller":  "0xabc",
	})

	req.Equal(1, c.Value("tokenId"))
	req.Equal("0xabc", c.Value("seller"))
}

func TestWithCancel(t *testing.T) {
	req := require.New(t)

	c, cancel := WithCancel(Background())
	cancel()

	select {
	case <-c.Done():
	default:
		req.Fail("context should be cancelled")
	}
}
