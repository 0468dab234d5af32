package loader

import (
	"io"
	"net/http"
	"testing"

	"github.com/gohugoio/httpcache"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	c := newMemoryCache()

	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Set("k", []byte("v1"))
	b, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), b)

	c.Set("k", []byte("v2"))
	b, _ = c.Get("k")
	assert.Equal(t, []byte("v2"), b)

	c.Delete("k")
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestCacheTransportMarksCachedResponses(t *testing.T) {
	// given
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder("GET", sheetURL, func(req *http.Request) (*http.Response, error) {
		resp := httpmock.NewStringResponse(http.StatusOK, "h\nAlice,$1\n")
		resp.Header.Set("Cache-Control", "max-age=300")
		return resp, nil
	})
	client := &http.Client{Transport: newCacheTransport(mt)}

	get := func() *http.Response {
		resp, err := client.Get(sheetURL)
		require.NoError(t, err)
		defer resp.Body.Close()
		_, err = io.ReadAll(resp.Body) // the entry is stored once the body is consumed
		require.NoError(t, err)
		return resp
	}

	// when
	first := get()
	second := get()

	// then
	assert.Empty(t, first.Header.Get(httpcache.XFromCache))
	assert.Equal(t, "1", second.Header.Get(httpcache.XFromCache))
	assert.Equal(t, 1, mt.GetTotalCallCount())
}
