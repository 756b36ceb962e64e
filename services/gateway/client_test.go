package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"marquee/models"
	"marquee/services/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPageDecodesItems(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"m1","title":"The Movie","mediaType":"movie","rating":8.1}]`))
	}))
	defer srv.Close()

	c := gateway.NewClient(srv.URL)
	items, err := c.FetchPage(context.Background(), models.MediaTypeMovie, 2)
	require.NoError(t, err)

	assert.Equal(t, "/movies", gotPath)
	assert.Equal(t, "page=2", gotQuery)
	require.Len(t, items, 1)
	assert.Equal(t, "m1", items[0].ID)
	assert.Equal(t, models.MediaTypeMovie, items[0].MediaType)
}

func TestFetchPageSeriesPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := gateway.NewClient(srv.URL)
	items, err := c.FetchPage(context.Background(), models.MediaTypeSeries, 1)
	require.NoError(t, err)
	assert.Equal(t, "/series", gotPath)
	assert.Empty(t, items)
}

func TestFetchPageStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := gateway.NewClient(srv.URL)
	_, err := c.FetchPage(context.Background(), models.MediaTypeMovie, 1)
	require.Error(t, err)

	var netErr *gateway.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusBadGateway, netErr.Status)
}

func TestFetchPageIsSingleAttempt(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := gateway.NewClient(srv.URL)
	_, err := c.FetchPage(context.Background(), models.MediaTypeMovie, 1)
	require.Error(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "page fetches must not retry")
}

func TestFetchPageDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := gateway.NewClient(srv.URL)
	_, err := c.FetchPage(context.Background(), models.MediaTypeMovie, 1)
	require.Error(t, err)
	assert.True(t, gateway.IsNetworkError(err))
}

func TestFetchCategoriesRetriesTransientFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[{"id":"c1","name":"Action"}]`))
	}))
	defer srv.Close()

	c := gateway.NewClient(srv.URL)
	categories, err := c.FetchCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Action", categories[0].Name)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestFetchCategoriesGivesUpEventually(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := gateway.NewClient(srv.URL)
	_, err := c.FetchCategories(context.Background())
	require.Error(t, err)
	assert.True(t, gateway.IsNetworkError(err))
}
