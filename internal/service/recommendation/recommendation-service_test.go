package recommendation

import (
	"RecoViewer/entity"
	"RecoViewer/internal/config"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	conf := &config.Config{}
	conf.Recommendation.Endpoint = server.URL + "/svc/recommendation/v2/PB-USA/pages/"
	conf.Recommendation.PageID = "PIP"
	conf.Recommendation.UserAgent = "test-agent"
	conf.Recommendation.AcceptLanguage = "en-US,en;q=0.9"

	return NewRecommendationService(conf, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestService_Fetch_Success(t *testing.T) {
	var captured entity.RecommendationRequest
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, acceptHeader, r.Header.Get("Accept"))
		assert.Equal(t, "en-US,en;q=0.9", r.Header.Get("Accept-Language"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_, _ = w.Write([]byte(`{"placements":[{"products":[
			{"id":"p1","name":"One","image":"1.jpg"},
			{"id":"p2","name":"Two","image":"2.jpg","priceSet":{"lowSellingPrice":10,"highSellingPrice":20}},
			{"id":"p3","name":"Three","image":"3.jpg"}
		]}]}`))
	})

	result, err := svc.Fetch(context.Background(), "  PB:cayman-wood-nightstand ")
	require.NoError(t, err)

	assert.Equal(t, []string{"PB:cayman-wood-nightstand"}, captured.GroupList)
	assert.Equal(t, "desktop", captured.Device)
	assert.Equal(t, "55347", captured.Zip)

	require.Len(t, result.Products, 3)
	assert.Equal(t, "p1", result.Products[0].ID)
	assert.Equal(t, "$10 - $20", result.Products[1].FormatPriceRange())
	assert.NotEmpty(t, result.RawResponse)
	assert.Equal(t, captured, result.Request.Payload)
	assert.Equal(t, "test-agent", result.Request.Headers["User-Agent"])
}

func TestService_Fetch_NoProducts(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty placements", body: `{"placements":[]}`},
		{name: "missing placements", body: `{"other":1}`},
		{name: "missing products", body: `{"placements":[{"name":"similar"}]}`},
		{name: "empty products", body: `{"placements":[{"products":[]}]}`},
		{name: "only invalid products", body: `{"placements":[{"products":[{"image":"x.jpg"}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			result, err := svc.Fetch(context.Background(), "PB:x")
			assert.ErrorIs(t, err, ErrNoProducts)
			require.NotNil(t, result)
			assert.Empty(t, result.Products)
			assert.JSONEq(t, tt.body, string(result.RawResponse))
		})
	}
}

func TestService_Fetch_SkipsProductsWithoutIdOrName(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"placements":[{"products":[
			{"id":"p1","name":"One"},
			{"id":"p2"},
			{"name":"Nameless"},
			{"id":"p4","name":"Four"}
		]}]}`))
	})

	result, err := svc.Fetch(context.Background(), "PB:x")
	require.NoError(t, err)
	require.Len(t, result.Products, 2)
	assert.Equal(t, "p1", result.Products[0].ID)
	assert.Equal(t, "p4", result.Products[1].ID)
}

func TestService_Fetch_TransportFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"placements": [`))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, tt.handler)

			result, err := svc.Fetch(context.Background(), "PB:x")
			assert.ErrorIs(t, err, ErrTransport)
			assert.NotErrorIs(t, err, ErrNoProducts)
			require.NotNil(t, result)
			assert.Empty(t, result.Products)
		})
	}
}

func TestService_Fetch_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	conf := &config.Config{}
	conf.Recommendation.Endpoint = endpoint
	svc := NewRecommendationService(conf, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := svc.Fetch(context.Background(), "PB:x")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestService_Fetch_EmptyGroupSkipsNetwork(t *testing.T) {
	var calls int32
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	result, err := svc.Fetch(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyGroup)
	assert.Nil(t, result)
	assert.Zero(t, atomic.LoadInt32(&calls))
}
