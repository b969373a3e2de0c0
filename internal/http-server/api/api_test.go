package api

import (
	"RecoViewer/entity"
	"RecoViewer/impl/core"
	"RecoViewer/internal/config"
	"RecoViewer/internal/service/enrichment"
	"RecoViewer/internal/service/recommendation"
	"RecoViewer/internal/session"
	"RecoViewer/internal/ws"
	"context"
	"encoding/json"
	"fmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"
)

type stubRecommendations struct {
	products []entity.ProductRecord
	err      error
}

func (s *stubRecommendations) Fetch(_ context.Context, groupID string) (*entity.FetchResult, error) {
	result := &entity.FetchResult{
		Request: entity.RequestDebug{
			Headers: map[string]string{"Content-Type": "application/json"},
			Payload: entity.NewRecommendationRequest(groupID, "PIP"),
		},
		RawResponse: json.RawMessage(`{"placements":[]}`),
		Products:    s.products,
	}
	return result, s.err
}

type stubEnricher struct{}

func (stubEnricher) Enrich(_ context.Context, products []entity.ProductRecord, apiKey string, _ entity.EnrichProgress) ([]entity.ProductRecord, error) {
	if apiKey == "" {
		return nil, enrichment.ErrMissingCredential
	}
	if len(products) == 0 {
		return nil, enrichment.ErrNoProducts
	}
	if apiKey == "sk-quota" {
		return nil, fmt.Errorf("%w: product %s: quota exceeded", enrichment.ErrEnrichment, products[0].ID)
	}
	enriched := make([]entity.ProductRecord, len(products))
	for i, p := range products {
		enriched[i] = p.WithAnnotation("notes for " + p.ID)
	}
	return enriched, nil
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func testProducts(n int) []entity.ProductRecord {
	products := make([]entity.ProductRecord, n)
	for i := range products {
		products[i] = entity.ProductRecord{
			ID:    fmt.Sprintf("sku-%d", i),
			Name:  fmt.Sprintf("Nightstand %d", i),
			Image: fmt.Sprintf("img/%d.jpg", i),
		}
	}
	return products
}

// errorCounter counts Error records, which is what the Telegram alert
// handler forwards.
type errorCounter struct {
	mu     *sync.Mutex
	errors *int
}

func (h errorCounter) Enabled(context.Context, slog.Level) bool { return true }

func (h errorCounter) Handle(_ context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		h.mu.Lock()
		*h.errors++
		h.mu.Unlock()
	}
	return nil
}

func (h errorCounter) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h errorCounter) WithGroup(string) slog.Handler      { return h }

func (h errorCounter) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return *h.errors
}

func newTestServer(t *testing.T, rs *stubRecommendations) (*httptest.Server, *http.Client) {
	return newTestServerWithLog(t, rs, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestServerWithLog(t *testing.T, rs *stubRecommendations, log *slog.Logger) (*httptest.Server, *http.Client) {
	t.Helper()

	conf := &config.Config{}
	conf.Session.CookieName = "reco_session"
	conf.Viewer.DefaultGroup = "PB:cayman-wood-nightstand"

	handler := core.New(session.NewStore(time.Hour, log), log)
	handler.SetRecommendationService(rs)
	handler.SetEnrichmentService(stubEnricher{})
	handler.SetLinkBases("https://img.example/", "https://shop.example/")

	hub := ws.NewHub(log)
	go hub.Run()
	handler.SetEventPublisher(hub)

	srv := httptest.NewServer(NewRouter(conf, log, handler, hub))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	return srv, client
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func TestViewer_RendersDefaultGroup(t *testing.T) {
	srv, client := newTestServer(t, &stubRecommendations{})

	resp, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `value="PB:cayman-wood-nightstand"`)
	assert.Contains(t, string(body), "Get Recommendations")

	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == "reco_session" {
			found = true
		}
	}
	assert.True(t, found, "session cookie issued")
}

func TestViewer_FetchThenRender(t *testing.T) {
	srv, client := newTestServer(t, &stubRecommendations{products: testProducts(7)})

	resp, err := client.PostForm(srv.URL+"/recommendations", url.Values{"group_list": {"PB:lamp"}})
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	page := string(body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, page, "Loaded 7 recommended products.")
	assert.Contains(t, page, "Page 1")
	assert.Contains(t, page, "Page 2")
	assert.NotContains(t, page, "Page 3")
	assert.Contains(t, page, "https://img.example/img/6.jpg")
	assert.Contains(t, page, `value="PB:lamp"`)
	assert.Contains(t, page, "Show Request Details")

	// the flash is shown once
	resp, err = client.Get(srv.URL + "/")
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.NotContains(t, string(body), "Loaded 7 recommended products.")
}

func TestViewer_EnrichWithoutProducts(t *testing.T) {
	srv, client := newTestServer(t, &stubRecommendations{})

	resp, err := client.PostForm(srv.URL+"/enrich", url.Values{"api_key": {"sk-test"}})
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Contains(t, string(body), `class="flash error"`)
}

func TestApi_FetchAndPage(t *testing.T) {
	srv, client := newTestServer(t, &stubRecommendations{products: testProducts(8)})

	resp, err := client.Post(srv.URL+"/api/v1/recommendations", "application/json",
		strings.NewReader(`{"group_list":"PB:cayman-wood-nightstand"}`))
	require.NoError(t, err)
	env := decode(t, resp)
	require.Equal(t, "Ok", env.Status, env.Error)

	var summary entity.ProductsSummary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 8, summary.Total)
	assert.Equal(t, 2, summary.TotalPages)
	assert.False(t, summary.Enriched)

	resp, err = client.Get(srv.URL + "/api/v1/products?page=2")
	require.NoError(t, err)
	env = decode(t, resp)
	require.Equal(t, "Ok", env.Status, env.Error)

	var page entity.ProductsPage
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "sku-6", page.Products[0].ID)

	resp, err = client.Get(srv.URL + "/api/v1/products?page=3")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestApi_FetchRequiresGroup(t *testing.T) {
	srv, client := newTestServer(t, &stubRecommendations{})

	resp, err := client.Post(srv.URL+"/api/v1/recommendations", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := decode(t, resp)
	assert.Equal(t, "Error", env.Status)
}

func TestApi_EmptyResultIsWarning(t *testing.T) {
	srv, client := newTestServer(t, &stubRecommendations{err: recommendation.ErrNoProducts})

	resp, err := client.Post(srv.URL+"/api/v1/recommendations", "application/json",
		strings.NewReader(`{"group_list":"PB:none"}`))
	require.NoError(t, err)
	env := decode(t, resp)
	assert.Equal(t, "Warning", env.Status)
	assert.Equal(t, "No products found in the response.", env.Error)
}

func TestApi_Enrich(t *testing.T) {
	srv, client := newTestServer(t, &stubRecommendations{products: testProducts(3)})

	resp, err := client.Post(srv.URL+"/api/v1/recommendations", "application/json",
		strings.NewReader(`{"group_list":"PB:cayman-wood-nightstand"}`))
	require.NoError(t, err)
	_ = decode(t, resp)

	resp, err = client.Post(srv.URL+"/api/v1/enrich", "application/json", strings.NewReader(`{"api_key":"sk-test"}`))
	require.NoError(t, err)
	env := decode(t, resp)
	require.Equal(t, "Ok", env.Status, env.Error)

	var summary entity.ProductsSummary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.True(t, summary.Enriched)
	require.Len(t, summary.Products, 3)
	assert.Equal(t, "notes for sku-0", summary.Products[0].Annotation())
}

func TestApi_EnrichFailureLoggedAsErrorOnce(t *testing.T) {
	counter := errorCounter{mu: &sync.Mutex{}, errors: new(int)}
	srv, client := newTestServerWithLog(t, &stubRecommendations{products: testProducts(2)}, slog.New(counter))

	resp, err := client.Post(srv.URL+"/api/v1/recommendations", "application/json",
		strings.NewReader(`{"group_list":"PB:cayman-wood-nightstand"}`))
	require.NoError(t, err)
	_ = decode(t, resp)
	require.Zero(t, counter.count())

	resp, err = client.Post(srv.URL+"/api/v1/enrich", "application/json", strings.NewReader(`{"api_key":"sk-quota"}`))
	require.NoError(t, err)
	env := decode(t, resp)
	assert.Equal(t, "Error", env.Status)
	assert.Contains(t, env.Error, "Error enriching product data")

	assert.Equal(t, 1, counter.count())
}

func TestApi_NotFound(t *testing.T) {
	srv, client := newTestServer(t, &stubRecommendations{})

	resp, err := client.Get(srv.URL + "/nope")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	env := decode(t, resp)
	assert.Equal(t, "Error", env.Status)
}

func TestMetrics_Exposed(t *testing.T) {
	srv, client := newTestServer(t, &stubRecommendations{})

	resp, err := client.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
