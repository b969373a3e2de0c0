package recommendation

import (
	"RecoViewer/entity"
	"RecoViewer/internal/config"
	"RecoViewer/internal/lib/sl"
	"RecoViewer/internal/metrics"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	acceptHeader = "application/json, text/plain, */*"
)

var (
	ErrEmptyGroup = errors.New("group identifier is empty")
	ErrTransport  = errors.New("transport failure")
	ErrNoProducts = errors.New("no products found in the response")
)

type Service struct {
	endpoint       string
	pageID         string
	userAgent      string
	acceptLanguage string
	client         *http.Client
	validate       *validator.Validate
	log            *slog.Logger
}

func NewRecommendationService(conf *config.Config, logger *slog.Logger) *Service {
	return &Service{
		endpoint:       conf.Recommendation.Endpoint,
		pageID:         conf.Recommendation.PageID,
		userAgent:      conf.Recommendation.UserAgent,
		acceptLanguage: conf.Recommendation.AcceptLanguage,
		client:         &http.Client{Timeout: conf.Recommendation.Timeout},
		validate:       validator.New(),
		log:            logger.With(sl.Module("recommendation service")),
	}
}

func (s *Service) headers() map[string]string {
	return map[string]string{
		"Content-Type":    "application/json",
		"Accept":          acceptHeader,
		"Accept-Language": s.acceptLanguage,
		"User-Agent":      s.userAgent,
	}
}

// Fetch asks the recommendation API for products related to groupID. The
// result is non-nil whenever a request was built, including on ErrNoProducts
// and transport failures.
func (s *Service) Fetch(ctx context.Context, groupID string) (*entity.FetchResult, error) {
	groupID = strings.TrimSpace(groupID)
	if groupID == "" {
		return nil, ErrEmptyGroup
	}

	result := &entity.FetchResult{
		Request: entity.RequestDebug{
			Headers: s.headers(),
			Payload: entity.NewRecommendationRequest(groupID, s.pageID),
		},
	}

	start := time.Now()
	body, err := s.post(ctx, result.Request.Payload)
	if err != nil {
		metrics.ObserveUpstream(metrics.ServiceRecommendation, metrics.OutcomeError, start)
		return result, err
	}
	result.RawResponse = body

	products, err := s.parseProducts(body)
	if err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, ErrNoProducts) {
			outcome = metrics.OutcomeEmpty
		}
		metrics.ObserveUpstream(metrics.ServiceRecommendation, outcome, start)
		return result, err
	}
	metrics.ObserveUpstream(metrics.ServiceRecommendation, metrics.OutcomeOk, start)
	metrics.ProductsFetched.Add(float64(len(products)))

	result.Products = products

	s.log.With(
		slog.String("group", groupID),
		slog.Int("size", len(products)),
	).Debug("fetched recommendations")

	return result, nil
}

func (s *Service) post(ctx context.Context, payload entity.RecommendationRequest) (json.RawMessage, error) {
	requestBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrTransport, err)
	}

	for key, value := range s.headers() {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send request: %v", ErrTransport, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: request failed with status: %d", ErrTransport, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrTransport, err)
	}

	return body, nil
}

func (s *Service) parseProducts(body []byte) ([]entity.ProductRecord, error) {
	response, err := ParseResponse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", ErrTransport, err)
	}

	if len(response.Placements) == 0 || len(response.Placements[0].Products) == 0 {
		return nil, ErrNoProducts
	}

	products := make([]entity.ProductRecord, 0, len(response.Placements[0].Products))
	for i, p := range response.Placements[0].Products {
		if err = s.validate.Struct(p); err != nil {
			s.log.With(
				slog.Int("index", i),
				slog.String("sku", p.ID),
				sl.Err(err),
			).Warn("skipping product without id or name")
			continue
		}
		products = append(products, p)
	}

	if len(products) == 0 {
		return nil, ErrNoProducts
	}

	return products, nil
}
