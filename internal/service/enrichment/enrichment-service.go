package enrichment

import (
	"RecoViewer/entity"
	"RecoViewer/internal/config"
	"RecoViewer/internal/lib/sl"
	"RecoViewer/internal/metrics"
	"context"
	"errors"
	"fmt"
	"github.com/sashabaranov/go-openai"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultMaxTokens = 150
)

var (
	ErrMissingCredential = errors.New("openai api key is required")
	ErrNoProducts        = errors.New("no products to enrich")
	ErrEnrichment        = errors.New("enrichment failed")
)

type Service struct {
	defaultKey string
	baseURL    string
	model      string
	maxTokens  int
	httpClient *http.Client
	log        *slog.Logger
}

func NewEnrichmentService(conf *config.Config, logger *slog.Logger) *Service {
	maxTokens := conf.OpenAI.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	model := conf.OpenAI.Model
	if model == "" {
		model = openai.GPT3Dot5TurboInstruct
	}
	return &Service{
		defaultKey: conf.OpenAI.ApiKey,
		baseURL:    conf.OpenAI.BaseURL,
		model:      model,
		maxTokens:  maxTokens,
		httpClient: &http.Client{Timeout: conf.OpenAI.Timeout},
		log:        logger.With(sl.Module("enrichment service")),
	}
}

func (s *Service) newClient(apiKey string) *openai.Client {
	clientConfig := openai.DefaultConfig(apiKey)
	if s.baseURL != "" {
		clientConfig.BaseURL = s.baseURL
	}
	clientConfig.HTTPClient = s.httpClient
	return openai.NewClientWithConfig(clientConfig)
}

// Enrich annotates every product in order, one completion call each. The
// input slice is never modified. The batch is all-or-nothing: the first
// failure discards whatever was already annotated.
func (s *Service) Enrich(ctx context.Context, products []entity.ProductRecord, apiKey string, progress entity.EnrichProgress) ([]entity.ProductRecord, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		apiKey = s.defaultKey
	}
	if apiKey == "" {
		return nil, ErrMissingCredential
	}
	if len(products) == 0 {
		return nil, ErrNoProducts
	}

	client := s.newClient(apiKey)
	log := s.log.With(sl.Secret("api_key", apiKey), slog.String("model", s.model))

	enriched := make([]entity.ProductRecord, 0, len(products))
	for i, product := range products {
		text, err := s.complete(ctx, client, BuildPrompt(product))
		if err != nil {
			log.With(
				slog.String("sku", product.ID),
				slog.Int("index", i),
				slog.Int("total", len(products)),
				sl.Err(err),
			).Warn("enrich product")
			return nil, fmt.Errorf("%w: product %s: %v", ErrEnrichment, product.ID, err)
		}

		enriched = append(enriched, product.WithAnnotation(text))
		if progress != nil {
			progress(i+1, len(products), enriched[i])
		}
	}

	log.With(
		slog.Int("size", len(enriched)),
	).Debug("enriched products")

	return enriched, nil
}

func (s *Service) complete(ctx context.Context, client *openai.Client, prompt string) (string, error) {
	start := time.Now()
	resp, err := client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:     s.model,
		Prompt:    prompt,
		MaxTokens: s.maxTokens,
	})
	if err != nil {
		metrics.ObserveUpstream(metrics.ServiceCompletion, metrics.OutcomeError, start)
		return "", fmt.Errorf("error creating completion: %v", err)
	}

	if len(resp.Choices) == 0 {
		metrics.ObserveUpstream(metrics.ServiceCompletion, metrics.OutcomeEmpty, start)
		return "", fmt.Errorf("no completion choices returned")
	}
	metrics.ObserveUpstream(metrics.ServiceCompletion, metrics.OutcomeOk, start)

	return strings.TrimSpace(resp.Choices[0].Text), nil
}
