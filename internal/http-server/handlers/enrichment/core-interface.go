package enrichment

import (
	"RecoViewer/entity"
	"context"
)

type Core interface {
	EnrichProducts(ctx context.Context, sessionID, apiKey string) ([]entity.ProductRecord, error)
	DescribeError(err error) (entity.FlashLevel, string)
}
