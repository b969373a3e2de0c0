package viewer

import (
	"RecoViewer/entity"
	"context"
)

type Core interface {
	ViewerState(sessionID string) entity.ViewerState
	FetchRecommendations(ctx context.Context, sessionID, groupID string) ([]entity.ProductRecord, error)
	EnrichProducts(ctx context.Context, sessionID, apiKey string) ([]entity.ProductRecord, error)
	Flash(sessionID string, level entity.FlashLevel, message string)
	DescribeError(err error) (entity.FlashLevel, string)
	ImageURL(p entity.ProductRecord) string
	ProductURL(p entity.ProductRecord) string
}
