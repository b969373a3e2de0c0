package recommendation

import (
	"RecoViewer/entity"
	"context"
)

type Core interface {
	FetchRecommendations(ctx context.Context, sessionID, groupID string) ([]entity.ProductRecord, error)
	Summary(sessionID string) entity.ProductsSummary
	ProductsPage(sessionID string, page int) (*entity.ProductsPage, error)
	DescribeError(err error) (entity.FlashLevel, string)
}
