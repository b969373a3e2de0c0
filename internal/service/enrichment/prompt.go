package enrichment

import (
	"RecoViewer/entity"
	"fmt"
)

const promptTemplate = `You are an interior stylist helping a customer put together a calm, inviting bedroom.
Using the product details below, write a short styling note: how the piece fits into a bedroom, what it pairs well with, and the kind of room it suits best.

Product name: %s
Description: %s
Category: %s
Price range: %s

Styling note:`

// BuildPrompt embeds the product's name, description, category and price range
// in the bedroom styling template.
func BuildPrompt(p entity.ProductRecord) string {
	return fmt.Sprintf(promptTemplate,
		p.Name,
		p.Description.Or(entity.Placeholder),
		p.SuperCategory.Or(entity.Placeholder),
		p.FormatPriceRange(),
	)
}
