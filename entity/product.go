package entity

import (
	"encoding/json"
	"fmt"
)

const AnnotationField = "enrichedAnnotation"

type PriceSet struct {
	LowSellingPrice  Value `json:"lowSellingPrice"`
	HighSellingPrice Value `json:"highSellingPrice"`
}

// ProductRecord is one recommended item. Records are treated as immutable
// once decoded; WithAnnotation hands back a copy.
type ProductRecord struct {
	ID            string    `json:"id" validate:"required"`
	Name          string    `json:"name" validate:"required"`
	Image         string    `json:"image"`
	Description   Value     `json:"description"`
	SuperCategory Value     `json:"superCategory"`
	Url           Value     `json:"url"`
	Available     Value     `json:"available"`
	Rating        Value     `json:"rating"`
	PriceSet      *PriceSet `json:"priceSet,omitempty"`

	EnrichedAnnotation *string `json:"enrichedAnnotation,omitempty"`

	raw json.RawMessage
}

type productAlias ProductRecord

func (p *ProductRecord) UnmarshalJSON(data []byte) error {
	var alias productAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*p = ProductRecord(alias)
	p.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (p ProductRecord) PriceRange() (low, high Value) {
	if p.PriceSet == nil {
		return Value{}, Value{}
	}
	return p.PriceSet.LowSellingPrice, p.PriceSet.HighSellingPrice
}

// FormatPriceRange renders "$<low> - $<high>" with N/A for a missing bound.
func (p ProductRecord) FormatPriceRange() string {
	low, high := p.PriceRange()
	return fmt.Sprintf("$%s - $%s", low.Or(Placeholder), high.Or(Placeholder))
}

func (p ProductRecord) HasAnnotation() bool {
	return p.EnrichedAnnotation != nil
}

func (p ProductRecord) Annotation() string {
	if p.EnrichedAnnotation == nil {
		return ""
	}
	return *p.EnrichedAnnotation
}

func (p ProductRecord) WithAnnotation(text string) ProductRecord {
	enriched := p
	enriched.EnrichedAnnotation = &text
	return enriched
}

// Fields returns every upstream field of the product plus the annotation when
// present, for the full field dump of the detail panel.
func (p ProductRecord) Fields() map[string]json.RawMessage {
	fields := make(map[string]json.RawMessage)
	if len(p.raw) > 0 {
		_ = json.Unmarshal(p.raw, &fields)
	} else {
		data, _ := json.Marshal(productAlias(p))
		_ = json.Unmarshal(data, &fields)
	}
	if p.EnrichedAnnotation != nil {
		annotation, _ := json.Marshal(*p.EnrichedAnnotation)
		fields[AnnotationField] = annotation
	}
	return fields
}

func (p ProductRecord) FieldDump() string {
	data, err := json.MarshalIndent(p.Fields(), "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

type Placement struct {
	Products []ProductRecord `json:"products"`
}

type RecommendationResponse struct {
	Placements []Placement `json:"placements"`
}
