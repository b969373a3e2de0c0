package entity

import (
	"RecoViewer/internal/lib/pagination"
	"encoding/json"
)

type FlashLevel string

const (
	FlashInfo    FlashLevel = "info"
	FlashWarning FlashLevel = "warning"
	FlashError   FlashLevel = "error"
)

// Flash is a one-shot message shown on the next page render.
type Flash struct {
	Level   FlashLevel `json:"level"`
	Message string     `json:"message"`
}

// RequestDebug is what was sent upstream, for the "Show Request Details" panel.
type RequestDebug struct {
	Headers map[string]string     `json:"headers"`
	Payload RecommendationRequest `json:"payload"`
}

// FetchResult keeps the outgoing payload and the raw reply next to the parsed
// products so the viewer can show both for debugging.
type FetchResult struct {
	Request     RequestDebug    `json:"request"`
	RawResponse json.RawMessage `json:"raw_response,omitempty"`
	Products    []ProductRecord `json:"products"`
}

// EnrichProgress is called after each product has been annotated.
type EnrichProgress func(done, total int, product ProductRecord)

type ViewerState struct {
	GroupID     string
	Products    []ProductRecord
	Pages       []pagination.Page[ProductRecord]
	Enriched    bool
	Request     *RequestDebug
	RawResponse json.RawMessage
	Flash       *Flash
}
