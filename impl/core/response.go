package core

import (
	"RecoViewer/entity"
	"RecoViewer/internal/service/enrichment"
	"RecoViewer/internal/service/recommendation"
	"errors"
	"fmt"
)

const (
	msgNoProducts       = "No products found in the response."
	msgEmptyGroup       = "Please enter a groupList."
	msgMissingKey       = "Please provide your OpenAI API key to enrich product data."
	msgNothingToEnrich  = "No products to enrich. Get recommendations first."
	msgPageOutOfRange   = "Requested page does not exist."
	msgSuperseded       = "A newer request replaced this one; showing its results."
	fmtFetchFailed      = "Error fetching data from API: %v"
	fmtEnrichFailed     = "Error enriching product data: %v"
	fmtUnexpectedFailed = "Unexpected error: %v"
)

// Describe turns an action error into the message shown to the user and its
// severity. An empty result is a warning, everything else an error.
func Describe(err error) (entity.FlashLevel, string) {
	switch {
	case err == nil:
		return entity.FlashInfo, ""
	case errors.Is(err, recommendation.ErrNoProducts):
		return entity.FlashWarning, msgNoProducts
	case errors.Is(err, recommendation.ErrEmptyGroup):
		return entity.FlashError, msgEmptyGroup
	case errors.Is(err, recommendation.ErrTransport):
		return entity.FlashError, fmt.Sprintf(fmtFetchFailed, err)
	case errors.Is(err, enrichment.ErrMissingCredential):
		return entity.FlashError, msgMissingKey
	case errors.Is(err, enrichment.ErrNoProducts):
		return entity.FlashError, msgNothingToEnrich
	case errors.Is(err, enrichment.ErrEnrichment):
		return entity.FlashError, fmt.Sprintf(fmtEnrichFailed, err)
	case errors.Is(err, ErrPageOutOfRange):
		return entity.FlashError, msgPageOutOfRange
	case errors.Is(err, ErrSuperseded):
		return entity.FlashWarning, msgSuperseded
	default:
		return entity.FlashError, fmt.Sprintf(fmtUnexpectedFailed, err)
	}
}

func (c *Core) DescribeError(err error) (entity.FlashLevel, string) {
	return Describe(err)
}
