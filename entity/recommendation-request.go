package entity

const (
	DefaultDevice  = "desktop"
	DefaultVariant = "Default"
	DefaultZip     = "55347"
	DefaultPageID  = "PIP"
)

type RecommendationRequest struct {
	GroupList       []string `json:"groupList"`
	RviCacheInvalid bool     `json:"rviCacheInvalid"`
	RviList         []string `json:"rviList"`
	CartList        []string `json:"cartList"`
	Device          string   `json:"device"`
	PageID          string   `json:"pageId"`
	PurchasedList   []string `json:"purchasedList"`
	RegistryList    []string `json:"registryList"`
	SearchList      []string `json:"searchList"`
	Segment         string   `json:"segment"`
	SflList         []string `json:"sflList"`
	SuppressList    []string `json:"suppressList"`
	Variant         string   `json:"variant"`
	Zip             string   `json:"zip"`
}

// NewRecommendationRequest builds the fixed-shape query for one anchor group.
// List fields are non-nil so they encode as [] rather than null.
func NewRecommendationRequest(groupID, pageID string) RecommendationRequest {
	if pageID == "" {
		pageID = DefaultPageID
	}
	return RecommendationRequest{
		GroupList:     []string{groupID},
		RviList:       []string{},
		CartList:      []string{},
		Device:        DefaultDevice,
		PageID:        pageID,
		PurchasedList: []string{},
		RegistryList:  []string{},
		SearchList:    []string{},
		SflList:       []string{},
		SuppressList:  []string{},
		Variant:       DefaultVariant,
		Zip:           DefaultZip,
	}
}
