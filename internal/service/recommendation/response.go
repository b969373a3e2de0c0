package recommendation

import (
	"RecoViewer/entity"
	"encoding/json"
)

func ParseResponse(body []byte) (*entity.RecommendationResponse, error) {
	var response entity.RecommendationResponse
	err := json.Unmarshal(body, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}
