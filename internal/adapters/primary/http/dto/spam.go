package dto

import (
	"encoding/json"
	"fmt"

	"spam-detection-service/internal/core/domain"
)

// PredictRequest documents the /predict body. Decoding goes through
// DecodePredictRequest so that absent or non-string fields become "".
type PredictRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type PredictResponse struct {
	Spam bool `json:"spam"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// MsgPredictionFailed is the only message a 500 response carries.
const MsgPredictionFailed = "Failed to get spam prediction"

// DecodePredictRequest parses a /predict body. The body must be a JSON object;
// anything else is domain.ErrMalformedRequest.
func DecodePredictRequest(raw []byte) (domain.Email, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.Email{}, fmt.Errorf("%w: %w", domain.ErrMalformedRequest, err)
	}
	if fields == nil {
		return domain.Email{}, fmt.Errorf("%w: body is not a JSON object", domain.ErrMalformedRequest)
	}

	return domain.Email{
		Subject: stringField(fields, "subject"),
		Body:    stringField(fields, "body"),
	}, nil
}

func stringField(fields map[string]interface{}, key string) string {
	s, _ := fields[key].(string)
	return s
}

func ToPredictResponse(result *domain.PredictionResult) PredictResponse {
	return PredictResponse{Spam: result.Spam}
}
