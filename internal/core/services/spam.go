package services

import (
	"context"
	"fmt"

	"spam-detection-service/internal/core/domain"
	"spam-detection-service/internal/core/ports/output"
)

type SpamService struct {
	engine ports.InferenceEngine
}

func NewSpamService(engine ports.InferenceEngine) *SpamService {
	return &SpamService{engine: engine}
}

// Classify runs one email through the inference engine. It returns
// domain.ErrEmptyEmail when there is nothing to classify and wraps
// domain.ErrInference around any engine failure, including a panic.
func (s *SpamService) Classify(ctx context.Context, email domain.Email) (result *domain.PredictionResult, err error) {
	text := email.CombinedText()
	if text == "" {
		return nil, domain.ErrEmptyEmail
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: engine panic: %v", domain.ErrInference, r)
		}
	}()

	vectors, err := s.engine.Transform(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("%w: transform: %w", domain.ErrInference, err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("%w: transform returned %d vectors for 1 text", domain.ErrInference, len(vectors))
	}

	labels, err := s.engine.Predict(ctx, vectors)
	if err != nil {
		return nil, fmt.Errorf("%w: predict: %w", domain.ErrInference, err)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: predict returned no label", domain.ErrInference)
	}

	return &domain.PredictionResult{Spam: labels[0].Bool()}, nil
}
