package ports

import (
	"context"

	"spam-detection-service/internal/core/domain"
)

// InferenceEngine is the pre-trained text model the service classifies with.
// Implementations must be safe for concurrent use and must not mutate state per call.
type InferenceEngine interface {
	// Transform turns each text into a feature vector, one per input.
	Transform(ctx context.Context, texts []string) ([]domain.FeatureVector, error)
	// Predict returns one raw class label per feature vector.
	Predict(ctx context.Context, vectors []domain.FeatureVector) ([]domain.Label, error)
}
