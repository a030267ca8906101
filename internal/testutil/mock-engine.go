package testutil

import (
	"context"
	"strings"

	"github.com/stretchr/testify/mock"

	"spam-detection-service/internal/core/domain"
)

// MockInferenceEngine is a mock of ports.InferenceEngine.
type MockInferenceEngine struct {
	mock.Mock
}

func (m *MockInferenceEngine) Transform(ctx context.Context, texts []string) ([]domain.FeatureVector, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeatureVector), args.Error(1)
}

func (m *MockInferenceEngine) Predict(ctx context.Context, vectors []domain.FeatureVector) ([]domain.Label, error) {
	args := m.Called(ctx, vectors)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Label), args.Error(1)
}

// KeywordEngine is a deterministic stand-in for a trained model: a text is
// labelled 1 when it contains any of the keywords, 0 otherwise.
type KeywordEngine struct {
	Keywords []string
}

func (e *KeywordEngine) Transform(_ context.Context, texts []string) ([]domain.FeatureVector, error) {
	vectors := make([]domain.FeatureVector, 0, len(texts))
	for _, text := range texts {
		v := domain.FeatureVector{Dim: len(e.Keywords)}
		for i, kw := range e.Keywords {
			if strings.Contains(strings.ToLower(text), strings.ToLower(kw)) {
				v.Indices = append(v.Indices, i)
				v.Values = append(v.Values, 1)
			}
		}
		vectors = append(vectors, v)
	}
	return vectors, nil
}

func (e *KeywordEngine) Predict(_ context.Context, vectors []domain.FeatureVector) ([]domain.Label, error) {
	labels := make([]domain.Label, 0, len(vectors))
	for _, v := range vectors {
		if len(v.Indices) > 0 {
			labels = append(labels, domain.Label{Value: float64(1)})
		} else {
			labels = append(labels, domain.Label{Value: float64(0)})
		}
	}
	return labels, nil
}
