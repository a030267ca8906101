package sklearn

import (
	"context"
	"fmt"

	"spam-detection-service/internal/core/domain"
)

// Engine pairs a vectorizer with the classifier fitted on its output and
// implements ports.InferenceEngine. It holds no mutable state, so one Engine
// is shared by every request.
type Engine struct {
	vectorizer *Vectorizer
	classifier *Classifier
}

// Info summarises the loaded artifacts.
type Info struct {
	VectorizerType string        `json:"vectorizer_type"`
	VocabularySize int           `json:"vocabulary_size"`
	NgramRange     [2]int        `json:"ngram_range"`
	UseIDF         bool          `json:"use_idf"`
	Norm           string        `json:"norm"`
	ClassifierType string        `json:"classifier_type"`
	Classes        []interface{} `json:"classes"`
}

func NewEngine(vectorizer *Vectorizer, classifier *Classifier) (*Engine, error) {
	if vectorizer.Dim() != classifier.NumFeatures() {
		return nil, fmt.Errorf("%w: vectorizer produces %d features, classifier expects %d",
			domain.ErrArtifactIncompatible, vectorizer.Dim(), classifier.NumFeatures())
	}
	return &Engine{vectorizer: vectorizer, classifier: classifier}, nil
}

func (e *Engine) Transform(_ context.Context, texts []string) ([]domain.FeatureVector, error) {
	vectors := make([]domain.FeatureVector, 0, len(texts))
	for _, text := range texts {
		vectors = append(vectors, e.vectorizer.Transform(text))
	}
	return vectors, nil
}

func (e *Engine) Predict(_ context.Context, vectors []domain.FeatureVector) ([]domain.Label, error) {
	labels := make([]domain.Label, 0, len(vectors))
	for i, v := range vectors {
		label, err := e.classifier.Predict(v)
		if err != nil {
			return nil, fmt.Errorf("vector %d: %w", i, err)
		}
		labels = append(labels, label)
	}
	return labels, nil
}

func (e *Engine) Info() Info {
	return Info{
		VectorizerType: e.vectorizer.kind,
		VocabularySize: e.vectorizer.Dim(),
		NgramRange:     [2]int{e.vectorizer.ngramMin, e.vectorizer.ngramMax},
		UseIDF:         e.vectorizer.idf != nil,
		Norm:           e.vectorizer.norm,
		ClassifierType: e.classifier.kind,
		Classes:        e.classifier.classes,
	}
}
