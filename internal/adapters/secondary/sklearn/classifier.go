package sklearn

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"spam-detection-service/internal/core/domain"
)

// decisionModel scores one feature vector and returns the index of the winning class.
type decisionModel interface {
	decide(x domain.FeatureVector) int
	numFeatures() int
}

// Classifier maps feature vectors to class labels. Immutable after parsing.
type Classifier struct {
	kind    string
	classes []interface{}
	model   decisionModel
}

// ParseClassifier decodes and validates a classifier export.
func ParseClassifier(r io.Reader) (*Classifier, error) {
	var a classifierArtifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: decode classifier: %w", domain.ErrArtifactInvalid, err)
	}
	c, err := newClassifier(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrArtifactInvalid, err)
	}
	return c, nil
}

func newClassifier(a classifierArtifact) (*Classifier, error) {
	if len(a.Classes) < 2 {
		return nil, fmt.Errorf("classifier needs at least 2 classes, got %d", len(a.Classes))
	}

	var (
		model decisionModel
		err   error
	)
	switch a.Type {
	case TypeLogisticRegression, TypeLinearSVC, TypeSGDClassifier, TypeRidgeClassifier, TypePassiveAggressiveClassifier:
		model, err = newLinearModel(a.Coef, a.Intercept, len(a.Classes))
	case TypeMultinomialNB:
		model, err = newNaiveBayes(a.ClassLogPrior, a.FeatureLogProb, len(a.Classes), false)
	case TypeComplementNB:
		model, err = newNaiveBayes(a.ClassLogPrior, a.FeatureLogProb, len(a.Classes), true)
	default:
		return nil, fmt.Errorf("unsupported classifier type %q", a.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.Type, err)
	}

	return &Classifier{kind: a.Type, classes: a.Classes, model: model}, nil
}

// NumFeatures is the feature width the classifier was fitted on.
func (c *Classifier) NumFeatures() int {
	return c.model.numFeatures()
}

func (c *Classifier) Predict(x domain.FeatureVector) (domain.Label, error) {
	if x.Dim != c.NumFeatures() {
		return domain.Label{}, fmt.Errorf("%w: got %d features, classifier expects %d", domain.ErrDimensionMismatch, x.Dim, c.NumFeatures())
	}
	return domain.Label{Value: c.classes[c.model.decide(x)]}, nil
}

// linearModel covers every scikit-learn classifier with a linear decision
// function. Binary models store a single coefficient row for classes[1].
type linearModel struct {
	coef      [][]float64
	intercept []float64
}

func newLinearModel(coef [][]float64, intercept []float64, nClasses int) (*linearModel, error) {
	rows := nClasses
	if nClasses == 2 {
		rows = 1
	}
	if len(coef) != rows {
		return nil, fmt.Errorf("coef has %d rows, want %d for %d classes", len(coef), rows, nClasses)
	}
	if len(intercept) != rows {
		return nil, fmt.Errorf("intercept has %d values, want %d", len(intercept), rows)
	}
	if err := checkRectangular(coef); err != nil {
		return nil, fmt.Errorf("coef: %w", err)
	}
	return &linearModel{coef: coef, intercept: intercept}, nil
}

func (m *linearModel) numFeatures() int {
	return len(m.coef[0])
}

func (m *linearModel) decide(x domain.FeatureVector) int {
	if len(m.coef) == 1 {
		if x.Dot(m.coef[0])+m.intercept[0] > 0 {
			return 1
		}
		return 0
	}

	best, bestScore := 0, x.Dot(m.coef[0])+m.intercept[0]
	for k := 1; k < len(m.coef); k++ {
		if score := x.Dot(m.coef[k]) + m.intercept[k]; score > bestScore {
			best, bestScore = k, score
		}
	}
	return best
}

// naiveBayes scores classes by joint log likelihood. ComplementNB scores
// without the class prior.
type naiveBayes struct {
	classLogPrior  []float64
	featureLogProb [][]float64
	complement     bool
}

func newNaiveBayes(classLogPrior []float64, featureLogProb [][]float64, nClasses int, complement bool) (*naiveBayes, error) {
	if len(featureLogProb) != nClasses {
		return nil, fmt.Errorf("feature_log_prob has %d rows, want %d", len(featureLogProb), nClasses)
	}
	if !complement && len(classLogPrior) != nClasses {
		return nil, fmt.Errorf("class_log_prior has %d values, want %d", len(classLogPrior), nClasses)
	}
	if err := checkRectangular(featureLogProb); err != nil {
		return nil, fmt.Errorf("feature_log_prob: %w", err)
	}
	return &naiveBayes{classLogPrior: classLogPrior, featureLogProb: featureLogProb, complement: complement}, nil
}

func (m *naiveBayes) numFeatures() int {
	return len(m.featureLogProb[0])
}

func (m *naiveBayes) decide(x domain.FeatureVector) int {
	best, bestScore := 0, 0.0
	for k, row := range m.featureLogProb {
		score := x.Dot(row)
		if !m.complement {
			score += m.classLogPrior[k]
		}
		if k == 0 || score > bestScore {
			best, bestScore = k, score
		}
	}
	return best
}

func checkRectangular(rows [][]float64) error {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return errors.New("matrix is empty")
	}
	for i, row := range rows {
		if len(row) != len(rows[0]) {
			return fmt.Errorf("row %d has %d columns, want %d", i, len(row), len(rows[0]))
		}
	}
	return nil
}
