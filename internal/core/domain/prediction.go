package domain

import (
	"strconv"
	"strings"
)

// FeatureVector is a sparse row produced by a vectorizer. Indices are strictly
// increasing and every index is below Dim.
type FeatureVector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// Dot returns the inner product of the vector with a dense weight row.
func (v FeatureVector) Dot(weights []float64) float64 {
	var sum float64
	for i, idx := range v.Indices {
		sum += v.Values[i] * weights[idx]
	}
	return sum
}

// Label is a raw class label as stored in the classifier artifact.
// Value holds a float64, string, bool or nil, as decoded from JSON.
type Label struct {
	Value interface{}
}

// positiveLabels are the string class names treated as spam when the
// classifier was trained on named classes instead of 0/1.
var positiveLabels = map[string]struct{}{
	"spam": {},
	"true": {},
	"yes":  {},
	"junk": {},
}

// Bool coerces the label to a spam verdict. Numbers are true when non-zero,
// numeric strings likewise, and other strings only when they name the spam class.
// String labels are matched by class name, not by truthiness: "ham" and "0" are false.
func (l Label) Bool() bool {
	switch v := l.Value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	case string:
		s := strings.TrimSpace(v)
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f != 0
		}
		_, ok := positiveLabels[strings.ToLower(s)]
		return ok
	default:
		return false
	}
}

// PredictionResult is the verdict returned for one email.
type PredictionResult struct {
	Spam bool
}
