// Package sklearn serves spam predictions from scikit-learn text models that
// were exported to JSON after training: a TF-IDF (or count) vectorizer and a
// linear or naive-Bayes classifier fitted on its output.
package sklearn

// vectorizerArtifact is the on-disk export of a fitted TfidfVectorizer or CountVectorizer.
// Pointer fields distinguish "absent" from the zero value where scikit-learn's default is not zero.
type vectorizerArtifact struct {
	Type         string         `json:"type"`
	Analyzer     string         `json:"analyzer"`
	Lowercase    *bool          `json:"lowercase"`
	StripAccents *string        `json:"strip_accents"`
	TokenPattern *string        `json:"token_pattern"`
	NgramRange   []int          `json:"ngram_range"`
	StopWords    []string       `json:"stop_words"`
	Binary       bool           `json:"binary"`
	Norm         *string        `json:"norm"`
	UseIDF       *bool          `json:"use_idf"`
	SublinearTF  bool           `json:"sublinear_tf"`
	Vocabulary   map[string]int `json:"vocabulary"`
	IDF          []float64      `json:"idf"`
}

// classifierArtifact is the on-disk export of a fitted classifier. Linear models
// fill Coef and Intercept, naive-Bayes models fill ClassLogPrior and FeatureLogProb.
type classifierArtifact struct {
	Type           string        `json:"type"`
	Classes        []interface{} `json:"classes"`
	Coef           [][]float64   `json:"coef"`
	Intercept      []float64     `json:"intercept"`
	ClassLogPrior  []float64     `json:"class_log_prior"`
	FeatureLogProb [][]float64   `json:"feature_log_prob"`
}

const (
	TypeTfidfVectorizer = "TfidfVectorizer"
	TypeCountVectorizer = "CountVectorizer"

	TypeLogisticRegression          = "LogisticRegression"
	TypeLinearSVC                   = "LinearSVC"
	TypeSGDClassifier               = "SGDClassifier"
	TypeRidgeClassifier             = "RidgeClassifier"
	TypePassiveAggressiveClassifier = "PassiveAggressiveClassifier"
	TypeMultinomialNB               = "MultinomialNB"
	TypeComplementNB                = "ComplementNB"
)
