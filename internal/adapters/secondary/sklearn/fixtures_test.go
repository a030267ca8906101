package sklearn

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

var spamVocabulary = map[string]int{
	"click": 0, "free": 1, "here": 2, "meeting": 3,
	"money": 4, "now": 5, "tomorrow": 6, "win": 7,
}

func spamVectorizerArtifact() map[string]interface{} {
	return map[string]interface{}{
		"type":          TypeTfidfVectorizer,
		"lowercase":     true,
		"token_pattern": defaultTokenPattern,
		"ngram_range":   []int{1, 1},
		"norm":          "l2",
		"use_idf":       true,
		"vocabulary":    spamVocabulary,
		"idf":           []float64{1, 2, 1, 1, 3, 1, 1, 1},
	}
}

func spamClassifierArtifact() map[string]interface{} {
	return map[string]interface{}{
		"type":      TypeLogisticRegression,
		"classes":   []int{0, 1},
		"coef":      [][]float64{{2, 2, 0.5, -2, 2.5, 1, -2, 1.5}},
		"intercept": []float64{-1},
	}
}

func encodeJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func zstdBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func writeSpamArtifacts(t *testing.T) Paths {
	t.Helper()
	dir := t.TempDir()
	return Paths{
		Vectorizer: writeFile(t, dir, "tfidf_vectorizer.json", encodeJSON(t, spamVectorizerArtifact())),
		Classifier: writeFile(t, dir, "spam_model.json", encodeJSON(t, spamClassifierArtifact())),
	}
}

func mustVectorizer(t *testing.T, artifact map[string]interface{}) *Vectorizer {
	t.Helper()
	v, err := ParseVectorizer(bytes.NewReader(encodeJSON(t, artifact)))
	require.NoError(t, err)
	return v
}

func mustClassifier(t *testing.T, artifact map[string]interface{}) *Classifier {
	t.Helper()
	c, err := ParseClassifier(bytes.NewReader(encodeJSON(t, artifact)))
	require.NoError(t, err)
	return c
}
