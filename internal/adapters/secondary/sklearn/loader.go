package sklearn

import (
	"errors"
	"io"
	"io/fs"

	log "github.com/sirupsen/logrus"

	"spam-detection-service/internal/core/domain"
)

const (
	artifactVectorizer = "vectorizer"
	artifactClassifier = "classifier"
)

// Paths locates the two model artifacts. Relative paths resolve against the
// process working directory.
type Paths struct {
	Vectorizer string
	Classifier string
}

// Load reads both artifacts and checks that they fit together. Every failure
// is a *domain.ArtifactLoadError; a missing file wraps domain.ErrArtifactNotFound.
func Load(paths Paths) (*Engine, error) {
	vectorizer, err := loadArtifact(artifactVectorizer, paths.Vectorizer, ParseVectorizer)
	if err != nil {
		return nil, err
	}

	classifier, err := loadArtifact(artifactClassifier, paths.Classifier, ParseClassifier)
	if err != nil {
		return nil, err
	}

	engine, err := NewEngine(vectorizer, classifier)
	if err != nil {
		return nil, &domain.ArtifactLoadError{Artifact: artifactClassifier, Path: paths.Classifier, Err: err}
	}
	return engine, nil
}

func loadArtifact[T any](artifact, path string, parse func(io.Reader) (T, error)) (T, error) {
	var zero T

	log.WithFields(log.Fields{
		"artifact": artifact,
		"path":     path,
	}).Debug("loading model artifact")

	rc, err := openArtifact(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = domain.ErrArtifactNotFound
		}
		return zero, &domain.ArtifactLoadError{Artifact: artifact, Path: path, Err: err}
	}
	defer rc.Close()

	v, err := parse(rc)
	if err != nil {
		return zero, &domain.ArtifactLoadError{Artifact: artifact, Path: path, Err: err}
	}
	return v, nil
}
