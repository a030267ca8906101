package main

import (
	"encoding/json"
	"io"
	"os"

	"spam-detection-service/internal/adapters/secondary/sklearn"
	"spam-detection-service/internal/config"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	vectorizerPath string
	classifierPath string
)

var rootCmd = &cobra.Command{
	Use:   "spamctl",
	Short: "Inspect and exercise the spam model artifacts offline",
	Long: `spamctl loads the same vectorizer and classifier artifacts as the HTTP
service and runs them from the shell, for checking a freshly exported model
before it is deployed.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&vectorizerPath, "vectorizer", "",
		"Vectorizer artifact path (default: MODEL_VECTORIZER_PATH)")
	rootCmd.PersistentFlags().StringVar(&classifierPath, "classifier", "",
		"Classifier artifact path (default: MODEL_CLASSIFIER_PATH)")
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadEngine resolves artifact paths with flags taking precedence over the
// service configuration, then loads them exactly as the server does.
func loadEngine() (*sklearn.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	paths := sklearn.Paths{
		Vectorizer: cfg.Model.VectorizerPath,
		Classifier: cfg.Model.ClassifierPath,
	}
	if vectorizerPath != "" {
		paths.Vectorizer = vectorizerPath
	}
	if classifierPath != "" {
		paths.Classifier = classifierPath
	}

	return sklearn.Load(paths)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
