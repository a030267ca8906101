package main

import (
	"spam-detection-service/internal/adapters/primary/http/dto"
	"spam-detection-service/internal/core/domain"
	"spam-detection-service/internal/core/services"

	"github.com/spf13/cobra"
)

var (
	classifySubject string
	classifyBody    string
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify one email",
	Long:  "Run an email through the same pipeline as POST /predict and print the verdict as JSON",
	Example: `  spamctl classify --subject "Win money now" --body "Click here"
  spamctl classify --subject "Meeting tomorrow" --classifier models/nb.json.zst`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&classifySubject, "subject", "", "Email subject")
	classifyCmd.Flags().StringVar(&classifyBody, "body", "", "Email body")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	engine, err := loadEngine()
	if err != nil {
		return err
	}

	svc := services.NewSpamService(engine)
	result, err := svc.Classify(cmd.Context(), domain.Email{Subject: classifySubject, Body: classifyBody})
	if err != nil {
		return err
	}

	return writeJSON(cmd.OutOrStdout(), dto.ToPredictResponse(result))
}
