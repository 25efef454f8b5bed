package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"leafd/internal/classifier"
	"leafd/pkg/types"
)

func newPredictCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "predict <image>",
		Short:   "Classify a local image file and print the result as JSON",
		Example: "  leafd predict leaf.jpg --model-path ./models/1.onnx",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			clf := startClassifier(cfg, log, nil)
			defer shutdownRuntime(log)
			defer clf.Close()
			return runPredict(cmd, clf, data)
		},
	}
}

// runPredict prints the same JSON body POST /predict would return. A
// logical failure is printed and also returned so the exit status is 1.
func runPredict(cmd *cobra.Command, clf *classifier.Classifier, data []byte) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	pred, err := clf.Classify(cmd.Context(), data)
	if err != nil {
		msg := classifier.ModelUnavailableMessage
		if !classifier.IsModelUnavailable(err) {
			msg = "Prediction failed: " + err.Error()
		}
		if encErr := enc.Encode(types.PredictError{Error: msg}); encErr != nil {
			return errors.Join(err, encErr)
		}
		return fmt.Errorf("predict: %w", err)
	}
	return enc.Encode(pred)
}
