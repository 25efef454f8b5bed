package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"leafd/internal/classifier"
	"leafd/internal/onnx"
	"leafd/pkg/types"
)

var errPreflight = errors.New("preflight check failed")

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the runtime library, model artifact and frontend directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup(cmd)
			if err != nil {
				return err
			}
			lib := cfg.ONNXRuntimeLib
			if lib == "" {
				lib = onnx.DiscoverLibrary()
			}
			rep := classifier.Preflight(classifier.PreflightConfig{
				RuntimeLib:  lib,
				ModelPath:   cfg.ModelPath,
				FrontendDir: cfg.FrontendDir,
			})
			asJSON, _ := cmd.Flags().GetBool("json")
			return report(cmd.OutOrStdout(), rep, asJSON)
		},
	}
	cmd.Flags().Bool("json", false, "Print the report as JSON")
	return cmd
}

func report(w io.Writer, rep types.SanityReport, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return err
		}
	} else {
		line := func(ok bool, what, detail string) {
			mark := "ok  "
			if !ok {
				mark = "FAIL"
			}
			fmt.Fprintf(w, "[%s] %-12s %s\n", mark, what, detail)
		}
		line(rep.RuntimeLibFound, "onnxruntime", orNone(rep.RuntimeLib))
		line(rep.ModelFound, "model", orNone(rep.ModelPath))
		if rep.FrontendDir != "" {
			line(rep.FrontendFound, "frontend", rep.FrontendDir)
		}
		for _, e := range rep.Errors {
			fmt.Fprintf(w, "  - %s\n", e)
		}
	}
	if !rep.OK() {
		return errPreflight
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(not found)"
	}
	return s
}
