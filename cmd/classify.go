package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"veriweb/internal/engine"

	"github.com/spf13/cobra"
)

// classifyCommand constructs the 'classify' subcommand that runs the risk
// engine locally on a single URL and prints the report. The command always
// exits successfully: a malicious verdict is a result, not a failure.
func classifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <url>",
		Short: "Classifies a URL locally and prints the risk report",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			report := engine.Analyze(context.Background(), args[0])

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				_ = enc.Encode(report)

				return
			}

			//nolint: forbidigo
			{
				fmt.Printf("URL:     %s\n", args[0])
				fmt.Printf("Score:   %d/100\n", report.Score)
				fmt.Printf("Verdict: %s\n", report.Verdict)
				if len(report.Threats) > 0 {
					fmt.Println("Threats:")
					for _, threat := range report.Threats {
						fmt.Printf("  - %s\n", threat)
					}
				}
				if len(report.Recommendations) > 0 {
					fmt.Println("Recommendations:")
					for _, rec := range report.Recommendations {
						fmt.Printf("  - %s\n", rec)
					}
				}
				fmt.Printf("Explanation: %s\n", report.Explanation)
			}
		},
	}

	cmd.Flags().Bool("json", false, "Print the report as JSON")

	return cmd
}
