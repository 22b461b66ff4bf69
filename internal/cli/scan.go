package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/accesslens/accesslens/internal/report"
	"github.com/accesslens/accesslens/internal/scan"
)

const (
	formatPDF      = "pdf"
	formatMarkdown = "markdown"
	formatBoth     = "both"
)

var (
	outputDir string
	format    string
	stepDelay time.Duration
)

// NewScanCmd builds the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan URL",
		Short: "Run an accessibility scan and export the report",
		Long: `Run an accessibility scan against a website URL and export the
results as a report.

Examples:
  # Scan a site and write accessibility-report.pdf to the current directory
  accesslens scan https://example.com

  # Write both PDF and markdown reports into ./reports
  accesslens scan https://example.com -o reports -f both

  # Skip the simulated step delays
  accesslens scan https://example.com --step-delay 0`,
		Args: cobra.ExactArgs(1),
		RunE: runScan,
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Directory to write the report into")
	cmd.Flags().StringVarP(&format, "format", "f", formatPDF, "Report format (pdf, markdown, both)")
	cmd.Flags().DurationVar(&stepDelay, "step-delay", scan.DefaultStepDelay, "Delay between scan progress steps")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	targetURL := args[0]

	switch format {
	case formatPDF, formatMarkdown, formatBoth:
	default:
		return fmt.Errorf("unknown format %q (expected pdf, markdown, or both)", format)
	}

	session := scan.NewSession(scan.NewSimulatedScanner(stepDelay))
	session.SetTargetURL(targetURL)

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Suffix = " Analyzing website..."
	session.OnProgress = func(pct int) {
		s.Suffix = fmt.Sprintf(" Analyzing website... %d%%", pct)
	}

	s.Start()
	err := session.Start(cmd.Context())
	s.Stop()

	if err != nil {
		msg := session.ErrorMessage()
		if msg == "" {
			// Validation failures never leave Idle, so the session
			// carries no message of its own.
			msg = err.Error()
		}
		printError(msg)
		return err
	}

	result := session.Result()
	printSuccess(fmt.Sprintf("Analysis complete: score %d/100, level %s", result.Score, result.Level))

	deliverer := report.FileDeliverer{Dir: outputDir}

	if format == formatPDF || format == formatBoth {
		if err := report.ExportPDF(targetURL, result, deliverer); err != nil {
			printError("Could not export the PDF report.")
			return err
		}
		printSuccess("Report written: " + filepath.Join(outputDir, report.PDFFileName))
	}

	if format == formatMarkdown || format == formatBoth {
		if err := report.ExportMarkdown(targetURL, result, deliverer); err != nil {
			printError("Could not export the markdown report.")
			return err
		}
		printSuccess("Report written: " + filepath.Join(outputDir, report.MarkdownFileName))
	}

	return nil
}

func printSuccess(msg string) {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("%s %s\n", green("✓"), msg)
}

func printError(msg string) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Printf("%s %s\n", red("✗"), msg)
}
