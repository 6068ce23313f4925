package services

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReviewSummary is what a human sees at the review pause before any
// submission decision.
type ReviewSummary struct {
	URL             string
	FinalURL        string
	FieldsAnalyzed  int
	FieldsFilled    int
	FieldsFailed    int
	NavigationSteps []string
	Errors          []string
}

// ReviewGate is the human-in-the-loop pause point. Confirm blocks until a
// decision is made and reports whether the run should proceed. The engine
// never submits an application itself regardless of the answer.
type ReviewGate interface {
	Confirm(summary ReviewSummary) bool
}

// TerminalReviewGate prints the summary and reads the decision from a
// terminal. There is no timeout on the pause.
type TerminalReviewGate struct {
	In  io.Reader
	Out io.Writer
}

func NewTerminalReviewGate() *TerminalReviewGate {
	return &TerminalReviewGate{In: os.Stdin, Out: os.Stdout}
}

func (g *TerminalReviewGate) Confirm(summary ReviewSummary) bool {
	w := g.Out
	fmt.Fprintln(w, "\nREVIEW MODE")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Application URL: %s\n", summary.FinalURL)
	fmt.Fprintf(w, "Successfully filled: %d fields\n", summary.FieldsFilled)
	fmt.Fprintf(w, "Failed to fill: %d fields\n", summary.FieldsFailed)
	fmt.Fprintf(w, "Total analyzed: %d fields\n", summary.FieldsAnalyzed)

	if len(summary.NavigationSteps) > 0 {
		fmt.Fprintln(w, "\nNavigation steps:")
		for _, step := range summary.NavigationSteps {
			fmt.Fprintf(w, "  - %s\n", step)
		}
	}
	if len(summary.Errors) > 0 {
		fmt.Fprintln(w, "\nErrors:")
		for _, e := range summary.Errors {
			fmt.Fprintf(w, "  - %s\n", e)
		}
	}

	fmt.Fprintln(w, "\nPlease review the form in the browser window.")
	fmt.Fprintln(w, "Press Enter to continue or 'q' to quit without submitting...")

	scanner := bufio.NewScanner(g.In)
	if !scanner.Scan() {
		return false
	}
	return strings.ToLower(strings.TrimSpace(scanner.Text())) != "q"
}

// AutoApproveGate proceeds without pausing. Used for headless and API runs.
type AutoApproveGate struct{}

func (AutoApproveGate) Confirm(ReviewSummary) bool { return true }
