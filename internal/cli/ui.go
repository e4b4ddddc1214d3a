package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pubkit/pkg/pipeline"
	"github.com/matzehuels/pubkit/pkg/publish"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleLink for repository URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCode    = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	stylePresent = lipgloss.NewStyle().Foreground(colorGray).Italic(true)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a repository path line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Report Output
// =============================================================================

// renderReport formats a run report: a header line, one line per target in
// target order and a closing outcome line.
func renderReport(r *pipeline.Report) string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(r.Coordinate.String()))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  run %s", r.RunID)))
	b.WriteByte('\n')

	for _, res := range r.Results {
		b.WriteString(renderResult(res))
		b.WriteByte('\n')
	}

	failed := len(r.Failed())
	summary := fmt.Sprintf("%s: %d/%d targets published in %s",
		r.Outcome, len(r.Results)-failed, len(r.Results), r.Duration.Round(time.Millisecond))
	switch r.Outcome {
	case pipeline.Success:
		b.WriteString(styleIconSuccess.Render(iconSuccess) + " " + summary)
	case pipeline.PartialFailure:
		b.WriteString(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(summary))
	default:
		b.WriteString(styleIconError.Render(iconError) + " " + summary)
	}
	b.WriteByte('\n')
	return b.String()
}

func renderResult(res publish.Result) string {
	line := "  "
	if res.OK() {
		line += styleIconSuccess.Render(iconSuccess)
	} else {
		line += styleIconError.Render(iconError)
	}
	line += " " + StyleValue.Render(res.Target.ID) + " " + StyleLink.Render(res.Target.URL)

	switch {
	case res.AlreadyPresent:
		line += " " + stylePresent.Render("already present")
	case !res.OK():
		line += " " + styleCode.Render(string(res.Code))
	}
	line += StyleDim.Render(fmt.Sprintf(" (%d attempts, %s)", res.Attempts, res.Duration.Round(time.Millisecond)))

	if !res.OK() && res.Message != "" {
		line += "\n      " + StyleDim.Render(res.Message)
	}
	return line
}
