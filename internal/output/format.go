/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package output renders command results for the terminal.
package output

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/orien/stackpreview/internal/model"
)

// Formatter renders results with a fixed set of styles
type Formatter struct {
	styles *Styles
}

// NewFormatter creates a formatter
func NewFormatter(styles *Styles) *Formatter {
	return &Formatter{styles: styles}
}

// Deployment renders a deployment result, ending with a line stating the overall outcome
func (f *Formatter) Deployment(result *model.DeploymentResult) string {
	var b strings.Builder
	s := f.styles

	fmt.Fprintf(&b, "%s\n", s.Header.Render("Preview "+result.Identifier))

	width := componentWidth(result.Components)
	for _, c := range result.Components {
		name := s.Key.Render(c.Component) + padding(c.Component, width)
		switch c.Status {
		case model.ComponentSucceeded:
			detail := "deployed"
			if c.NoChanges {
				detail = "no changes"
			}
			if c.AutoResolve {
				detail += " (auto-resolved artifact bucket)"
			}
			fmt.Fprintf(&b, "  %s %s  %s  %s\n", s.Success.Render("ok"), name, c.StackName, s.Subtle.Render(detail))
		case model.ComponentSkipped:
			fmt.Fprintf(&b, "  %s %s  %s\n", s.Subtle.Render("--"), name, s.Subtle.Render("skipped, no template"))
		case model.ComponentFailed:
			fmt.Fprintf(&b, "  %s %s  %s  %s\n", s.Error.Render("!!"), name, c.StackName, c.Err)
		}
	}

	b.WriteString("\n")
	if failed := result.FailedComponents(); len(failed) > 0 {
		fmt.Fprintf(&b, "%s\n", s.Error.Render(fmt.Sprintf(
			"Deployment of %s failed for %d component(s): %s",
			result.Identifier, len(failed), strings.Join(failed, ", "))))
	} else {
		fmt.Fprintf(&b, "%s\n", s.Success.Render(fmt.Sprintf(
			"Deployment of %s succeeded (%d component(s) deployed)",
			result.Identifier, len(result.Deployed()))))
	}

	return b.String()
}

// DeploymentAborted renders the outcome of a deployment that stopped before any component ran
func (f *Formatter) DeploymentAborted(identifier string, err error) string {
	return f.styles.Error.Render(fmt.Sprintf("Deployment of %s aborted: %v", identifier, err)) + "\n"
}

// Cleanup renders a cleanup result, ending with a line stating the overall outcome
func (f *Formatter) Cleanup(result *model.CleanupResult) string {
	s := f.styles

	if result.NoMatch {
		return s.Subtle.Render(fmt.Sprintf("No stacks found for %s, nothing to clean up", result.Identifier)) + "\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", s.Header.Render("Cleanup "+result.Identifier))

	failed := 0
	for _, st := range result.Stacks {
		switch st.Status {
		case model.StackDeleted:
			fmt.Fprintf(&b, "  %s %s\n", s.Success.Render("ok"), st.StackName)
		case model.StackTimedOut:
			failed++
			fmt.Fprintf(&b, "  %s %s  %s\n", s.Warning.Render(".."), st.StackName, st.Err)
		default:
			failed++
			fmt.Fprintf(&b, "  %s %s  %s\n", s.Error.Render("!!"), st.StackName, st.Err)
		}
	}

	b.WriteString("\n")
	if failed > 0 {
		fmt.Fprintf(&b, "%s\n", s.Error.Render(fmt.Sprintf(
			"Cleanup of %s failed for %d of %d stack(s)", result.Identifier, failed, len(result.Stacks))))
	} else {
		fmt.Fprintf(&b, "%s\n", s.Success.Render(fmt.Sprintf(
			"Cleanup of %s succeeded (%d stack(s) deleted)", result.Identifier, len(result.Stacks))))
	}

	return b.String()
}

// Validation renders a validation report, ending with a line stating the overall outcome
func (f *Formatter) Validation(report *model.ValidationReport) string {
	var b strings.Builder
	s := f.styles

	fmt.Fprintf(&b, "%s\n", s.Header.Render("Validate "+report.Identifier))

	invalid := 0
	for _, r := range report.Results {
		switch {
		case r.Skipped:
			fmt.Fprintf(&b, "  %s %s  %s\n", s.Subtle.Render("--"), s.Key.Render(r.Component), s.Subtle.Render("skipped, no template"))
		case r.Valid:
			fmt.Fprintf(&b, "  %s %s  %s\n", s.Success.Render("ok"), s.Key.Render(r.Component), r.StackName)
		default:
			invalid++
			fmt.Fprintf(&b, "  %s %s  %s\n", s.Error.Render("!!"), s.Key.Render(r.Component), r.Err)
		}
	}

	b.WriteString("\n")
	if invalid > 0 {
		fmt.Fprintf(&b, "%s\n", s.Error.Render(fmt.Sprintf("Validation of %s failed for %d component(s)", report.Identifier, invalid)))
	} else {
		fmt.Fprintf(&b, "%s\n", s.Success.Render(fmt.Sprintf("All components of %s are valid", report.Identifier)))
	}

	return b.String()
}

// Inventory renders the stacks of one identifier, or of every identifier when it is empty
func (f *Formatter) Inventory(identifier string, entries []model.StackInventoryEntry) string {
	s := f.styles

	if len(entries) == 0 {
		if identifier == "" {
			return s.Subtle.Render("No preview stacks found") + "\n"
		}
		return s.Subtle.Render(fmt.Sprintf("No stacks found for %s", identifier)) + "\n"
	}

	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n", s.Header.Render(e.StackName))
		fmt.Fprintf(&b, "  %s %s\n", s.Key.Render("Status:"), f.status(e.Status))
		if !e.CreationTime.IsZero() {
			fmt.Fprintf(&b, "  %s %s\n", s.Key.Render("Created:"), formatTime(e.CreationTime))
		}
		if e.OutputsError != nil {
			fmt.Fprintf(&b, "  %s %s\n", s.Key.Render("Outputs:"), s.Warning.Render("unavailable: "+e.OutputsError.Error()))
		} else if e.HasOutputs() {
			fmt.Fprintf(&b, "  %s\n", s.Key.Render("Outputs:"))
			writeKeyValueMap(&b, e.Outputs)
		}
	}

	return b.String()
}

// Summary renders the stack listing as one line per stack
func (f *Formatter) Summary(entries []model.StackInventoryEntry) string {
	if len(entries) == 0 {
		return f.styles.Subtle.Render("No preview stacks found") + "\n"
	}

	width := 0
	for _, e := range entries {
		width = max(width, len(e.StackName))
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s%s  %s%s  %s\n",
			e.StackName, padding(e.StackName, width),
			f.status(e.Status), padding(e.Status, 24),
			f.styles.Subtle.Render(formatTime(e.CreationTime)))
	}
	fmt.Fprintf(&b, "\n%d stack(s)\n", len(entries))
	return b.String()
}

func (f *Formatter) status(status string) string {
	switch {
	case strings.HasSuffix(status, "_FAILED") || strings.Contains(status, "ROLLBACK"):
		return f.styles.Error.Render(status)
	case strings.HasSuffix(status, "_IN_PROGRESS"):
		return f.styles.Warning.Render(status)
	default:
		return f.styles.Success.Render(status)
	}
}

// formatTime formats time in a human-readable format
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05 MST")
}

// writeKeyValueMap writes a sorted map as key-value pairs with indentation
func writeKeyValueMap(b *strings.Builder, m map[string]string) {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(b, "    %s: %s\n", key, m[key])
	}
}

func componentWidth(components []model.ComponentResult) int {
	width := 0
	for _, c := range components {
		width = max(width, len(c.Component))
	}
	return width
}

func padding(s string, width int) string {
	if len(s) >= width {
		return ""
	}
	return strings.Repeat(" ", width-len(s))
}
