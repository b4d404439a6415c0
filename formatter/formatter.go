// Package formatter renders issues as human-readable, colored terminal
// output with the offending source line and a caret underline.
package formatter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/gamemath-labs/mlin/internal"
	tt "github.com/gamemath-labs/mlin/internal/types"
)

const tabWidth = 8

var (
	errorStyle      = color.New(color.FgRed, color.Bold)
	warningStyle    = color.New(color.FgHiYellow, color.Bold)
	infoStyle       = color.New(color.FgHiBlue, color.Bold)
	ruleStyle       = color.New(color.FgYellow, color.Bold)
	fileStyle       = color.New(color.FgCyan, color.Bold)
	lineStyle       = color.New(color.FgHiBlue, color.Bold)
	messageStyle    = color.New(color.FgRed, color.Bold)
	suggestionStyle = color.New(color.FgGreen, color.Bold)
)

// GenerateFormattedIssue formats a slice of issues into a human-readable
// string, one block per issue.
func GenerateFormattedIssue(issues []tt.Issue, sourceCode *internal.SourceCode) string {
	var builder strings.Builder
	for _, issue := range issues {
		builder.WriteString(formatIssueHeader(issue))
		builder.WriteString(formatSnippet(issue, sourceCode))
		if issue.Suggestion != "" {
			builder.WriteString(formatSuggestion(issue))
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

func severityStyle(s tt.Severity) *color.Color {
	switch s {
	case tt.SeverityError:
		return errorStyle
	case tt.SeverityWarning:
		return warningStyle
	default:
		return infoStyle
	}
}

func formatIssueHeader(issue tt.Issue) string {
	return severityStyle(issue.Severity).Sprintf("%s: ", issue.Severity) +
		ruleStyle.Sprint(issue.Rule) + "\n" +
		lineStyle.Sprint(" --> ") +
		fileStyle.Sprintf("%s:%d:%d", issue.Filename, issue.Start.Line, issue.Start.Column) + "\n"
}

func formatSnippet(issue tt.Issue, sourceCode *internal.SourceCode) string {
	if sourceCode == nil || issue.Start.Line < 1 || issue.Start.Line > len(sourceCode.Lines) {
		return ""
	}

	var result strings.Builder
	lineNumberStr := fmt.Sprintf("%d", issue.Start.Line)
	padding := strings.Repeat(" ", len(lineNumberStr))

	line := expandTabs(sourceCode.Lines[issue.Start.Line-1])
	result.WriteString(lineStyle.Sprintf(" %s |\n", padding))
	result.WriteString(lineStyle.Sprintf(" %s | ", lineNumberStr))
	result.WriteString(line + "\n")

	start := calculateVisualColumn(sourceCode.Lines[issue.Start.Line-1], issue.Start.Column)
	end := calculateVisualColumn(sourceCode.Lines[issue.Start.Line-1], issue.End.Column)
	if issue.End.Line != issue.Start.Line {
		end = len(line)
	}
	width := end - start
	if width < 1 {
		width = 1
	}
	result.WriteString(lineStyle.Sprintf(" %s | ", padding))
	result.WriteString(strings.Repeat(" ", start))
	result.WriteString(messageStyle.Sprint(strings.Repeat("^", width)))
	result.WriteString(" " + messageStyle.Sprint(issue.Message) + "\n")

	return result.String()
}

func formatSuggestion(issue tt.Issue) string {
	var result strings.Builder
	result.WriteString(suggestionStyle.Sprint("suggestion: "))
	result.WriteString(issue.Suggestion + "\n")
	if issue.Note != "" {
		result.WriteString("note: " + issue.Note + "\n")
	}
	return result.String()
}

func expandTabs(line string) string {
	var expanded strings.Builder
	for i, ch := range line {
		if ch == '\t' {
			spaces := tabWidth - (i % tabWidth)
			expanded.WriteString(strings.Repeat(" ", spaces))
		} else {
			expanded.WriteRune(ch)
		}
	}
	return expanded.String()
}

// calculateVisualColumn maps a 1-based byte column onto the visual column
// after tab expansion.
func calculateVisualColumn(line string, column int) int {
	visualColumn := 0
	for i, ch := range line {
		if i+1 >= column {
			break
		}
		if ch == '\t' {
			visualColumn += tabWidth - (visualColumn % tabWidth)
		} else {
			visualColumn++
		}
	}
	return visualColumn
}
