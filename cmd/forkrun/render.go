package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mattjoyce/forkrun/internal/history"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	stoppedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

func outcomeLabel(outcome history.Outcome) string {
	switch outcome {
	case history.OutcomeSuccess:
		return successStyle.Render("SUCCESS")
	case history.OutcomeStopped:
		return stoppedStyle.Render("STOPPED")
	default:
		return failedStyle.Render("FAILED")
	}
}

func renderOutcome(outcome history.Outcome, elapsed time.Duration) string {
	return fmt.Sprintf("%s (%s)", outcomeLabel(outcome), elapsed.Round(time.Millisecond))
}

func renderHistory(runs []*history.Run) string {
	if len(runs) == 0 {
		return "No runs recorded.\n"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Recent runs"))
	b.WriteString("\n")
	for _, run := range runs {
		b.WriteString(fmt.Sprintf("%s  %s  status=%d  %s\n",
			faintStyle.Render(run.StartedAt.Local().Format("2006-01-02 15:04:05")),
			outcomeLabel(run.Outcome),
			run.Status,
			run.ID,
		))
	}
	return b.String()
}

func renderRun(run *history.Run) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Run:      %s\n", run.ID))
	b.WriteString(fmt.Sprintf("Outcome:  %s\n", outcomeLabel(run.Outcome)))
	b.WriteString(fmt.Sprintf("Status:   %d\n", run.Status))
	b.WriteString(fmt.Sprintf("Started:  %s\n", run.StartedAt.Local().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Finished: %s\n", run.FinishedAt.Local().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Command:  %s\n", run.Command))
	if run.Error != "" {
		b.WriteString(fmt.Sprintf("Error:    %s\n", run.Error))
	}
	return b.String()
}
