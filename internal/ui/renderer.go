package ui

import (
	"fmt"
	"strings"

	"github.com/devcli-dev/devcli/internal/context"
	"github.com/devcli-dev/devcli/internal/provider"
)

// Renderer handles all UI output formatting
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// WelcomeMessage returns the styled welcome banner
func (r *Renderer) WelcomeMessage(version string) string {
	var sb strings.Builder

	title := TitleStyle.Render(IconStar + " devcli")
	subtitle := Subtle.Render("AI coding assistant for local models")

	sb.WriteString(fmt.Sprintf("%s - %s %s\n", title, subtitle, Subtle.Render(version)))
	sb.WriteString(Subtle.Render("Type '/help' for commands, 'exit' to quit"))
	sb.WriteString("\n")

	return sb.String()
}

// SnapshotMessage returns styled snapshot status info
func (r *Renderer) SnapshotMessage(loaded bool) string {
	if loaded {
		return SuccessStyle.Render(IconFolder+" Project snapshot loaded from .devcli/context.json") + "\n"
	}
	return WarningStyle.Render(IconTip+" Run '/init' to build a project snapshot") + "\n"
}

// ProviderMessage formats provider information for display
func (r *Renderer) ProviderMessage(info *provider.Info) string {
	if info == nil {
		return ""
	}
	return SuccessStyle.Render(fmt.Sprintf("%s Connected to %s (%s)", IconSuccess, info.Name, info.Model)) + "\n"
}

// InitSummary formats the result of building a snapshot
func (r *Renderer) InitSummary(snapshot *context.ProjectSnapshot, savedTo string) string {
	var sb strings.Builder
	sb.WriteString(SuccessStyle.Render(fmt.Sprintf("%s Scanned %s", IconSuccess, snapshot.Name)) + "\n")
	sb.WriteString(fmt.Sprintf("  Files: %d\n", snapshot.TotalFiles))
	sb.WriteString(fmt.Sprintf("  Lines: %d\n", snapshot.TotalLines))
	sb.WriteString(Subtle.Render(fmt.Sprintf("  Saved to %s", savedTo)) + "\n")
	return sb.String()
}

// PromptString returns the styled prompt
func (r *Renderer) PromptString() string {
	return PromptStyle.Render("❯") + " "
}

// ErrorMessage formats an error message
func (r *Renderer) ErrorMessage(err error) string {
	return ErrorStyle.Render(fmt.Sprintf("%s Error: %v", IconError, err))
}

// WarningMessage formats a warning message
func (r *Renderer) WarningMessage(msg string) string {
	return WarningStyle.Render(fmt.Sprintf("%s %s", IconWarning, msg))
}

// InfoMessage formats an info message
func (r *Renderer) InfoMessage(msg string) string {
	return InfoStyle.Render(fmt.Sprintf("%s %s", IconInfo, msg))
}

// SuccessMessage formats a success message
func (r *Renderer) SuccessMessage(msg string) string {
	return SuccessStyle.Render(fmt.Sprintf("%s %s", IconSuccess, msg))
}

// DiffBlock formats a unified diff for display
func (r *Renderer) DiffBlock(diff string) string {
	if diff == "" {
		return Subtle.Render("No changes")
	}
	return DiffStyle.Render(diff)
}
