package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdownWrapWidth is the word-wrap width for rendered markdown.
const markdownWrapWidth = 80

// NextStepsMarkdown returns the getting-started notes printed after a project is created.
func NextStepsMarkdown(projectName, packageManager string) string {
	var sb strings.Builder
	sb.WriteString("## Next steps\n\n")
	sb.WriteString("```sh\n")
	fmt.Fprintf(&sb, "cd %s\n", projectName)
	fmt.Fprintf(&sb, "%s dev\n", packageManager)
	sb.WriteString("```\n\n")
	sb.WriteString("Check the project README for wallet and network setup.\n")
	return sb.String()
}

// RenderMarkdown writes md to w rendered with glamour. When rendering fails,
// or colors are disabled, the raw markdown is written instead.
func RenderMarkdown(w io.Writer, md string) {
	if HasColorSupport() {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(markdownWrapWidth),
		)
		if err == nil {
			if rendered, err := renderer.Render(md); err == nil {
				_, _ = io.WriteString(w, rendered)
				return
			}
		}
	}
	_, _ = io.WriteString(w, md)
}
