package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTML converts Markdown to HTML. Tables need the GFM extension.
func HTML(md []byte, w io.Writer) error {
	conv := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := conv.Convert(md, w); err != nil {
		return fmt.Errorf("convert report to html: %w", err)
	}
	return nil
}

// Terminal renders Markdown for display in a terminal of the given width.
func Terminal(md []byte, width int, color bool) (string, error) {
	style := "dark"
	if !color {
		style = "notty"
	}
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("terminal renderer: %w", err)
	}
	out, err := r.RenderBytes(md)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return string(out), nil
}
