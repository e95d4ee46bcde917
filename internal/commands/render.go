package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"
)

// renderMarkdown prints md through glamour, plain when out is not a terminal.
func renderMarkdown(out io.Writer, md string) error {
	style := glamour.WithStandardStyle("notty")
	if isTerminal(out) {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
	if err != nil {
		return err
	}
	rendered, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

// highlightFile colours code by its file name. Non-terminals get it verbatim.
func highlightFile(out io.Writer, filename, code string) string {
	if !isTerminal(out) {
		return code
	}
	lexer := "text"
	if l := lexers.Match(filename); l != nil {
		lexer = l.Config().Name
	}
	b := new(strings.Builder)
	if err := quick.Highlight(b, code, lexer, "terminal256", "dracula"); err != nil {
		return code
	}
	return b.String()
}
