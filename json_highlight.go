package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/colorprofile"
)

// jsonHL syntax-highlights JSON for terminal display: the record pane in the
// detail view and the --json export. Chroma objects are safe for reuse.
type jsonHL struct {
	lexer     chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style
}

// newJSONHL creates a highlighter for the detected background, picking the
// formatter from the color profile of out.
func newJSONHL(hasDarkBg bool, out io.Writer) *jsonHL {
	lexer := chroma.Coalesce(lexers.Get("json"))

	styleName := "github"
	if hasDarkBg {
		styleName = "dracula"
	}

	profile := colorprofile.Detect(out, os.Environ())
	return &jsonHL{
		lexer:     lexer,
		formatter: formatters.Get(chromaFormatter(profile)),
		style:     styles.Get(styleName),
	}
}

// highlight indents v as JSON and returns syntax-highlighted text.
// Falls back to plain indented JSON when tokenizing or formatting fails.
func (h *jsonHL) highlight(v any) (string, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	if h == nil {
		return string(raw), nil
	}

	iterator, err := h.lexer.Tokenise(nil, string(raw))
	if err != nil {
		return string(raw), nil
	}
	var out bytes.Buffer
	if err := h.formatter.Format(&out, h.style, iterator); err != nil {
		return string(raw), nil
	}
	return out.String(), nil
}

// chromaFormatter maps colorprofile profiles to chroma terminal formatter names.
func chromaFormatter(profile colorprofile.Profile) string {
	switch profile {
	case colorprofile.TrueColor:
		return "terminal16m"
	case colorprofile.ANSI256:
		return "terminal256"
	case colorprofile.ANSI:
		return "terminal16"
	case colorprofile.NoTTY:
		return "noop"
	default:
		return "terminal"
	}
}
