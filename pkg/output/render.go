package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/mattn/go-isatty"
)

// Fact output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultFormat is text when w is a terminal and JSON otherwise.
func DefaultFormat(w io.Writer) string {
	f, ok := w.(*os.File)
	if ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return FormatText
	}
	return FormatJSON
}

// Render writes facts in the given format. An empty format means text.
func Render(w io.Writer, format string, facts map[string]any) error {
	switch format {
	case "", FormatText:
		return renderText(w, facts)
	case FormatJSON:
		data, err := json.MarshalIndent(facts, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case FormatYAML:
		data, err := yaml.Marshal(facts)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}

// renderText prints one "name => value" line per fact. A lone fact is
// printed as its bare value.
func renderText(w io.Writer, facts map[string]any) error {
	var b strings.Builder
	if len(facts) == 1 {
		for _, v := range facts {
			writeValue(&b, v, 0, false)
		}
		b.WriteByte('\n')
	} else {
		for _, name := range sortedKeys(facts) {
			b.WriteString(name)
			b.WriteString(" => ")
			writeValue(&b, facts[name], 0, false)
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// writeValue renders nested maps with two-space indentation. Strings inside
// maps are quoted.
func writeValue(b *strings.Builder, v any, depth int, quote bool) {
	switch value := v.(type) {
	case map[string]any:
		if len(value) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		keys := sortedKeys(value)
		for i, k := range keys {
			b.WriteString(strings.Repeat("  ", depth+1))
			b.WriteString(k)
			b.WriteString(" => ")
			writeValue(b, value[k], depth+1, true)
			if i < len(keys)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteByte('}')
	case string:
		if quote {
			b.WriteString(strconv.Quote(value))
		} else {
			b.WriteString(value)
		}
	default:
		fmt.Fprint(b, value)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
