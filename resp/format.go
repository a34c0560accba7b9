package resp

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders node for a terminal, in the style of redis-cli. The result
// has no trailing newline.
func Format(node Node) string {
	switch n := node.(type) {
	case SimpleString:
		return n.Value
	case Error:
		return "(error) " + n.Message
	case Integer:
		return fmt.Sprintf("(integer) %d", n.Value)
	case BlobString:
		return strconv.Quote(n.Value)
	case Null:
		return "(nil)"
	case Double:
		return "(double) " + formatDouble(n.Value)
	case Boolean:
		if n.Value {
			return "(true)"
		}
		return "(false)"
	case VerbatimString:
		return strings.TrimSuffix(n.Value, "\n")
	case Array:
		if len(n.Elements) == 0 {
			return "(empty array)"
		}
		return formatList(n.Elements)
	case Set:
		if len(n.Elements) == 0 {
			return "(empty set)"
		}
		return formatList(n.Elements)
	case Map:
		if len(n.Entries) == 0 {
			return "(empty hash)"
		}
		return formatMap(n.Entries)
	default:
		return fmt.Sprintf("(unknown %T)", node)
	}
}

func formatList(elems []Node) string {
	width := len(strconv.Itoa(len(elems)))
	lines := make([]string, 0, len(elems))
	for i, elem := range elems {
		prefix := fmt.Sprintf("%*d) ", width, i+1)
		lines = append(lines, prefix+indent(Format(elem), len(prefix)))
	}
	return strings.Join(lines, "\n")
}

func formatMap(entries []Entry) string {
	width := len(strconv.Itoa(len(entries)))
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		head := fmt.Sprintf("%*d# %s => ", width, i+1, Format(e.Key))
		lines = append(lines, head+indent(Format(e.Value), len(head)))
	}
	return strings.Join(lines, "\n")
}

// indent pads every line but the first by n spaces.
func indent(s string, n int) string {
	return strings.ReplaceAll(s, "\n", "\n"+strings.Repeat(" ", n))
}
