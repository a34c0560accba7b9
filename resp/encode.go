package resp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Encode renders node in the RESP3 wire form.
func Encode(node Node) []byte {
	var builder strings.Builder
	encode(&builder, node)
	return []byte(builder.String())
}

func encode(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case SimpleString:
		b.WriteString(fmt.Sprintf("%c%s%s", TypeSimple, n.Value, CRLF))
	case Error:
		b.WriteString(fmt.Sprintf("%c%s%s", TypeError, n.Message, CRLF))
	case Integer:
		b.WriteString(fmt.Sprintf("%c%d%s", TypeInteger, n.Value, CRLF))
	case BlobString:
		b.WriteString(fmt.Sprintf("%c%d%s%s%s", TypeBlob, len(n.Value), CRLF, n.Value, CRLF))
	case Null:
		b.WriteString(fmt.Sprintf("%c%s", TypeNull, CRLF))
	case Double:
		b.WriteString(fmt.Sprintf("%c%s%s", TypeDouble, formatDouble(n.Value), CRLF))
	case Boolean:
		v := 'f'
		if n.Value {
			v = 't'
		}
		b.WriteString(fmt.Sprintf("%c%c%s", TypeBoolean, v, CRLF))
	case VerbatimString:
		payload := n.Format + ":" + n.Value
		b.WriteString(fmt.Sprintf("%c%d%s%s%s", TypeVerbatim, len(payload), CRLF, payload, CRLF))
	case Array:
		encodeAggregate(b, TypeArray, n.Elements)
	case Set:
		encodeAggregate(b, TypeSet, n.Elements)
	case Map:
		b.WriteString(fmt.Sprintf("%c%d%s", TypeMap, len(n.Entries), CRLF))
		for _, e := range n.Entries {
			encode(b, e.Key)
			encode(b, e.Value)
		}
	default:
		panic(fmt.Sprintf("resp: unknown node %T", node))
	}
}

func encodeAggregate(b *strings.Builder, tp byte, elems []Node) {
	b.WriteString(fmt.Sprintf("%c%d%s", tp, len(elems), CRLF))
	for _, elem := range elems {
		encode(b, elem)
	}
}

func formatDouble(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "nan"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
