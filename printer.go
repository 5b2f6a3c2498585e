// printer.go: value rendering
//
// FormatValue renders a Value as Wander source. For data values the
// rendering round-trips: running the rendered text yields an equal
// value. Lambdas and host-function references have no source form and
// render as opaque markers.
package wander

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FormatValue renders v as Wander source text.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNothing:
		return "nothing"
	case VTBoolean:
		return strconv.FormatBool(v.Data.(bool))
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTString:
		return quoteString(v.Data.(string))
	case VTLambda:
		return "[lambda]"
	case VTHostFunction:
		return "[function]"
	case VTList:
		return "[" + joinValues(v.Data.([]Value)) + "]"
	case VTTuple:
		return "'(" + joinValues(v.Data.([]Value)) + ")"
	case VTSet:
		return "#(" + joinValues(v.Data.([]Value)) + ")"
	case VTRecord:
		fields := v.Data.(map[string]Value)
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, len(names))
		for i, name := range names {
			parts[i] = name + ": " + FormatValue(fields[name])
		}
		return "{" + strings.Join(parts, " ") + "}"
	case VTHostValue:
		hv := v.Data.(HostValue)
		if s, ok := hv.Data.(fmt.Stringer); ok {
			return "[host value " + s.String() + "]"
		}
		return "[host value]"
	default:
		return fmt.Sprintf("Value(%d)", int(v.Tag))
	}
}

func joinValues(vs []Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = FormatValue(v)
	}
	return strings.Join(parts, " ")
}

// quoteString re-escapes with the same table the lexer accepts, so
// rendered strings always lex.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(ch)
		}
	}
	b.WriteByte('"')
	return b.String()
}
