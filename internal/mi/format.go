package mi

import "strings"

// Format renders a Record back to its canonical MI wire form. It is the
// inverse of ParseLine: parsing Format's output reproduces an equal Record.
func (r Record) Format() string {
	var b strings.Builder

	if r.Kind == RecordPrompt {
		return "(gdb)"
	}

	if r.Token != nil {
		b.WriteString(strconv64(*r.Token))
	}

	if r.Kind == RecordStream {
		b.WriteByte(streamSigilFor(r.StreamKind))
		b.WriteString(escapeCString(r.Text))
		return b.String()
	}

	switch r.Kind {
	case RecordResult:
		b.WriteByte('^')
	case RecordExecAsync:
		b.WriteByte('*')
	case RecordStatusAsync:
		b.WriteByte('+')
	case RecordNotifyAsync:
		b.WriteByte('=')
	}
	b.WriteString(r.Class)
	for _, kv := range r.Payload {
		b.WriteByte(',')
		b.WriteString(formatResult(kv))
	}
	return b.String()
}

func formatResult(kv KeyValue) string {
	return kv.Key + "=" + formatValue(kv.Value)
}

func formatValue(v Value) string {
	switch v.Kind {
	case ValueString:
		return escapeCString(v.Str)
	case ValueTuple:
		parts := make([]string, len(v.Tuple))
		for i, kv := range v.Tuple {
			parts[i] = formatResult(kv)
		}
		return "{" + strings.Join(parts, ",") + "}"
	case ValueList:
		parts := make([]string, len(v.List))
		for i, item := range v.List {
			// A single-entry tuple in a list position is, per the parser's
			// collapsing rule, indistinguishable from a promoted
			// `name=value` result — serialise it back in that form, which
			// is what real MI output for e.g. `stack=[frame=...]` looks like.
			if item.Kind == ValueTuple && len(item.Tuple) == 1 {
				parts[i] = formatResult(item.Tuple[0])
			} else {
				parts[i] = formatValue(item)
			}
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		return ""
	}
}

// escapeCString renders s as a quoted MI string, the exact inverse of the
// escape decoding ParseLine performs.
func escapeCString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case 0:
			b.WriteString(`\0`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func strconv64(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
