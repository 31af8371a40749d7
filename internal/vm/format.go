package vm

import (
	"strconv"
	"strings"
)

// FormatValue renders a value the way binder lines show it: strings are
// quoted, floats always carry a decimal point so Int and Float results
// stay distinguishable.
func FormatValue(v Value) string {
	switch v.Kind {
	case VKUnit:
		return "()"
	case VKInt:
		return strconv.FormatInt(v.Int, 10)
	case VKFloat:
		return formatFloat(v.Float)
	case VKBool:
		return strconv.FormatBool(v.Bool)
	case VKString:
		return strconv.Quote(v.Str)
	case VKTuple:
		var sb strings.Builder
		sb.WriteByte('(')
		for i, el := range v.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(FormatValue(el))
		}
		sb.WriteByte(')')
		return sb.String()
	case VKFn:
		if v.Fn != nil {
			return "<fn " + v.Fn.Name + ">"
		}
		return "<fn>"
	case VKProbe:
		if v.Probe != nil {
			return "<probe " + v.Probe.Status.String() + ">"
		}
		return "<probe>"
	default:
		return "<invalid>"
	}
}

// DisplayValue renders a value for print output. Top-level strings print
// raw; strings nested inside tuples keep their quotes.
func DisplayValue(v Value) string {
	if v.Kind == VKString {
		return v.Str
	}
	return FormatValue(v)
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEI") && s != "NaN" {
		s += ".0"
	}
	return s
}
