package value

import (
	"strconv"
	"strings"
)

// KindName is the source-level type name of a runtime kind, as
// reported by the typeof builtin (§6).
func KindName(k Kind) string {
	switch k {
	case KNil:
		return "nil"
	case KBool:
		return "bool"
	case KInt:
		return "int"
	case KFloat:
		return "float"
	case KStr:
		return "str"
	case KVec:
		return "vec"
	case KStruct:
		return "struct"
	case KEnum:
		return "enum"
	case KFn:
		return "fn"
	case KUninit:
		return "uninit"
	default:
		return "?"
	}
}

// TypeOf names the concrete runtime type of v the way typeof (§6)
// reports it: vec<T> names its element type, struct/enum values name
// their declared type.
func TypeOf(v Value) string {
	switch tv := v.(type) {
	case *Vec:
		return "vec<" + tv.ElemType.String() + ">"
	case *Struct:
		return tv.Type.Name
	case Enum:
		return tv.Type.Name
	default:
		return KindName(v.Kind())
	}
}

// StringOf converts v the way `+` between a string and a non-string
// does (§4.4): nil -> "nil", bool -> "true"/"false", int/float ->
// decimal (float keeps at least one fractional digit), vec -> "[vec]
// [elements...]", struct instance -> "<Type>", enum variant ->
// "<EnumName>::<VariantName>", callable -> "<fn>".
func StringOf(v Value) string {
	switch tv := v.(type) {
	case Nil:
		return "nil"
	case Bool:
		if tv {
			return "true"
		}

		return "false"
	case Int:
		return strconv.FormatInt(int64(tv), 10)
	case Float:
		return formatFloat(float64(tv))
	case Str:
		return string(tv)
	case UninitValue:
		return "uninit"
	case *Vec:
		parts := make([]string, len(tv.Elems()))
		for i, e := range tv.Elems() {
			parts[i] = StringOf(e)
		}

		return "[vec] [" + strings.Join(parts, ", ") + "]"
	case *Struct:
		return "<" + tv.Type.Name + ">"
	case Enum:
		return "<" + tv.Type.Name + "::" + tv.VariantName() + ">"
	default:
		return "<fn>"
	}
}

// formatFloat keeps at least one fractional digit and never switches to
// exponential notation (§4.4 Open Question "float-to-string formatting
// precision": resolved in favor of always showing the decimal point, a
// plain decimal even for very large/small magnitudes, since `strconv`'s
// shortest-round-trip format drops the point for whole numbers like
// 2.0 -> "2" and the 'g' verb would print 1e21 as "1e+21").
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		return s + ".0"
	}

	return s
}
