package value

import "github.com/golangee/oxide/types"

// Enum is a variant of an enum type, identified by the declaring type
// and the variant's ordinal (§3: "an enum variant (type id + variant
// index)"). Unlike Vec/Struct it carries no payload, so it is copied
// by value like a scalar — there is nothing to alias.
type Enum struct {
	Type    *types.EnumType
	Variant int
}

func (Enum) Kind() Kind { return KEnum }

func (e Enum) VariantName() string {
	if e.Type == nil || e.Variant < 0 || e.Variant >= len(e.Type.Variants) {
		return ""
	}

	return e.Type.Variants[e.Variant]
}
