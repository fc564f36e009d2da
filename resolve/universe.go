package resolve

import "ctfe/types"

// universe is the set of types visible in every file without being declared:
// the primitive types.
var universe = make(map[string]types.Type)

func init() {
	for _, prim := range types.PrimitiveTypes() {
		universe[prim.Repr()] = prim
	}
}

// lookupUniverse looks up a type defined in the universe.
func lookupUniverse(name string) (types.Type, bool) {
	typ, ok := universe[name]
	return typ, ok
}
