package lower

import (
	"ctfe/report"
	"ctfe/sema"
	"ctfe/types"
	"ctfe/util"
	"math"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
)

// Lowerer is responsible for converting the resolved declarations of a
// semantic context into an LLVM module: declared struct types become named
// LLVM types and evaluated constants become immutable globals.
type Lowerer struct {
	sema *sema.Sema

	// mod is the LLVM module being generated.
	mod *ir.Module

	// structs maps declared struct types to their named LLVM types.
	structs map[*types.StructType]*lltypes.StructType
}

// Lower converts all the types and constants of s into a new LLVM module.  The
// module should only be lowered if no errors were produced while resolving s.
func Lower(s *sema.Sema, moduleName, targetTriple string) *ir.Module {
	l := &Lowerer{
		sema:    s,
		mod:     ir.NewModule(),
		structs: make(map[*types.StructType]*lltypes.StructType),
	}

	l.mod.SourceFilename = moduleName
	l.mod.TargetTriple = targetTriple

	l.lowerTypeDefs()
	l.lowerConstants()

	return l.mod
}

// lowerTypeDefs generates the named LLVM types of all declared struct types.
// All the named types are created before any fields are converted so that
// structs may point to each other.  Aliases are transparent and produce no
// type definitions.
func (l *Lowerer) lowerTypeDefs() {
	var declared []*types.StructType

	for _, name := range l.sema.TypeNames() {
		typ, _ := l.sema.LookupType(name)

		if st, ok := typ.(*types.StructType); ok && st.Name == name {
			llst := &lltypes.StructType{}
			l.mod.NewTypeDef(name, llst)
			l.structs[st] = llst

			declared = append(declared, st)
		}
	}

	for _, st := range declared {
		l.structs[st].Fields = l.convFields(st)
	}
}

// lowerConstants generates an immutable global for each evaluated constant.
func (l *Lowerer) lowerConstants() {
	for _, c := range l.sema.Constants() {
		if c.Err != nil || c.Color != sema.ColorBlack {
			continue
		}

		if init := l.convConstant(c); init != nil {
			glob := l.mod.NewGlobalDef(c.Name, init)
			glob.Immutable = true
		}
	}
}

// -----------------------------------------------------------------------------

// convConstant converts the value of a constant into an LLVM constant of its
// declared type.  Untyped constants are 64-bit integers.  It returns nil for
// constants with no scalar representation.
func (l *Lowerer) convConstant(c *sema.Constant) constant.Constant {
	switch v := c.Type.(type) {
	case nil:
		return constant.NewInt(lltypes.I64, int64(c.Value))
	case types.PrimitiveType:
		switch v {
		case types.PrimF32:
			return constant.NewFloat(lltypes.Float, float64(math.Float32frombits(uint32(c.Value))))
		case types.PrimF64:
			return constant.NewFloat(lltypes.Double, math.Float64frombits(c.Value))
		case types.PrimBool:
			return constant.NewBool(c.Value != 0)
		case types.PrimUnit:
			return nil
		case types.PrimRawptr:
			return l.convAddress(c.Value, v)
		default:
			// LLVM prints integer constants as signed values
			intType := l.convPrimType(v).(*lltypes.IntType)
			return constant.NewInt(intType, util.SignExtend(c.Value, intType.BitSize))
		}
	case *types.PointerType:
		return l.convAddress(c.Value, v)
	}

	return nil
}

// convAddress converts an integer address into a pointer constant.
func (l *Lowerer) convAddress(addr uint64, typ types.Type) constant.Constant {
	addrType := lltypes.NewInt(8 * l.sema.PointerSize())
	return constant.NewIntToPtr(constant.NewInt(addrType, util.SignExtend(addr, addrType.BitSize)), l.convType(typ))
}

// -----------------------------------------------------------------------------

// convType converts a type into an LLVM type.
func (l *Lowerer) convType(typ types.Type) lltypes.Type {
	switch v := typ.(type) {
	case types.PrimitiveType:
		return l.convPrimType(v)
	case *types.PointerType:
		return lltypes.NewPointer(l.convType(v.ElemType))
	case *types.ArrayType:
		return lltypes.NewArray(v.Len, l.convType(v.ElemType))
	case *types.StructType:
		if llst, ok := l.structs[v]; ok {
			return llst
		}

		return lltypes.NewStruct(l.convFields(v)...)
	}

	report.ReportICE("lowering of unknown type: %s", typ.Repr())
	return nil
}

// convFields converts the field types of a struct.
func (l *Lowerer) convFields(st *types.StructType) []lltypes.Type {
	return util.Map(st.Fields, func(field types.StructField) lltypes.Type {
		return l.convType(field.Type)
	})
}

// convPrimType converts a primitive type into an LLVM type.
func (l *Lowerer) convPrimType(pt types.PrimitiveType) lltypes.Type {
	switch pt {
	case types.PrimI8, types.PrimU8:
		return lltypes.I8
	case types.PrimI16, types.PrimU16:
		return lltypes.I16
	case types.PrimI32, types.PrimU32:
		return lltypes.I32
	case types.PrimI64, types.PrimU64:
		return lltypes.I64
	case types.PrimF32:
		return lltypes.Float
	case types.PrimF64:
		return lltypes.Double
	case types.PrimBool:
		return lltypes.I1
	case types.PrimUnit:
		return lltypes.NewStruct()
	case types.PrimRawptr:
		return lltypes.NewPointer(lltypes.I8)
	default:
		// isize and usize
		return lltypes.NewInt(8 * l.sema.PointerSize())
	}
}
