package cmd

import (
	"ctfe/eval"
	"ctfe/lower"
	"ctfe/sema"
	"ctfe/types"
	"ctfe/util"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"

	"github.com/kr/pretty"
)

// EmitValues writes one `NAME = value` line for each evaluated constant in
// declaration order.  Constants which failed to evaluate or which have no
// scalar value are omitted.
func (c *Compiler) EmitValues(w io.Writer) {
	for _, k := range c.sema.Constants() {
		if k.Err != nil || k.Color != sema.ColorBlack {
			continue
		}

		if value, ok := c.formatValue(k); ok {
			fmt.Fprintf(w, "%s = %s\n", k.Name, value)
		}
	}
}

// formatValue formats the value of a constant according to its declared type.
// Untyped constants are displayed as unsigned 64-bit integers.
func (c *Compiler) formatValue(k *sema.Constant) (string, bool) {
	switch v := k.Type.(type) {
	case nil:
		return strconv.FormatUint(k.Value, 10), true
	case types.PrimitiveType:
		switch v {
		case types.PrimF32:
			return strconv.FormatFloat(float64(math.Float32frombits(uint32(k.Value))), 'g', -1, 32), true
		case types.PrimF64:
			return strconv.FormatFloat(math.Float64frombits(k.Value), 'g', -1, 64), true
		case types.PrimBool:
			return strconv.FormatBool(k.Value != 0), true
		case types.PrimUnit:
			return "", false
		case types.PrimRawptr:
			return c.formatAddress(k.Value), true
		}

		bits := 8 * eval.EvalSizeOf(c.sema, v)
		if v.IsSigned() {
			return strconv.FormatInt(util.SignExtend(k.Value, bits), 10), true
		}

		return strconv.FormatUint(util.ZeroExtend(k.Value, bits), 10), true
	case *types.PointerType:
		return c.formatAddress(k.Value), true
	}

	return "", false
}

// formatAddress formats a pointer value.
func (c *Compiler) formatAddress(addr uint64) string {
	return fmt.Sprintf("0x%x", util.ZeroExtend(addr, 8*c.sema.PointerSize()))
}

// -----------------------------------------------------------------------------

// EmitLLVM writes the LLVM module of the evaluated declarations.
func (c *Compiler) EmitLLVM(w io.Writer) {
	mod := lower.Lower(c.sema, filepath.Base(c.rootPath), c.cfg.TargetTriple())
	fmt.Fprintln(w, mod)
}

// -----------------------------------------------------------------------------

// debugDump is the summary of a run displayed by `--emit debug`.
type debugDump struct {
	Target      string
	PointerSize uint64
	Types       []debugType
	Constants   []debugConstant
}

// debugType describes the layout of a declared type.
type debugType struct {
	Name    string
	Repr    string
	Size    uint64
	Align   uint64
	Offsets []uint64
}

// debugConstant describes the state of a declared constant.
type debugConstant struct {
	Name  string
	Type  string
	Value uint64
	Err   string
}

// EmitDebug writes a pretty-printed dump of the type and constant tables.
func (c *Compiler) EmitDebug(w io.Writer) {
	dump := debugDump{
		Target:      c.cfg.TargetTriple(),
		PointerSize: c.sema.PointerSize(),
	}

	for _, name := range c.sema.TypeNames() {
		typ, _ := c.sema.LookupType(name)

		dt := debugType{
			Name:  name,
			Repr:  typ.Repr(),
			Size:  eval.EvalSizeOf(c.sema, typ),
			Align: eval.EvalAlignOf(c.sema, typ),
		}

		// the repr of a declared struct is just its name
		if st, ok := typ.(*types.StructType); ok {
			dt.Repr = (&types.StructType{Fields: st.Fields}).Repr()
			dt.Offsets = eval.FieldOffsets(c.sema, st)
		}

		dump.Types = append(dump.Types, dt)
	}

	for _, k := range c.sema.Constants() {
		dc := debugConstant{Name: k.Name, Type: "untyped", Value: k.Value}

		if k.Type != nil {
			dc.Type = k.Type.Repr()
		}

		if k.Err != nil {
			dc.Err = k.Err.Error()
		} else if k.Color != sema.ColorBlack {
			dc.Err = "not evaluated"
		}

		dump.Constants = append(dump.Constants, dc)
	}

	fmt.Fprintf(w, "%# v\n", pretty.Formatter(dump))
}
