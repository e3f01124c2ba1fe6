package checker

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/nerdalytics/tinywhale/internal/ast"
	"github.com/nerdalytics/tinywhale/internal/diagnostics"
	"github.com/nerdalytics/tinywhale/internal/ir"
	"github.com/nerdalytics/tinywhale/internal/typesystem"
)

// signedBounds returns the inclusive [min, max] range of a signed n-bit
// integer.
func signedBounds(bits int) (min, max *big.Int) {
	max = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bits-1)), big.NewInt(1))
	min = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), uint(bits-1)))
	return min, max
}

// checkIntLiteral parses nodeId's literal text as an arbitrary-precision
// integer (spec §4.4, §9 "Bigint arithmetic"), range-checks it against the
// base primitive, and, if the target is refined, against its constraints.
func (c *Checker) checkIntLiteral(nodeId ast.Id, expectedType typesystem.TypeId, checking bool) Result {
	text := c.Toks.Get(c.Nodes.Get(nodeId).TokenId).PayloadString(c.Strs)

	target := expectedType
	if !checking {
		target = typesystem.I32
	}
	if checking && c.Types.IsFloatPrimitive(c.Types.ToWasmType(target)) {
		c.emit(diagnostics.LiteralKindMismatch, nodeId, map[string]string{
			"kind": "integer", "expected": c.Types.TypeName(target),
		})
		return Invalid
	}

	value, ok := parseBigInt(text)
	if !ok {
		c.emit(diagnostics.IntegerOutOfRange, nodeId, map[string]string{
			"value": text, "type": c.Types.TypeName(target),
		})
		return Invalid
	}

	base := c.Types.ToWasmType(target)
	bits := c.Types.BitWidth(base)
	min, max := signedBounds(bits)
	if value.Cmp(min) < 0 || value.Cmp(max) > 0 {
		c.emit(diagnostics.IntegerOutOfRange, nodeId, map[string]string{
			"value": value.String(), "type": c.Types.TypeName(base),
		})
		return Invalid
	}

	if c.Types.IsRefinedType(target) {
		rmin, rmax := c.Types.GetConstraints(target)
		if rmin.Present && value.Cmp(rmin.Value) < 0 {
			c.emit(diagnostics.ConstraintViolation, nodeId, map[string]string{
				"value": value.String(), "bound": "min=" + rmin.Value.String(),
			})
			return Invalid
		}
		if rmax.Present && value.Cmp(rmax.Value) > 0 {
			c.emit(diagnostics.ConstraintViolation, nodeId, map[string]string{
				"value": value.String(), "bound": "max=" + rmax.Value.String(),
			})
			return Invalid
		}
	}

	low, high := splitBits(value, bits)
	inst := c.Insts.Add(ir.Instruction{Kind: ir.IntConst, Arg0: low, Arg1: high, ParseNodeId: nodeId, TypeId: target})
	return Result{Inst: inst, Type: target}
}

// parseBigInt parses the tokenizer's digit+[eE][+-]?digit+ integer-literal
// grammar. A negative exponent is rejected per spec §4.4.
func parseBigInt(text string) (*big.Int, bool) {
	mantissa, exp := text, 0
	if i := strings.IndexAny(text, "eE"); i >= 0 {
		mantissa = text[:i]
		e, err := strconv.Atoi(text[i+1:])
		if err != nil {
			return nil, false
		}
		if e < 0 {
			return nil, false
		}
		exp = e
	}

	value, ok := new(big.Int).SetString(mantissa, 10)
	if !ok {
		return nil, false
	}
	if exp > 0 {
		value = new(big.Int).Mul(value, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil))
	}
	return value, true
}

// splitBits reduces value to its 64-bit two's-complement pattern and splits
// it into low/high 32-bit halves; bits is not consulted (spec §9: "narrow to 64 bits only
// when emitting IntConst, splitting... sign-extended per the base
// primitive's signedness").
func splitBits(value *big.Int, bits int) (low, high uint32) {
	u := new(big.Int).Set(value)
	if u.Sign() < 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), 64)
		u = new(big.Int).Add(u, mod)
	}
	mask64 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(1))
	u.And(u, mask64)

	bytes := u.Bytes()
	var buf [8]byte
	copy(buf[8-len(bytes):], bytes)
	full := uint64(0)
	for _, b := range buf {
		full = full<<8 | uint64(b)
	}
	return uint32(full), uint32(full >> 32)
}

// checkFloatLiteral parses nodeId's literal text as a double, storing it in
// the float pool and emitting FloatConst (spec §4.4).
func (c *Checker) checkFloatLiteral(nodeId ast.Id, expectedType typesystem.TypeId, checking bool) Result {
	text := c.Toks.Get(c.Nodes.Get(nodeId).TokenId).PayloadString(c.Strs)

	target := expectedType
	if !checking {
		target = typesystem.F64
	}
	if checking && c.Types.IsIntegerPrimitive(c.Types.ToWasmType(target)) {
		c.emit(diagnostics.LiteralKindMismatch, nodeId, map[string]string{
			"kind": "float", "expected": c.Types.TypeName(target),
		})
		return Invalid
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		c.emit(diagnostics.F32Overflow, nodeId, map[string]string{
			"type": c.Types.TypeName(target), "value": text,
		})
		return Invalid
	}

	if c.Types.ToWasmType(target) == typesystem.F32 {
		f32 := float32(value)
		if isOverflowToF32(value, float64(f32)) {
			c.emit(diagnostics.F32Overflow, nodeId, map[string]string{
				"type": "f32", "value": text,
			})
			return Invalid
		}
		value = float64(f32)
	}

	idx := c.Floats.Add(value)
	inst := c.Insts.Add(ir.Instruction{Kind: ir.FloatConst, Arg0: idx, ParseNodeId: nodeId, TypeId: target})
	return Result{Inst: inst, Type: target}
}

func isOverflowToF32(original, narrowed float64) bool {
	return (original != 0 && narrowed == 0) || (math.IsInf(narrowed, 0) && !math.IsInf(original, 0))
}
