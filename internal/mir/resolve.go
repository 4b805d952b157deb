package mir

import (
	"fmt"

	"github.com/pin1yin1/pin1c/internal/ast"
	"github.com/pin1yin1/pin1c/internal/ir"
)

// ResolveType converts a parsed type expression into its resolved IR
// type. A bare zheng3/fu2 with no explicit width defaults to 64 bits
// (i64/f64); a bare zheng3 with no explicit sign defaults to signed.
// Three bare names (bool, isize, usize) are recognized directly as
// primitives rather than user complex types, since the language has no
// other surface syntax to name them.
func ResolveType(t ast.TypeExpr) (ir.Type, error) {
	decs, err := resolveDecorators(typeDecorators(t))
	if err != nil {
		return ir.Type{}, err
	}

	switch n := t.(type) {
	case *ast.PrimitiveTypeExpr:
		var p ir.PrimitiveType
		switch n.Base {
		case "zheng3":
			width := n.Width
			if width == 0 {
				width = 64
			}
			signed := true
			if n.Signed != nil {
				signed = *n.Signed
			}
			p, err = integerPrimitive(width, signed)
		case "fu2":
			width := n.Width
			if width == 0 {
				width = 64
			}
			p, err = floatPrimitive(width)
		default:
			return ir.Type{}, fmt.Errorf("unknown primitive base %q", n.Base)
		}
		if err != nil {
			return ir.Type{}, err
		}
		if len(decs) == 0 {
			return ir.NewPrimitive(p), nil
		}
		return ir.NewComplex(ir.ComplexType{Decorators: decs, Name: string(p)}), nil

	case *ast.ComplexTypeExpr:
		if len(decs) == 0 {
			switch n.Name.Name {
			case "bool":
				return ir.NewPrimitive(ir.Bool), nil
			case "isize":
				return ir.NewPrimitive(ir.Isize), nil
			case "usize":
				return ir.NewPrimitive(ir.Usize), nil
			}
		}
		return ir.NewComplex(ir.ComplexType{Decorators: decs, Name: n.Name.Name}), nil
	}
	return ir.Type{}, fmt.Errorf("unhandled type expression %T", t)
}

func typeDecorators(t ast.TypeExpr) []ast.Decorator {
	switch n := t.(type) {
	case *ast.PrimitiveTypeExpr:
		return n.Decorators
	case *ast.ComplexTypeExpr:
		return n.Decorators
	}
	return nil
}

func resolveDecorators(in []ast.Decorator) ([]ir.TypeDecorator, error) {
	out := make([]ir.TypeDecorator, len(in))
	for i, d := range in {
		var kind ir.TypeDecoratorKind
		switch d.Kind {
		case ast.DecoratorKindConst:
			kind = ir.DecoratorConst
		case ast.DecoratorKindArray:
			kind = ir.DecoratorArray
		case ast.DecoratorKindRef:
			kind = ir.DecoratorReference
		case ast.DecoratorKindPointer:
			kind = ir.DecoratorPointer
		default:
			return nil, fmt.Errorf("unknown decorator kind %v", d.Kind)
		}
		out[i] = ir.TypeDecorator{Kind: kind, N: d.N}
	}
	return out, nil
}

func integerPrimitive(width int, signed bool) (ir.PrimitiveType, error) {
	switch width {
	case 8:
		if signed {
			return ir.I8, nil
		}
		return ir.U8, nil
	case 16:
		if signed {
			return ir.I16, nil
		}
		return ir.U16, nil
	case 32:
		if signed {
			return ir.I32, nil
		}
		return ir.U32, nil
	case 64:
		if signed {
			return ir.I64, nil
		}
		return ir.U64, nil
	case 128:
		if signed {
			return ir.I128, nil
		}
		return ir.U128, nil
	}
	return "", fmt.Errorf("unsupported integer width %d", width)
}

func floatPrimitive(width int) (ir.PrimitiveType, error) {
	switch width {
	case 32:
		return ir.F32, nil
	case 64:
		return ir.F64, nil
	}
	return "", fmt.Errorf("unsupported float width %d", width)
}
