package formula

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Evaluation walks the validated AST with a value environment. Comparisons
// yield 1 or 0; the conditional treats any non-zero condition as true.
// Every arithmetic step stays in decimal, so component chains like
// BASIC * 0.4 carry no float error.

func evalNode(n node, values map[string]decimal.Decimal) (decimal.Decimal, error) {
	switch t := n.(type) {
	case numberNode:
		d, err := decimal.NewFromString(t.text)
		if err != nil {
			return decimal.Zero, fmt.Errorf("malformed number %q", t.text)
		}
		return d, nil
	case identNode:
		v, ok := values[t.name]
		if !ok {
			return decimal.Zero, fmt.Errorf("missing value for component %s", t.name)
		}
		return v, nil
	case unaryNode:
		v, err := evalNode(t.operand, values)
		if err != nil {
			return decimal.Zero, err
		}
		if t.op == tokenMinus {
			return v.Neg(), nil
		}
		return v, nil
	case binaryNode:
		return evalBinary(t, values)
	case condNode:
		cond, err := evalNode(t.cond, values)
		if err != nil {
			return decimal.Zero, err
		}
		if !cond.IsZero() {
			return evalNode(t.then, values)
		}
		return evalNode(t.els, values)
	case callNode:
		return evalCall(t, values)
	default:
		return decimal.Zero, fmt.Errorf("unsupported expression node %T", n)
	}
}

func evalBinary(n binaryNode, values map[string]decimal.Decimal) (decimal.Decimal, error) {
	left, err := evalNode(n.left, values)
	if err != nil {
		return decimal.Zero, err
	}
	right, err := evalNode(n.right, values)
	if err != nil {
		return decimal.Zero, err
	}
	switch n.op {
	case tokenPlus:
		return left.Add(right), nil
	case tokenMinus:
		return left.Sub(right), nil
	case tokenStar:
		return left.Mul(right), nil
	case tokenSlash:
		if right.IsZero() {
			return decimal.Zero, fmt.Errorf("division by zero")
		}
		return left.Div(right), nil
	case tokenPercent:
		if right.IsZero() {
			return decimal.Zero, fmt.Errorf("modulo by zero")
		}
		return left.Mod(right), nil
	case tokenPower:
		return left.Pow(right), nil
	case tokenLT:
		return boolDecimal(left.LessThan(right)), nil
	case tokenLE:
		return boolDecimal(left.LessThanOrEqual(right)), nil
	case tokenGT:
		return boolDecimal(left.GreaterThan(right)), nil
	case tokenGE:
		return boolDecimal(left.GreaterThanOrEqual(right)), nil
	case tokenEQ:
		return boolDecimal(left.Equal(right)), nil
	case tokenNE:
		return boolDecimal(!left.Equal(right)), nil
	default:
		return decimal.Zero, fmt.Errorf("unsupported operator")
	}
}

func evalCall(n callNode, values map[string]decimal.Decimal) (decimal.Decimal, error) {
	args := make([]decimal.Decimal, len(n.args))
	for i, a := range n.args {
		v, err := evalNode(a, values)
		if err != nil {
			return decimal.Zero, err
		}
		args[i] = v
	}
	switch n.fn {
	case "min":
		out := args[0]
		for _, a := range args[1:] {
			if a.LessThan(out) {
				out = a
			}
		}
		return out, nil
	case "max":
		out := args[0]
		for _, a := range args[1:] {
			if a.GreaterThan(out) {
				out = a
			}
		}
		return out, nil
	case "abs":
		return args[0].Abs(), nil
	case "round":
		places := int32(0)
		if len(args) == 2 {
			places = int32(args[1].IntPart())
		}
		return args[0].Round(places), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown function %q", n.fn)
	}
}

func boolDecimal(b bool) decimal.Decimal {
	if b {
		return decimal.NewFromInt(1)
	}
	return decimal.Zero
}
