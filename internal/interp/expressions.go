package interp

import (
	"math"
	"strings"

	"github.com/cwbudde/go-pascal/internal/ast"
	"github.com/cwbudde/go-pascal/pkg/token"
)

// evalExpression evaluates an expression node to a runtime value.
func (i *Interpreter) evalExpression(expr ast.Expression) (Value, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return &IntegerValue{Value: e.Value}, nil
	case *ast.FloatLiteral:
		return &FloatValue{Value: e.Value}, nil
	case *ast.StringLiteral:
		return &StringValue{Value: e.Value}, nil
	case *ast.BooleanLiteral:
		return &BooleanValue{Value: e.Value}, nil
	case *ast.NilLiteral:
		return &NilValue{}, nil
	case *ast.Identifier:
		return i.lookupName(e.Value, e.Pos())
	case *ast.UnaryExpression:
		return i.evalUnary(e)
	case *ast.BinaryExpression:
		return i.evalBinary(e)
	case *ast.InExpression:
		return i.evalIn(e)
	case *ast.SetLiteral:
		return i.evalSetLiteral(e)
	case *ast.CallExpression:
		return i.callFunction(e.Function.Value, e.Arguments, e.Pos())
	case *ast.IndexExpression:
		return i.evalIndex(e)
	case *ast.FieldExpression:
		return i.evalField(e)
	case *ast.DereferenceExpression:
		return i.evalDereference(e)
	case *ast.AddressOfExpression:
		return i.evalAddressOf(e)
	case *ast.EofExpression:
		return i.evalEof(e)
	default:
		return nil, newError(TypeError, expr.Pos(), "cannot evaluate %T", expr)
	}
}

func (i *Interpreter) evalUnary(e *ast.UnaryExpression) (Value, error) {
	operand, err := i.evalExpression(e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case token.MINUS:
		switch v := operand.(type) {
		case *IntegerValue:
			return &IntegerValue{Value: -v.Value}, nil
		case *FloatValue:
			return &FloatValue{Value: -v.Value}, nil
		}
		return nil, newError(TypeError, e.Pos(), "unary - requires a numeric operand, got %s", operand.Type())
	case token.PLUS:
		switch operand.(type) {
		case *IntegerValue, *FloatValue:
			return operand, nil
		}
		return nil, newError(TypeError, e.Pos(), "unary + requires a numeric operand, got %s", operand.Type())
	case token.NOT:
		return &BooleanValue{Value: !isTruthy(operand)}, nil
	default:
		return nil, newError(TypeError, e.Pos(), "unknown unary operator %s", e.Token.Literal)
	}
}

func (i *Interpreter) evalBinary(e *ast.BinaryExpression) (Value, error) {
	left, err := i.evalExpression(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpression(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case token.AND:
		return &BooleanValue{Value: isTruthy(left) && isTruthy(right)}, nil
	case token.OR:
		return &BooleanValue{Value: isTruthy(left) || isTruthy(right)}, nil
	case token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.DIV, token.MOD:
		return i.evalArithmetic(e, left, right)
	case token.EQ, token.NOT_EQ, token.LESS, token.GREATER, token.LESS_EQ, token.GREATER_EQ:
		return i.evalComparison(e, left, right)
	default:
		return nil, newError(TypeError, e.Pos(), "unknown binary operator %s", e.Token.Literal)
	}
}

// evalArithmetic applies the numeric and string rules: a real operand
// widens the result to real, / always yields real, div and mod require
// integers, and + concatenates when either operand is a string.
func (i *Interpreter) evalArithmetic(e *ast.BinaryExpression, left, right Value) (Value, error) {
	if e.Operator == token.PLUS {
		_, ls := left.(*StringValue)
		_, rs := right.(*StringValue)
		if ls || rs {
			return &StringValue{Value: left.String() + right.String()}, nil
		}
	}

	li, lIsInt := left.(*IntegerValue)
	ri, rIsInt := right.(*IntegerValue)

	switch e.Operator {
	case token.DIV:
		if !lIsInt || !rIsInt {
			return nil, newError(TypeError, e.Pos(), "div requires integer operands")
		}
		if ri.Value == 0 {
			return nil, newError(TypeError, e.Pos(), "division by zero")
		}
		return &IntegerValue{Value: li.Value / ri.Value}, nil
	case token.MOD:
		if !lIsInt || !rIsInt {
			return nil, newError(TypeError, e.Pos(), "mod requires integer operands")
		}
		if ri.Value == 0 {
			return nil, newError(TypeError, e.Pos(), "division by zero")
		}
		return &IntegerValue{Value: li.Value % ri.Value}, nil
	}

	lf, lok := arithmeticValue(left)
	rf, rok := arithmeticValue(right)
	if !lok || !rok {
		return nil, newError(TypeError, e.Pos(), "%s requires numeric operands, got %s and %s",
			e.Token.Literal, left.Type(), right.Type())
	}

	if e.Operator == token.SLASH {
		if rf == 0 {
			return nil, newError(TypeError, e.Pos(), "division by zero")
		}
		return &FloatValue{Value: lf / rf}, nil
	}

	if lIsInt && rIsInt {
		switch e.Operator {
		case token.PLUS:
			return &IntegerValue{Value: li.Value + ri.Value}, nil
		case token.MINUS:
			return &IntegerValue{Value: li.Value - ri.Value}, nil
		case token.ASTERISK:
			return &IntegerValue{Value: li.Value * ri.Value}, nil
		}
	}

	switch e.Operator {
	case token.PLUS:
		return &FloatValue{Value: lf + rf}, nil
	case token.MINUS:
		return &FloatValue{Value: lf - rf}, nil
	default:
		return &FloatValue{Value: lf * rf}, nil
	}
}

// evalComparison compares numerically after promotion, lexicographically
// for strings, and as 0/1 for booleans. Equality between reals tolerates
// FloatEqualityEpsilon.
func (i *Interpreter) evalComparison(e *ast.BinaryExpression, left, right Value) (Value, error) {
	ls, lIsStr := left.(*StringValue)
	rs, rIsStr := right.(*StringValue)
	if lIsStr && rIsStr {
		return compareResult(e, strings.Compare(ls.Value, rs.Value)), nil
	}

	if e.Operator == token.EQ || e.Operator == token.NOT_EQ {
		if eq, ok := referenceEquality(left, right); ok {
			if e.Operator == token.NOT_EQ {
				eq = !eq
			}
			return &BooleanValue{Value: eq}, nil
		}
	}

	lf, lok := numericValue(left)
	rf, rok := numericValue(right)
	if !lok || !rok {
		return nil, newError(TypeError, e.Pos(), "cannot compare %s and %s", left.Type(), right.Type())
	}

	_, lReal := left.(*FloatValue)
	_, rReal := right.(*FloatValue)
	approx := lReal || rReal

	cmp := 0
	switch {
	case lf < rf:
		cmp = -1
	case lf > rf:
		cmp = 1
	}
	// The tolerance applies to equality only; the ordering operators
	// compare exactly.
	if approx && (e.Operator == token.EQ || e.Operator == token.NOT_EQ) &&
		math.Abs(lf-rf) <= FloatEqualityEpsilon {
		cmp = 0
	}
	return compareResult(e, cmp), nil
}

func compareResult(e *ast.BinaryExpression, cmp int) Value {
	var result bool
	switch e.Operator {
	case token.EQ:
		result = cmp == 0
	case token.NOT_EQ:
		result = cmp != 0
	case token.LESS:
		result = cmp < 0
	case token.GREATER:
		result = cmp > 0
	case token.LESS_EQ:
		result = cmp <= 0
	default:
		result = cmp >= 0
	}
	return &BooleanValue{Value: result}
}

// referenceEquality compares pointers and nil. The second result is false
// when the operands are not pointer-like.
func referenceEquality(left, right Value) (bool, bool) {
	lp, lIsPtr := left.(*PointerValue)
	rp, rIsPtr := right.(*PointerValue)
	_, lIsNil := left.(*NilValue)
	_, rIsNil := right.(*NilValue)

	switch {
	case lIsNil && rIsNil:
		return true, true
	case lIsNil && rIsPtr, lIsPtr && rIsNil:
		return false, true
	case lIsPtr && rIsPtr:
		return lp.Addr == rp.Addr, true
	default:
		return false, false
	}
}

// arithmeticValue converts integers and reals to float64 for promotion.
// Unlike numericValue it rejects booleans: they order as 0/1 in
// comparisons but do not take part in arithmetic.
func arithmeticValue(v Value) (float64, bool) {
	switch val := v.(type) {
	case *IntegerValue:
		return float64(val.Value), true
	case *FloatValue:
		return val.Value, true
	default:
		return 0, false
	}
}

// numericValue converts booleans, integers and reals to float64 for
// promotion. Booleans compare as 0/1.
func numericValue(v Value) (float64, bool) {
	switch val := v.(type) {
	case *IntegerValue:
		return float64(val.Value), true
	case *FloatValue:
		return val.Value, true
	case *BooleanValue:
		if val.Value {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func (i *Interpreter) evalIn(e *ast.InExpression) (Value, error) {
	left, err := i.evalExpression(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpression(e.Set)
	if err != nil {
		return nil, err
	}
	set, ok := right.(*SetValue)
	if !ok {
		return nil, newError(TypeError, e.Pos(), "right operand of in must be a set, got %s", right.Type())
	}
	return &BooleanValue{Value: set.Contains(left)}, nil
}

func (i *Interpreter) evalSetLiteral(e *ast.SetLiteral) (Value, error) {
	set := NewSetValue()
	for _, elem := range e.Elements {
		v, err := i.evalExpression(elem)
		if err != nil {
			return nil, err
		}
		set.Add(v)
	}
	return set, nil
}

// evalIndex reads an array element, linearising the index tuple in
// row-major order with bounds checks.
func (i *Interpreter) evalIndex(e *ast.IndexExpression) (Value, error) {
	arr, err := i.lookupArray(e.Array)
	if err != nil {
		return nil, err
	}
	offset, err := i.arrayOffset(arr, e)
	if err != nil {
		return nil, err
	}
	return arr.Elems[offset], nil
}

// lookupArray resolves an identifier to its array value.
func (i *Interpreter) lookupArray(id *ast.Identifier) (*ArrayValue, error) {
	v, err := i.lookupName(id.Value, id.Pos())
	if err != nil {
		return nil, err
	}
	arr, ok := v.(*ArrayValue)
	if !ok {
		return nil, newError(TypeError, id.Pos(), "%s is not an array", id.Value)
	}
	return arr, nil
}

// arrayOffset evaluates the index expressions and linearises them.
func (i *Interpreter) arrayOffset(arr *ArrayValue, e *ast.IndexExpression) (int, error) {
	indices := make([]int64, len(e.Indices))
	for n, idxExpr := range e.Indices {
		v, err := i.evalExpression(idxExpr)
		if err != nil {
			return 0, err
		}
		iv, ok := v.(*IntegerValue)
		if !ok {
			return 0, newError(TypeError, idxExpr.Pos(), "array index must be an integer, got %s", v.Type())
		}
		indices[n] = iv.Value
	}
	offset, err := arr.Offset(indices)
	if err != nil {
		return 0, newError(BoundsError, e.Pos(), "%s: %s", e.Array.Value, err)
	}
	return offset, nil
}

// evalField reads a record field. The receiver is a record variable or an
// array element holding a record.
func (i *Interpreter) evalField(e *ast.FieldExpression) (Value, error) {
	receiver, err := i.evalExpression(e.Receiver)
	if err != nil {
		return nil, err
	}
	rec, ok := receiver.(*RecordValue)
	if !ok {
		return nil, newError(TypeError, e.Pos(), "field access on non-record value %s", receiver.Type())
	}
	v, ok := rec.Fields.Get(e.Field)
	if !ok {
		return nil, newError(NameError, e.Pos(), "record has no field %s", e.Field)
	}
	return v, nil
}

// evalDereference reads the heap cell a pointer addresses. Dereferencing
// nil or a dead address fails.
func (i *Interpreter) evalDereference(e *ast.DereferenceExpression) (Value, error) {
	operand, err := i.evalExpression(e.Operand)
	if err != nil {
		return nil, err
	}
	ptr, ok := operand.(*PointerValue)
	if !ok {
		return nil, newError(PointerError, e.Pos(), "cannot dereference %s", operand.Type())
	}
	cell, ok := i.heap[ptr.Addr]
	if !ok {
		return nil, newError(PointerError, e.Pos(), "dereference of address %d that is not live", ptr.Addr)
	}
	return cell, nil
}

// evalAddressOf copies the variable's current value into a fresh heap cell
// and returns its address.
func (i *Interpreter) evalAddressOf(e *ast.AddressOfExpression) (Value, error) {
	v, err := i.lookupName(e.Operand.Value, e.Operand.Pos())
	if err != nil {
		return nil, err
	}
	addr := i.allocCell(copyValue(v))
	return &PointerValue{Addr: addr}, nil
}

func (i *Interpreter) evalEof(e *ast.EofExpression) (Value, error) {
	f, err := i.lookupFile(e.File)
	if err != nil {
		return nil, err
	}
	return &BooleanValue{Value: f.Eof()}, nil
}

// lookupFile resolves an identifier to its file handle.
func (i *Interpreter) lookupFile(id *ast.Identifier) (*FileValue, error) {
	v, err := i.lookupName(id.Value, id.Pos())
	if err != nil {
		return nil, err
	}
	f, ok := v.(*FileValue)
	if !ok {
		return nil, newError(FileError, id.Pos(), "%s is not a file variable", id.Value)
	}
	return f, nil
}
