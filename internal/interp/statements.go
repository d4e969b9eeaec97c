package interp

import (
	"github.com/cwbudde/go-pascal/internal/ast"
)

// execStatement executes a single statement.
func (i *Interpreter) execStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.CompoundStatement:
		for _, inner := range s.Statements {
			if err := i.execStatement(inner); err != nil {
				return err
			}
		}
		return nil
	case *ast.AssignmentStatement:
		return i.execAssignment(s)
	case *ast.IfStatement:
		return i.execIf(s)
	case *ast.WhileStatement:
		return i.execWhile(s)
	case *ast.RepeatStatement:
		return i.execRepeat(s)
	case *ast.ForStatement:
		return i.execFor(s)
	case *ast.CaseStatement:
		return i.execCase(s)
	case *ast.WithStatement:
		return i.execWith(s)
	case *ast.LabeledStatement:
		return i.execStatement(s.Stmt)
	case *ast.GotoStatement:
		return newError(UnsupportedError, s.Pos(), "goto is not supported")
	case *ast.ProcedureCallStatement:
		return i.callProcedure(s.Name.Value, s.Arguments, s.Pos())
	case *ast.WriteStatement:
		return i.execWrite(s)
	case *ast.ReadStatement:
		return i.execRead(s)
	case *ast.AssignFileStatement:
		return i.execAssignFile(s)
	case *ast.ResetStatement:
		return i.execReset(s)
	case *ast.RewriteStatement:
		return i.execRewrite(s)
	case *ast.CloseStatement:
		return i.execClose(s)
	case *ast.NewStatement:
		return i.execNew(s)
	case *ast.DisposeStatement:
		return i.execDispose(s)
	case *ast.UnsupportedStatement:
		return newError(UnsupportedError, s.Pos(), "%s is not supported", s.Name)
	default:
		return newError(TypeError, stmt.Pos(), "cannot execute %T", stmt)
	}
}

// execAssignment dispatches on the target form: plain variable, array
// element, record field or pointer target.
func (i *Interpreter) execAssignment(s *ast.AssignmentStatement) error {
	value, err := i.evalExpression(s.Value)
	if err != nil {
		return err
	}

	switch target := s.Target.(type) {
	case *ast.Identifier:
		return i.assignVariable(target, value)
	case *ast.IndexExpression:
		return i.assignIndexed(target, value)
	case *ast.FieldExpression:
		return i.assignField(target, value)
	case *ast.DereferenceExpression:
		return i.assignPointerTarget(target, value)
	default:
		return newError(TypeError, s.Pos(), "invalid assignment target %T", s.Target)
	}
}

// assignVariable writes to the first scope holding the name, falling back
// to the globals. Assigning a non-set to a set variable fails.
func (i *Interpreter) assignVariable(target *ast.Identifier, value Value) error {
	if existing, ok := i.env.Get(target.Value); ok {
		if _, isSet := existing.(*SetValue); isSet {
			if _, valueIsSet := value.(*SetValue); !valueIsSet {
				return newError(TypeError, target.Pos(), "cannot assign %s to set variable %s", value.Type(), target.Value)
			}
		}
	}
	i.env.Assign(target.Value, value)
	return nil
}

func (i *Interpreter) assignIndexed(target *ast.IndexExpression, value Value) error {
	arr, err := i.lookupArray(target.Array)
	if err != nil {
		return err
	}
	offset, err := i.arrayOffset(arr, target)
	if err != nil {
		return err
	}
	arr.Elems[offset] = value
	return nil
}

// assignField writes a record field through a record variable or an array
// element holding a record.
func (i *Interpreter) assignField(target *ast.FieldExpression, value Value) error {
	receiver, err := i.evalExpression(target.Receiver)
	if err != nil {
		return err
	}
	rec, ok := receiver.(*RecordValue)
	if !ok {
		return newError(TypeError, target.Pos(), "field assignment on non-record value %s", receiver.Type())
	}
	if !rec.Fields.Has(target.Field) {
		return newError(NameError, target.Pos(), "record has no field %s", target.Field)
	}
	rec.Fields.Set(target.Field, value)
	return nil
}

// assignPointerTarget writes through a pointer into its heap cell.
func (i *Interpreter) assignPointerTarget(target *ast.DereferenceExpression, value Value) error {
	operand, err := i.evalExpression(target.Operand)
	if err != nil {
		return err
	}
	ptr, ok := operand.(*PointerValue)
	if !ok {
		return newError(PointerError, target.Pos(), "cannot assign through %s", operand.Type())
	}
	if _, live := i.heap[ptr.Addr]; !live {
		return newError(PointerError, target.Pos(), "assignment through address %d that is not live", ptr.Addr)
	}
	i.heap[ptr.Addr] = value
	return nil
}

func (i *Interpreter) execIf(s *ast.IfStatement) error {
	cond, err := i.evalExpression(s.Condition)
	if err != nil {
		return err
	}
	if isTruthy(cond) {
		return i.execStatement(s.Then)
	}
	if s.Else != nil {
		return i.execStatement(s.Else)
	}
	return nil
}

func (i *Interpreter) execWhile(s *ast.WhileStatement) error {
	for {
		cond, err := i.evalExpression(s.Condition)
		if err != nil {
			return err
		}
		if !isTruthy(cond) {
			return nil
		}
		if err := i.execStatement(s.Body); err != nil {
			return err
		}
	}
}

// execRepeat runs the body at least once and exits when the condition
// becomes true.
func (i *Interpreter) execRepeat(s *ast.RepeatStatement) error {
	for {
		for _, stmt := range s.Body {
			if err := i.execStatement(stmt); err != nil {
				return err
			}
		}
		cond, err := i.evalExpression(s.Condition)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return nil
		}
	}
}

// execFor evaluates the bounds once, then iterates inclusively. The loop
// variable lives in the current scope and keeps its last value afterwards.
func (i *Interpreter) execFor(s *ast.ForStatement) error {
	startVal, err := i.evalExpression(s.Start)
	if err != nil {
		return err
	}
	endVal, err := i.evalExpression(s.End)
	if err != nil {
		return err
	}
	start, ok := startVal.(*IntegerValue)
	if !ok {
		return newError(TypeError, s.Start.Pos(), "for loop bounds must be integers, got %s", startVal.Type())
	}
	end, ok := endVal.(*IntegerValue)
	if !ok {
		return newError(TypeError, s.End.Pos(), "for loop bounds must be integers, got %s", endVal.Type())
	}

	if s.Downto {
		for n := start.Value; n >= end.Value; n-- {
			i.env.Assign(s.Variable.Value, &IntegerValue{Value: n})
			if err := i.execStatement(s.Body); err != nil {
				return err
			}
		}
		return nil
	}
	for n := start.Value; n <= end.Value; n++ {
		i.env.Assign(s.Variable.Value, &IntegerValue{Value: n})
		if err := i.execStatement(s.Body); err != nil {
			return err
		}
	}
	return nil
}

// execCase evaluates the selector and runs the first branch with a
// matching label; a lo..hi label matches inclusively. With no match the
// else branch runs when present.
func (i *Interpreter) execCase(s *ast.CaseStatement) error {
	selector, err := i.evalExpression(s.Selector)
	if err != nil {
		return err
	}
	for _, branch := range s.Branches {
		for _, label := range branch.Labels {
			matched, err := i.caseLabelMatches(selector, label)
			if err != nil {
				return err
			}
			if matched {
				return i.execStatement(branch.Body)
			}
		}
	}
	if s.Else != nil {
		return i.execStatement(s.Else)
	}
	return nil
}

func (i *Interpreter) caseLabelMatches(selector Value, label ast.CaseLabel) (bool, error) {
	low, err := i.evalExpression(label.Low)
	if err != nil {
		return false, err
	}
	if label.High == nil {
		return valuesEqual(selector, low), nil
	}
	high, err := i.evalExpression(label.High)
	if err != nil {
		return false, err
	}
	sf, sok := numericValue(selector)
	lf, lok := numericValue(low)
	hf, hok := numericValue(high)
	if !sok || !lok || !hok {
		return false, newError(TypeError, label.Low.Pos(), "case range labels must be numeric")
	}
	return sf >= lf && sf <= hf, nil
}

// valuesEqual implements the value equality used to match case labels;
// values that are neither strings nor numbers are compared by setKey.
func valuesEqual(a, b Value) bool {
	if as, ok := a.(*StringValue); ok {
		bs, ok := b.(*StringValue)
		return ok && as.Value == bs.Value
	}
	af, aok := numericValue(a)
	bf, bok := numericValue(b)
	if aok && bok {
		return af == bf
	}
	return setKey(a) == setKey(b)
}

// execWith evaluates the record expression and exposes its fields as a
// scope frame around the body; field writes are copied back afterwards.
func (i *Interpreter) execWith(s *ast.WithStatement) error {
	receiver, err := i.evalExpression(s.Record)
	if err != nil {
		return err
	}
	rec, ok := receiver.(*RecordValue)
	if !ok {
		return newError(TypeError, s.Pos(), "with requires a record, got %s", receiver.Type())
	}

	frame := NewEnclosedEnvironment(i.env)
	rec.Fields.Range(func(key string, v Value) bool {
		frame.Define(key, v)
		return true
	})

	prev := i.env
	i.env = frame
	execErr := i.execStatement(s.Body)
	i.env = prev

	rec.Fields.Range(func(key string, _ Value) bool {
		if v, ok := frame.GetLocal(key); ok {
			rec.Fields.Set(key, v)
		}
		return true
	})
	return execErr
}

func (i *Interpreter) execNew(s *ast.NewStatement) error {
	addr := i.allocCell(&IntegerValue{})
	i.env.Assign(s.Target.Value, &PointerValue{Addr: addr})
	return nil
}

func (i *Interpreter) execDispose(s *ast.DisposeStatement) error {
	v, err := i.lookupName(s.Target.Value, s.Target.Pos())
	if err != nil {
		return err
	}
	ptr, ok := v.(*PointerValue)
	if !ok {
		return newError(PointerError, s.Pos(), "dispose requires a pointer, %s holds %s", s.Target.Value, v.Type())
	}
	if _, live := i.heap[ptr.Addr]; !live {
		return newError(PointerError, s.Pos(), "dispose of address %d that is not live", ptr.Addr)
	}
	delete(i.heap, ptr.Addr)
	i.env.Assign(s.Target.Value, &NilValue{})
	return nil
}
