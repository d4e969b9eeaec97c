package interp

import (
	"github.com/cwbudde/go-pascal/internal/ast"
	"github.com/cwbudde/go-pascal/pkg/token"
)

// formal is one expanded formal parameter with its passing mode.
type formal struct {
	name  string
	byRef bool
}

// writeback records a by-reference binding: after the callee returns, the
// frame's final value for the parameter is written to the caller's
// variable using the assignment resolution rule.
type writeback struct {
	param  string
	caller string
}

// expandFormals flattens parameter groups into individual formals in
// declaration order.
func expandFormals(params []*ast.Param) []formal {
	var formals []formal
	for _, group := range params {
		for _, name := range group.Names {
			formals = append(formals, formal{name: name, byRef: group.ByRef})
		}
	}
	return formals
}

// callProcedure invokes a procedure by name. A function invoked as a
// statement is executed and its result discarded.
func (i *Interpreter) callProcedure(name string, args []ast.Expression, pos token.Position) error {
	if decl, ok := i.procs.Get(name); ok {
		_, err := i.callRoutine(routineOf(decl), args, pos)
		return err
	}
	if decl, ok := i.funcs.Get(name); ok {
		_, err := i.callRoutine(funcRoutineOf(decl), args, pos)
		return err
	}
	return newError(NameError, pos, "undeclared procedure %s", name)
}

// callFunction invokes a function by name and returns its result.
func (i *Interpreter) callFunction(name string, args []ast.Expression, pos token.Position) (Value, error) {
	if decl, ok := i.funcs.Get(name); ok {
		return i.callRoutine(funcRoutineOf(decl), args, pos)
	}
	if decl, ok := i.procs.Get(name); ok {
		return i.callRoutine(routineOf(decl), args, pos)
	}
	return nil, newError(NameError, pos, "undeclared function %s", name)
}

// routine is the common shape of procedures and functions used by the call
// protocol. returnType is empty for procedures.
type routine struct {
	name        string
	params      []*ast.Param
	returnType  string
	localVars   []ast.Declaration
	nestedProcs []*ast.ProcDecl
	nestedFuncs []*ast.FuncDecl
	body        *ast.CompoundStatement
}

func routineOf(d *ast.ProcDecl) routine {
	return routine{
		name:        d.Name,
		params:      d.Params,
		localVars:   d.LocalVars,
		nestedProcs: d.NestedProcs,
		nestedFuncs: d.NestedFuncs,
		body:        d.Body,
	}
}

func funcRoutineOf(d *ast.FuncDecl) routine {
	return routine{
		name:        d.Name,
		params:      d.Params,
		returnType:  d.ReturnType,
		localVars:   d.LocalVars,
		nestedProcs: d.NestedProcs,
		nestedFuncs: d.NestedFuncs,
		body:        d.Body,
	}
}

// callRoutine implements the routine call protocol: build a frame binding
// the formals, default the locals, run the body on the pushed frame, pop
// it (also on failure), then write by-reference results back into the
// caller's scope. For a function the result is the final value of the
// cell named after the function itself.
func (i *Interpreter) callRoutine(r routine, args []ast.Expression, pos token.Position) (Value, error) {
	formals := expandFormals(r.params)
	if len(args) != len(formals) {
		return nil, newError(ArityError, pos, "%s expects %d arguments, got %d", r.name, len(formals), len(args))
	}

	frame := NewEnclosedEnvironment(i.env)
	var writebacks []writeback
	for n, f := range formals {
		if f.byRef {
			id, ok := args[n].(*ast.Identifier)
			if !ok {
				return nil, newError(ArityError, args[n].Pos(), "var parameter %s requires a variable argument", f.name)
			}
			v, err := i.evalExpression(id)
			if err != nil {
				return nil, err
			}
			frame.Define(f.name, v)
			writebacks = append(writebacks, writeback{param: f.name, caller: id.Value})
			continue
		}
		v, err := i.evalExpression(args[n])
		if err != nil {
			return nil, err
		}
		frame.Define(f.name, copyValue(v))
	}

	if err := i.declareVars(frame, r.localVars); err != nil {
		return nil, err
	}
	if r.returnType != "" {
		frame.Define(r.name, i.defaultValue(r.returnType))
	}

	restore := i.registerNested(r.nestedProcs, r.nestedFuncs)

	if r.body == nil {
		restore()
		return nil, newError(NameError, pos, "routine %s has no body", r.name)
	}

	i.env = frame
	execErr := i.execStatement(r.body)
	i.env = frame.Outer()
	restore()
	if execErr != nil {
		return nil, execErr
	}

	for _, wb := range writebacks {
		if v, ok := frame.GetLocal(wb.param); ok {
			i.env.Assign(wb.caller, v)
		}
	}

	if r.returnType != "" {
		result, _ := frame.GetLocal(r.name)
		return result, nil
	}
	return nil, nil
}

// registerNested makes a routine's nested procedures and functions callable
// for the duration of the call, shadowing any same-named outer routines.
// The returned func restores the previous entries.
func (i *Interpreter) registerNested(procs []*ast.ProcDecl, funcs []*ast.FuncDecl) func() {
	if len(procs) == 0 && len(funcs) == 0 {
		return func() {}
	}

	type savedProc struct {
		name string
		decl *ast.ProcDecl
		had  bool
	}
	type savedFunc struct {
		name string
		decl *ast.FuncDecl
		had  bool
	}

	var savedProcs []savedProc
	var savedFuncs []savedFunc
	for _, d := range procs {
		prev, had := i.procs.Get(d.Name)
		savedProcs = append(savedProcs, savedProc{name: d.Name, decl: prev, had: had})
		i.procs.Set(d.Name, d)
	}
	for _, d := range funcs {
		prev, had := i.funcs.Get(d.Name)
		savedFuncs = append(savedFuncs, savedFunc{name: d.Name, decl: prev, had: had})
		i.funcs.Set(d.Name, d)
	}

	return func() {
		for _, s := range savedProcs {
			if s.had {
				i.procs.Set(s.name, s.decl)
			} else {
				i.procs.Delete(s.name)
			}
		}
		for _, s := range savedFuncs {
			if s.had {
				i.funcs.Set(s.name, s.decl)
			} else {
				i.funcs.Delete(s.name)
			}
		}
	}
}
