package interp

import (
	"github.com/cwbudde/go-pascal/internal/ast"
	"github.com/cwbudde/go-pascal/pkg/ident"
)

// ImportUnit injects a parsed unit's interface symbols into the
// interpreter's tables: record types and enum members are registered,
// interface variables are initialized with their type defaults, and each
// interface routine is bound to its implementation body when one exists
// (falling back to the bodiless header). The unit's initialization block
// runs immediately; its finalization block is retained and executed in
// reverse import order when the program finishes.
func (i *Interpreter) ImportUnit(unit *ast.Unit) error {
	i.registerTypes(unit.Interface.RecordTypes, unit.Interface.EnumTypes)

	if err := i.declareVars(i.globals, sectionDecls(&unit.Interface)); err != nil {
		return err
	}

	implProcs := ident.NewMap[*ast.ProcDecl]()
	for _, d := range unit.Implementation.Procs {
		implProcs.Set(d.Name, d)
	}
	implFuncs := ident.NewMap[*ast.FuncDecl]()
	for _, d := range unit.Implementation.Funcs {
		implFuncs.Set(d.Name, d)
	}

	for _, header := range unit.Interface.Procs {
		if impl, ok := implProcs.Get(header.Name); ok {
			i.procs.Set(header.Name, impl)
			implProcs.Delete(header.Name)
			continue
		}
		i.procs.Set(header.Name, header)
	}
	for _, header := range unit.Interface.Funcs {
		if impl, ok := implFuncs.Get(header.Name); ok {
			i.funcs.Set(header.Name, impl)
			implFuncs.Delete(header.Name)
			continue
		}
		i.funcs.Set(header.Name, header)
	}

	// Implementation-private routines stay callable from the unit's own
	// bodies and initialization block.
	implProcs.Range(func(name string, d *ast.ProcDecl) bool {
		i.procs.Set(name, d)
		return true
	})
	implFuncs.Range(func(name string, d *ast.FuncDecl) bool {
		i.funcs.Set(name, d)
		return true
	})

	if unit.Finalization != nil {
		i.finalizers = append(i.finalizers, unit.Finalization)
	}
	if unit.Initialization != nil {
		return i.execStatement(unit.Initialization)
	}
	return nil
}

// sectionDecls flattens a unit section's variable declarations.
func sectionDecls(sec *ast.UnitSection) []ast.Declaration {
	var decls []ast.Declaration
	for _, d := range sec.Vars {
		decls = append(decls, d)
	}
	for _, d := range sec.ArrayVars {
		decls = append(decls, d)
	}
	for _, d := range sec.RecordVars {
		decls = append(decls, d)
	}
	for _, d := range sec.FileVars {
		decls = append(decls, d)
	}
	for _, d := range sec.PointerVars {
		decls = append(decls, d)
	}
	for _, d := range sec.SetVars {
		decls = append(decls, d)
	}
	return decls
}
