// Package units provides the registry that maps unit names to parsed unit
// ASTs. The interpreter consumes it through the UnitLoader contract;
// locating unit sources (files, embedded strings) is the caller's concern.
package units

import (
	"fmt"

	"github.com/cwbudde/go-pascal/internal/ast"
	"github.com/cwbudde/go-pascal/internal/lexer"
	"github.com/cwbudde/go-pascal/internal/parser"
	"github.com/cwbudde/go-pascal/pkg/ident"
)

// Registry holds parsed units by case-insensitive name.
type Registry struct {
	units *ident.Map[*ast.Unit]
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{units: ident.NewMap[*ast.Unit]()}
}

// Register stores a parsed unit under its declared name.
func (r *Registry) Register(unit *ast.Unit) {
	r.units.Set(unit.Name, unit)
}

// RegisterSource parses source text as a unit and registers it. The unit's
// declared name becomes its registry key.
func (r *Registry) RegisterSource(source string) (*ast.Unit, error) {
	l := lexer.New(source)
	p := parser.New(l)
	unit := p.ParseUnit()
	if unit == nil || len(p.Errors()) > 0 {
		if errs := p.Errors(); len(errs) > 0 {
			return nil, fmt.Errorf("parsing unit: %s", errs[0].Error())
		}
		return nil, fmt.Errorf("parsing unit failed")
	}
	if lexErrs := p.LexerErrors(); len(lexErrs) > 0 {
		return nil, fmt.Errorf("scanning unit: %s", lexErrs[0].Error())
	}
	r.Register(unit)
	return unit, nil
}

// LoadUnit returns the registered unit for name. Implements the
// interpreter's UnitLoader contract.
func (r *Registry) LoadUnit(name string) (*ast.Unit, error) {
	unit, ok := r.units.Get(name)
	if !ok {
		return nil, fmt.Errorf("unit %s is not registered", name)
	}
	return unit, nil
}

// Names returns the registered unit names.
func (r *Registry) Names() []string {
	return r.units.Keys()
}
