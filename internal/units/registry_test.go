package units

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const counterUnit = `
unit Counter;
interface
var Count: integer;
procedure Bump;
implementation
procedure Bump;
begin
  Count := Count + 1
end;
end.`

func TestRegisterSource(t *testing.T) {
	r := NewRegistry()

	unit, err := r.RegisterSource(counterUnit)
	require.NoError(t, err)
	require.Equal(t, "Counter", unit.Name)

	loaded, err := r.LoadUnit("Counter")
	require.NoError(t, err)
	require.Same(t, unit, loaded)
}

func TestLoadUnitIsCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	_, err := r.RegisterSource(counterUnit)
	require.NoError(t, err)

	for _, name := range []string{"counter", "COUNTER", "CoUnTeR"} {
		loaded, err := r.LoadUnit(name)
		require.NoError(t, err, "LoadUnit(%q)", name)
		require.Equal(t, "Counter", loaded.Name)
	}
}

func TestLoadUnknownUnit(t *testing.T) {
	r := NewRegistry()
	_, err := r.LoadUnit("Ghost")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Ghost")
}

func TestRegisterSourceParseError(t *testing.T) {
	r := NewRegistry()
	_, err := r.RegisterSource(`unit Broken; interface implementation`)
	require.Error(t, err)
}

func TestNames(t *testing.T) {
	r := NewRegistry()
	_, err := r.RegisterSource(counterUnit)
	require.NoError(t, err)
	require.Equal(t, []string{"Counter"}, r.Names())
}
