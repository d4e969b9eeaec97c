package interp

import (
	"testing"
)

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment()
	env.Define("Counter", &IntegerValue{Value: 5})

	for _, name := range []string{"Counter", "counter", "COUNTER"} {
		v, ok := env.Get(name)
		if !ok {
			t.Fatalf("Get(%q) not found", name)
		}
		if v.(*IntegerValue).Value != 5 {
			t.Errorf("Get(%q) = %s, want 5", name, v)
		}
	}
}

func TestEnvironmentChainLookup(t *testing.T) {
	globals := NewEnvironment()
	globals.Define("g", &IntegerValue{Value: 1})
	frame := NewEnclosedEnvironment(globals)
	frame.Define("l", &IntegerValue{Value: 2})
	inner := NewEnclosedEnvironment(frame)

	if v, ok := inner.Get("l"); !ok || v.(*IntegerValue).Value != 2 {
		t.Error("inner scope does not see the enclosing frame's binding")
	}
	if v, ok := inner.Get("g"); !ok || v.(*IntegerValue).Value != 1 {
		t.Error("inner scope does not see the global binding")
	}
	if _, ok := globals.Get("l"); ok {
		t.Error("global scope must not see frame locals")
	}
}

func TestEnvironmentSetWritesToHoldingScope(t *testing.T) {
	globals := NewEnvironment()
	globals.Define("x", &IntegerValue{Value: 1})
	frame := NewEnclosedEnvironment(globals)

	if err := frame.Set("x", &IntegerValue{Value: 9}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, _ := globals.Get("x"); v.(*IntegerValue).Value != 9 {
		t.Error("Set did not write through to the holding scope")
	}
	if _, ok := frame.GetLocal("x"); ok {
		t.Error("Set must not create a shadowing local binding")
	}
}

func TestEnvironmentShadowing(t *testing.T) {
	globals := NewEnvironment()
	globals.Define("x", &IntegerValue{Value: 1})
	frame := NewEnclosedEnvironment(globals)
	frame.Define("x", &IntegerValue{Value: 2})

	if err := frame.Set("x", &IntegerValue{Value: 3}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, _ := frame.Get("x"); v.(*IntegerValue).Value != 3 {
		t.Error("frame binding not updated")
	}
	if v, _ := globals.Get("x"); v.(*IntegerValue).Value != 1 {
		t.Error("shadowed global must stay untouched")
	}
}

func TestEnvironmentSetUnboundFails(t *testing.T) {
	env := NewEnvironment()
	if err := env.Set("nope", &IntegerValue{}); err == nil {
		t.Error("Set of an unbound name must fail")
	}
}

func TestEnvironmentAssignFallsBackToRoot(t *testing.T) {
	globals := NewEnvironment()
	frame := NewEnclosedEnvironment(globals)

	frame.Assign("fresh", &IntegerValue{Value: 7})

	if _, ok := frame.GetLocal("fresh"); ok {
		t.Error("Assign of an unbound name must not create a frame local")
	}
	if v, ok := globals.Get("fresh"); !ok || v.(*IntegerValue).Value != 7 {
		t.Error("Assign of an unbound name must create a global binding")
	}
}
