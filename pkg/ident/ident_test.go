package ident

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "variable", "variable"},
		{"uppercase", "VARIABLE", "variable"},
		{"mixed case", "MyVariable", "myvariable"},
		{"with numbers", "Var123", "var123"},
		{"with underscores", "My_Var_Name", "my_var_name"},
		{"empty string", "", ""},
		{"single char upper", "X", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Variable", "VARIABLE", "variable", "MyVar"}

	for _, input := range inputs {
		first := Normalize(input)
		second := Normalize(first)
		if first != second {
			t.Errorf("Normalize not idempotent: Normalize(%q) = %q, Normalize(%q) = %q",
				input, first, first, second)
		}
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected bool
	}{
		{"exact match", "variable", "variable", true},
		{"lowercase vs uppercase", "variable", "VARIABLE", true},
		{"camelCase vs PascalCase", "myVariable", "MyVariable", true},
		{"different words", "variable", "function", false},
		{"substring", "var", "variable", false},
		{"empty vs empty", "", "", true},
		{"empty vs non-empty", "", "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Equal(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("Equal(%q, %q) = %v, want %v", tt.a, tt.b, result, tt.expected)
			}

			reverse := Equal(tt.b, tt.a)
			if reverse != result {
				t.Errorf("Equal is not symmetric for %q and %q", tt.a, tt.b)
			}
		})
	}
}

func TestMapSetAndGet(t *testing.T) {
	m := NewMap[int]()

	m.Set("MyVariable", 42)

	if val, ok := m.Get("MyVariable"); !ok || val != 42 {
		t.Errorf("Get(MyVariable) = %d, %v, want 42, true", val, ok)
	}
	if val, ok := m.Get("myvariable"); !ok || val != 42 {
		t.Errorf("Get(myvariable) = %d, %v, want 42, true", val, ok)
	}
	if val, ok := m.Get("MYVARIABLE"); !ok || val != 42 {
		t.Errorf("Get(MYVARIABLE) = %d, %v, want 42, true", val, ok)
	}
	if val, ok := m.Get("nonexistent"); ok || val != 0 {
		t.Errorf("Get(nonexistent) = %d, %v, want 0, false", val, ok)
	}
}

func TestMapSetOverwrite(t *testing.T) {
	m := NewMap[int]()

	m.Set("MyVar", 10)
	m.Set("myvar", 20)

	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after overwriting with different casing", m.Len())
	}
	if val, _ := m.Get("MYVAR"); val != 20 {
		t.Errorf("Get(MYVAR) = %d, want 20", val)
	}
}

func TestMapDelete(t *testing.T) {
	m := NewMap[string]()
	m.Set("Counter", "x")

	m.Delete("COUNTER")

	if m.Has("counter") {
		t.Error("Has(counter) = true after Delete(COUNTER)")
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestMapKeysPreserveCasing(t *testing.T) {
	m := NewMap[int]()
	m.Set("Alpha", 1)
	m.Set("beta", 2)
	m.Set("GAMMA", 3)

	keys := m.Keys()
	if len(keys) != 3 {
		t.Fatalf("Keys() returned %d keys, want 3", len(keys))
	}
	// Keys come back sorted by normalized form: alpha, beta, gamma.
	if keys[0] != "Alpha" || keys[1] != "beta" || keys[2] != "GAMMA" {
		t.Errorf("Keys() = %v, want [Alpha beta GAMMA]", keys)
	}
}

func TestMapRange(t *testing.T) {
	m := NewMap[int]()
	m.Set("b", 2)
	m.Set("a", 1)

	var visited []string
	m.Range(func(key string, value int) bool {
		visited = append(visited, key)
		return true
	})
	if len(visited) != 2 || visited[0] != "a" || visited[1] != "b" {
		t.Errorf("Range visited %v, want [a b]", visited)
	}

	var stopped []string
	m.Range(func(key string, value int) bool {
		stopped = append(stopped, key)
		return false
	})
	if len(stopped) != 1 {
		t.Errorf("Range did not stop early: visited %v", stopped)
	}
}
