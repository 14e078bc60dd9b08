package codegen

import (
	"errors"
	"strings"
	"testing"
)

// customerScope builds a C# scope with one custom type registered
func customerScope() *scope {
	sc := newScope(csharpTable)
	sc.add("Customer", Mapping{Target: "Customer", Import: "Shop.Test.Entities"})
	return sc
}

// TestTranslateType tests recursive type translation against the C# table
func TestTranslateType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		imports  []string
	}{
		{"primitive", "int", "int", nil},
		{"uid", "Uid", "Guid", []string{"System"}},
		{"date", "date", "DateOnly", []string{"System"}},
		{"custom", "Customer", "Customer", []string{"Shop.Test.Entities"}},
		{"array", "Array<string>", "string[]", nil},
		{"array of custom", "Array<Customer>", "Customer[]", []string{"Shop.Test.Entities"}},
		{"nested array", "Array<Array<int>>", "int[][]", nil},
		{"list", "List<int>", "List<int>", []string{"System.Collections.Generic"}},
		{"set", "Set<string>", "HashSet<string>", []string{"System.Collections.Generic"}},
		{
			"map with nested array",
			"Map<string, Array<Customer>>",
			"Dictionary<string, Customer[]>",
			[]string{"Shop.Test.Entities", "System.Collections.Generic"},
		},
		{
			"deeply nested",
			"Map<string, Map<string, List<Customer>>>",
			"Dictionary<string, Dictionary<string, List<Customer>>>",
			[]string{"Shop.Test.Entities", "System.Collections.Generic"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, imports, err := translateType(tt.input, customerScope())
			if err != nil {
				t.Fatalf("translateType(%q) error = %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("translateType(%q) = %q, want %q", tt.input, got, tt.expected)
			}
			if len(imports) != len(tt.imports) {
				t.Fatalf("translateType(%q) imports = %v, want %v", tt.input, imports, tt.imports)
			}
			for i := range imports {
				if imports[i] != tt.imports[i] {
					t.Errorf("translateType(%q) imports = %v, want %v", tt.input, imports, tt.imports)
				}
			}
		})
	}
}

// TestTranslateTypeErrors tests the internal-error cases
func TestTranslateTypeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"bare array", "Array", "'Array' reached the generator without a type parameter"},
		{"unknown type", "Nonsense", "untranslatable type 'Nonsense'"},
		{"unknown generic base", "Box<int>", "untranslatable type 'Box'"},
		{"unknown parameter", "Array<Nonsense>", "untranslatable type 'Nonsense'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := translateType(tt.input, customerScope())
			if err == nil {
				t.Fatalf("translateType(%q) expected an error", tt.input)
			}
			var internal *InternalError
			if !errors.As(err, &internal) {
				t.Fatalf("Expected an InternalError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error %q does not contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

// TestCustomRefs tests extraction of custom names from type expressions
func TestCustomRefs(t *testing.T) {
	sc := newScope(csharpTable)
	sc.add("Customer", Mapping{Target: "Customer"})
	sc.add("Order", Mapping{Target: "Order"})

	tests := []struct {
		input    string
		expected []string
	}{
		{"string", nil},
		{"Customer", []string{"Customer"}},
		{"Map<Customer, Array<Order>>", []string{"Customer", "Order"}},
		{"Map<Customer, Customer>", []string{"Customer"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := customRefs(tt.input, sc)
			if len(got) != len(tt.expected) {
				t.Fatalf("customRefs(%q) = %v, want %v", tt.input, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("customRefs(%q) = %v, want %v", tt.input, got, tt.expected)
				}
			}
		})
	}
}

// TestScopeIsolation tests that a file's custom types never leak into
// the shared base table.
func TestScopeIsolation(t *testing.T) {
	sc := newScope(csharpTable)
	sc.add("Customer", Mapping{Target: "Customer"})

	if _, ok := csharpTable["Customer"]; ok {
		t.Fatal("Custom type leaked into the base table")
	}

	fresh := newScope(csharpTable)
	if _, ok := fresh.lookup("Customer"); ok {
		t.Error("Custom type visible in a fresh scope")
	}
	if m, ok := sc.lookup("Customer"); !ok || m.Target != "Customer" {
		t.Error("Custom type missing from its own scope")
	}
}
