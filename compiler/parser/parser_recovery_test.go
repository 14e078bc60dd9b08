package parser

import (
	"strings"
	"testing"

	"github.com/cakeruu/typegen/compiler/lexer"
)

// parseDiags parses a source string and returns the AST plus raw diagnostics
func parseDiags(t *testing.T, source string) (*SchemaFile, []string) {
	t.Helper()
	lex := lexer.New(source, "test.tgs")
	tokens, lexErrors := lex.ScanTokens()
	if len(lexErrors) > 0 {
		t.Fatalf("Unexpected lex errors: %v", lexErrors)
	}
	file, diags := Parse(tokens, "test.tgs")
	messages := make([]string, len(diags))
	for i, d := range diags {
		messages[i] = d.Message
	}
	return file, messages
}

// requireDiag fails unless one of the messages contains the substring
func requireDiag(t *testing.T, messages []string, substr string) {
	t.Helper()
	for _, m := range messages {
		if strings.Contains(m, substr) {
			return
		}
	}
	t.Errorf("Expected a diagnostic containing %q, got %v", substr, messages)
}

// TestMultipleErrorsReported tests that each malformed construct yields
// its own diagnostic and that healthy constructs after them still parse.
func TestMultipleErrorsReported(t *testing.T) {
	source := `
rootPath = Test;

create enum Colors<Enums>();

create schema Broken<Entities>(
	Name string;
);

create schema Fine<Entities>(
	Id: Uid;
);
`
	file, messages := parseDiags(t, source)

	if len(messages) < 3 {
		t.Fatalf("Expected at least 3 diagnostics, got %d: %v", len(messages), messages)
	}
	requireDiag(t, messages, "did you mean 'rootPath = /Test;'?")
	requireDiag(t, messages, "Enum 'Colors' must define at least one value")
	requireDiag(t, messages, "Expected ':' after property name 'Name'")

	fine := file.Schema("Fine")
	if fine == nil {
		t.Fatal("Expected schema 'Fine' to survive earlier errors")
	}
	if len(fine.Properties) != 1 || fine.Properties[0].Name != "Id" {
		t.Errorf("Schema 'Fine' parsed incorrectly: %+v", fine.Properties)
	}
}

// TestOrphanedProperty tests a property declared outside any schema body
func TestOrphanedProperty(t *testing.T) {
	_, messages := parseDiags(t, `
rootPath = /Test;

Name: string;

create schema Ok<Entities>(Id: Uid;);
`)

	requireDiag(t, messages, "Property 'Name' declared outside of a schema body")
	if len(messages) != 1 {
		t.Errorf("Expected exactly 1 diagnostic, got %v", messages)
	}
}

// TestCreateWithoutKind tests 'create' missing the schema/enum keyword
func TestCreateWithoutKind(t *testing.T) {
	file, messages := parseDiags(t, `
rootPath = /Test;

create User<Entities>(
	Id: Uid;
);

create schema Ok<Entities>(Id: Uid;);
`)

	requireDiag(t, messages, "Expected 'schema' or 'enum' after 'create'")
	requireDiag(t, messages, "did you forget the keyword?")
	if file.Schema("Ok") == nil {
		t.Error("Expected schema 'Ok' to parse after recovery")
	}
}

// TestMissingCommaInImport tests the dedicated missing-comma diagnostic
func TestMissingCommaInImport(t *testing.T) {
	file, messages := parseDiags(t, `import { Customer Order } from "shop.tgs";`)

	requireDiag(t, messages, "Missing ',' between imported names 'Customer' and 'Order'")

	// The import still records both names
	if len(file.Imports) != 1 {
		t.Fatalf("Expected 1 import, got %d", len(file.Imports))
	}
	names := file.Imports[0].Names
	if len(names) != 2 || names[0] != "Customer" || names[1] != "Order" {
		t.Errorf("Unexpected imported names: %v", names)
	}
}

// TestMissingCommaInEnum tests the dedicated missing-comma diagnostic
// between enum values.
func TestMissingCommaInEnum(t *testing.T) {
	file, messages := parseDiags(t, `
create enum Status<Enums>(Active Inactive);
`)

	requireDiag(t, messages, "Missing ',' between enum values 'Active' and 'Inactive'")
	if len(file.Enums) != 1 || len(file.Enums[0].Values) != 2 {
		t.Fatalf("Expected enum with both values, got %+v", file.Enums)
	}
}

// TestSchemaMissingBody tests recovery when the opening '(' is absent
func TestSchemaMissingBody(t *testing.T) {
	file, messages := parseDiags(t, `
rootPath = /Test;

create schema Broken<Entities>
	Id: Uid;
	Name: string;
);

create schema Ok<Entities>(Id: Uid;);
`)

	requireDiag(t, messages, "Expected '(' to open the body of schema 'Broken'")
	if file.Schema("Ok") == nil {
		t.Error("Expected schema 'Ok' to parse after recovery")
	}
	// The orphaned property list must not produce top-level diagnostics
	for _, m := range messages {
		if strings.Contains(m, "outside of a schema body") {
			t.Errorf("Leftover body mis-parsed as top-level: %v", messages)
		}
	}
}

// TestSelfInheritance tests the self-inheritance diagnostic
func TestSelfInheritance(t *testing.T) {
	source := `
rootPath = /Test;

create schema Loop<Entities> & Loop (Id: Uid;);
`
	lex := lexer.New(source, "test.tgs")
	tokens, _ := lex.ScanTokens()
	_, diags := Parse(tokens, "test.tgs")

	if len(diags) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d: %v", len(diags), diags)
	}
	d := diags[0]
	if d.Message != "Schema 'Loop' cannot inherit from itself" {
		t.Errorf("Unexpected message: %s", d.Message)
	}
	if d.Line != 0 || d.Column != 0 {
		t.Errorf("Expected position 0:0, got %d:%d", d.Line, d.Column)
	}
}

// TestUnknownParent tests the local parent existence check
func TestUnknownParent(t *testing.T) {
	_, messages := parseDiags(t, `
rootPath = /Test;

create schema Child<Entities> & Missing (Id: Uid;);
`)

	requireDiag(t, messages, "Unknown parent schema 'Missing' for schema 'Child'")
}

// TestImportedParentIsVisible tests that an imported name satisfies the
// local parent check.
func TestImportedParentIsVisible(t *testing.T) {
	_, messages := parseDiags(t, `
import { Base } from "shared.tgs";

rootPath = /Test;

create schema Child<Entities> & Base (Id: Uid;);
`)

	if len(messages) != 0 {
		t.Errorf("Expected no diagnostics, got %v", messages)
	}
}

// TestTypeValidation tests the recursive property type check
func TestTypeValidation(t *testing.T) {
	tests := []struct {
		name     string
		typeExpr string
		wantErr  string
	}{
		{"builtin", "string", ""},
		{"known custom", "Customer", ""},
		{"generic of custom", "Array<Customer>", ""},
		{"nested generic", "Map<string, Array<Customer>>", ""},
		{"unknown", "Custmer", "Unknown type 'Custmer'"},
		{"unknown nested", "Array<Foo>", "Unknown type 'Foo'"},
		{"bare array", "Array", "'Array' requires a type parameter"},
		{"unknown base", "Box<string>", "Unknown type 'Box'"},
	}

	visible := map[string]bool{"Customer": true}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTypeExpr(tt.typeExpr, visible)
			if tt.wantErr == "" && err != "" {
				t.Errorf("Expected valid, got %q", err)
			}
			if tt.wantErr != "" && !strings.Contains(err, tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err)
			}
		})
	}
}

// TestPropertyTypeDiagnosticPosition tests that a bad type is reported
// at the type token with the owning property named.
func TestPropertyTypeDiagnosticPosition(t *testing.T) {
	source := `create schema S<Entities>(
	Who: Custmer;
);`
	lex := lexer.New(source, "test.tgs")
	tokens, _ := lex.ScanTokens()
	_, diags := Parse(tokens, "test.tgs")

	if len(diags) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d: %v", len(diags), diags)
	}
	d := diags[0]
	if !strings.Contains(d.Message, "Unknown type 'Custmer' (property 'Who' of schema 'S')") {
		t.Errorf("Unexpected message: %s", d.Message)
	}
	if d.Line != 2 {
		t.Errorf("Expected line 2, got %d", d.Line)
	}
}

// TestUnterminatedGenericType tests recovery inside a generic type
func TestUnterminatedGenericType(t *testing.T) {
	file, messages := parseDiags(t, `
create schema S<Entities>(
	Bad: Map<string;
	Good: string;
);
`)

	requireDiag(t, messages, "Unexpected ';' in generic type 'Map<string'")

	s := file.Schema("S")
	if s == nil {
		t.Fatal("Expected schema 'S'")
	}
	if len(s.Properties) != 1 || s.Properties[0].Name != "Good" {
		t.Errorf("Expected only 'Good' to survive, got %+v", s.Properties)
	}
}

// TestUnknownPathVariable tests assignment referencing an undeclared variable
func TestUnknownPathVariable(t *testing.T) {
	_, messages := parseDiags(t, `
rootPath = /Test;
subPath = basePath + /Sub;
`)

	requireDiag(t, messages, "Unknown path variable 'basePath'")
}

// TestUnclosedSchemaBody tests that an unclosed body stops at the next
// top-level construct instead of consuming it.
func TestUnclosedSchemaBody(t *testing.T) {
	file, messages := parseDiags(t, `
rootPath = /Test;

create schema Broken<Entities>(
	Id: Uid;

create enum Status<Enums>(Active);
`)

	requireDiag(t, messages, "Expected ')' to close the body of schema 'Broken'")
	if file.Enum("Status") == nil {
		t.Error("Expected enum 'Status' to parse after recovery")
	}
}
