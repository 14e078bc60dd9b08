package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shopSource = `
rootPath = /Test;

create enum Status<Enums>(Active, Inactive);

create schema User<Entities>(
	Id: Uid;
	Name: string;
	Age: int?;
	Status: Status;
);
`

// TestCSharpEndToEnd tests the full pipeline from source to C# files
func TestCSharpEndToEnd(t *testing.T) {
	files := compileProgram(t, []sourceFile{{"schemas/main.tgs", shopSource}})

	out, err := markerless().Generate(files, "out/MyApp")
	require.NoError(t, err)
	require.Len(t, out, 2)

	user := findFile(t, out, "out/MyApp/Test/Entities/User.cs")
	assert.Equal(t, `using System;
using MyApp.Test.Enums;

namespace MyApp.Test.Entities;

public class User
{
    public Guid Id { get; set; }
    public string Name { get; set; }
    public int? Age { get; set; }
    public Status Status { get; set; }
}
`, user.Content)

	status := findFile(t, out, "out/MyApp/Test/Enums/Status.cs")
	assert.Equal(t, `namespace MyApp.Test.Enums;

public enum Status
{
    Active = 0,
    Inactive = 1
}
`, status.Content)
}

// TestCSharpProjectMarker tests namespace rooting at a .csproj marker
// found above the output directory.
func TestCSharpProjectMarker(t *testing.T) {
	backend := &CSharp{findMarker: func(dir string) (string, bool) {
		if dir == "out" {
			return "Shop.Api", true
		}
		return "", false
	}}

	files := compileProgram(t, []sourceFile{{"schemas/main.tgs", shopSource}})
	out, err := backend.Generate(files, "out/MyApp")
	require.NoError(t, err)

	// The marker name does not occur in the path, so the declared path
	// is appended to it directly
	status := findFile(t, out, "out/MyApp/Test/Enums/Status.cs")
	assert.Contains(t, status.Content, "namespace Shop.Api.Test.Enums;")
}

// TestCSharpRootScopeName tests marker search order and its fallback
func TestCSharpRootScopeName(t *testing.T) {
	t.Run("marker on the output directory wins", func(t *testing.T) {
		backend := &CSharp{findMarker: func(dir string) (string, bool) {
			switch dir {
			case "srv/out":
				return "Inner", true
			case "srv":
				return "Outer", true
			}
			return "", false
		}}
		assert.Equal(t, "Inner", backend.rootScopeName("srv/out"))
	})

	t.Run("no marker falls back to the base name", func(t *testing.T) {
		assert.Equal(t, "MyApp", markerless().rootScopeName("out/MyApp"))
	})
}

// TestCSharpGenericProperties tests collection translation and using
// directives for generic property types.
func TestCSharpGenericProperties(t *testing.T) {
	files := compileProgram(t, []sourceFile{{"schemas/main.tgs", `
rootPath = /Test;

create enum Status<Enums>(Active);

create schema Report<Entities>(
	Tags: Array<string>;
	ByDay: Map<string, Array<Status>>?;
	Seen: Set<int>;
);
`}})

	out, err := markerless().Generate(files, "out/MyApp")
	require.NoError(t, err)

	report := findFile(t, out, "out/MyApp/Test/Entities/Report.cs")
	assert.Contains(t, report.Content, "public string[] Tags { get; set; }")
	assert.Contains(t, report.Content, "public Dictionary<string, Status[]>? ByDay { get; set; }")
	assert.Contains(t, report.Content, "public HashSet<int> Seen { get; set; }")

	// Both auxiliary namespaces appear exactly once
	assert.Equal(t, 1, strings.Count(report.Content, "using System.Collections.Generic;"))
	assert.Equal(t, 1, strings.Count(report.Content, "using MyApp.Test.Enums;"))
}

// TestCSharpCrossFileInheritance tests that a parent from another file
// produces a using for its namespace and the base-class clause.
func TestCSharpCrossFileInheritance(t *testing.T) {
	files := compileProgram(t, []sourceFile{
		{"schemas/base.tgs", `
rootPath = /Test;

create schema Base<Shared>(
	Id: Uid;
);
`},
		{"schemas/child.tgs", `
import { Base } from "base.tgs";

rootPath = /Test;

create schema Child<Entities> & Base (
	Name: string;
);
`},
	})

	out, err := markerless().Generate(files, "out/MyApp")
	require.NoError(t, err)

	child := findFile(t, out, "out/MyApp/Test/Entities/Child.cs")
	assert.Contains(t, child.Content, "using MyApp.Test.Shared;")
	assert.Contains(t, child.Content, "public class Child : Base")
}

// TestCSharpOwnNamespaceSuppressed tests that references within the
// same output path produce no using directive.
func TestCSharpOwnNamespaceSuppressed(t *testing.T) {
	files := compileProgram(t, []sourceFile{{"schemas/main.tgs", `
rootPath = /Test;

create schema Address<Entities>(
	City: string;
);

create schema Customer<Entities>(
	Home: Address;
);
`}})

	out, err := markerless().Generate(files, "out/MyApp")
	require.NoError(t, err)

	customer := findFile(t, out, "out/MyApp/Test/Entities/Customer.cs")
	assert.NotContains(t, customer.Content, "using")
	assert.Contains(t, customer.Content, "public Address Home { get; set; }")
}
