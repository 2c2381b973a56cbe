package ir

import (
	"strings"
	"testing"

	"github.com/bherbruck/llts/internal/types"
	"github.com/bherbruck/llts/testutil"
)

// buildSampleProgram hand-assembles a tiny Program without going through the
// lowering engine, so its String() output is fully predictable here.
func buildSampleProgram() *Program {
	return &Program{
		Structs: []*StructDef{
			{
				Name: "Point",
				Fields: []FieldDef{
					{Name: "x", Type: types.I64},
					{Name: "y", Type: types.I64},
				},
			},
		},
		Functions: []*FuncDef{
			{
				Name:    "main",
				Return:  types.Void,
				Body:    []Stmt{ReturnStmt{}},
				IsEntry: true,
			},
		},
	}
}

func TestProgram_StringGolden(t *testing.T) {
	prog := buildSampleProgram()
	actual := strings.TrimRight(prog.String(), "\n")
	testutil.CompareGolden(t, "ir", "program_string", map[string]string{"program": actual})
}

func TestProgram_StringOrdersDeclsBeforeFunctions(t *testing.T) {
	prog := buildSampleProgram()
	out := prog.String()
	structIdx := strings.Index(out, "struct Point")
	funcIdx := strings.Index(out, "fn main")
	if structIdx == -1 || funcIdx == -1 {
		t.Fatalf("expected both struct and func rendering, got: %s", out)
	}
	if structIdx > funcIdx {
		t.Fatalf("expected struct declarations before functions, got: %s", out)
	}
}
