package grammar

import (
	"strings"
	"testing"
)

func TestCheck(t *testing.T) {
	if err := Check(); err != nil {
		t.Fatal(err)
	}
}

func TestProductions(t *testing.T) {
	names, err := Productions()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) == 0 || names[0] != Start {
		t.Fatalf("productions = %v, want %s first", names, Start)
	}
	if last := names[len(names)-1]; last != "digit" {
		t.Errorf("last production = %s, want digit", last)
	}
	for _, want := range []string{"ObjectDecl", "TupleComprehension", "Range", "VarDef", "FuncCall"} {
		found := false
		for _, name := range names {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Errorf("missing production %s", want)
		}
	}
}

func TestSource(t *testing.T) {
	if !strings.Contains(Source(), `"solution"`) {
		t.Error("grammar source should mention the solution section")
	}
}
