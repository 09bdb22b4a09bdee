package cmds

import (
	"fmt"
	"testing"
)

func TestVar(t *testing.T) {
	a := Var[int]("TestVar.int")
	b := Var[string]("TestVar.string")
	GlobalExecutor.MustExecute([]string{
		"TestVar.int", "42",
		"TestVar.string", "bar",
	})
	if *a != 42 || *b != "bar" {
		t.Fatalf("got %d %q", *a, *b)
	}
	GlobalExecutor.MustExecute([]string{"TestVar.int."})
	if *a != 0 {
		t.Fatalf("got %d", *a)
	}
}

func TestSwitch(t *testing.T) {
	foo := Switch("TestSwitch")
	if err := Execute([]string{"TestSwitch"}); err != nil {
		t.Fatal(err)
	}
	if !*foo {
		t.Fatal("switch not set")
	}
	GlobalExecutor.MustExecute([]string{"!TestSwitch"})
	if *foo {
		t.Fatal("switch not cleared")
	}
}

func TestCollect(t *testing.T) {
	list := Collect[string]("TestCollect")
	GlobalExecutor.MustExecute([]string{
		"TestCollect", "a",
		"TestCollect", "b",
	})
	if str := fmt.Sprintf("%v", *list); str != "[a b]" {
		t.Fatalf("got %s", str)
	}
}

func TestTypedVar(t *testing.T) {
	type Foo string
	v := Var[Foo]("TestTypedVar")
	b := Var[bool]("TestTypedVar.bool")
	GlobalExecutor.MustExecute([]string{
		"TestTypedVar", "bar",
		"TestTypedVar.bool", "yes",
	})
	if *v != "bar" || !*b {
		t.Fatalf("got %q %v", *v, *b)
	}
}
