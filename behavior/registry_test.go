package behavior

import (
	"errors"
	"testing"

	"github.com/najoast/actorkit/core"
)

func TestRegistryNewResolvesFactory(t *testing.T) {
	r := NewRegistry()
	r.Register("greeter", func() core.Behavior {
		return &Record{NameValue: "greeter"}
	})

	b, err := r.New("greeter")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if b.Name() != "greeter" {
		t.Errorf("Name() = %q, want greeter", b.Name())
	}
}

func TestRegistryUnknownNameFails(t *testing.T) {
	r := NewRegistry()
	_, err := r.New("does-not-exist")
	if !errors.Is(err, core.ErrBehaviorNotRegistered) {
		t.Errorf("err = %v, want ErrBehaviorNotRegistered", err)
	}
}

func TestRegistryEachCallIsFresh(t *testing.T) {
	r := NewRegistry()
	type counter struct {
		Record
		n int
	}
	r.Register("counter", func() core.Behavior { return &Record{NameValue: "counter"} })

	a, _ := r.New("counter")
	b, _ := r.New("counter")
	if a == b {
		t.Error("New returned the same instance twice; factories must be fresh per call")
	}
}

func TestDefaultRegistryRegisterAndNames(t *testing.T) {
	Register("selftest-echo", func() core.Behavior { return &Record{NameValue: "selftest-echo"} })

	found := false
	for _, n := range Default().Names() {
		if n == "selftest-echo" {
			found = true
		}
	}
	if !found {
		t.Error("default registry does not list a name just registered")
	}
}
