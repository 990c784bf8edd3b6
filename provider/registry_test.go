package provider

import (
	"context"
	"reflect"
	"testing"
)

type fakeProvider struct {
	name string
}

func (f *fakeProvider) Name() string                       { return f.name }
func (f *fakeProvider) IsAvailable(_ context.Context) bool { return true }

func TestRegistry_CreateAndCache(t *testing.T) {
	reg := NewRegistry[*fakeProvider]()
	reg.RegisterFactory("fake", func(cfg map[string]any) (*fakeProvider, error) {
		name, _ := cfg["name"].(string)
		return &fakeProvider{name: name}, nil
	})

	inst, err := reg.Create("fake", map[string]any{"name": "a"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inst.Name() != "a" {
		t.Errorf("instance name = %q", inst.Name())
	}

	reg.Set("fake", inst)
	cached, ok := reg.Get("fake")
	if !ok || cached != inst {
		t.Error("cached instance not returned")
	}
}

func TestRegistry_UnknownFactory(t *testing.T) {
	reg := NewRegistry[*fakeProvider]()
	if _, err := reg.Create("missing", nil); err == nil {
		t.Fatal("expected error for unregistered factory")
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	reg := NewRegistry[*fakeProvider]()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		reg.RegisterFactory(name, func(map[string]any) (*fakeProvider, error) {
			return &fakeProvider{}, nil
		})
	}
	if got := reg.List(); !reflect.DeepEqual(got, []string{"alpha", "mid", "zeta"}) {
		t.Errorf("List() = %v", got)
	}
}
