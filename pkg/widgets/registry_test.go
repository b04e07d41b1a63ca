package widgets

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-uicontrol/pkg/control"
	"github.com/goliatone/go-uicontrol/pkg/helper"
	"github.com/goliatone/go-uicontrol/pkg/lifecycle"
)

func TestRegistry_BuiltinsInOrder(t *testing.T) {
	reg := NewRegistry(nil)
	if diff := cmp.Diff([]string{TypePanel, TypeForm, TypeTextBox}, reg.Types()); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_RegisterRejectsInvalid(t *testing.T) {
	reg := NewRegistry(nil)
	ctor := func(h *helper.Helper) control.Control { return NewPanel(h) }

	cases := []struct {
		name string
		typ  string
		ctor Constructor
		want string
	}{
		{name: "empty type", typ: "  ", ctor: ctor, want: "type is required"},
		{name: "nil constructor", typ: "Card", ctor: nil, want: "is nil"},
		{name: "duplicate", typ: TypePanel, ctor: ctor, want: "already registered"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := reg.Register(tc.typ, tc.ctor)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestRegistry_CreateInitializes(t *testing.T) {
	reg := NewRegistry(nil)
	c, err := reg.Create(TypeTextBox, control.Properties{"id": "email", "value": "a@b.c"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	tb, ok := c.(*TextBox)
	if !ok {
		t.Fatalf("expected *TextBox, got %T", c)
	}
	if tb.ID != "email" || tb.Type != TypeTextBox {
		t.Fatalf("unexpected identity: id=%q type=%q", tb.ID, tb.Type)
	}
	if tb.LifeCycle != lifecycle.Inited {
		t.Fatalf("expected inited, got %s", tb.LifeCycle)
	}
	if tb.Value() != "a@b.c" {
		t.Fatalf("expected value taken from props, got %v", tb.Value())
	}
	if _, stored := tb.Get("value"); stored {
		t.Fatalf("value must not leak into free-form properties")
	}
}

func TestRegistry_CreateUnknownType(t *testing.T) {
	reg := NewRegistry(nil)
	_, err := reg.Create("Slider", nil)
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category, got %v", err)
	}
}

func TestRegistry_CreateInitFailure(t *testing.T) {
	reg := NewRegistry(nil)
	_, err := reg.Create(TypePanel, control.Properties{"skin": 3})
	if !goerrors.IsCategory(err, goerrors.CategoryBadInput) {
		t.Fatalf("expected bad input category, got %v", err)
	}
	var typed *goerrors.Error
	if !errors.As(err, &typed) || typed.TextCode != textCodeInitFailed {
		t.Fatalf("expected text code %s, got %+v", textCodeInitFailed, typed)
	}
}

func TestRegistry_CustomType(t *testing.T) {
	reg := NewRegistry(nil)
	reg.MustRegister("Card", func(h *helper.Helper) control.Control {
		p := NewPanel(h)
		p.Type = "Card"
		return p
	})

	c, err := reg.Create("Card", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Core().Type != "Card" {
		t.Fatalf("expected Card, got %q", c.Core().Type)
	}
	if got := reg.Types(); got[len(got)-1] != "Card" {
		t.Fatalf("expected Card registered last, got %v", got)
	}
}
