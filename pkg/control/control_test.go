package control

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-uicontrol/pkg/dom"
	"github.com/goliatone/go-uicontrol/pkg/event"
	"github.com/goliatone/go-uicontrol/pkg/extension"
)

type testControl struct {
	Base
}

func (t *testControl) Dispose() {}

func newTestControl(id string) *testControl {
	ctl := &testControl{}
	ctl.Bind(ctl)
	ctl.Reset()
	ctl.ID = id
	return ctl
}

type recordingContext struct {
	members map[string]Control
	removed []string
}

func newRecordingContext() *recordingContext {
	return &recordingContext{members: map[string]Control{}}
}

func (r *recordingContext) Add(c Control) { r.members[c.Core().ID] = c }
func (r *recordingContext) Remove(c Control) {
	delete(r.members, c.Core().ID)
	r.removed = append(r.removed, c.Core().ID)
}
func (r *recordingContext) Get(id string) (Control, bool) {
	c, ok := r.members[id]
	return c, ok
}

type ext struct{ kind string }

func (e ext) Type() string { return e.kind }

func TestCore_SetPropertiesRoutesKnownKeys(t *testing.T) {
	ctl := newTestControl("")
	main := dom.NewNode("div")
	ctx := newRecordingContext()

	err := ctl.SetProperties(Properties{
		PropID:          " abc ",
		PropType:        "button",
		PropSkin:        "red",
		PropMain:        main,
		PropViewContext: ctx,
		PropExtensions:  []extension.Extension{ext{kind: "a"}},
		PropValidations: []RuleSpec{{Kind: "required"}},
		"title":         "Name",
		"maxLength":     10,
	})
	if err != nil {
		t.Fatalf("set properties: %v", err)
	}

	if ctl.ID != "abc" || ctl.Type != "button" || ctl.Skin != "red" {
		t.Fatalf("identity not applied: %q %q %q", ctl.ID, ctl.Type, ctl.Skin)
	}
	if ctl.Main != dom.Element(main) {
		t.Fatalf("main element not applied")
	}
	if ctl.PendingViewContext != ViewContext(ctx) {
		t.Fatalf("view context not staged")
	}
	if len(ctl.Extensions) != 1 || len(ctl.Validations) != 1 {
		t.Fatalf("extensions or validations not applied")
	}
	if got := ctl.GetString("title"); got != "Name" {
		t.Fatalf("want title Name, got %q", got)
	}
	if got := ctl.GetString("maxLength"); got != "10" {
		t.Fatalf("want maxLength 10, got %q", got)
	}
}

func TestCore_SetPropertiesRejectsWrongTypes(t *testing.T) {
	ctl := newTestControl("x")
	if err := ctl.SetProperties(Properties{PropID: 12}); err == nil {
		t.Fatalf("expected error for non-string id")
	}
	if err := ctl.SetProperties(Properties{PropMain: "div"}); err == nil {
		t.Fatalf("expected error for non-element main")
	}
}

func TestCore_InvalidExtensionsCoercedToEmpty(t *testing.T) {
	ctl := newTestControl("x")
	if err := ctl.SetProperties(Properties{PropExtensions: "oops"}); err != nil {
		t.Fatalf("set properties: %v", err)
	}
	if ctl.Extensions != nil {
		t.Fatalf("expected extensions to be reset, got %v", ctl.Extensions)
	}
}

func TestCore_ChildrenStayIndexed(t *testing.T) {
	parent := newTestControl("parent")
	first := newTestControl("first")
	second := newTestControl("second")

	parent.AddChild(first, "")
	parent.AddChild(second, "label")

	if got, ok := parent.GetChild("first"); !ok || got != Control(first) {
		t.Fatalf("expected first indexed by id")
	}
	if got, ok := parent.GetChild("label"); !ok || got != Control(second) {
		t.Fatalf("expected second indexed by child name")
	}
	if first.Parent != Control(parent) {
		t.Fatalf("expected parent link")
	}

	other := newTestControl("other")
	other.AddChild(first, "")
	if len(parent.Children) != 1 {
		t.Fatalf("expected reparenting to detach from old parent, got %d children", len(parent.Children))
	}
	if _, ok := parent.GetChild("first"); ok {
		t.Fatalf("expected index entry removed on reparent")
	}

	parent.RemoveChild(second)
	if len(parent.Children) != 0 || len(parent.ChildrenIndex) != 0 || second.Parent != nil {
		t.Fatalf("remove child left state behind")
	}
}

func TestCore_SetViewContextMovesSubtree(t *testing.T) {
	oldCtx := newRecordingContext()
	newCtx := newRecordingContext()

	parent := newTestControl("p")
	child := newTestControl("c")
	parent.SetViewContext(oldCtx)
	parent.AddChild(child, "")

	if _, ok := oldCtx.Get("c"); !ok {
		t.Fatalf("expected child to join parent context")
	}

	parent.SetViewContext(newCtx)

	if len(oldCtx.members) != 0 {
		t.Fatalf("expected old context emptied, got %v", oldCtx.members)
	}
	var ids []string
	for id := range newCtx.members {
		ids = append(ids, id)
	}
	if len(ids) != 2 {
		t.Fatalf("expected both controls in new context, got %v", ids)
	}
	if diff := cmp.Diff([]string{"p", "c"}, oldCtx.removed); diff != "" {
		t.Fatalf("removal order mismatch (-want +got):\n%s", diff)
	}
}

func TestCore_BeginDisposeOnlyOnce(t *testing.T) {
	ctl := newTestControl("x")
	if !ctl.BeginDispose() {
		t.Fatalf("expected first BeginDispose to succeed")
	}
	if ctl.BeginDispose() {
		t.Fatalf("expected second BeginDispose to report false")
	}
}

func TestCore_FireTargetsBoundControl(t *testing.T) {
	ctl := newTestControl("x")
	var target any
	ctl.On("custom", func(evt *event.Event) { target = evt.Target })
	ctl.Fire("custom", nil)
	if target != Control(ctl) {
		t.Fatalf("expected target to be the bound control, got %T", target)
	}
}
