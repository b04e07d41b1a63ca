package helper_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-uicontrol/pkg/control"
	"github.com/goliatone/go-uicontrol/pkg/dom"
	"github.com/goliatone/go-uicontrol/pkg/event"
	"github.com/goliatone/go-uicontrol/pkg/extension"
	"github.com/goliatone/go-uicontrol/pkg/helper"
	"github.com/goliatone/go-uicontrol/pkg/identity"
	"github.com/goliatone/go-uicontrol/pkg/lifecycle"
	"github.com/goliatone/go-uicontrol/pkg/testsupport"
	"github.com/goliatone/go-uicontrol/pkg/viewcontext"
)

type mapConfig map[string]string

func (m mapConfig) Get(name string) string { return m[name] }

type kindExtension string

func (k kindExtension) Type() string { return string(k) }

func extensionTypes(list []extension.Extension) []string {
	out := make([]string, 0, len(list))
	for _, ext := range list {
		out = append(out, ext.Type())
	}
	return out
}

func newHelper(opts ...helper.Option) *helper.Helper {
	base := []helper.Option{
		helper.WithIDSource(identity.NewGeneratorAt("uic", time.UnixMilli(1000))),
	}
	return helper.New(append(base, opts...)...)
}

func TestInit_AssignsIDAndDefaultViewContext(t *testing.T) {
	contexts := viewcontext.NewRegistry()
	h := newHelper(helper.WithViewContexts(contexts))

	w := testsupport.NewWidget(h, "TextBox")
	if err := h.Init(w, nil); err != nil {
		t.Fatalf("init: %v", err)
	}

	if w.ID != "uic1000" {
		t.Fatalf("expected generated id uic1000, got %q", w.ID)
	}
	if w.LifeCycle != lifecycle.New {
		t.Fatalf("expected phase new until AfterInit, got %s", w.LifeCycle)
	}
	if w.ViewContext() != contexts.DefaultViewContext() {
		t.Fatalf("expected default view context")
	}
	if got, ok := contexts.Default().Get("uic1000"); !ok || got != control.Control(w) {
		t.Fatalf("expected control registered in default context, got %v (ok=%v)", got, ok)
	}
	if w.Self() != control.Control(w) {
		t.Fatalf("expected core bound to widget")
	}
}

func TestInit_KeepsExplicitIDAndProperties(t *testing.T) {
	h := newHelper()
	w := testsupport.NewWidget(h, "TextBox")

	err := h.Init(w, control.Properties{
		"id":    "name",
		"skin":  "dark",
		"title": "Name",
	})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if w.ID != "name" || w.Skin != "dark" {
		t.Fatalf("unexpected core fields: id=%q skin=%q", w.ID, w.Skin)
	}
	if got := w.GetString("title"); got != "Name" {
		t.Fatalf("expected free-form property stored, got %q", got)
	}
}

func TestInit_BindsPendingViewContextAndClearsIt(t *testing.T) {
	contexts := viewcontext.NewRegistry()
	h := newHelper(helper.WithViewContexts(contexts))
	explicit := viewcontext.New("dialog")

	w := testsupport.NewWidget(h, "Panel")
	if err := h.Init(w, control.Properties{"id": "p", "viewContext": explicit}); err != nil {
		t.Fatalf("init: %v", err)
	}

	if w.PendingViewContext != nil {
		t.Fatalf("expected pending view context cleared")
	}
	if w.ViewContext() != control.ViewContext(explicit) {
		t.Fatalf("expected explicit view context bound")
	}
	if _, ok := explicit.Get("p"); !ok {
		t.Fatalf("expected control registered in explicit context")
	}
	if contexts.Default().Len() != 0 {
		t.Fatalf("expected default context untouched, got %d controls", contexts.Default().Len())
	}
}

func TestInit_PropertyErrorIsReturned(t *testing.T) {
	h := newHelper()
	w := testsupport.NewWidget(h, "TextBox")

	err := h.Init(w, control.Properties{"id": 42})
	if err == nil {
		t.Fatalf("expected error for non-string id")
	}
	if !strings.Contains(err.Error(), "helper: init") {
		t.Fatalf("expected helper prefix, got %v", err)
	}
}

func TestInit_RetryAfterPropertyError(t *testing.T) {
	contexts := viewcontext.NewRegistry()
	h := newHelper(helper.WithViewContexts(contexts))
	w := testsupport.NewWidget(h, "TextBox")

	if err := h.Init(w, control.Properties{"id": 5}); err == nil {
		t.Fatalf("expected error for non-string id")
	}
	h.AfterInit(w)
	if w.LifeCycle != lifecycle.New || h.IsInited(w) {
		t.Fatalf("expected failed init to keep phase new, got %s", w.LifeCycle)
	}

	if err := h.Init(w, control.Properties{"id": "ok"}); err != nil {
		t.Fatalf("retry init: %v", err)
	}
	rec := testsupport.Record(w, event.Init)
	h.AfterInit(w)

	if w.ID != "ok" {
		t.Fatalf("expected retried id, got %q", w.ID)
	}
	if w.ViewContext() != contexts.DefaultViewContext() {
		t.Fatalf("expected default view context after retry")
	}
	if w.LifeCycle != lifecycle.Inited {
		t.Fatalf("expected inited, got %s", w.LifeCycle)
	}
	if got := h.GetID(w, ""); got != "ctrl--ok" {
		t.Fatalf("unexpected element id %q", got)
	}
	if diff := cmp.Diff([]string{"ok:init"}, rec.Events()); diff != "" {
		t.Fatalf("event mismatch (-want +got):\n%s", diff)
	}
}

func TestInit_IgnoredOnceRendered(t *testing.T) {
	h := newHelper()
	w := testsupport.InitWidget(t, h, "TextBox", control.Properties{"id": "first"})
	h.AfterRender(w)

	if err := h.Init(w, control.Properties{"id": "second"}); err != nil {
		t.Fatalf("repeat init returned error: %v", err)
	}
	if w.ID != "first" {
		t.Fatalf("expected repeat init ignored, id is %q", w.ID)
	}
	if w.LifeCycle != lifecycle.Rendered {
		t.Fatalf("expected phase rendered, got %s", w.LifeCycle)
	}
}

func TestInit_MergesExtensions(t *testing.T) {
	globals := extension.NewRegistry()
	globals.MustRegister("c", func() extension.Extension { return kindExtension("c") })
	globals.MustRegister("a", func() extension.Extension { return kindExtension("a") })
	h := newHelper(helper.WithExtensions(globals))

	w := testsupport.NewWidget(h, "TextBox")
	err := h.Init(w, control.Properties{
		"extensions": []extension.Extension{kindExtension("a"), kindExtension("b"), kindExtension("a")},
	})
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	if diff := cmp.Diff([]string{"a", "b", "c"}, extensionTypes(w.Extensions)); diff != "" {
		t.Fatalf("extension mismatch (-want +got):\n%s", diff)
	}
}

func TestInit_UniqueIDs(t *testing.T) {
	h := helper.New()
	seen := map[string]struct{}{}
	for i := 0; i < 500; i++ {
		w := testsupport.InitWidget(t, h, "TextBox", nil)
		if _, dup := seen[w.ID]; dup {
			t.Fatalf("duplicate id %q after %d controls", w.ID, i)
		}
		if !strings.HasPrefix(w.ID, "ui") {
			t.Fatalf("expected configured id prefix, got %q", w.ID)
		}
		seen[w.ID] = struct{}{}
	}
}

func TestAfterInit_FiresInitOnce(t *testing.T) {
	h := newHelper()
	w := testsupport.NewWidget(h, "TextBox")
	if err := h.Init(w, control.Properties{"id": "x"}); err != nil {
		t.Fatalf("init: %v", err)
	}
	rec := testsupport.Record(w)

	h.AfterInit(w)
	h.AfterInit(w)

	if w.LifeCycle != lifecycle.Inited {
		t.Fatalf("expected inited, got %s", w.LifeCycle)
	}
	if diff := cmp.Diff([]string{"x:init"}, rec.Events()); diff != "" {
		t.Fatalf("event mismatch (-want +got):\n%s", diff)
	}
}

func TestAfterInit_RequiresInit(t *testing.T) {
	h := newHelper()
	w := testsupport.NewWidget(h, "TextBox")
	h.AfterInit(w)
	if w.LifeCycle != lifecycle.New {
		t.Fatalf("expected phase to stay new, got %s", w.LifeCycle)
	}
}

func TestRenderSequence(t *testing.T) {
	h := newHelper(helper.WithConfig(mapConfig{"uiClassPrefix": "esui"}))
	w := testsupport.InitWidget(t, h, "Button", control.Properties{"id": "save"})
	main := dom.NewNode("button")
	w.Main = main
	rec := testsupport.Record(w)

	h.BeforeRender(w)
	h.InitMain(w)
	h.AfterRender(w)

	if diff := cmp.Diff([]string{"save:beforerender", "save:afterrender"}, rec.Events()); diff != "" {
		t.Fatalf("event mismatch (-want +got):\n%s", diff)
	}
	if w.LifeCycle != lifecycle.Rendered {
		t.Fatalf("expected rendered, got %s", w.LifeCycle)
	}
	if main.ID() != "ctrl--save" {
		t.Fatalf("expected main id ctrl--save, got %q", main.ID())
	}
	if diff := cmp.Diff([]string{"esui-Button"}, main.Classes()); diff != "" {
		t.Fatalf("class mismatch (-want +got):\n%s", diff)
	}
}

func TestInitMain_KeepsExistingIDAndSkipsUninited(t *testing.T) {
	h := newHelper()

	inited := testsupport.InitWidget(t, h, "Button", control.Properties{"id": "b1"})
	main := dom.NewNode("button")
	main.SetID("custom")
	inited.Main = main
	h.InitMain(inited)
	if main.ID() != "custom" {
		t.Fatalf("expected existing id kept, got %q", main.ID())
	}

	fresh := testsupport.NewWidget(h, "Button")
	if err := h.Init(fresh, control.Properties{"id": "b2"}); err != nil {
		t.Fatalf("init: %v", err)
	}
	freshMain := dom.NewNode("button")
	fresh.Main = freshMain
	h.InitMain(fresh)
	if freshMain.ID() != "" || len(freshMain.Classes()) != 0 {
		t.Fatalf("expected main untouched before AfterInit, got id=%q classes=%v", freshMain.ID(), freshMain.Classes())
	}
}

func TestAfterRender_FromNewSkipsEvent(t *testing.T) {
	h := newHelper()
	w := testsupport.NewWidget(h, "Button")
	rec := testsupport.Record(w)

	h.BeforeRender(w)
	h.AfterRender(w)

	if len(rec.Events()) != 0 {
		t.Fatalf("expected no events for an uninitialized control, got %v", rec.Events())
	}
	if w.LifeCycle != lifecycle.Rendered {
		t.Fatalf("expected rendered, got %s", w.LifeCycle)
	}
}

func TestLifecycle_NeverRegresses(t *testing.T) {
	h := newHelper()
	w := testsupport.InitWidget(t, h, "TextBox", nil)
	h.AfterRender(w)
	w.Dispose()

	h.AfterRender(w)
	h.AfterInit(w)
	if err := h.Init(w, nil); err != nil {
		t.Fatalf("init after dispose: %v", err)
	}

	if w.LifeCycle != lifecycle.Disposed {
		t.Fatalf("expected disposed, got %s", w.LifeCycle)
	}
	if h.IsInited(w) {
		t.Fatalf("expected disposed control not to report inited")
	}
}

func TestIsInited(t *testing.T) {
	h := newHelper()
	w := testsupport.NewWidget(h, "TextBox")
	if h.IsInited(w) {
		t.Fatalf("new control reported inited")
	}
	if err := h.Init(w, nil); err != nil {
		t.Fatalf("init: %v", err)
	}
	h.AfterInit(w)
	if !h.IsInited(w) {
		t.Fatalf("inited control not reported inited")
	}
	h.AfterRender(w)
	if !h.IsInited(w) {
		t.Fatalf("rendered control not reported inited")
	}
}

func TestClassesAndState(t *testing.T) {
	cfg := mapConfig{
		"uiClassPrefix":    "esui",
		"skinClassPrefix":  "skin",
		"stateClassPrefix": "state",
	}
	h := newHelper(helper.WithConfig(cfg))
	w := testsupport.InitWidget(t, h, "Button", control.Properties{"id": "ok", "skin": "primary"})
	main := dom.NewNode("button")
	w.Main = main

	if diff := cmp.Diff([]string{"esui-Button-label", "esui-label", "skin-Button-primary-label"}, h.GetClasses(w, "label")); diff != "" {
		t.Fatalf("class mismatch (-want +got):\n%s", diff)
	}
	if got := h.GetID(w, "label"); got != "ctrl--ok-label" {
		t.Fatalf("unexpected part id %q", got)
	}

	h.AddState(w, "disabled")
	if !w.HasState("disabled") {
		t.Fatalf("expected state recorded")
	}
	want := []string{"esui-Button-disabled", "state-disabled", "skin-Button-primary-disabled"}
	if diff := cmp.Diff(want, main.Classes()); diff != "" {
		t.Fatalf("state class mismatch (-want +got):\n%s", diff)
	}

	h.RemoveState(w, "disabled")
	if w.HasState("disabled") || len(main.Classes()) != 0 {
		t.Fatalf("expected state cleared, classes=%v", main.Classes())
	}
}

func TestClasses_ReadConfigOnEveryCall(t *testing.T) {
	cfg := mapConfig{"uiClassPrefix": "ui"}
	h := newHelper(helper.WithConfig(cfg))
	w := testsupport.InitWidget(t, h, "Button", control.Properties{"id": "b"})

	if got := h.GetClasses(w, ""); got[0] != "ui-Button" {
		t.Fatalf("unexpected class %q", got[0])
	}
	cfg["uiClassPrefix"] = "esui"
	if got := h.GetClasses(w, ""); got[0] != "esui-Button" {
		t.Fatalf("expected updated prefix, got %q", got[0])
	}
}

func TestRecorder_IgnoresHandlersRegisteredBeforeInit(t *testing.T) {
	h := newHelper()
	w := testsupport.NewWidget(h, "TextBox")
	stale := testsupport.Record(w, event.Init)
	if err := h.Init(w, nil); err != nil {
		t.Fatalf("init: %v", err)
	}
	h.AfterInit(w)
	if len(stale.Events()) != 0 {
		t.Fatalf("expected init to reset the event registry, got %v", stale.Events())
	}
}
