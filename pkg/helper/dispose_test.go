package helper_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-uicontrol/pkg/control"
	"github.com/goliatone/go-uicontrol/pkg/dom"
	"github.com/goliatone/go-uicontrol/pkg/event"
	"github.com/goliatone/go-uicontrol/pkg/helper"
	"github.com/goliatone/go-uicontrol/pkg/lifecycle"
	"github.com/goliatone/go-uicontrol/pkg/testsupport"
	"github.com/goliatone/go-uicontrol/pkg/viewcontext"
)

type tree struct {
	ctx        *viewcontext.Context
	log        *testsupport.DisposeLog
	rec        *testsupport.Recorder
	parent     *testsupport.Widget
	child1     *testsupport.Widget
	grandchild *testsupport.Widget
	child2     *testsupport.Widget
}

func buildTree(t *testing.T) tree {
	t.Helper()
	tr := tree{
		ctx: viewcontext.New("page"),
		log: &testsupport.DisposeLog{},
		rec: &testsupport.Recorder{},
	}
	h := newHelper()
	newPanel := func(id string) *testsupport.Widget {
		w := testsupport.InitWidget(t, h, "Panel", control.Properties{"id": id, "viewContext": tr.ctx})
		w.Log = tr.log
		w.Main = dom.NewNode("div")
		tr.rec.Attach(w, event.BeforeDispose, event.AfterDispose)
		return w
	}
	tr.parent = newPanel("parent")
	tr.child1 = newPanel("child1")
	tr.grandchild = newPanel("grandchild")
	tr.child2 = newPanel("child2")

	tr.parent.AddChild(tr.child1, "")
	tr.child1.AddChild(tr.grandchild, "")
	tr.parent.AddChild(tr.child2, "")
	return tr
}

func TestDispose_DepthFirstInChildOrder(t *testing.T) {
	tr := buildTree(t)
	if tr.ctx.Len() != 4 {
		t.Fatalf("expected four controls in context, got %d", tr.ctx.Len())
	}

	tr.parent.Dispose()

	wantEvents := []string{
		"parent:beforedispose",
		"child1:beforedispose",
		"grandchild:beforedispose",
		"grandchild:afterdispose",
		"child1:afterdispose",
		"child2:beforedispose",
		"child2:afterdispose",
		"parent:afterdispose",
	}
	if diff := cmp.Diff(wantEvents, tr.rec.Events()); diff != "" {
		t.Fatalf("event order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"grandchild", "child1", "child2", "parent"}, tr.log.IDs); diff != "" {
		t.Fatalf("dispose order mismatch (-want +got):\n%s", diff)
	}

	for _, w := range []*testsupport.Widget{tr.parent, tr.child1, tr.grandchild, tr.child2} {
		if w.LifeCycle != lifecycle.Disposed {
			t.Fatalf("%s: expected disposed, got %s", w.ID, w.LifeCycle)
		}
		if w.Children != nil || w.ChildrenIndex != nil || w.Main != nil {
			t.Fatalf("%s: expected references released", w.ID)
		}
		if w.Parent != nil {
			t.Fatalf("%s: expected parent link cleared", w.ID)
		}
		if w.ViewContext() != nil {
			t.Fatalf("%s: expected view context cleared", w.ID)
		}
	}
	if tr.ctx.Len() != 0 {
		t.Fatalf("expected context emptied, got %d controls", tr.ctx.Len())
	}
}

func TestDispose_ChildDetachesFromLiveParent(t *testing.T) {
	tr := buildTree(t)

	tr.child2.Dispose()

	if diff := cmp.Diff([]string{"child2"}, tr.log.IDs); diff != "" {
		t.Fatalf("dispose order mismatch (-want +got):\n%s", diff)
	}
	if len(tr.parent.Children) != 1 || tr.parent.Children[0] != control.Control(tr.child1) {
		t.Fatalf("expected only child1 left, got %v", tr.parent.Children)
	}
	if _, ok := tr.parent.GetChild("child2"); ok {
		t.Fatalf("expected child2 removed from index")
	}
	if tr.parent.Disposing() {
		t.Fatalf("parent must not be disposed with its child")
	}
	if _, ok := tr.ctx.Get("parent"); !ok {
		t.Fatalf("expected parent to stay in context")
	}
}

func TestDispose_CutsCycles(t *testing.T) {
	log := &testsupport.DisposeLog{}
	h := newHelper()
	a := testsupport.InitWidget(t, h, "Panel", control.Properties{"id": "a"})
	b := testsupport.InitWidget(t, h, "Panel", control.Properties{"id": "b"})
	a.Log, b.Log = log, log

	a.AddChild(b, "")
	b.Children = append(b.Children, a)

	a.Dispose()

	if diff := cmp.Diff([]string{"b", "a"}, log.IDs); diff != "" {
		t.Fatalf("dispose order mismatch (-want +got):\n%s", diff)
	}
}

func TestDispose_SkipsNilChildrenAndRepeats(t *testing.T) {
	log := &testsupport.DisposeLog{}
	h := newHelper()
	w := testsupport.InitWidget(t, h, "Panel", control.Properties{"id": "p"})
	w.Log = log
	w.Children = append(w.Children, nil)

	w.Dispose()
	w.Dispose()

	if diff := cmp.Diff([]string{"p"}, log.IDs); diff != "" {
		t.Fatalf("dispose log mismatch (-want +got):\n%s", diff)
	}
}

func TestDispose_HelperFiresNoEvents(t *testing.T) {
	h := helper.New()
	w := testsupport.InitWidget(t, h, "Panel", nil)
	rec := testsupport.Record(w)

	h.Dispose(w)

	if len(rec.Events()) != 0 {
		t.Fatalf("expected no events from Dispose, got %v", rec.Events())
	}
	if w.LifeCycle != lifecycle.Inited {
		t.Fatalf("expected phase untouched by Dispose, got %s", w.LifeCycle)
	}
}
