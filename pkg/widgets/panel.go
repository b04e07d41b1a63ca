package widgets

import (
	"github.com/goliatone/go-uicontrol/pkg/control"
	"github.com/goliatone/go-uicontrol/pkg/helper"
	"github.com/goliatone/go-uicontrol/pkg/lifecycle"
)

// Panel is a composite container rendered as a div (or the tag given by
// the "tag" property) holding its children's markup.
type Panel struct {
	control.Base
	helper *helper.Helper
}

var (
	_ Renderer          = (*Panel)(nil)
	_ control.Composite = (*Panel)(nil)
)

func NewPanel(h *helper.Helper) *Panel {
	p := &Panel{helper: h}
	p.Type = TypePanel
	return p
}

func (p *Panel) Render() {
	render(p.helper, p, p.paint)
}

func (p *Panel) paint() {
	tag := p.GetString("tag")
	if tag == "" {
		tag = "div"
	}
	node := mainNode(p, tag)
	if node == nil {
		return
	}
	node.SetInnerHTML(childrenHTML(p))
}

// HTML repaints a rendered control so the markup reflects its children's
// current state.
func (p *Panel) HTML() string {
	if p.LifeCycle == lifecycle.Rendered {
		p.paint()
	}
	return nodeHTML(p)
}

func (p *Panel) Dispose() {
	dispose(p.helper, p)
}
