package control

// AddChild appends child to the core's children. The child is detached from
// a previous parent, indexed under name (or its own ChildName, falling back
// to its id) and moved into this control's view context.
func (c *Base) AddChild(child Control, name string) {
	if child == nil {
		return
	}
	childCore := child.Core()
	if parent := childCore.Parent; parent != nil {
		parent.Core().RemoveChild(child)
	}

	if c.ChildrenIndex == nil {
		c.ChildrenIndex = map[string]Control{}
	}
	c.Children = append(c.Children, child)
	childCore.Parent = c.target()

	if name != "" {
		childCore.ChildName = name
	}
	if key := childKey(childCore); key != "" {
		c.ChildrenIndex[key] = child
	}

	if c.viewContext != nil && childCore.viewContext != c.viewContext {
		childCore.SetViewContext(c.viewContext)
	}
}

// RemoveChild detaches child. Controls that are not children are ignored.
func (c *Base) RemoveChild(child Control) {
	if child == nil {
		return
	}
	for idx, existing := range c.Children {
		if existing == child {
			c.Children = append(c.Children[:idx:idx], c.Children[idx+1:]...)
			break
		}
	}
	childCore := child.Core()
	if key := childKey(childCore); key != "" {
		if indexed, ok := c.ChildrenIndex[key]; ok && indexed == child {
			delete(c.ChildrenIndex, key)
		}
	}
	childCore.Parent = nil
}

// GetChild looks a child up by child name or id.
func (c *Base) GetChild(name string) (Control, bool) {
	child, ok := c.ChildrenIndex[name]
	return child, ok
}

func childKey(core *Base) string {
	if core.ChildName != "" {
		return core.ChildName
	}
	return core.ID
}
