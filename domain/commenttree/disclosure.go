package commenttree

const (
	// MaxDepth is the deepest level rendered, counting top-level comments as 0
	MaxDepth = 3
	// InitialReplies is how many replies are shown before a thread is expanded
	InitialReplies = 3
)

// Disclosure is the transient show/hide and expand state of a rendered tree.
// It is immutable: every toggle returns a new value.
type Disclosure struct {
	visible  map[string]bool
	expanded map[string]bool
}

func NewDisclosure() Disclosure {
	return Disclosure{visible: map[string]bool{}, expanded: map[string]bool{}}
}

// FromLists builds a disclosure from explicit id lists, as sent by clients.
// An id listed as hidden wins over the same id listed as visible.
func FromLists(visible, hidden, expanded []string) Disclosure {
	d := NewDisclosure()
	for _, id := range visible {
		d.visible[id] = true
	}
	for _, id := range hidden {
		d.visible[id] = false
	}
	for _, id := range expanded {
		d.expanded[id] = true
	}
	return d
}

// RepliesVisible reports whether the replies of comment id are shown.
// Without an override only top-level comments show their replies.
func (d Disclosure) RepliesVisible(id string, depth int) bool {
	if v, ok := d.visible[id]; ok {
		return v
	}
	return depth == 0
}

// Expanded reports whether all replies of comment id are shown
func (d Disclosure) Expanded(id string) bool {
	return d.expanded[id]
}

// ToggleReplies flips the replies visibility of comment id
func (d Disclosure) ToggleReplies(id string, depth int) Disclosure {
	c := d.clone()
	c.visible[id] = !d.RepliesVisible(id, depth)
	return c
}

// ToggleExpanded flips between the first InitialReplies replies and all of them
func (d Disclosure) ToggleExpanded(id string) Disclosure {
	c := d.clone()
	if d.expanded[id] {
		delete(c.expanded, id)
	} else {
		c.expanded[id] = true
	}
	return c
}

func (d Disclosure) clone() Disclosure {
	c := NewDisclosure()
	for k, v := range d.visible {
		c.visible[k] = v
	}
	for k, v := range d.expanded {
		c.expanded[k] = v
	}
	return c
}
