package main

// checklist tracks which station groups of a scan are done and which one the
// operator is looking at. current is always a valid index while groups is
// non-empty.
type checklist struct {
	groups    []stationGroup
	current   int
	completed map[int]struct{}
}

func newChecklist(groups []stationGroup) *checklist {
	c := &checklist{}
	c.Load(groups)
	return c
}

// Load replaces the whole checklist. It is the only way groups change.
func (c *checklist) Load(groups []stationGroup) {
	c.groups = groups
	c.current = 0
	c.completed = make(map[int]struct{})
}

func (c *checklist) Reset() {
	c.Load(nil)
}

func (c *checklist) Groups() []stationGroup { return c.groups }
func (c *checklist) Len() int               { return len(c.groups) }
func (c *checklist) Current() int           { return c.current }
func (c *checklist) Empty() bool            { return len(c.groups) == 0 }

// CurrentGroup returns the selected station group, if any.
func (c *checklist) CurrentGroup() (stationGroup, bool) {
	if c.Empty() {
		return stationGroup{}, false
	}
	return c.groups[c.current], true
}

func (c *checklist) MoveNext() bool {
	if c.current >= len(c.groups)-1 {
		return false
	}
	c.current++
	return true
}

func (c *checklist) MovePrevious() bool {
	if c.Empty() || c.current == 0 {
		return false
	}
	c.current--
	return true
}

// MarkComplete completes the current group and reports whether every group is
// now complete, in which case the caller should offer to finalize. Otherwise
// the selection moves exactly one step forward, even onto a group that is
// already complete, and stays put on the last group.
func (c *checklist) MarkComplete() bool {
	if c.Empty() {
		return false
	}
	c.completed[c.current] = struct{}{}
	if c.AllCompleted() {
		return true
	}
	if c.current < len(c.groups)-1 {
		c.current++
	}
	return false
}

// MarkIncomplete reopens the current group. It never moves the selection.
func (c *checklist) MarkIncomplete() bool {
	if _, ok := c.completed[c.current]; !ok {
		return false
	}
	delete(c.completed, c.current)
	return true
}

func (c *checklist) IsCompleted(i int) bool {
	_, ok := c.completed[i]
	return ok
}

func (c *checklist) IsCurrent(i int) bool {
	return !c.Empty() && i == c.current
}

func (c *checklist) PendingCount() int {
	return len(c.groups) - len(c.completed)
}

func (c *checklist) CompletedCount() int {
	return len(c.completed)
}

func (c *checklist) AllCompleted() bool {
	return !c.Empty() && len(c.completed) == len(c.groups)
}
