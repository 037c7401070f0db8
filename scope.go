package gc

// Scope is a nested region recording the handle pool's high-water mark at
// entry; exiting restores that mark, logically freeing every slot the
// scope allocated. Scopes nest strictly: a child's lifetime is contained
// within its parent's, and exits happen in reverse order of entries.
//
// A Scope moves through three states: pending (constructed but not yet
// entered; this package never observes that state directly since Run,
// Nested, and WithEscape enter a scope as part of producing it),
// active, and dead. Once dead, every operation on the scope that returns an
// error (Alloc, ToLocal, Nested, WithEscape) fails with ErrDeadScope.
// CollectAll returns nothing and runs a collection even on a dead scope.
type Scope struct {
	gc        *Collector
	id        uint64
	parent    *Scope
	entryMark int
	alive     bool
}

// CollectAll forces a mark-sweep pass immediately.
func (s *Scope) CollectAll() {
	s.gc.collectAll()
}

// Nested enters a child scope, runs body with it, and exits the child
// whether body returns an error or not.
func (s *Scope) Nested(body func(child *Scope) error) error {
	if !s.alive {
		return ErrDeadScope
	}
	child := s.gc.enterScope(s)
	err := body(child)
	if exitErr := s.gc.exitScope(child); exitErr != nil {
		return exitErr
	}
	return err
}

func (c *Collector) enterScope(parent *Scope) *Scope {
	c.nextScopeID++
	s := &Scope{
		gc:        c,
		id:        c.nextScopeID,
		parent:    parent,
		entryMark: c.pool.Next(),
		alive:     true,
	}
	c.scopes = append(c.scopes, s)
	c.logScopeEnter(s)
	return s
}

func (c *Collector) exitScope(s *Scope) error {
	if len(c.scopes) == 0 || c.scopes[len(c.scopes)-1] != s {
		return ErrScopeNotActive
	}
	c.scopes = c.scopes[:len(c.scopes)-1]
	c.pool.TruncateTo(s.entryMark)
	s.alive = false
	c.logScopeExit(s)
	return nil
}

func (c *Collector) top() *Scope {
	if len(c.scopes) == 0 {
		return nil
	}
	return c.scopes[len(c.scopes)-1]
}
