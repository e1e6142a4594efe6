package code

import "sync"

// ReferenceGuard coordinates catalog deletions with writers that create
// new references to a symbol. A deletion must observe either the state
// before a reference write started or the state after it finished;
// without that, the referential-integrity count can pass as zero while
// an assignment is in flight and a live cell ends up pointing at a
// deleted code.
type ReferenceGuard struct {
	mu sync.RWMutex
}

func NewReferenceGuard() *ReferenceGuard {
	return &ReferenceGuard{}
}

// BeginReference opens a section that may add a reference to a catalog
// symbol. Reference writers proceed concurrently with each other. The
// returned function ends the section.
func (g *ReferenceGuard) BeginReference() func() {
	g.mu.RLock()
	return g.mu.RUnlock
}

// BeginDeletion opens a section that removes a catalog entry. It waits
// for in-flight reference writers and holds off new ones until the
// returned function is called.
func (g *ReferenceGuard) BeginDeletion() func() {
	g.mu.Lock()
	return g.mu.Unlock
}
