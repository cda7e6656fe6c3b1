package core

import "github.com/google/uuid"

// NewID produces an opaque, globally-unique actor identifier. This is the
// Identifier service of spec.md §2 item 1: a leaf dependency every actor
// variant and the ActorSystem consult, never implemented twice.
func NewID() string {
	return uuid.NewString()
}
