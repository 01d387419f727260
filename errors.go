package memory

import (
	"errors"
	"fmt"
)

// ErrOutOfMemory is returned (and latched into Allocator.Errno) when the
// page provider refuses to grow the heap far enough to satisfy a
// request. It is the only error condition this allocator itself
// produces; the only other error Allocate can return is one from
// constructing the default PageProvider on first use.
var ErrOutOfMemory = errors.New("memory: out of memory")

// ContractViolation is the panic value raised when Free or Resize's
// internal bookkeeping discovers a caller has broken the allocator's
// contract: a NULL pointer, a double free, freeing a quick-listed
// block, or a corrupted header. These are unrecoverable by design —
// the heap's invariants can no longer be trusted — so the allocator
// aborts rather than guessing at a safe way to continue.
type ContractViolation struct {
	Reason string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("memory: contract violation: %s", e.Reason)
}

func abort(reason string, args ...any) {
	panic(&ContractViolation{Reason: fmt.Sprintf(reason, args...)})
}
