package driven

// OperationGuard serialises bulk operations on a collection across processes.
type OperationGuard interface {
	// TryLock acquires the guard for a collection without blocking.
	// Returns domain.ErrOperationInProgress if another holder has it.
	// The returned function releases the guard.
	TryLock(collection string) (release func(), err error)
}
