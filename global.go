package netrand

var defaultPoolSet *PoolSet

func init() {
	defaultPoolSet = NewDefaultPoolSet()
}

// DefaultPoolSet returns the process-wide PoolSet shared by Generators not
// bound to their own.
func DefaultPoolSet() *PoolSet {
	return defaultPoolSet
}
