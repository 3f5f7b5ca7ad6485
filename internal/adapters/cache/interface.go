package cache

type hitResult[T any] struct {
	data    T
	valid   bool
	claimed bool
}

// Cache de-duplicates concurrent computations of the same key.
// A missing key is claimed by the first caller, others wait until it is set or deleted.
type Cache[T any] interface {
	getOrClaim(key string) hitResult[T]
	set(key string, data T)
	delete(key string)
	wait()
}
