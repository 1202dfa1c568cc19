package assets

// Future is the result of an asynchronous load. It resolves at most once and
// may never resolve; there is no error channel.
type Future[T any] struct {
	value    T
	resolved bool
	waiters  []func(T)
}

// Then registers fn to run with the value. If the future already resolved, fn
// runs immediately.
func (f *Future[T]) Then(fn func(T)) {
	if fn == nil {
		return
	}
	if f.resolved {
		fn(f.value)
		return
	}
	f.waiters = append(f.waiters, fn)
}

func (f *Future[T]) Resolved() bool {
	return f.resolved
}

func (f *Future[T]) Value() (T, bool) {
	return f.value, f.resolved
}

func (f *Future[T]) resolve(v T) {
	if f.resolved {
		return
	}
	f.value = v
	f.resolved = true
	waiters := f.waiters
	f.waiters = nil
	for _, fn := range waiters {
		fn(v)
	}
}

// abandon drops every continuation; the future stays unresolved forever.
func (f *Future[T]) abandon() {
	f.waiters = nil
}

// Resolved returns a future that already holds v.
func Resolved[T any](v T) *Future[T] {
	f := &Future[T]{}
	f.resolve(v)
	return f
}
