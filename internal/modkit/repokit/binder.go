package repokit

// Binder produces a repository bound to one Queryer: the store's pool for
// reads, or the open transaction inside WithTx. vessels/repo.New returns one
type Binder[T any] interface {
	Bind(q Queryer) T
}

// BindFunc adapts a constructor to Binder
type BindFunc[T any] func(Queryer) T

// Bind implements Binder
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds b to q and panics when q is nil, which means the module
// was built without a store
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: bind without a store; open one with store.Open first")
	}
	return b.Bind(q)
}
