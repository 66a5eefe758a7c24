package tx

import (
	"context"

	"github.com/Thiht/transactor"
)

// Manager wraps transactional boundaries for multi-statement store writes.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type transactorManager struct {
	t transactor.Transactor
}

// FromTransactor adapts a transactor so stores only depend on Manager.
func FromTransactor(t transactor.Transactor) Manager {
	return transactorManager{t: t}
}

func (m transactorManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return m.t.WithinTransaction(ctx, fn)
}
