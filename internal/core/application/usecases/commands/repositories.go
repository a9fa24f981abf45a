// Package commands contains the operations that change fulfillment state:
// order creation, the prepare/control/pack transitions, administrative edits,
// deletions and identity directory maintenance.
//
// Every handler follows the same shape: validate the command, check the
// caller's permission, open a unit of work, apply the domain operation, commit.
// A deferred Rollback undoes everything when any step fails.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle of a unit of work.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository bound to the transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// UserRepoFactory provides the identity directory bound to the transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// OrderUoW manages transactions for order-only commands.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates a new order unit of work per command.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW spans orders and the identity directory. Used when forgetting an
	// identity has to rewrite order attribution in the same transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   released, err := uow.OrderRepository().ReleaseActor(ctx, userID)
	//   // ...
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		UserRepoFactory
	}

	// UoWFactory creates a new cross-aggregate unit of work per command.
	UoWFactory interface {
		Create() UoW
	}
)
