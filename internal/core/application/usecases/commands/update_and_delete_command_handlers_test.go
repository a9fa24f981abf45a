package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewUpdateOrderCommand(t *testing.T) {
	caller := newCaller(t, identity.Manager)

	t.Run("parses status", func(t *testing.T) {
		cmd, err := commands.NewUpdateOrderCommand(caller, kernel.NewUUID(), commands.UpdateOrderFields{
			Status: strPtr("prepared"),
		})
		require.NoError(t, err)
		assert.Equal(t, "PREPARED", cmd.Changes().Status.String())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := commands.NewUpdateOrderCommand(caller, kernel.NewUUID(), commands.UpdateOrderFields{
			Status: strPtr("SHIPPED"),
		})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestUpdateOrderCommandHandler_Handle(t *testing.T) {
	t.Run("creator edits cart number", func(t *testing.T) {
		ctx := t.Context()
		creator := newCaller(t, identity.Agent)
		stored := newStoredOrder(t, creator.ID())
		lines := 3
		cmd, _ := commands.NewUpdateOrderCommand(creator, stored.ID(), commands.UpdateOrderFields{
			CartNumber: strPtr("C-9"),
			LineCount:  &lines,
		})

		repo := new(MockOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("GetForUpdate", ctx, stored.ID()).Return(stored, nil).Once(),
			repo.On("Update", ctx, stored).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		h := commands.NewUpdateOrderCommandHandler(orderFactory(uow))
		updated, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "C-9", updated.CartNumber())
		assert.Equal(t, 3, *updated.LineCount())
		assert.Nil(t, updated.Preparer())
	})

	t.Run("other agent is denied", func(t *testing.T) {
		ctx := t.Context()
		stored := newStoredOrder(t, kernel.NewUUID())
		cmd, _ := commands.NewUpdateOrderCommand(newCaller(t, identity.Agent), stored.ID(), commands.UpdateOrderFields{
			CartNumber: strPtr("C-9"),
		})

		repo := new(MockOrderRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(repo).Once()
		repo.On("GetForUpdate", ctx, stored.ID()).Return(stored, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		h := commands.NewUpdateOrderCommandHandler(orderFactory(uow))
		_, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
		assert.Equal(t, "CART-1", stored.CartNumber())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("status edit is refused", func(t *testing.T) {
		ctx := t.Context()
		stored := newStoredOrder(t, kernel.NewUUID())
		cmd, _ := commands.NewUpdateOrderCommand(newCaller(t, identity.SuperAgent), stored.ID(), commands.UpdateOrderFields{
			Status: strPtr("PACKED"),
		})

		repo := new(MockOrderRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(repo).Once()
		repo.On("GetForUpdate", ctx, stored.ID()).Return(stored, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		h := commands.NewUpdateOrderCommandHandler(orderFactory(uow))
		_, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})
}

func TestDeleteOrderCommandHandler_Handle(t *testing.T) {
	tests := []struct {
		name      string
		role      identity.Role
		isCreator bool
		allowed   bool
	}{
		{"creator agent", identity.Agent, true, true},
		{"other agent", identity.Agent, false, false},
		{"super agent", identity.SuperAgent, false, true},
		{"manager", identity.Manager, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			caller := newCaller(t, tt.role)
			creator := kernel.NewUUID()
			if tt.isCreator {
				creator = caller.ID()
			}
			stored := newStoredOrder(t, creator)
			cmd, _ := commands.NewDeleteOrderCommand(caller, stored.ID())

			repo := new(MockOrderRepository)
			uow := new(MockUoW)
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("OrderRepository").Return(repo).Once()
			repo.On("GetForUpdate", ctx, stored.ID()).Return(stored, nil).Once()
			uow.On("Rollback", ctx).Return(nil).Once()
			if tt.allowed {
				repo.On("Delete", ctx, stored.ID()).Return(nil).Once()
				uow.On("Commit", ctx).Return(nil).Once()
			}

			h := commands.NewDeleteOrderCommandHandler(orderFactory(uow))
			err := h.Handle(ctx, cmd)

			if tt.allowed {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, errs.ErrPermissionDenied)
				repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			}
			uow.AssertExpectations(t)
		})
	}
}
