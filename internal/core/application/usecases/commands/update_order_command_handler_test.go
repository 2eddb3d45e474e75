package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/domain/model/actor"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/ports"
	"bookstore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUpdateOrderRepository struct{ mock.Mock }

func (m *MockUpdateOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockUpdateOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockUpdateOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockUpdateOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockUpdateHistoryRepository struct{ mock.Mock }

func (m *MockUpdateHistoryRepository) Add(ctx context.Context, entry *order.History) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockUpdateUoW struct{ mock.Mock }

func (m *MockUpdateUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUpdateUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUpdateUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUpdateUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUpdateUoW) HistoryRepository() ports.HistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.HistoryRepository)
}

type MockUpdateUoWFactory struct{ mock.Mock }

func (m *MockUpdateUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOrderEventPublisher struct{ mock.Mock }

func (m *MockOrderEventPublisher) PublishOrderChanged(ctx context.Context, event ports.OrderChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 3499, time.Now())
	require.NoError(t, err)
	return o
}

func managerActor(t *testing.T) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), []string{"manager"}, false)
	require.NoError(t, err)
	return a
}

func statusChangeSet(s order.Status) order.ChangeSet {
	return order.ChangeSet{Status: &s}
}

func customerActor(t *testing.T, id kernel.UUID) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(id, nil, false)
	require.NoError(t, err)
	return a
}

func TestUpdateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	testOrder := pendingOrder(t)
	acting := managerActor(t)
	cmd, err := commands.NewUpdateOrderCommand(testOrder.ID(), acting, statusChangeSet(order.StatusShipped))
	require.NoError(t, err)

	orderRepo := new(MockUpdateOrderRepository)
	historyRepo := new(MockUpdateHistoryRepository)
	uow := new(MockUpdateUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("HistoryRepository").Return(historyRepo).Once(),
		historyRepo.On("Add", ctx, mock.AnythingOfType("*order.History")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUpdateUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockOrderEventPublisher)
	publisher.On("PublishOrderChanged", ctx, mock.AnythingOfType("ports.OrderChangedEvent")).
		Return(nil).
		Once()

	handler := commands.NewUpdateOrderCommandHandler(factory, publisher, testLogger())
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, order.StatusShipped, updated.Status())
	orderRepo.AssertExpectations(t)
	historyRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	publisher.AssertExpectations(t)

	event := publisher.Calls[0].Arguments[1].(ports.OrderChangedEvent)
	assert.Equal(t, testOrder.ID().String(), event.OrderID)
	assert.Equal(t, order.StatusShipped, event.Status)
	require.NotNil(t, event.ActorID)
	assert.Equal(t, acting.ID().String(), *event.ActorID)
}

func TestUpdateOrderCommandHandler_Handle_NoOpSkipsHistoryAndEvent(t *testing.T) {
	ctx := t.Context()

	testOrder := pendingOrder(t)
	acting := managerActor(t)
	// Proposing the current status is idempotent: no transition, no audit entry.
	cmd, err := commands.NewUpdateOrderCommand(testOrder.ID(), acting, statusChangeSet(order.StatusPending))
	require.NoError(t, err)

	orderRepo := new(MockUpdateOrderRepository)
	uow := new(MockUpdateUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUpdateUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockOrderEventPublisher)

	handler := commands.NewUpdateOrderCommandHandler(factory, publisher, testLogger())
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, updated.Status())
	uow.AssertNotCalled(t, "HistoryRepository")
	publisher.AssertNotCalled(t, "PublishOrderChanged", ctx, mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.UpdateOrderCommand{} // not constructed properly

	factory := new(MockUpdateUoWFactory)
	handler := commands.NewUpdateOrderCommandHandler(factory, nil, testLogger())
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrUpdateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestUpdateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewUpdateOrderCommand(
		kernel.NewUUID(), managerActor(t), statusChangeSet(order.StatusShipped),
	)
	require.NoError(t, err)

	uow := new(MockUpdateUoW)
	factory := new(MockUpdateUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewUpdateOrderCommandHandler(factory, nil, testLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "begin error")
}

func TestUpdateOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	cmd, err := commands.NewUpdateOrderCommand(orderID, managerActor(t), statusChangeSet(order.StatusShipped))
	require.NoError(t, err)

	orderRepo := new(MockUpdateOrderRepository)
	uow := new(MockUpdateUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderID", orderID.String())).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUpdateUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderCommandHandler(factory, nil, testLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestUpdateOrderCommandHandler_Handle_CustomerCancelsOwnOrder(t *testing.T) {
	ctx := t.Context()

	testOrder := pendingOrder(t)
	acting := customerActor(t, testOrder.CustomerID())
	cancellation := order.IntentCancellation
	cmd, err := commands.NewUpdateOrderCommand(testOrder.ID(), acting, order.ChangeSet{Intent: &cancellation})
	require.NoError(t, err)

	orderRepo := new(MockUpdateOrderRepository)
	historyRepo := new(MockUpdateHistoryRepository)
	uow := new(MockUpdateUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("HistoryRepository").Return(historyRepo).Once(),
		historyRepo.On("Add", ctx, mock.AnythingOfType("*order.History")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUpdateUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderCommandHandler(factory, nil, testLogger())
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusUnderReview, updated.Status())
	historyRepo.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_ForeignCustomerOrderHidden(t *testing.T) {
	ctx := t.Context()

	// The order belongs to another customer; the acting customer must not learn
	// it exists, let alone move it.
	testOrder := pendingOrder(t)
	acting := customerActor(t, kernel.NewUUID())
	cancellation := order.IntentCancellation
	cmd, err := commands.NewUpdateOrderCommand(testOrder.ID(), acting, order.ChangeSet{Intent: &cancellation})
	require.NoError(t, err)

	orderRepo := new(MockUpdateOrderRepository)
	uow := new(MockUpdateUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUpdateUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderCommandHandler(factory, nil, testLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, order.StatusPending, testOrder.Status())
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	uow.AssertNotCalled(t, "HistoryRepository")
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestUpdateOrderCommandHandler_Handle_UnassignedDelivererOrderHidden(t *testing.T) {
	ctx := t.Context()

	assigned := kernel.NewUUID()
	testOrder, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), &assigned, kernel.NewUUID(),
		order.StatusShipped, 3499, time.Now(), time.Now(), 2,
	)
	require.NoError(t, err)

	acting, err := actor.NewActor(kernel.NewUUID(), []string{"delivery"}, false)
	require.NoError(t, err)
	cmd, err := commands.NewUpdateOrderCommand(testOrder.ID(), acting, statusChangeSet(order.StatusDelivered))
	require.NoError(t, err)

	orderRepo := new(MockUpdateOrderRepository)
	uow := new(MockUpdateUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUpdateUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderCommandHandler(factory, nil, testLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestUpdateOrderCommandHandler_Handle_RejectedTransition(t *testing.T) {
	ctx := t.Context()

	testOrder := pendingOrder(t)
	// A deliverer may move shipped onward, but pending to delivered has no edge.
	acting, err := actor.NewActor(kernel.NewUUID(), []string{"delivery"}, false)
	require.NoError(t, err)
	cmd, err := commands.NewUpdateOrderCommand(testOrder.ID(), acting, statusChangeSet(order.StatusDelivered))
	require.NoError(t, err)

	orderRepo := new(MockUpdateOrderRepository)
	uow := new(MockUpdateUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUpdateUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderCommandHandler(factory, nil, testLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestUpdateOrderCommandHandler_Handle_VersionConflict(t *testing.T) {
	ctx := t.Context()

	testOrder := pendingOrder(t)
	cmd, err := commands.NewUpdateOrderCommand(
		testOrder.ID(), managerActor(t), statusChangeSet(order.StatusShipped),
	)
	require.NoError(t, err)

	orderRepo := new(MockUpdateOrderRepository)
	uow := new(MockUpdateUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).
			Return(errs.NewConcurrentModificationError("orderID", testOrder.ID().String())).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUpdateUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockOrderEventPublisher)

	handler := commands.NewUpdateOrderCommandHandler(factory, publisher, testLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConcurrentModification)
	uow.AssertNotCalled(t, "Commit", ctx)
	publisher.AssertNotCalled(t, "PublishOrderChanged", ctx, mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()

	testOrder := pendingOrder(t)
	cmd, err := commands.NewUpdateOrderCommand(
		testOrder.ID(), managerActor(t), statusChangeSet(order.StatusShipped),
	)
	require.NoError(t, err)

	orderRepo := new(MockUpdateOrderRepository)
	historyRepo := new(MockUpdateHistoryRepository)
	uow := new(MockUpdateUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("HistoryRepository").Return(historyRepo).Once(),
		historyRepo.On("Add", ctx, mock.AnythingOfType("*order.History")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUpdateUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockOrderEventPublisher)

	handler := commands.NewUpdateOrderCommandHandler(factory, publisher, testLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "commit error")
	publisher.AssertNotCalled(t, "PublishOrderChanged", ctx, mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_PublishFailureDoesNotFailUpdate(t *testing.T) {
	ctx := t.Context()

	testOrder := pendingOrder(t)
	cmd, err := commands.NewUpdateOrderCommand(
		testOrder.ID(), managerActor(t), statusChangeSet(order.StatusShipped),
	)
	require.NoError(t, err)

	orderRepo := new(MockUpdateOrderRepository)
	historyRepo := new(MockUpdateHistoryRepository)
	uow := new(MockUpdateUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("HistoryRepository").Return(historyRepo).Once(),
		historyRepo.On("Add", ctx, mock.AnythingOfType("*order.History")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUpdateUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockOrderEventPublisher)
	publisher.On("PublishOrderChanged", ctx, mock.AnythingOfType("ports.OrderChangedEvent")).
		Return(errors.New("broker unavailable")).
		Once()

	handler := commands.NewUpdateOrderCommandHandler(factory, publisher, testLogger())
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, updated.Status())
	publisher.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_NilPublisher(t *testing.T) {
	ctx := t.Context()

	testOrder := pendingOrder(t)
	cmd, err := commands.NewUpdateOrderCommand(
		testOrder.ID(), managerActor(t), statusChangeSet(order.StatusShipped),
	)
	require.NoError(t, err)

	orderRepo := new(MockUpdateOrderRepository)
	historyRepo := new(MockUpdateHistoryRepository)
	uow := new(MockUpdateUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("HistoryRepository").Return(historyRepo).Once(),
		historyRepo.On("Add", ctx, mock.AnythingOfType("*order.History")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUpdateUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderCommandHandler(factory, nil, testLogger())
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, updated.Status())
}
