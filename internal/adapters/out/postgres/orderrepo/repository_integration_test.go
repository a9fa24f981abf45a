package orderrepo_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/period"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

var base = time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

// OrderRepositoryIntegrationTestSuite checks order persistence against a real
// PostgreSQL started in a container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background(), postgres_adapter.Migrate)
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.repository = orderrepo.NewGormOrderRepository(suite.pg.DB)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTrips() {
	ctx := context.Background()
	creator := kernel.NewUUID()
	o := suite.newOrder("REF-1", creator, base)

	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(o.ID()))
	suite.Equal("REF-1", got.Reference())
	suite.Equal("CART-1", got.CartNumber())
	suite.Equal(order.Created, got.Status())
	suite.Require().NotNil(got.Creator())
	suite.True(got.Creator().IsEqual(creator))
	suite.True(got.CreatedAt().Equal(base))
	suite.Nil(got.Preparer())
	suite.Nil(got.LineCount())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateReference_IsValidationError() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder("DUP", kernel.NewUUID(), base)))

	err := suite.repository.Add(ctx, suite.newOrder("DUP", kernel.NewUUID(), base))

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrValueIsInvalid)
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsFullLifecycle() {
	ctx := context.Background()
	o := suite.newOrder("REF-LIFE", kernel.NewUUID(), base)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	agent := kernel.NewUUID()
	lines := 7
	suite.Require().NoError(o.Prepare(agent, &lines, base.Add(20*time.Minute)))
	suite.Require().NoError(o.Control(agent, base.Add(30*time.Minute)))
	suite.Require().NoError(o.Pack(agent, base.Add(45*time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Packed, got.Status())
	suite.Require().NotNil(got.LineCount())
	suite.Equal(7, *got.LineCount())
	suite.True(got.Packer().IsEqual(agent))
	suite.Require().NotNil(got.CompletedAt())
	suite.True(got.CompletedAt().Equal(*got.PackedAt()))

	d := got.StageDurations()
	suite.Require().NotNil(d.Total)
	suite.InDelta(45.0, *d.Total, 0.001)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_UnknownOrder_NotFound() {
	err := suite.repository.Update(context.Background(), suite.newOrder("GHOST", kernel.NewUUID(), base))

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_UnknownOrder_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_ReturnsOrderInsideTransaction() {
	ctx := context.Background()
	o := suite.newOrder("REF-LOCK", kernel.NewUUID(), base)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	tx := suite.pg.DB.Begin()
	defer tx.Rollback()

	got, err := orderrepo.NewGormOrderRepository(tx).GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal("REF-LOCK", got.Reference())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByReference() {
	ctx := context.Background()
	o := suite.newOrder("REF-FIND", kernel.NewUUID(), base)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.GetByReference(ctx, "REF-FIND")
	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(o.ID()))

	_, err = suite.repository.GetByReference(ctx, "REF-MISSING")
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	o := suite.newOrder("REF-DEL", kernel.NewUUID(), base)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(suite.repository.Delete(ctx, o.ID()))
	suite.assertOrderCount(0)

	suite.ErrorIs(suite.repository.Delete(ctx, o.ID()), errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDeleteMany_RemovesOnlyListedOrders() {
	ctx := context.Background()
	ids := make([]kernel.UUID, 0, 10)
	for i := 0; i < 10; i++ {
		o := suite.newOrder("BULK-"+string(rune('A'+i)), kernel.NewUUID(), base)
		suite.Require().NoError(suite.repository.Add(ctx, o))
		ids = append(ids, o.ID())
	}

	deleted, err := suite.repository.DeleteMany(ctx, append(ids[:5:5], kernel.NewUUID()))

	suite.Require().NoError(err)
	suite.Equal(int64(5), deleted)
	suite.assertOrderCount(5)
	for _, id := range ids[5:] {
		_, err = suite.repository.Get(ctx, id)
		suite.NoError(err)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDeleteMany_EmptyList() {
	deleted, err := suite.repository.DeleteMany(context.Background(), nil)

	suite.Require().NoError(err)
	suite.Zero(deleted)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDeleteMatching_StatusAndWindow() {
	ctx := context.Background()
	agent := kernel.NewUUID()

	inWindow := suite.newOrder("IN", agent, base)
	otherDay := suite.newOrder("OUT-DAY", agent, base.AddDate(0, 0, -1))
	prepared := suite.newOrder("OUT-STATUS", agent, base)
	suite.Require().NoError(prepared.Prepare(agent, nil, base.Add(time.Minute)))
	for _, o := range []*order.Order{inWindow, otherDay, prepared} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	deleted, err := suite.repository.DeleteMatching(ctx, ports.DeleteCriteria{
		Status:  order.Created,
		Created: period.Range{Start: &start, End: &end},
	})

	suite.Require().NoError(err)
	suite.Equal(int64(1), deleted)
	_, err = suite.repository.Get(ctx, inWindow.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	suite.assertOrderCount(2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestReleaseActor_ClearsEveryStage() {
	ctx := context.Background()
	leaving := kernel.NewUUID()
	staying := kernel.NewUUID()

	mixed := suite.newOrder("MIXED", staying, base)
	suite.Require().NoError(mixed.Prepare(leaving, nil, base.Add(time.Minute)))
	suite.Require().NoError(mixed.Control(staying, base.Add(2*time.Minute)))
	suite.Require().NoError(mixed.Pack(leaving, base.Add(3*time.Minute)))
	created := suite.newOrder("CREATED-BY", leaving, base)
	untouched := suite.newOrder("UNTOUCHED", staying, base)
	for _, o := range []*order.Order{mixed, created, untouched} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	released, err := suite.repository.ReleaseActor(ctx, leaving)

	suite.Require().NoError(err)
	suite.Equal(int64(2), released)

	got, err := suite.repository.Get(ctx, mixed.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Packed, got.Status())
	suite.Nil(got.Preparer())
	suite.Nil(got.Packer())
	suite.True(got.Creator().IsEqual(staying))
	suite.True(got.Controller().IsEqual(staying))

	got, err = suite.repository.Get(ctx, created.ID())
	suite.Require().NoError(err)
	suite.Nil(got.Creator())
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(reference string, creator kernel.UUID, at time.Time) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), reference, "CART-1", creator, at)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.pg.DB.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
