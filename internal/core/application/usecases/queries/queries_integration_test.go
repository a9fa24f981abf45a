package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/adapters/out/postgres/userrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/period"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
)

// now is a Monday, so the previous week is 2024-01-08..2024-01-15.
var now = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

type stubFeed struct {
	orders []ports.UpstreamOrder
	err    error
	day    time.Time
}

func (f *stubFeed) OrdersOn(_ context.Context, day time.Time) ([]ports.UpstreamOrder, error) {
	f.day = day
	return f.orders, f.err
}

type QueriesIntegrationTestSuite struct {
	suite.Suite
	pg       *pgtest.Database
	calendar period.Calendar
	orders   *orderrepo.GormOrderRepository
	users    *userrepo.GormUserRepository

	manager identity.Caller
	super   identity.Caller
	alice   identity.Caller
	bob     identity.Caller
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background(), postgres_adapter.Migrate)
	suite.Require().NoError(err)
	suite.pg = pg
	suite.calendar = period.NewCalendar(kernel.FixedClock{At: now}, time.UTC)
	suite.orders = orderrepo.NewGormOrderRepository(pg.DB)
	suite.users = userrepo.NewGormUserRepository(pg.DB)
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.manager = suite.register("manager", "Mia", "Manager", identity.Manager)
	suite.super = suite.register("super", "Sol", "Super", identity.SuperAgent)
	suite.alice = suite.register("alice", "Alice", "Martin", identity.Agent)
	suite.bob = suite.register("bob", "", "", identity.Agent)
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_ScopeByRole() {
	suite.seed("A-1", suite.alice, now.Add(-2*time.Hour), order.Created)
	suite.seed("A-2", suite.alice, now.Add(-time.Hour), order.Prepared)
	suite.seed("B-1", suite.bob, now.Add(-time.Hour), order.Created)

	suite.Equal(int64(2), suite.list(suite.alice, queries.OrderFilter{}).TotalCount)
	suite.Equal(int64(3), suite.list(suite.manager, queries.OrderFilter{}).TotalCount)
	suite.Equal(int64(3), suite.list(suite.super, queries.OrderFilter{}).TotalCount)
	suite.Equal(int64(0), suite.list(suite.manager, queries.OrderFilter{CreatorOnly: true}).TotalCount)

	page := suite.list(suite.manager, queries.OrderFilter{CreatorID: suite.bob.ID().String()})
	suite.Require().Len(page.Results, 1)
	suite.Equal("B-1", page.Results[0].Reference)
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_StatusFilter() {
	suite.seed("S-1", suite.alice, now.Add(-2*time.Hour), order.Created)
	suite.seed("S-2", suite.alice, now.Add(-time.Hour), order.Prepared)

	page := suite.list(suite.manager, queries.OrderFilter{Status: "prepared"})
	suite.Require().Len(page.Results, 1)
	suite.Equal("S-2", page.Results[0].Reference)

	page = suite.list(suite.manager, queries.OrderFilter{Status: "SHIPPED"})
	suite.Equal(int64(2), page.TotalCount, "an unknown status is ignored")
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_DateWindows() {
	suite.seed("TODAY", suite.alice, now.Add(-time.Hour), order.Created)
	suite.seed("YESTERDAY", suite.alice, now.AddDate(0, 0, -1), order.Created)
	suite.seed("LAST-MONTH", suite.alice, now.AddDate(0, 0, -40), order.Created)

	count := func(p period.Params) int64 {
		return suite.list(suite.manager, queries.OrderFilter{Period: p}).TotalCount
	}
	suite.Equal(int64(1), count(period.Params{}))
	suite.Equal(int64(1), count(period.Params{Date: period.Yesterday}))
	suite.Equal(int64(2), count(period.Params{Date: period.Week}))
	suite.Equal(int64(3), count(period.Params{Date: period.All}))
	suite.Equal(int64(1), count(period.Params{Date: "2024-01-14"}))
	suite.Equal(int64(1), count(period.Params{Date: "not-a-date"}), "invalid dates fall back to today")
	suite.Equal(int64(2), count(period.Params{StartDate: "2024-01-14", EndDate: "2024-01-16"}))
	suite.Equal(int64(1), count(period.Params{StartDate: "2024-01-14", EndDate: "2024-01-15"}), "end date is exclusive")
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_OrderingAndPagination() {
	for i, ref := range []string{"C", "A", "E", "B", "D"} {
		suite.seed(ref, suite.alice, now.Add(-time.Duration(i+1)*time.Minute), order.Created)
	}

	handler := queries.NewListOrdersQueryHandler(suite.pg.DB, suite.calendar, zaptest.NewLogger(suite.T()))
	query, err := queries.NewListOrdersQuery(suite.manager, queries.OrderFilter{Ordering: "reference"}, queries.NewPage(2, 2))
	suite.Require().NoError(err)

	page, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(int64(5), page.TotalCount)
	suite.Equal(3, page.TotalPages)
	suite.Equal(2, page.Page)
	suite.Equal(2, page.PageSize)
	suite.Require().Len(page.Results, 2)
	suite.Equal("C", page.Results[0].Reference)
	suite.Equal("D", page.Results[1].Reference)

	defaultOrder := suite.list(suite.manager, queries.OrderFilter{Ordering: "secret_column"})
	suite.Equal("C", defaultOrder.Results[0].Reference, "unknown ordering falls back to newest first")
}

func (suite *QueriesIntegrationTestSuite) TestStageQueues() {
	suite.seed("Q-CREATED", suite.alice, now.Add(-3*time.Hour), order.Created)
	suite.seed("Q-PREP-OLD", suite.alice, now.Add(-3*time.Hour), order.Prepared)
	suite.seed("Q-PREP-NEW", suite.alice, now.Add(-2*time.Hour), order.Prepared)
	suite.seed("Q-PACKED", suite.alice, now.Add(-3*time.Hour), order.Packed)

	handler := queries.NewStageQueueQueryHandler(suite.pg.DB, suite.calendar, zaptest.NewLogger(suite.T()))
	query, err := queries.NewStageQueueQuery(suite.manager, "control", period.Params{}, false, queries.Page{})
	suite.Require().NoError(err)

	page, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(page.Results, 2)
	suite.Equal("Q-PREP-NEW", page.Results[0].Reference)
	suite.Equal("Q-PREP-OLD", page.Results[1].Reference)

	query, err = queries.NewStageQueueQuery(suite.bob, "preparation", period.Params{}, false, queries.Page{})
	suite.Require().NoError(err)
	page, err = handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(page.Results, "agents only see their own orders")
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder() {
	o := suite.seed("GET-1", suite.alice, now.Add(-time.Hour), order.Packed)
	handler := queries.NewGetOrderQueryHandler(suite.pg.DB)
	ctx := context.Background()

	query, err := queries.NewGetOrderQuery(suite.alice, o.ID())
	suite.Require().NoError(err)
	view, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(order.Packed, view.Status)
	suite.Require().NotNil(view.Durations.Total)
	suite.InDelta(30.0, *view.Durations.Total, 0.001)

	query, err = queries.NewGetOrderByReferenceQuery(suite.super, "GET-1")
	suite.Require().NoError(err)
	view, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.True(view.ID.IsEqual(o.ID()))

	query, err = queries.NewGetOrderQuery(suite.bob, o.ID())
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, query)
	suite.ErrorIs(err, errs.ErrPermissionDenied)

	query, err = queries.NewGetOrderQuery(suite.bob, kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, query)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestDashboard_AgentIsDenied() {
	query, err := queries.NewDashboardQuery(suite.super, period.Params{})
	suite.Require().NoError(err)

	_, err = suite.dashboardHandler().Handle(context.Background(), query)

	suite.ErrorIs(err, errs.ErrPermissionDenied)
}

func (suite *QueriesIntegrationTestSuite) TestDashboard_EmptyStore() {
	d := suite.dashboard(period.Params{})

	suite.Empty(d.Failed)
	suite.Zero(d.Distribution.Total)
	suite.Len(d.Distribution.ByStatus, 4)
	suite.Zero(d.Durations.Total)
	suite.Zero(d.Durations.Samples)
	suite.Zero(d.Growth.VsDay.Total)
	suite.Len(d.Monthly.Labels, 12)
	suite.Len(d.Workload, 2, "both agents are listed with zero counts")
}

func (suite *QueriesIntegrationTestSuite) TestDashboard_Sections() {
	for i := 0; i < 3; i++ {
		suite.seed("D-C-"+string(rune('0'+i)), suite.alice, now.Add(-3*time.Hour), order.Created)
	}
	suite.seed("D-P-1", suite.alice, now.Add(-3*time.Hour), order.Packed)
	suite.seed("D-P-2", suite.bob, now.Add(-2*time.Hour), order.Packed)
	suite.seed("D-Y-1", suite.bob, now.AddDate(0, 0, -1), order.Created)
	suite.seed("D-Y-2", suite.bob, now.AddDate(0, 0, -1), order.Created)

	d := suite.dashboard(period.Params{})
	suite.Empty(d.Failed)

	suite.Equal(int64(5), d.Distribution.Total)
	suite.Equal(int64(2), d.Distribution.Completed)
	suite.Equal(int64(3), d.Distribution.InProgress)
	suite.Equal(int64(3), d.Distribution.ByStatus[order.Created])

	suite.Equal(int64(2), d.Growth.PreviousDay.Total)
	suite.InDelta(150.0, d.Growth.VsDay.Total, 0.001)
	suite.InDelta(100.0, d.Growth.VsDay.Completed, 0.001, "nothing was packed yesterday")

	suite.Equal(int64(2), d.Durations.Samples)
	suite.InDelta(10.0, d.Durations.Preparation, 0.001)
	suite.InDelta(30.0, d.Durations.Total, 0.001)

	suite.Require().Len(d.Workload, 2)
	alice := d.Workload[0]
	suite.Equal("alice", alice.Username)
	suite.Equal("Alice Martin", alice.DisplayName)
	suite.Equal(int64(4), alice.Created)
	suite.Equal(int64(1), alice.Packed)
	suite.Equal(int64(4+1+1+1), alice.Total)
	suite.Equal("bob", d.Workload[1].DisplayName)

	suite.Equal("Jan", d.Monthly.Labels[0])
	suite.Equal(int64(7), d.Monthly.Orders[0])
	suite.Equal(int64(2), d.Monthly.Packed[0])
}

func (suite *QueriesIntegrationTestSuite) TestDashboard_FailingSectionIsIsolated() {
	suite.seed("ISO-1", suite.alice, now.Add(-time.Hour), order.Created)
	suite.Require().NoError(suite.pg.DB.Exec("ALTER TABLE users RENAME TO users_hidden").Error)
	defer func() {
		suite.Require().NoError(suite.pg.DB.Exec("ALTER TABLE users_hidden RENAME TO users").Error)
	}()

	d := suite.dashboard(period.Params{})

	suite.Equal([]string{queries.SectionWorkload}, d.Failed)
	suite.Empty(d.Workload)
	suite.Equal(int64(1), d.Distribution.Total)
	suite.Equal(int64(1), d.Monthly.Orders[0], "sections after the failure still run")
}

func (suite *QueriesIntegrationTestSuite) TestUpstreamOrders_MergeByReference() {
	o := suite.seed("SHOP-1", suite.alice, now.Add(-time.Hour), order.Controlled)
	feed := &stubFeed{orders: []ports.UpstreamOrder{
		{ID: "10", Reference: "SHOP-1", Status: "3", CustomerName: "Jane Roe"},
		{ID: "11", Reference: "SHOP-2", Status: "3", CustomerName: "N/A"},
	}}
	handler := queries.NewUpstreamOrdersQueryHandler(feed, suite.pg.DB, suite.calendar, zaptest.NewLogger(suite.T()))

	query, err := queries.NewUpstreamOrdersQuery(suite.manager, "2024-01-15")
	suite.Require().NoError(err)
	merged, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), feed.day)
	suite.Require().Len(merged, 2)
	suite.Require().NotNil(merged[0].Internal)
	suite.True(merged[0].Internal.ID.IsEqual(o.ID()))
	suite.Equal("5", merged[0].StateCode)
	suite.Equal("alice", merged[0].CreatedBy)
	suite.Equal("alice", merged[0].ControlledBy)
	suite.Empty(merged[0].PackedBy)
	suite.Nil(merged[1].Internal)
	suite.Equal("3", merged[1].StateCode)

	query, err = queries.NewUpstreamOrdersQuery(suite.super, "")
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrPermissionDenied)
}

func (suite *QueriesIntegrationTestSuite) TestUpstreamOrders_FeedFailure() {
	feed := &stubFeed{err: errs.NewUpstreamUnavailableError("storefront", context.DeadlineExceeded)}
	handler := queries.NewUpstreamOrdersQueryHandler(feed, suite.pg.DB, suite.calendar, zaptest.NewLogger(suite.T()))
	query, err := queries.NewUpstreamOrdersQuery(suite.manager, "")
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	suite.ErrorIs(err, errs.ErrUpstreamUnavailable)
}

func (suite *QueriesIntegrationTestSuite) TestReconcileUpstream() {
	suite.seed("SHOP-1", suite.alice, now.Add(-time.Hour), order.Created)
	feed := &stubFeed{orders: []ports.UpstreamOrder{
		{ID: "10", Reference: "SHOP-1"},
		{ID: "11", Reference: "SHOP-2"},
		{ID: "12", Reference: "SHOP-3"},
	}}
	handler := queries.NewReconcileUpstreamQueryHandler(feed, suite.pg.DB, suite.calendar)

	result, err := handler.Handle(context.Background())

	suite.Require().NoError(err)
	suite.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), result.Day)
	suite.Equal(3, result.Fetched)
	suite.Equal([]string{"SHOP-2", "SHOP-3"}, result.Unmatched)
}

func (suite *QueriesIntegrationTestSuite) TestListUsers() {
	handler := queries.NewListUsersQueryHandler(suite.pg.DB)

	query, err := queries.NewListUsersQuery(suite.manager)
	suite.Require().NoError(err)
	users, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(users, 4)
	suite.Equal("alice", users[0].Username)
	suite.Equal(identity.Agent, users[0].Role)

	query, err = queries.NewListUsersQuery(suite.alice)
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrPermissionDenied)
}

func (suite *QueriesIntegrationTestSuite) register(username, first, last string, role identity.Role) identity.Caller {
	u, err := identity.NewUser(kernel.NewUUID(), username, first, last, role)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.users.Add(context.Background(), u))
	caller, err := identity.NewCaller(u.ID(), role)
	suite.Require().NoError(err)
	return caller
}

// seed stores an order created by creator at createdAt and advanced to
// status by the same agent: prepared 10, controlled 20 and packed 30 minutes
// after creation.
func (suite *QueriesIntegrationTestSuite) seed(
	reference string,
	creator identity.Caller,
	createdAt time.Time,
	status order.Status,
) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), reference, "CART", creator.ID(), createdAt)
	suite.Require().NoError(err)
	actor := creator.ID()
	if status.Reached(order.Prepared) {
		suite.Require().NoError(o.Prepare(actor, nil, createdAt.Add(10*time.Minute)))
	}
	if status.Reached(order.Controlled) {
		suite.Require().NoError(o.Control(actor, createdAt.Add(20*time.Minute)))
	}
	if status.Reached(order.Packed) {
		suite.Require().NoError(o.Pack(actor, createdAt.Add(30*time.Minute)))
	}
	suite.Require().NoError(suite.orders.Add(context.Background(), o))
	return o
}

func (suite *QueriesIntegrationTestSuite) list(caller identity.Caller, filter queries.OrderFilter) queries.OrderPage {
	handler := queries.NewListOrdersQueryHandler(suite.pg.DB, suite.calendar, zaptest.NewLogger(suite.T()))
	query, err := queries.NewListOrdersQuery(caller, filter, queries.Page{})
	suite.Require().NoError(err)
	page, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	return page
}

func (suite *QueriesIntegrationTestSuite) dashboardHandler() queries.GetDashboardQueryHandler {
	return queries.NewGetDashboardQueryHandler(
		suite.pg.DB, suite.calendar, services.NewReportCalculator(), zaptest.NewLogger(suite.T()),
	)
}

func (suite *QueriesIntegrationTestSuite) dashboard(p period.Params) queries.Dashboard {
	query, err := queries.NewDashboardQuery(suite.manager, p)
	suite.Require().NoError(err)
	d, err := suite.dashboardHandler().Handle(context.Background(), query)
	suite.Require().NoError(err)
	return d
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
