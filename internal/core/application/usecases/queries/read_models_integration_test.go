package queries_test

import (
	"context"
	"testing"
	"time"

	"ordercore/internal/adapters/out/postgres/cartrepo"
	"ordercore/internal/adapters/out/postgres/orderrepo"
	"ordercore/internal/adapters/out/postgres/pgtest"
	"ordercore/internal/adapters/out/postgres/productrepo"
	"ordercore/internal/core/application/usecases/queries"
	"ordercore/internal/core/domain/model/cart"
	"ordercore/internal/core/domain/model/catalog"
	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/core/domain/model/order"
	"ordercore/internal/pkg/errs"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// noopTracker satisfies the repositories' aggregate tracker outside a unit of work.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type lineRow struct {
	Name     string
	Quantity int
	Price    string
	Subtotal string
}

type ReadModelsIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	carts    *cartrepo.GormCartRepository
	orders   *orderrepo.GormOrderRepository
}

func (suite *ReadModelsIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.database = database
	suite.Require().NoError(err)
	suite.carts = cartrepo.NewGormCartRepository(database.DB, noopTracker{})
	suite.orders = orderrepo.NewGormOrderRepository(database.DB, noopTracker{})
}

func (suite *ReadModelsIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *ReadModelsIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *ReadModelsIntegrationTestSuite) seedProduct(price string, active bool) catalog.Product {
	name := gofakeit.ProductName()
	id := kernel.NewUUID()
	dto := productrepo.ProductDTO{
		ID:       id.Bytes(),
		Name:     name,
		Price:    decimal.RequireFromString(price),
		IsActive: active,
	}
	suite.Require().NoError(suite.database.DB.Create(&dto).Error)

	p, err := catalog.NewProduct(id, name, kernel.MustMoney(price), active)
	suite.Require().NoError(err)
	return p
}

func (suite *ReadModelsIntegrationTestSuite) placeOrder(userID kernel.UUID, number string, at time.Time) *order.Order {
	a := suite.seedProduct("100.00", true)
	b := suite.seedProduct("50.00", true)
	c, err := cart.NewCart(kernel.NewUUID(), userID)
	suite.Require().NoError(err)
	suite.Require().NoError(c.AddItem(a, 2))
	suite.Require().NoError(c.AddItem(b, 1))

	n, err := order.ParseNumber(number)
	suite.Require().NoError(err)
	o, err := order.NewOrderFromCart(kernel.NewUUID(), n, c,
		map[kernel.UUID]catalog.Product{a.ID(): a, b.ID(): b},
		"leave at the door", map[string]string{"phone": "+15550100"}, at)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Add(context.Background(), o))
	return o
}

func (suite *ReadModelsIntegrationTestSuite) TestGetCart_NoCartReturnsEmptyView() {
	userID := kernel.NewUUID()
	query, err := queries.NewGetCartQuery(userID)
	suite.Require().NoError(err)

	view, err := queries.NewGetCartQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.False(view.Exists)
	suite.Equal(userID, view.UserID)
	suite.NotNil(view.Lines)
	suite.Empty(view.Lines)
	suite.True(view.TotalAmount.IsZero())

	var count int64
	suite.Require().NoError(suite.database.DB.Model(&cartrepo.CartDTO{}).Count(&count).Error)
	suite.Zero(count, "reading a cart must not create one")
}

func (suite *ReadModelsIntegrationTestSuite) TestGetCart_JoinsCatalog() {
	ctx := context.Background()
	kept := suite.seedProduct("12.50", true)
	retired := suite.seedProduct("8.00", false)
	repriced := suite.seedProduct("4.00", true)

	c, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Require().NoError(c.AddItem(kept, 2))
	suite.Require().NoError(c.AddItem(retired, 1))
	suite.Require().NoError(c.AddItem(repriced, 3))
	suite.Require().NoError(suite.carts.Add(ctx, c))
	suite.Require().NoError(suite.database.DB.Model(&productrepo.ProductDTO{}).
		Where("id = ?", repriced.ID().Bytes()).Update("price", decimal.RequireFromString("5.00")).Error)

	query, err := queries.NewGetCartQuery(c.UserID())
	suite.Require().NoError(err)

	view, err := queries.NewGetCartQueryHandler(suite.database.DB).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.True(view.Exists)
	suite.Equal(c.ID(), view.ID)
	suite.Equal("45.00", view.TotalAmount.StringFixed(2))
	suite.Equal(6, view.TotalItemCount)
	suite.Require().Len(view.Lines, 3)

	suite.Equal(kept.ID(), view.Lines[0].ProductID)
	suite.Equal(kept.Name(), view.Lines[0].ProductName)
	suite.Equal("25.00", view.Lines[0].Subtotal.StringFixed(2))
	suite.True(view.Lines[0].IsAvailable)

	suite.False(view.Lines[1].IsAvailable)

	suite.Equal("4.00", view.Lines[2].UnitPrice.StringFixed(2), "cart keeps the locked price")
	suite.Equal("5.00", view.Lines[2].CurrentPrice.StringFixed(2))
}

func (suite *ReadModelsIntegrationTestSuite) TestGetOrder_ByIDAndNumber() {
	ctx := context.Background()
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	o := suite.placeOrder(kernel.NewUUID(), "ORD-20240601-QRY00001", at)
	handler := queries.NewGetOrderQueryHandler(suite.database.DB)

	byID, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)
	byNumber, err := queries.NewGetOrderByNumberQuery("ORD-20240601-QRY00001")
	suite.Require().NoError(err)

	for _, query := range []queries.GetOrderQuery{byID, byNumber} {
		details, err := handler.Handle(ctx, query)
		suite.Require().NoError(err)

		suite.Equal(o.ID(), details.ID)
		suite.Equal(o.UserID(), details.UserID)
		suite.Equal("ORD-20240601-QRY00001", details.Number)
		suite.Equal("PENDING", details.Status)
		suite.Equal([]string{"CONFIRMED", "CANCELLED"}, details.AllowedStatuses)
		suite.Equal("250.00", details.TotalAmount.StringFixed(2))
		suite.Equal(3, details.TotalItemCount)
		suite.Equal("leave at the door", details.CustomerComment)
		suite.Equal(map[string]string{"phone": "+15550100"}, details.ContactInfo)
		suite.True(at.Equal(details.CreatedAt))
		suite.Nil(details.ConfirmedAt)
		suite.Nil(details.CompletedAt)

		want := []lineRow{
			{Name: o.Lines()[0].ProductName(), Quantity: 2, Price: "100.00", Subtotal: "200.00"},
			{Name: o.Lines()[1].ProductName(), Quantity: 1, Price: "50.00", Subtotal: "50.00"},
		}
		got := make([]lineRow, 0, len(details.Lines))
		for _, l := range details.Lines {
			got = append(got, lineRow{l.ProductName, l.Quantity, l.UnitPrice.StringFixed(2), l.Subtotal.StringFixed(2)})
		}
		if diff := cmp.Diff(want, got); diff != "" {
			suite.Failf("order lines mismatch", "(-want +got):\n%s", diff)
		}
	}
}

func (suite *ReadModelsIntegrationTestSuite) TestGetOrder_ReflectsTransition() {
	ctx := context.Background()
	created := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	o := suite.placeOrder(kernel.NewUUID(), "ORD-20240601-QRY00002", created)
	suite.Require().NoError(o.Confirm("", created.Add(time.Hour)))
	suite.Require().NoError(o.StartProcessing("", created.Add(2*time.Hour)))
	suite.Require().NoError(o.MarkReady("", created.Add(3*time.Hour)))
	suite.Require().NoError(o.Cancel("customer asked", created.Add(4*time.Hour)))
	suite.Require().NoError(suite.orders.Update(ctx, o))

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)

	details, err := queries.NewGetOrderQueryHandler(suite.database.DB).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal("CANCELLED", details.Status)
	suite.Empty(details.AllowedStatuses)
	suite.Contains(details.ManagerComment, "CANCELLED: customer asked")
	suite.Require().NotNil(details.ConfirmedAt)
	suite.Nil(details.CompletedAt)
}

func (suite *ReadModelsIntegrationTestSuite) TestGetOrder_NotFound() {
	handler := queries.NewGetOrderQueryHandler(suite.database.DB)

	byID, _ := queries.NewGetOrderQuery(kernel.NewUUID())
	_, err := handler.Handle(context.Background(), byID)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	byNumber, _ := queries.NewGetOrderByNumberQuery("ORD-20240601-MISSING1")
	_, err = handler.Handle(context.Background(), byNumber)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ReadModelsIntegrationTestSuite) TestGetUserOrders_NewestFirstWithPaging() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	first := suite.placeOrder(userID, "ORD-20240601-PAGE0001", base)
	second := suite.placeOrder(userID, "ORD-20240601-PAGE0002", base.Add(time.Minute))
	third := suite.placeOrder(userID, "ORD-20240601-PAGE0003", base.Add(2*time.Minute))
	suite.placeOrder(kernel.NewUUID(), "ORD-20240601-OTHER001", base.Add(3*time.Minute))
	handler := queries.NewGetUserOrdersQueryHandler(suite.database.DB)

	all, err := queries.NewGetUserOrdersQuery(userID, 0, 0)
	suite.Require().NoError(err)
	orders, err := handler.Handle(ctx, all)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 3)
	suite.Equal(third.ID(), orders[0].ID)
	suite.Equal(second.ID(), orders[1].ID)
	suite.Equal(first.ID(), orders[2].ID)
	suite.Equal("PENDING", orders[0].Status)
	suite.Equal("250.00", orders[0].TotalAmount.StringFixed(2))
	suite.Equal(3, orders[0].TotalItemCount)

	page, err := queries.NewGetUserOrdersQuery(userID, 2, 1)
	suite.Require().NoError(err)
	orders, err = handler.Handle(ctx, page)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 2)
	suite.Equal(second.ID(), orders[0].ID)
	suite.Equal(first.ID(), orders[1].ID)

	none, err := queries.NewGetUserOrdersQuery(kernel.NewUUID(), 0, 0)
	suite.Require().NoError(err)
	orders, err = handler.Handle(ctx, none)
	suite.Require().NoError(err)
	suite.NotNil(orders)
	suite.Empty(orders)
}

func (suite *ReadModelsIntegrationTestSuite) TestHandle_CancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	query, _ := queries.NewGetUserOrdersQuery(kernel.NewUUID(), 0, 0)
	orders, err := queries.NewGetUserOrdersQueryHandler(suite.database.DB).Handle(ctx, query)

	suite.Require().Error(err)
	suite.Nil(orders)
}

func TestReadModelsIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ReadModelsIntegrationTestSuite))
}
