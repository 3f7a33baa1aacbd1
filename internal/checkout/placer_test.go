package checkout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/checkout"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type recordingAPI struct {
	calls      []string
	added      map[int64]int
	created    domain.CreateOrderRequest
	failOn     string
	confirmErr error
}

func (r *recordingAPI) Clear(context.Context) error {
	r.calls = append(r.calls, "clear")
	if r.failOn == "clear" {
		return errors.New("clear failed")
	}
	r.added = map[int64]int{}
	return nil
}

func (r *recordingAPI) AddItem(_ context.Context, productID int64, quantity int) (domain.ServerCart, error) {
	r.calls = append(r.calls, "add")
	if r.failOn == "add" {
		return domain.ServerCart{}, errors.New("out of stock")
	}
	r.added[productID] = quantity
	return domain.ServerCart{}, nil
}

func (r *recordingAPI) Create(_ context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	r.calls = append(r.calls, "create")
	r.created = req
	return domain.Order{ID: 7, Status: domain.OrderStatusPending, TotalAmount: decimal.RequireFromString("22.00")}, nil
}

func (r *recordingAPI) ConfirmPayment(_ context.Context, orderID int64) (domain.PaymentConfirmation, error) {
	r.calls = append(r.calls, "confirm")
	if r.confirmErr != nil {
		return domain.PaymentConfirmation{}, r.confirmErr
	}
	return domain.PaymentConfirmation{Message: "Payment confirmed", OrderID: orderID}, nil
}

func TestAPIOrderPlacer_SyncsCartThenOrders(t *testing.T) {
	api := &recordingAPI{}
	placer := checkout.NewAPIOrderPlacer(api, api, nil)

	items := []domain.CartItem{{ID: 1, Quantity: 2}, {ID: 5, Quantity: 1}}
	order, err := placer.PlaceOrder(context.Background(), items, validAddress)
	require.NoError(t, err)

	require.Equal(t, []string{"clear", "add", "add", "create", "confirm"}, api.calls)
	require.Equal(t, map[int64]int{1: 2, 5: 1}, api.added)
	require.Equal(t, "Springfield", api.created.ShippingCity)
	require.Equal(t, "1 Main St", api.created.ShippingAddress)
	require.EqualValues(t, 7, order.ID)
	require.Equal(t, domain.PaymentStatusCompleted, order.PaymentStatus)
}

func TestAPIOrderPlacer_StopsOnFirstFailure(t *testing.T) {
	api := &recordingAPI{failOn: "add"}
	placer := checkout.NewAPIOrderPlacer(api, api, nil)

	_, err := placer.PlaceOrder(context.Background(), []domain.CartItem{{ID: 1, Quantity: 1}, {ID: 2, Quantity: 1}}, validAddress)
	require.ErrorContains(t, err, "out of stock")
	require.Equal(t, []string{"clear", "add"}, api.calls)
}

func TestAPIOrderPlacer_ConfirmFailure(t *testing.T) {
	api := &recordingAPI{confirmErr: errors.New("declined")}
	placer := checkout.NewAPIOrderPlacer(api, api, nil)

	_, err := placer.PlaceOrder(context.Background(), []domain.CartItem{{ID: 1, Quantity: 1}}, validAddress)
	require.ErrorContains(t, err, "confirm payment for order 7")
}

func TestAPIOrderPlacer_EmptyCart(t *testing.T) {
	api := &recordingAPI{}
	_, err := checkout.NewAPIOrderPlacer(api, api, nil).PlaceOrder(context.Background(), nil, validAddress)
	require.ErrorIs(t, err, domain.ErrEmptyCart)
	require.Empty(t, api.calls)
}
