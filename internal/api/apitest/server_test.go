package apitest_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/api"
	"github.com/vladislavdragonenkov/storefront/internal/api/apitest"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func newClient(t *testing.T, srv *apitest.Server) (*api.Client, *api.CredentialStore) {
	t.Helper()
	tokens := api.NewCredentialStore(memory.NewKVStore(), nil)
	doer := api.NewAuthTransport(http.DefaultClient, srv.URL(), tokens, nil)
	return api.NewClient(srv.URL(), doer, tokens), tokens
}

func TestServer_OrderFromServerCart(t *testing.T) {
	ctx := context.Background()
	srv := apitest.NewServer(t)
	srv.AddUser("alice", "secret", false)
	mug := srv.AddProduct(domain.Product{Name: "Mug", Price: decimal.RequireFromString("10.00"), Stock: 5})

	client, _ := newClient(t, srv)
	_, err := client.Auth.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	_, err = client.Cart.AddItem(ctx, mug.ID, 6)
	require.True(t, api.IsStatus(err, http.StatusBadRequest), "stock must be enforced, got %v", err)

	cart, err := client.Cart.AddItem(ctx, mug.ID, 2)
	require.NoError(t, err)
	require.Equal(t, "20", cart.TotalPrice.String())

	order, err := client.Orders.Create(ctx, domain.NewCreateOrderRequest(domain.Address{Street: "1 Main", City: "Town", Zip: "1", Country: "US"}))
	require.NoError(t, err)
	require.Equal(t, "22.00", order.TotalAmount.StringFixed(2))
	require.Equal(t, domain.PaymentStatusPending, order.PaymentStatus)
	require.Empty(t, srv.Cart("alice").Items, "order creation empties the server cart")

	_, err = client.Orders.ConfirmPayment(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.PaymentStatusCompleted, srv.Orders()[0].PaymentStatus)
}

func TestServer_StaffOnlyEndpoints(t *testing.T) {
	ctx := context.Background()
	srv := apitest.NewServer(t)
	srv.AddUser("bob", "pw", false)
	srv.AddUser("root", "pw", true)

	client, _ := newClient(t, srv)
	_, err := client.Auth.Login(ctx, "bob", "pw")
	require.NoError(t, err)
	_, err = client.Orders.Analytics(ctx)
	require.True(t, api.IsStatus(err, http.StatusForbidden), "got %v", err)

	_, err = client.Auth.Login(ctx, "root", "pw")
	require.NoError(t, err)
	analytics, err := client.Orders.Analytics(ctx)
	require.NoError(t, err)
	require.Zero(t, analytics.TotalOrders)
}

func TestServer_ExpiredAccessTokenIsRefreshed(t *testing.T) {
	ctx := context.Background()
	srv := apitest.NewServer(t)
	srv.AddUser("alice", "secret", false)

	client, tokens := newClient(t, srv)
	_, err := client.Auth.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	before := tokens.AccessToken()

	srv.ExpireAccessTokens()
	user, err := client.Auth.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, 1, srv.RefreshCalls())
	require.NotEqual(t, before, tokens.AccessToken())
}
