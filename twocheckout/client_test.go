package twocheckout_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/twocheckout-go/twocheckout"
)

const (
	testSellerID = "1001"
	testSecret   = "tango"
	testUsername = "apiuser"
	testPassword = "apipass"
)

// gatewayStub serves canned Admin API responses and records what it saw.
type gatewayStub struct {
	t        *testing.T
	status   int
	body     string
	lastPath string
	lastForm map[string]string
}

func (g *gatewayStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g.lastPath = r.URL.Path

		username, password, ok := r.BasicAuth()
		require.True(g.t, ok, "missing basic auth")
		require.Equal(g.t, testUsername, username)
		require.Equal(g.t, testPassword, password)
		require.Equal(g.t, "application/json", r.Header.Get("Accept"))

		if r.Method == http.MethodPost {
			require.NoError(g.t, r.ParseForm())
			g.lastForm = map[string]string{}
			for key := range r.PostForm {
				g.lastForm[key] = r.PostForm.Get(key)
			}
		}

		status := g.status
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(g.body))
	}
}

func newTestClient(t *testing.T, stub *gatewayStub) (*twocheckout.Client, *httptest.Server) {
	t.Helper()
	stub.t = t
	server := httptest.NewServer(stub.handler())
	t.Cleanup(server.Close)
	client := twocheckout.NewClient(&twocheckout.Config{
		SellerID:   testSellerID,
		SecretWord: testSecret,
		Username:   testUsername,
		Password:   testPassword,
		BaseURL:    server.URL,
	})
	return client, server
}

func envelope(extra map[string]any) string {
	payload := map[string]any{"response_code": "OK", "response_message": "request processed"}
	for key, value := range extra {
		payload[key] = value
	}
	out, _ := json.Marshal(payload)
	return string(out)
}

func TestListPayments(t *testing.T) {
	t.Parallel()

	stub := &gatewayStub{body: envelope(map[string]any{
		"payments": []any{map[string]any{"amount": "1500.00", "date": "2012-01-01"}},
	})}
	client, _ := newTestClient(t, stub)

	payments, err := client.ListPayments(context.Background())
	require.NoError(t, err)
	require.Len(t, payments, 1)
	require.Equal(t, "1500.00", payments[0]["amount"])
	require.Equal(t, "/api/acct/list_payments", stub.lastPath)
}

func TestListSales(t *testing.T) {
	t.Parallel()

	stub := &gatewayStub{body: envelope(map[string]any{
		"sale_summary": []any{
			map[string]any{"sale_id": "4774380224"},
			map[string]any{"sale_id": "4774380225"},
		},
	})}
	client, _ := newTestClient(t, stub)

	sales, err := client.ListSales(context.Background(), twocheckout.Params{"customer_email": "a@b.c"})
	require.NoError(t, err)
	require.Len(t, sales, 2)
	require.Equal(t, "/api/sales/list_sales", stub.lastPath)
}

func TestListSalesRejectsUnknownFilter(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, &gatewayStub{body: envelope(nil)})
	_, err := client.ListSales(context.Background(), twocheckout.Params{"salez_id": "1"})
	require.ErrorIs(t, err, twocheckout.ErrUnsupportedParameter)
}

func TestListSalesNoRecordsIsEmptyResult(t *testing.T) {
	t.Parallel()

	stub := &gatewayStub{body: `{"errors":[{"code":"203","message":"No applicable records found"}]}`}
	client, _ := newTestClient(t, stub)

	sales, err := client.ListSales(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, sales)
	require.NotNil(t, sales)
}

func TestListSalesNumericNoRecordsCode(t *testing.T) {
	t.Parallel()

	// some deployments emit the code as a JSON number
	stub := &gatewayStub{body: `{"errors":[{"code":203,"message":"No applicable records found"}]}`}
	client, _ := newTestClient(t, stub)

	sales, err := client.ListSales(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, sales)
}

func TestDetailSale(t *testing.T) {
	t.Parallel()

	stub := &gatewayStub{body: envelope(map[string]any{
		"sale": map[string]any{"sale_id": "4774380224", "invoices": []any{}},
	})}
	client, _ := newTestClient(t, stub)

	sale, err := client.DetailSale(context.Background(), "4774380224")
	require.NoError(t, err)
	require.Equal(t, "4774380224", sale["sale_id"])
	require.Equal(t, "/api/sales/detail_sale", stub.lastPath)
}

func TestDetailSaleParamsRequiresSaleID(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, &gatewayStub{body: envelope(nil)})
	_, err := client.DetailSaleParams(context.Background(), twocheckout.Params{})
	require.ErrorIs(t, err, twocheckout.ErrMissingParameter)
}

func TestCreateComment(t *testing.T) {
	t.Parallel()

	stub := &gatewayStub{body: envelope(nil)}
	client, _ := newTestClient(t, stub)

	err := client.CreateComment(context.Background(), "4774380224", "refund issued",
		&twocheckout.CommentOptions{CCVendor: true})
	require.NoError(t, err)
	require.Equal(t, "/api/sales/create_comment", stub.lastPath)
	require.Equal(t, "4774380224", stub.lastForm["sale_id"])
	require.Equal(t, "refund issued", stub.lastForm["sale_comment"])
	require.Equal(t, "1", stub.lastForm["cc_vendor"])
	_, ok := stub.lastForm["cc_customer"]
	require.False(t, ok)
}

func TestProductDetails(t *testing.T) {
	t.Parallel()

	stub := &gatewayStub{body: envelope(map[string]any{
		"product": map[string]any{"product_id": "77", "assigned_product_id": "9093717"},
	})}
	client, _ := newTestClient(t, stub)

	product, err := client.ProductDetails(context.Background(), "77")
	require.NoError(t, err)
	require.Equal(t, "9093717", product["assigned_product_id"])
	require.Equal(t, "/api/products/detail_product", stub.lastPath)
}

func TestVendorProductDetails(t *testing.T) {
	t.Parallel()

	stub := &gatewayStub{body: envelope(map[string]any{
		"products": []any{map[string]any{"vendor_product_id": "sku-1", "assigned_product_id": "9093717"}},
	})}
	client, _ := newTestClient(t, stub)

	product, err := client.VendorProductDetails(context.Background(), "sku-1")
	require.NoError(t, err)
	require.Equal(t, "9093717", product["assigned_product_id"])
	require.Equal(t, "/api/products/list_products", stub.lastPath)
}

func TestVendorProductDetailsAmbiguous(t *testing.T) {
	t.Parallel()

	stub := &gatewayStub{body: envelope(map[string]any{
		"products": []any{map[string]any{}, map[string]any{}},
	})}
	client, _ := newTestClient(t, stub)

	_, err := client.VendorProductDetails(context.Background(), "sku-1")
	require.ErrorIs(t, err, twocheckout.ErrProductNotFound)
}

func TestVendorProductDetailsMissing(t *testing.T) {
	t.Parallel()

	stub := &gatewayStub{body: envelope(map[string]any{"products": []any{}})}
	client, _ := newTestClient(t, stub)

	_, err := client.VendorProductDetails(context.Background(), "sku-1")
	require.ErrorIs(t, err, twocheckout.ErrProductNotFound)
}

func TestUnwrapEmptyBody(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, &gatewayStub{body: ""})
	_, err := client.ListPayments(context.Background())
	require.ErrorIs(t, err, twocheckout.ErrEmptyResponse)
}

func TestUnwrapMalformedBody(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, &gatewayStub{body: "<html>gateway maintenance</html>"})
	_, err := client.ListPayments(context.Background())
	require.ErrorIs(t, err, twocheckout.ErrMalformedResponse)
}

func TestUnwrapFirstErrorWins(t *testing.T) {
	t.Parallel()

	stub := &gatewayStub{body: `{"errors":[{"code":"400","message":"first"},{"code":"401","message":"second"}]}`}
	client, _ := newTestClient(t, stub)

	_, err := client.ListPayments(context.Background())
	var apiErr *twocheckout.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "400", apiErr.Code)
	require.Equal(t, "first", apiErr.Message)
}

func TestUnwrapWarningIsFatal(t *testing.T) {
	t.Parallel()

	stub := &gatewayStub{body: `{"warnings":[{"code":"600","message":"deprecated endpoint"}],"response_code":"OK"}`}
	client, _ := newTestClient(t, stub)

	_, err := client.ListPayments(context.Background())
	var warnErr *twocheckout.APIWarningError
	require.ErrorAs(t, err, &warnErr)
	require.Equal(t, "600", warnErr.Code)
}

func TestUnwrapResponseCodeNotOK(t *testing.T) {
	t.Parallel()

	stub := &gatewayStub{body: `{"response_code":"DECLINED","response_message":"card declined"}`}
	client, _ := newTestClient(t, stub)

	_, err := client.ListPayments(context.Background())
	var respErr *twocheckout.APIResponseError
	require.ErrorAs(t, err, &respErr)
	require.Equal(t, "DECLINED", respErr.Code)
	require.Equal(t, "card declined", respErr.Message)
}

func TestUnwrapHTTPStatusError(t *testing.T) {
	t.Parallel()

	stub := &gatewayStub{status: http.StatusInternalServerError, body: envelope(nil)}
	client, _ := newTestClient(t, stub)

	_, err := client.ListPayments(context.Background())
	var statusErr *twocheckout.HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusInternalServerError, statusErr.Status)
}

func TestUnwrapEnvelopeErrorWinsOverStatus(t *testing.T) {
	t.Parallel()

	stub := &gatewayStub{
		status: http.StatusBadRequest,
		body:   `{"errors":[{"code":"PARAMETER_INVALID","message":"bad sale_id"}]}`,
	}
	client, _ := newTestClient(t, stub)

	_, err := client.ListPayments(context.Background())
	var apiErr *twocheckout.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "PARAMETER_INVALID", apiErr.Code)
}
