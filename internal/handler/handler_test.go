package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"distribution-service/internal/analytics"
	"distribution-service/internal/insight"
	"distribution-service/internal/model"
	"distribution-service/internal/posting"
	"distribution-service/internal/store"
	"distribution-service/internal/testdb"
	"distribution-service/prometheus"

	"github.com/labstack/echo/v4"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
)

type fakeGenerator struct {
	out  *insight.Insights
	err  error
	seen insight.Summary
}

func (f *fakeGenerator) Generate(_ context.Context, s insight.Summary) (*insight.Insights, error) {
	f.seen = s
	return f.out, f.err
}

type server struct {
	e       *echo.Echo
	store   *store.Store
	metrics *prometheus.Metrics
	gen     *fakeGenerator
}

func newServer(t *testing.T) server {
	t.Helper()
	metrics := prometheus.NewMetrics("test", promclient.NewRegistry())
	st := store.New(testdb.New(t), metrics)
	gen := &fakeGenerator{}
	h := New("distribution-service", st, posting.NewService(st, metrics), analytics.NewAggregator(st, metrics), gen, metrics)

	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler
	e.GET("/health", h.Health)
	h.RegisterRoutes(e.Group("/api"))
	return server{e: e, store: st, metrics: metrics, gen: gen}
}

func (s server) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

type errorBody struct {
	Message string `json:"message"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func TestHealth(t *testing.T) {
	s := newServer(t)
	rec := s.do(t, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["database"] != "connected" || body["service"] != "distribution-service" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestCreateAndGetEntities(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodPost, "/api/suppliers", `{"name":"Abdullah Farm","phone":"0500000000"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create supplier status = %d body %s", rec.Code, rec.Body.String())
	}
	var supplier model.Supplier
	decode(t, rec, &supplier)

	rec = s.do(t, http.MethodGet, "/api/suppliers/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get supplier status = %d", rec.Code)
	}

	rec = s.do(t, http.MethodPost, "/api/customers", `{"name":"Madina Restaurant","creditLimit":5000}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create customer status = %d body %s", rec.Code, rec.Body.String())
	}
	var customer model.Customer
	decode(t, rec, &customer)
	if !customer.TotalDebt.IsZero() || !customer.CreditLimit.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("unexpected customer %+v", customer)
	}

	rec = s.do(t, http.MethodPost, "/api/products", `{"name":"Spunta","unit":"25kg sack","currentStock":"12.5"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create product status = %d body %s", rec.Code, rec.Body.String())
	}
	var product model.Product
	decode(t, rec, &product)
	if !product.ReorderLevel.Equal(model.DefaultReorderLevel) {
		t.Fatalf("reorder level = %s", product.ReorderLevel)
	}

	rec = s.do(t, http.MethodGet, "/api/products", "")
	var products []model.Product
	decode(t, rec, &products)
	if len(products) != 1 || products[0].Name != "Spunta" {
		t.Fatalf("unexpected products %+v", products)
	}
}

func TestNotFoundAndBadID(t *testing.T) {
	s := newServer(t)

	cases := map[string]string{
		"/api/suppliers/99": "Supplier not found",
		"/api/customers/99": "Customer not found",
		"/api/products/99":  "Product not found",
		"/api/purchases/99": "Purchase not found",
		"/api/sales/99":     "Sale not found",
	}
	for path, want := range cases {
		rec := s.do(t, http.MethodGet, path, "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: status = %d", path, rec.Code)
		}
		var body errorBody
		decode(t, rec, &body)
		if body.Message != want {
			t.Fatalf("%s: message = %q", path, body.Message)
		}
	}

	rec := s.do(t, http.MethodGet, "/api/products/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id status = %d", rec.Code)
	}
}

func TestValidationAndMalformedBodies(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodPost, "/api/products", `{"unit":"sack"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var body errorBody
	decode(t, rec, &body)
	if body.Message != "Validation failed" || len(body.Errors) != 1 || body.Errors[0].Field != "name" {
		t.Fatalf("unexpected body %+v", body)
	}

	rec = s.do(t, http.MethodPost, "/api/sales", `{"totalAmount":10,"items":[{"productId":1,"quantity":1,"unitPrice":10},{"quantity":1,"unitPrice":10}]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	body = errorBody{}
	decode(t, rec, &body)
	if len(body.Errors) != 1 || body.Errors[0].Field != "items[1].productId" {
		t.Fatalf("unexpected errors %+v", body.Errors)
	}

	rec = s.do(t, http.MethodPost, "/api/suppliers", `{"name":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	body = errorBody{}
	decode(t, rec, &body)
	if body.Message != "Invalid request data" {
		t.Fatalf("message = %q", body.Message)
	}
}

func TestPostingEndpoints(t *testing.T) {
	s := newServer(t)
	s.do(t, http.MethodPost, "/api/suppliers", `{"name":"Abdullah Farm"}`)
	s.do(t, http.MethodPost, "/api/customers", `{"name":"Madina Restaurant","creditLimit":5000}`)
	s.do(t, http.MethodPost, "/api/products", `{"name":"Spunta","unit":"25kg sack","currentStock":0,"reorderLevel":20}`)

	rec := s.do(t, http.MethodPost, "/api/purchases", `{"supplierId":1,"totalCost":"2000","items":[{"productId":1,"quantity":50,"unitPrice":40}]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("purchase status = %d body %s", rec.Code, rec.Body.String())
	}
	var purchase model.Purchase
	decode(t, rec, &purchase)
	if len(purchase.Items) != 1 || !purchase.Items[0].TotalPrice.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("unexpected purchase %+v", purchase)
	}

	rec = s.do(t, http.MethodPost, "/api/sales", `{"customerId":1,"totalAmount":600,"paidAmount":200,"items":[{"productId":1,"quantity":10,"unitPrice":60}]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("sale status = %d body %s", rec.Code, rec.Body.String())
	}
	var sale model.Sale
	decode(t, rec, &sale)
	if sale.PaymentStatus != model.PaymentPartial {
		t.Fatalf("payment status = %q", sale.PaymentStatus)
	}

	rec = s.do(t, http.MethodPost, "/api/customers/1/payments", `{"amount":150,"description":"cash"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("payment status = %d body %s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/api/customers/1", "")
	var customer model.Customer
	decode(t, rec, &customer)
	if !customer.TotalDebt.Equal(decimal.NewFromInt(250)) || customer.LastPaymentDate == nil {
		t.Fatalf("unexpected customer %+v", customer)
	}

	rec = s.do(t, http.MethodGet, "/api/products/1", "")
	var product model.Product
	decode(t, rec, &product)
	if !product.CurrentStock.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("stock = %s", product.CurrentStock)
	}

	rec = s.do(t, http.MethodGet, "/api/transactions", "")
	var entries []model.Transaction
	decode(t, rec, &entries)
	if len(entries) != 3 {
		t.Fatalf("transactions = %d", len(entries))
	}

	rec = s.do(t, http.MethodGet, "/api/analytics/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d", rec.Code)
	}
	var dashboard analytics.Dashboard
	decode(t, rec, &dashboard)
	if !dashboard.TotalRevenue.Equal(decimal.NewFromInt(600)) ||
		!dashboard.TotalProfit.Equal(decimal.NewFromInt(-1400)) ||
		!dashboard.TotalDebt.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("unexpected dashboard %+v", dashboard)
	}
}

func TestPostingFailuresMapToStatus(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodPost, "/api/purchases", `{"totalCost":10,"items":[{"productId":42,"quantity":1,"unitPrice":10}]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown product status = %d body %s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodPost, "/api/customers/7/payments", `{"amount":10}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("payment to unknown customer status = %d", rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/api/purchases", "")
	var purchases []model.Purchase
	decode(t, rec, &purchases)
	if len(purchases) != 0 {
		t.Fatalf("aborted purchase left %d rows", len(purchases))
	}
}

func TestCreateTransactionOnlyAdjustsDebtForPayments(t *testing.T) {
	s := newServer(t)
	s.do(t, http.MethodPost, "/api/customers", `{"name":"Madina Restaurant"}`)

	rec := s.do(t, http.MethodPost, "/api/transactions", `{"type":"expense","category":"fuel","amount":30,"relatedId":1,"relatedType":"customer"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expense status = %d body %s", rec.Code, rec.Body.String())
	}
	rec = s.do(t, http.MethodPost, "/api/transactions", `{"type":"payment_in","category":"debt_payment","amount":80,"relatedId":1}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("payment status = %d body %s", rec.Code, rec.Body.String())
	}

	customer, err := s.store.GetCustomer(context.Background(), 1)
	if err != nil {
		t.Fatalf("get customer: %v", err)
	}
	if !customer.TotalDebt.Equal(decimal.NewFromInt(-80)) {
		t.Fatalf("debt = %s", customer.TotalDebt)
	}

	rec = s.do(t, http.MethodPost, "/api/transactions", `{"type":"refund","category":"x","amount":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid type status = %d", rec.Code)
	}
}

func TestAIInsights(t *testing.T) {
	s := newServer(t)
	s.do(t, http.MethodPost, "/api/products", `{"name":"Kara","unit":"20kg sack","currentStock":5,"reorderLevel":15}`)

	s.gen.out = &insight.Insights{RiskAnalysis: "low", CashFlowForecast: "stable", InventoryAdvice: "restock Kara"}
	rec := s.do(t, http.MethodGet, "/api/analytics/ai-insights", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body.String())
	}
	var out insight.Insights
	decode(t, rec, &out)
	if out.InventoryAdvice != "restock Kara" {
		t.Fatalf("unexpected insights %+v", out)
	}
	if len(s.gen.seen.LowStockProductNames) != 1 || s.gen.seen.LowStockProductNames[0] != "Kara" {
		t.Fatalf("summary = %+v", s.gen.seen)
	}

	s.gen.out, s.gen.err = nil, errors.New("provider down")
	rec = s.do(t, http.MethodGet, "/api/analytics/ai-insights", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var body errorBody
	decode(t, rec, &body)
	if body.Message != "Failed to generate insights" {
		t.Fatalf("message = %q", body.Message)
	}

	if got := testutil.ToFloat64(s.metrics.InsightRequestsCounter.WithLabelValues("success")); got != 1 {
		t.Fatalf("success count = %v", got)
	}
	if got := testutil.ToFloat64(s.metrics.InsightRequestsCounter.WithLabelValues("failure")); got != 1 {
		t.Fatalf("failure count = %v", got)
	}
}

func TestUnknownRouteUsesErrorHandler(t *testing.T) {
	s := newServer(t)
	rec := s.do(t, http.MethodGet, "/api/nowhere", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var body errorBody
	decode(t, rec, &body)
	if body.Message != "Not Found" {
		t.Fatalf("message = %q", body.Message)
	}
}

func TestFractionalAmountsStayExact(t *testing.T) {
	s := newServer(t)
	s.do(t, http.MethodPost, "/api/customers", `{"name":"Madina Restaurant"}`)
	s.do(t, http.MethodPost, "/api/products", `{"name":"Kara","unit":"20kg sack","currentStock":"0.1","reorderLevel":"0"}`)

	for _, body := range []string{
		`{"customerId":1,"totalAmount":"0.1","paidAmount":"0.1","items":[{"productId":1,"quantity":"0.2","unitPrice":"0.5"}]}`,
		`{"customerId":1,"totalAmount":"0.2","paidAmount":"0.2","items":[{"productId":1,"quantity":"0.2","unitPrice":"1"}]}`,
	} {
		if rec := s.do(t, http.MethodPost, "/api/sales", body); rec.Code != http.StatusCreated {
			t.Fatalf("sale status = %d body %s", rec.Code, rec.Body.String())
		}
	}
	rec := s.do(t, http.MethodPost, "/api/purchases", `{"totalCost":"0.1","items":[{"productId":1,"quantity":"0.1","unitPrice":"1"}]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("purchase status = %d body %s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/api/analytics/dashboard", "")
	var dashboard analytics.Dashboard
	decode(t, rec, &dashboard)
	if dashboard.TotalRevenue.String() != "0.3" || dashboard.TotalProfit.String() != "0.2" {
		t.Fatalf("revenue = %s, profit = %s", dashboard.TotalRevenue, dashboard.TotalProfit)
	}
	if len(dashboard.LowStockProducts) != 1 || dashboard.LowStockProducts[0].CurrentStock.String() != "-0.2" {
		t.Fatalf("low stock = %+v", dashboard.LowStockProducts)
	}
}

func TestAmountsOutsideColumnAreRejected(t *testing.T) {
	s := newServer(t)
	s.do(t, http.MethodPost, "/api/products", `{"name":"Kara","unit":"20kg sack"}`)

	cases := map[string]string{
		`{"totalAmount":"10","items":[{"productId":1,"quantity":"1.255","unitPrice":"10"}]}`: "items[0].quantity",
		`{"totalAmount":"100000000","items":[{"productId":1,"quantity":"1","unitPrice":"10"}]}`: "totalAmount",
	}
	for body, field := range cases {
		rec := s.do(t, http.MethodPost, "/api/sales", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d", field, rec.Code)
		}
		var out errorBody
		decode(t, rec, &out)
		if len(out.Errors) != 1 || out.Errors[0].Field != field {
			t.Fatalf("%s: errors = %+v", field, out.Errors)
		}
	}

	rec := s.do(t, http.MethodGet, "/api/products/1", "")
	var product model.Product
	decode(t, rec, &product)
	if !product.CurrentStock.IsZero() {
		t.Fatalf("rejected sale moved stock to %s", product.CurrentStock)
	}
}
