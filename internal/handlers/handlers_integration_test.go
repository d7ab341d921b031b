package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"cuahang/internal/handlers"
	"cuahang/internal/models"
	"cuahang/internal/repositories"
	"cuahang/internal/services"
	"cuahang/pkg/mailer"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// recordingSender implements mailer.Sender and records what the order
// workflow hands it.
type recordingSender struct {
	mu       sync.Mutex
	messages []mailer.Message
}

func (s *recordingSender) Enqueue(msg mailer.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

func (s *recordingSender) all() []mailer.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]mailer.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

var dbCounter int64

// setupApp sets up a Fiber app with a fresh in-memory SQLite database and all
// handlers/services wired against it.
func setupApp(t *testing.T) (*fiber.App, *recordingSender) {
	t.Helper()

	// A named in-memory database per test keeps tests independent while the
	// shared cache keeps it alive across pooled connections.
	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Product{}, &models.Customer{}, &models.Order{}, &models.OrderItem{})
	require.NoError(t, err)

	productRepo := repositories.NewGORMProductRepository(db)
	customerRepo := repositories.NewGORMCustomerRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	reportRepo := repositories.NewGORMReportRepository(db)

	sender := &recordingSender{}

	productService := services.NewProductService(productRepo)
	customerService := services.NewCustomerService(customerRepo)
	orderService := services.NewOrderService(orderRepo, customerRepo, productRepo, sender, nil)
	reportService := services.NewReportService(reportRepo)

	app := fiber.New()
	handlers.NewProductHandler(productService).RegisterRoutes(app)
	handlers.NewCustomerHandler(customerService).RegisterRoutes(app)
	handlers.NewOrderHandler(orderService).RegisterRoutes(app)
	handlers.NewStatsHandler(reportService).RegisterRoutes(app)

	return app, sender
}

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func createProduct(t *testing.T, app *fiber.App, p models.Product) models.Product {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/products", p)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Product
	decode(t, resp, &created)
	return created
}

func createCustomer(t *testing.T, app *fiber.App, c models.Customer) models.Customer {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/customers", c)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Customer
	decode(t, resp, &created)
	return created
}

func createOrder(t *testing.T, app *fiber.App, req handlers.CreateOrderRequest) models.Order {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/orders", req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Order
	decode(t, resp, &created)
	return created
}

func getProduct(t *testing.T, app *fiber.App, id string) models.Product {
	t.Helper()
	resp := doJSON(t, app, http.MethodGet, "/products/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var product models.Product
	decode(t, resp, &product)
	return product
}

func TestProductCRUD(t *testing.T) {
	app, _ := setupApp(t)

	created := createProduct(t, app, models.Product{
		Name: "Laptop", Category: "electronics", Price: 1200, Stock: 10, ProductCode: "E-1",
		Images: []string{"https://img.example.com/laptop.png"},
	})
	assert.NotEmpty(t, created.ID)

	// Get all
	resp := doJSON(t, app, http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var products []models.Product
	decode(t, resp, &products)
	assert.Len(t, products, 1)

	// Get by category
	resp = doJSON(t, app, http.MethodGet, "/products/category/electronics", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &products)
	assert.Len(t, products, 1)

	resp = doJSON(t, app, http.MethodGet, "/products/category/furniture", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &products)
	assert.Empty(t, products)

	// Merge update: only price changes, the rest is untouched.
	resp = doJSON(t, app, http.MethodPut, "/products/"+created.ID, map[string]interface{}{"price": 999.0})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Product
	decode(t, resp, &updated)
	assert.Equal(t, 999.0, updated.Price)
	assert.Equal(t, "Laptop", updated.Name)
	assert.Equal(t, []string{"https://img.example.com/laptop.png"}, updated.Images)

	// Delete, then 404
	resp = doJSON(t, app, http.MethodDelete, "/products/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var errBody map[string]string
	decode(t, resp, &errBody)
	assert.Contains(t, errBody, "error")
}

func TestProductCreateRequiresFields(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/products", map[string]interface{}{"price": 10.0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestCustomerEndpoints(t *testing.T) {
	app, _ := setupApp(t)

	created := createCustomer(t, app, models.Customer{
		Name: "An", Email: "an@example.com", Phone: "0123", Address: "12 Market St",
	})
	assert.NotEmpty(t, created.ID)

	// Duplicate email is rejected by the store's unique index and surfaces
	// as the generic failure.
	resp := doJSON(t, app, http.MethodPost, "/customers", models.Customer{
		Name: "An 2", Email: "an@example.com", Phone: "0456",
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	resp.Body.Close()

	// Lookup by email
	resp = doJSON(t, app, http.MethodGet, "/customers/email/an@example.com", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.Customer
	decode(t, resp, &fetched)
	assert.Equal(t, created.ID, fetched.ID)

	resp = doJSON(t, app, http.MethodGet, "/customers/email/ghost@example.com", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Merge update: phone only, address survives.
	resp = doJSON(t, app, http.MethodPut, "/customers/"+created.ID, map[string]interface{}{"phone": "0789"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &fetched)
	assert.Equal(t, "0789", fetched.Phone)
	assert.Equal(t, "12 Market St", fetched.Address)
}

func TestOrderWorkflow(t *testing.T) {
	app, sender := setupApp(t)

	p1 := createProduct(t, app, models.Product{Name: "Laptop", Category: "electronics", Price: 1200, Stock: 10, ProductCode: "E-1"})
	p2 := createProduct(t, app, models.Product{Name: "Mouse", Category: "accessories", Price: 25, Stock: 5, ProductCode: "A-1"})
	customer := createCustomer(t, app, models.Customer{Name: "An", Email: "an@example.com", Phone: "0123"})

	order := createOrder(t, app, handlers.CreateOrderRequest{
		CustomerID: customer.ID,
		Products: []models.OrderItem{
			{ProductID: p1.ID, Quantity: 2},
			{ProductID: p2.ID, Quantity: 1},
		},
		Address:     "12 Market St",
		Phone:       "0123",
		TotalPrice:  2425,
		ShippingFee: 15,
	})
	assert.Equal(t, models.StatusPending, order.Status)
	require.Len(t, order.Items, 2)

	// Exactly one order id lands on the customer, regardless of line count.
	resp := doJSON(t, app, http.MethodGet, "/customers/email/an@example.com", nil)
	var linked models.Customer
	decode(t, resp, &linked)
	assert.Equal(t, []string{order.ID}, linked.OrderIDs)

	// One confirmation mail with the itemized lines.
	messages := sender.all()
	require.Len(t, messages, 1)
	assert.Equal(t, "an@example.com", messages[0].To)
	assert.Contains(t, messages[0].Text, "- Laptop: 2 x 1200.00")
	assert.Contains(t, messages[0].Text, "- Mouse: 1 x 25.00")
	assert.Contains(t, messages[0].Text, "Shipping fee: 15.00")
	assert.Contains(t, messages[0].Text, "Total: 2425.00")

	// A non-delivered transition leaves stock alone.
	resp = doJSON(t, app, http.MethodPut, "/orders/status/"+order.ID, map[string]string{"status": models.StatusProcessing})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, 10, getProduct(t, app, p1.ID).Stock)
	assert.Equal(t, 5, getProduct(t, app, p2.ID).Stock)

	// Delivery decrements per line: 10->8, 5->4.
	resp = doJSON(t, app, http.MethodPut, "/orders/status/"+order.ID, map[string]string{"status": models.StatusDelivered})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var delivered models.Order
	decode(t, resp, &delivered)
	assert.Equal(t, models.StatusDelivered, delivered.Status)
	assert.Equal(t, 8, getProduct(t, app, p1.ID).Stock)
	assert.Equal(t, 4, getProduct(t, app, p2.ID).Stock)

	// Known defect, pinned: re-delivering decrements again.
	resp = doJSON(t, app, http.MethodPut, "/orders/status/"+order.ID, map[string]string{"status": models.StatusDelivered})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, 6, getProduct(t, app, p1.ID).Stock)
	assert.Equal(t, 3, getProduct(t, app, p2.ID).Stock)

	// Unknown status values are rejected before anything is touched.
	resp = doJSON(t, app, http.MethodPut, "/orders/status/"+order.ID, map[string]string{"status": "teleported"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPut, "/orders/status/unknown-order", map[string]string{"status": models.StatusCanceled})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestOrderCreateUnknownCustomer(t *testing.T) {
	app, sender := setupApp(t)

	p := createProduct(t, app, models.Product{Name: "Mouse", Category: "accessories", Price: 25, Stock: 5, ProductCode: "A-1"})

	resp := doJSON(t, app, http.MethodPost, "/orders", handlers.CreateOrderRequest{
		CustomerID: "ghost",
		Products:   []models.OrderItem{{ProductID: p.ID, Quantity: 1}},
		Address:    "12 Market St",
		Phone:      "0123",
		TotalPrice: 25,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Nothing persisted, nothing mailed.
	resp = doJSON(t, app, http.MethodGet, "/orders", nil)
	var orders []models.Order
	decode(t, resp, &orders)
	assert.Empty(t, orders)
	assert.Empty(t, sender.all())
}

func TestOrderUpdateCascadesIntoTargetCustomer(t *testing.T) {
	app, _ := setupApp(t)

	p := createProduct(t, app, models.Product{Name: "Mouse", Category: "accessories", Price: 25, Stock: 5, ProductCode: "A-1"})
	first := createCustomer(t, app, models.Customer{Name: "An", Email: "an@example.com", Phone: "0123", Address: "12 Market St"})
	second := createCustomer(t, app, models.Customer{Name: "Binh", Email: "binh@example.com", Phone: "0456", Address: "3 Hill Rd"})

	order := createOrder(t, app, handlers.CreateOrderRequest{
		CustomerID: first.ID,
		Products:   []models.OrderItem{{ProductID: p.ID, Quantity: 1}},
		Address:    "12 Market St",
		Phone:      "0123",
		TotalPrice: 25,
	})

	// Re-pointing the order at Binh updates Binh's own record, not An's.
	resp := doJSON(t, app, http.MethodPut, "/orders/"+order.ID, map[string]interface{}{
		"customer": second.ID,
		"address":  "99 New Rd",
		"phone":    "0999",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Order
	decode(t, resp, &updated)
	assert.Equal(t, second.ID, updated.CustomerID)
	assert.Equal(t, "99 New Rd", updated.Address)

	resp = doJSON(t, app, http.MethodGet, "/customers/email/binh@example.com", nil)
	var binh models.Customer
	decode(t, resp, &binh)
	assert.Equal(t, "99 New Rd", binh.Address)
	assert.Equal(t, "0999", binh.Phone)

	resp = doJSON(t, app, http.MethodGet, "/customers/email/an@example.com", nil)
	var an models.Customer
	decode(t, resp, &an)
	assert.Equal(t, "12 Market St", an.Address)
	assert.Equal(t, "0123", an.Phone)

	// An unresolvable customer reference leaves the order unmodified.
	resp = doJSON(t, app, http.MethodPut, "/orders/"+order.ID, map[string]interface{}{
		"customer": "ghost",
		"address":  "1 Nowhere",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/orders/"+order.ID, nil)
	decode(t, resp, &updated)
	assert.Equal(t, second.ID, updated.CustomerID)
	assert.Equal(t, "99 New Rd", updated.Address)
}

func TestContainsProductSurvivesProductDeletion(t *testing.T) {
	app, _ := setupApp(t)

	p := createProduct(t, app, models.Product{Name: "Mouse", Category: "accessories", Price: 25, Stock: 5, ProductCode: "A-1"})
	customer := createCustomer(t, app, models.Customer{Name: "An", Email: "an@example.com", Phone: "0123"})
	order := createOrder(t, app, handlers.CreateOrderRequest{
		CustomerID: customer.ID,
		Products:   []models.OrderItem{{ProductID: p.ID, Quantity: 1}},
		Address:    "12 Market St",
		Phone:      "0123",
		TotalPrice: 25,
	})

	// Delete the product; the historical order still reports it.
	resp := doJSON(t, app, http.MethodDelete, "/products/"+p.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/orders/contains-product/"+p.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []models.Order
	decode(t, resp, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	// Deleting the order removes its line items; the lookup goes empty.
	resp = doJSON(t, app, http.MethodDelete, "/orders/"+order.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/orders/contains-product/"+p.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &orders)
	assert.Empty(t, orders)
}

func TestStatisticsEndpoints(t *testing.T) {
	app, _ := setupApp(t)

	// Zero orders: revenue is 0, not an error.
	resp := doJSON(t, app, http.MethodGet, "/statistics/total-revenue", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var revenueBody map[string]float64
	decode(t, resp, &revenueBody)
	assert.Zero(t, revenueBody["totalRevenue"])

	p1 := createProduct(t, app, models.Product{Name: "Laptop", Category: "electronics", Price: 1200, Stock: 10, ProductCode: "E-1"})
	p2 := createProduct(t, app, models.Product{Name: "Mouse", Category: "accessories", Price: 25, Stock: 50, ProductCode: "A-1"})
	createProduct(t, app, models.Product{Name: "Keyboard", Category: "accessories", Price: 75, Stock: 25, ProductCode: "A-2"})
	an := createCustomer(t, app, models.Customer{Name: "An", Email: "an@example.com", Phone: "0123"})
	binh := createCustomer(t, app, models.Customer{Name: "Binh", Email: "binh@example.com", Phone: "0456"})

	createOrder(t, app, handlers.CreateOrderRequest{
		CustomerID: an.ID,
		Products:   []models.OrderItem{{ProductID: p1.ID, Quantity: 2}, {ProductID: p2.ID, Quantity: 3}},
		Address:    "12 Market St", Phone: "0123", TotalPrice: 2475,
	})
	createOrder(t, app, handlers.CreateOrderRequest{
		CustomerID: an.ID,
		Products:   []models.OrderItem{{ProductID: p2.ID, Quantity: 4}},
		Address:    "12 Market St", Phone: "0123", TotalPrice: 100,
	})
	second := createOrder(t, app, handlers.CreateOrderRequest{
		CustomerID: binh.ID,
		Products:   []models.OrderItem{{ProductID: p1.ID, Quantity: 1}},
		Address:    "3 Hill Rd", Phone: "0456", TotalPrice: 1200,
	})
	resp = doJSON(t, app, http.MethodPut, "/orders/status/"+second.ID, map[string]string{"status": models.StatusProcessing})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// products-by-category
	resp = doJSON(t, app, http.MethodGet, "/statistics/products-by-category", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var categories []models.CategoryCount
	decode(t, resp, &categories)
	byCategory := map[string]int64{}
	for _, c := range categories {
		byCategory[c.Category] = c.Count
	}
	assert.Equal(t, map[string]int64{"electronics": 1, "accessories": 2}, byCategory)

	// total-revenue
	resp = doJSON(t, app, http.MethodGet, "/statistics/total-revenue", nil)
	decode(t, resp, &revenueBody)
	assert.InDelta(t, 3775.0, revenueBody["totalRevenue"], 1e-9)

	// orders-by-status
	resp = doJSON(t, app, http.MethodGet, "/statistics/orders-by-status", nil)
	var statuses []models.StatusCount
	decode(t, resp, &statuses)
	byStatus := map[string]int64{}
	for _, s := range statuses {
		byStatus[s.Status] = s.Count
	}
	assert.Equal(t, map[string]int64{models.StatusPending: 2, models.StatusProcessing: 1}, byStatus)

	// customers-total-orders
	resp = doJSON(t, app, http.MethodGet, "/statistics/customers-total-orders", nil)
	var totals []models.CustomerTotals
	decode(t, resp, &totals)
	byID := map[string]models.CustomerTotals{}
	for _, ct := range totals {
		byID[ct.CustomerID] = ct
	}
	assert.InDelta(t, 2575.0, byID[an.ID].TotalSpent, 1e-9)
	assert.EqualValues(t, 9, byID[an.ID].TotalQuantity)
	assert.Equal(t, "Binh", byID[binh.ID].Name)
	assert.InDelta(t, 1200.0, byID[binh.ID].TotalSpent, 1e-9)
	assert.EqualValues(t, 1, byID[binh.ID].TotalQuantity)

	// top-selling-products, descending: Mouse 7, Laptop 3.
	resp = doJSON(t, app, http.MethodGet, "/statistics/top-selling-products", nil)
	var sales []models.ProductSales
	decode(t, resp, &sales)
	require.Len(t, sales, 2)
	assert.Equal(t, "Mouse", sales[0].Name)
	assert.EqualValues(t, 7, sales[0].QuantitySold)
	assert.Equal(t, "Laptop", sales[1].Name)
	assert.EqualValues(t, 3, sales[1].QuantitySold)

	// total-stock
	resp = doJSON(t, app, http.MethodGet, "/statistics/total-stock", nil)
	var summary models.StockSummary
	decode(t, resp, &summary)
	assert.EqualValues(t, 85, summary.TotalStock)
	assert.Len(t, summary.Products, 3)

	// monthly-revenue: all orders were created just now, so a single bucket
	// carrying the full revenue.
	resp = doJSON(t, app, http.MethodGet, "/statistics/monthly-revenue", nil)
	var monthly []models.MonthlyRevenue
	decode(t, resp, &monthly)
	require.Len(t, monthly, 1)
	assert.InDelta(t, 3775.0, monthly[0].Revenue, 1e-9)
}
