package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"pricewatch/internal/models"
	"pricewatch/internal/store"
	"pricewatch/internal/testutil"
)

func testObservation(name string, price int64, ts string) *models.PriceObservation {
	return &models.PriceObservation{
		ProductName:      name,
		NewPrice:         price,
		InstallmentPrice: price,
		Timestamp:        ts,
	}
}

func setupRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	s := store.NewStore(db)
	return NewRouter(NewPriceHandler(s)), s
}

func doRequest(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
	}
	return w, body
}

func seedHistory(t *testing.T, s *store.Store) {
	t.Helper()
	db := []struct {
		price int64
		ts    string
	}{
		{90000, "2024-01-01 10:00:00"},
		{100000, "2024-01-02 10:00:00"},
		{95000, "2024-01-03 10:00:00"},
	}
	for _, row := range db {
		testutil.AssertNoError(t, s.Insert(testObservation("Crib X", row.price, row.ts)))
	}
}

func TestHealth(t *testing.T) {
	router, _ := setupRouter(t)

	w, body := doRequest(t, router, "/api/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body["status"] != "ok" {
		t.Errorf("expected ok status, got %v", body["status"])
	}
}

func TestGetProducts(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		router, _ := setupRouter(t)

		w, body := doRequest(t, router, "/api/v1/products")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if data, ok := body["data"].([]any); !ok || len(data) != 0 {
			t.Errorf("expected empty data array, got %v", body["data"])
		}
	})

	t.Run("lists_latest", func(t *testing.T) {
		router, s := setupRouter(t)
		seedHistory(t, s)

		w, body := doRequest(t, router, "/api/v1/products")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		data := body["data"].([]any)
		if len(data) != 1 {
			t.Fatalf("expected 1 product, got %d", len(data))
		}
		product := data[0].(map[string]any)
		if product["product_name"] != "Crib X" {
			t.Errorf("unexpected product name %v", product["product_name"])
		}
		if product["latest_price"].(float64) != 95000 {
			t.Errorf("expected latest price 95000, got %v", product["latest_price"])
		}
		if product["observations"].(float64) != 3 {
			t.Errorf("expected 3 observations, got %v", product["observations"])
		}
	})
}

func TestGetHistory(t *testing.T) {
	t.Run("paginated_newest_first", func(t *testing.T) {
		router, s := setupRouter(t)
		seedHistory(t, s)

		w, body := doRequest(t, router, "/api/v1/products/history?product_name=Crib+X&page=1&page_size=2")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body["total_items"].(float64) != 3 {
			t.Errorf("expected 3 total items, got %v", body["total_items"])
		}
		data := body["data"].([]any)
		if len(data) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(data))
		}
		first := data[0].(map[string]any)
		if first["new_price"].(float64) != 95000 {
			t.Errorf("expected newest row first, got %v", first["new_price"])
		}
	})

	t.Run("missing_product_name", func(t *testing.T) {
		router, _ := setupRouter(t)

		w, body := doRequest(t, router, "/api/v1/products/history")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		errObj := body["error"].(map[string]any)
		if errObj["code"] != "INVALID_INPUT" {
			t.Errorf("expected INVALID_INPUT, got %v", errObj["code"])
		}
	})

	t.Run("unknown_product", func(t *testing.T) {
		router, _ := setupRouter(t)

		w, body := doRequest(t, router, "/api/v1/products/history?product_name=Nothing")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		errObj := body["error"].(map[string]any)
		if errObj["code"] != "PRODUCT_NOT_FOUND" {
			t.Errorf("expected PRODUCT_NOT_FOUND, got %v", errObj["code"])
		}
	})
}

func TestErrorResponses(t *testing.T) {
	t.Run("carry_request_id", func(t *testing.T) {
		router, _ := setupRouter(t)

		w, body := doRequest(t, router, "/api/v1/products/max?product_name=Nothing")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}

		requestID := w.Header().Get("X-Request-ID")
		if requestID == "" {
			t.Fatal("expected an X-Request-ID header on every response")
		}

		errObj := body["error"].(map[string]any)
		if errObj["request_id"] != requestID {
			t.Errorf("expected error body to echo request id %q, got %v", requestID, errObj["request_id"])
		}
	})

	t.Run("bad_paging_params", func(t *testing.T) {
		router, s := setupRouter(t)
		seedHistory(t, s)

		w, body := doRequest(t, router, "/api/v1/products/history?product_name=Crib+X&page=-1")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		errObj := body["error"].(map[string]any)
		if errObj["code"] != "INVALID_INPUT" {
			t.Errorf("expected INVALID_INPUT, got %v", errObj["code"])
		}
	})
}

func TestGetMaxPrice(t *testing.T) {
	t.Run("returns_max", func(t *testing.T) {
		router, s := setupRouter(t)
		seedHistory(t, s)

		w, body := doRequest(t, router, "/api/v1/products/max?product_name=Crib+X")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		max := body["max"].(map[string]any)
		if max["price"].(float64) != 100000 {
			t.Errorf("expected max price 100000, got %v", max["price"])
		}
		if max["timestamp"] != "2024-01-02 10:00:00" {
			t.Errorf("expected timestamp of the max row, got %v", max["timestamp"])
		}
	})

	t.Run("unknown_product", func(t *testing.T) {
		router, _ := setupRouter(t)

		w, body := doRequest(t, router, "/api/v1/products/max?product_name=Nothing")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		errObj := body["error"].(map[string]any)
		if errObj["code"] != "PRODUCT_NOT_FOUND" {
			t.Errorf("expected PRODUCT_NOT_FOUND, got %v", errObj["code"])
		}
	})
}
