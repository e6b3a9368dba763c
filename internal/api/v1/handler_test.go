package v1

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Krishna1412004/product-recommendation-app/internal/catalog"
	"github.com/Krishna1412004/product-recommendation-app/internal/recommend"
	"github.com/Krishna1412004/product-recommendation-app/internal/service"
	"github.com/Krishna1412004/product-recommendation-app/pkg/middleware"
)

const header = "uniq_id,title,brand,material,color,price,package_dimensions,categories,description"

func loadStore(t *testing.T, rows ...string) *catalog.Store {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	path := filepath.Join(t.TempDir(), "catalog.csv")
	content := strings.Join(append([]string{header}, rows...), "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	store, err := catalog.Load(path, log)
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return store
}

func newRouter(t *testing.T, store *catalog.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)

	describer := service.NewDescriptionGenerator("http://invalid", "", "", nil, log)
	h := NewHandler(store, recommend.NewKeyword(store, describer), log, time.Second)

	r := gin.New()
	r.Use(middleware.CORS(), middleware.RequestID())
	RegisterRoutes(r, h)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var payload map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("%s %s: invalid JSON body %q: %v", method, path, w.Body.String(), err)
	}
	return w, payload
}

func fixtureRouter(t *testing.T) *gin.Engine {
	return newRouter(t, loadStore(t,
		`p1,Oak Dining Table,Oakly,Wood,Brown,$100,10x10x10,Tables,Solid oak`,
		`p2,Leather Office Chair,SitWell,Leather,Black,$200,20x20x30,Chairs,Ergonomic`,
	))
}

func TestRootEndpoint(t *testing.T) {
	w, payload := doJSON(t, fixtureRouter(t), http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if payload["message"] != "Welcome to the AI Product Recommendation API" {
		t.Fatalf("message = %v", payload["message"])
	}
}

func TestHealthEndpoint(t *testing.T) {
	w, payload := doJSON(t, fixtureRouter(t), http.MethodGet, "/test", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if payload["message"] != "Backend is working!" || payload["data_loaded"] != true {
		t.Fatalf("payload = %v", payload)
	}
}

func TestRecommendEndpoint(t *testing.T) {
	w, payload := doJSON(t, fixtureRouter(t), http.MethodPost, "/recommend", `{"prompt": "leather chair"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	recs, ok := payload["recommendations"].([]any)
	if !ok || len(recs) == 0 {
		t.Fatalf("recommendations = %v", payload["recommendations"])
	}
	first := recs[0].(map[string]any)
	if first["uniq_id"] != "p2" {
		t.Errorf("top result = %v, want p2", first["uniq_id"])
	}
	if first["score"].(float64) != 1.0 {
		t.Errorf("score = %v, want 1", first["score"])
	}
	if first["predicted_category"] != "Seating" {
		t.Errorf("predicted_category = %v", first["predicted_category"])
	}
	if desc, _ := first["generated_description"].(string); desc == "" {
		t.Error("generated_description missing")
	}
}

func TestRecommendEmptyPrompt(t *testing.T) {
	w, payload := doJSON(t, fixtureRouter(t), http.MethodPost, "/recommend", `{"prompt": ""}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	recs, ok := payload["recommendations"].([]any)
	if !ok {
		t.Fatalf("recommendations serialized as %T, want empty array", payload["recommendations"])
	}
	if len(recs) != 0 {
		t.Fatalf("len = %d, want 0", len(recs))
	}
}

func TestRecommendMalformedBody(t *testing.T) {
	w, payload := doJSON(t, fixtureRouter(t), http.MethodPost, "/recommend", `{"prompt": `)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if _, ok := payload["detail"]; !ok {
		t.Fatalf("error body missing detail: %v", payload)
	}
}

func TestAnalyticsEndpoint(t *testing.T) {
	w, payload := doJSON(t, fixtureRouter(t), http.MethodGet, "/analytics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	brands, ok := payload["brand_counts"].(map[string]any)
	if !ok || brands["Oakly"].(float64) != 1 {
		t.Fatalf("brand_counts = %v", payload["brand_counts"])
	}
	stats, ok := payload["price_stats"].(map[string]any)
	if !ok {
		t.Fatalf("price_stats = %v", payload["price_stats"])
	}
	for _, key := range []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"} {
		if _, ok := stats[key]; !ok {
			t.Errorf("price_stats missing %q", key)
		}
	}
	if stats["min"].(float64) > stats["50%"].(float64) || stats["50%"].(float64) > stats["max"].(float64) {
		t.Errorf("quartile ordering violated: %v", stats)
	}
}

func TestDegradedMode(t *testing.T) {
	r := newRouter(t, catalog.Unloaded())

	w, payload := doJSON(t, r, http.MethodGet, "/test", "")
	if w.Code != http.StatusOK || payload["data_loaded"] != false {
		t.Fatalf("health in degraded mode: %d %v", w.Code, payload)
	}

	w, payload = doJSON(t, r, http.MethodPost, "/recommend", `{"prompt": "chair"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("recommend status = %d, want 503", w.Code)
	}
	if payload["detail"] != "Models or data not loaded correctly." {
		t.Fatalf("detail = %v", payload["detail"])
	}

	w, payload = doJSON(t, r, http.MethodGet, "/analytics", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("analytics status = %d, want 503", w.Code)
	}
	if payload["detail"] != "Data not loaded correctly." {
		t.Fatalf("detail = %v", payload["detail"])
	}
}

func TestCORSHeaders(t *testing.T) {
	r := fixtureRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/recommend", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-origin = %q, want *", got)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/", "")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-origin on GET = %q, want *", got)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("X-Request-ID not set on response")
	}
}
