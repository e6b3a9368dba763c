package catalog

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Krishna1412004/product-recommendation-app/internal/model"
)

var (
	// ErrUnavailable is returned by operations that need catalog data while
	// the store is in its unloaded (degraded) state.
	ErrUnavailable = errors.New("catalog data not loaded")

	// ErrNotFound is returned by Get for an unknown uniq_id.
	ErrNotFound = errors.New("product not found")
)

// Required source columns. Extra columns in the file are ignored.
var requiredColumns = []string{
	"uniq_id", "title", "brand", "material", "color",
	"price", "package_dimensions", "categories", "description",
}

// Store holds the cleaned catalog in memory. It is immutable after Load and
// safe for concurrent readers.
type Store struct {
	products []model.Product
	byID     map[string]int
	loaded   bool
}

// Unloaded returns a store in the degraded state used when the startup load
// failed. Every data operation against it reports ErrUnavailable.
func Unloaded() *Store {
	return &Store{}
}

// Loaded reports whether the startup load succeeded.
func (s *Store) Loaded() bool {
	return s != nil && s.loaded
}

// Len returns the number of products kept after cleaning.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.products)
}

// Get looks up a product by uniq_id.
func (s *Store) Get(id string) (model.Product, error) {
	if !s.Loaded() {
		return model.Product{}, ErrUnavailable
	}
	i, ok := s.byID[id]
	if !ok {
		return model.Product{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.products[i], nil
}

// All returns every product in load order. Callers must not mutate the
// returned slice.
func (s *Store) All() []model.Product {
	if !s.Loaded() {
		return nil
	}
	return s.products
}

// rawRow is one parsed source row before cleaning. Empty cells are recorded
// as absent so the imputation steps can tell "" apart from a real value.
type rawRow struct {
	fields map[string]string
}

func (r rawRow) get(col string) (string, bool) {
	v, ok := r.fields[col]
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Load reads the catalog from path (.csv or .xlsx), runs the cleaning
// pipeline and indexes the result by uniq_id. Any read or header failure
// returns an error and no partially populated store.
func Load(path string, log *logrus.Logger) (*Store, error) {
	var (
		rows []rawRow
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return build(rows, log), nil
}

// build runs cleaning steps over parsed rows: placeholder fill, description
// imputation, price coercion, median price imputation, and then the
// package_dimensions drop filter. The median covers every parsed row,
// including rows the drop filter later removes.
func build(rows []rawRow, log *logrus.Logger) *Store {
	type cleanedRow struct {
		product  model.Product
		hasPrice bool
		hasDims  bool
	}

	parsed := make([]cleanedRow, 0, len(rows))
	prices := make([]float64, 0, len(rows))

	for _, row := range rows {
		var p model.Product
		p.UniqID, _ = row.get("uniq_id")
		p.Title, _ = row.get("title")
		p.Categories, _ = row.get("categories")

		if v, ok := row.get("brand"); ok {
			p.Brand = v
		} else {
			p.Brand = "Unknown Brand"
		}
		if v, ok := row.get("material"); ok {
			p.Material = v
		} else {
			p.Material = "Unknown Material"
		}
		if v, ok := row.get("color"); ok {
			p.Color = v
		} else {
			p.Color = "Unknown Color"
		}
		if v, ok := row.get("description"); ok {
			p.Description = v
		} else {
			p.Description = fmt.Sprintf(
				"This is a %s from %s. It is made of %s and comes in a %s color.",
				p.Title, p.Brand, p.Material, p.Color)
		}

		c := cleanedRow{product: p}
		c.product.PackageDimensions, c.hasDims = row.get("package_dimensions")
		if raw, ok := row.get("price"); ok {
			if v, err := parsePrice(raw); err == nil {
				c.product.Price = v
				c.hasPrice = true
				prices = append(prices, v)
			}
		}
		parsed = append(parsed, c)
	}

	medianPrice := 0.0
	if len(prices) > 0 {
		medianPrice = median(prices)
	} else if len(parsed) > 0 {
		log.Warn("no parseable prices in catalog, missing prices left at 0")
	}

	products := make([]model.Product, 0, len(parsed))
	dropped := 0
	imputed := 0
	for _, c := range parsed {
		if !c.hasDims {
			dropped++
			continue
		}
		if !c.hasPrice {
			c.product.Price = medianPrice
			imputed++
		}
		products = append(products, c.product)
	}

	byID := make(map[string]int, len(products))
	for i, p := range products {
		// Duplicate ids: last row wins for lookups, first position is
		// kept for load-order scans.
		byID[p.UniqID] = i
	}

	log.WithFields(logrus.Fields{
		"products":       len(products),
		"dropped":        dropped,
		"imputed_prices": imputed,
	}).Info("catalog loaded")

	return &Store{products: products, byID: byID, loaded: true}
}

// parsePrice strips a leading currency symbol and coerces to a number.
// Failures count as a missing price, not a load error.
func parsePrice(raw string) (float64, error) {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite price %q", raw)
	}
	return v, nil
}

// median of an unsorted slice; the mean of the middle pair for even counts.
func median(values []float64) float64 {
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// validateHeader maps column name to position and rejects files missing any
// required column.
func validateHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, need := range requiredColumns {
		if _, ok := cols[need]; !ok {
			return nil, fmt.Errorf("missing required column %q", need)
		}
	}
	return cols, nil
}

func rowFromRecord(cols map[string]int, record []string) rawRow {
	fields := make(map[string]string, len(requiredColumns))
	for _, col := range requiredColumns {
		i := cols[col]
		if i < len(record) {
			fields[col] = record[i]
		}
	}
	return rawRow{fields: fields}
}
