package services

import (
	"math"
	"strconv"

	"github.com/petsure/petsure/internal/catalog"
	"github.com/petsure/petsure/pkg/models"
)

const (
	minPreferenceWeight = 1
	maxPreferenceWeight = 5
)

// NormalizePreferences coerces a raw preference submission onto the fixed
// basis: every basis category gets an integer weight, with missing,
// non-numeric and out-of-range values falling back to defaultWeight.
// Unknown categories are dropped. The result always has exactly 8 keys.
func NormalizePreferences(raw map[string]interface{}, defaultWeight int) map[string]int {
	prefs := make(map[string]int, len(catalog.Basis()))
	for _, cat := range catalog.Basis() {
		prefs[string(cat)] = coerceWeight(raw[string(cat)], defaultWeight)
	}
	return prefs
}

func coerceWeight(value interface{}, defaultWeight int) int {
	var weight int
	switch v := value.(type) {
	case int:
		weight = v
	case float64:
		if v != math.Trunc(v) {
			return defaultWeight
		}
		weight = int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return defaultWeight
		}
		weight = n
	default:
		return defaultWeight
	}
	if weight < minPreferenceWeight || weight > maxPreferenceWeight {
		return defaultWeight
	}
	return weight
}

// UserVector lays the preference weights out over the basis order.
func UserVector(prefs map[string]int, defaultWeight int) []float64 {
	basis := catalog.Basis()
	vector := make([]float64, len(basis))
	for i, cat := range basis {
		if w, ok := prefs[string(cat)]; ok {
			vector[i] = float64(w)
		} else {
			vector[i] = float64(defaultWeight)
		}
	}
	return vector
}

// ProductVector marks each basis category the product covers with 1. A
// category counts as covered when it appears directly in the coverage
// structure, when a basic/special coverage item resolves to it through the
// catalog, or when a disease-coverage entry's cover type maps to it.
// Unresolvable ids set no bit.
func ProductVector(cov models.CoverageDetails, cat *catalog.Catalog) []float64 {
	basis := catalog.Basis()
	index := make(map[catalog.Category]int, len(basis))
	for i, c := range basis {
		index[c] = i
	}

	vector := make([]float64, len(basis))
	mark := func(c catalog.Category, ok bool) {
		if ok {
			if i, known := index[c]; known {
				vector[i] = 1
			}
		}
	}

	for _, c := range cov.DirectCategories {
		mark(c, true)
	}
	for _, list := range [][]int64{cov.BasicItemIDs, cov.SpecialItemIDs} {
		for _, id := range list {
			mark(cat.CoverItemCategory(id))
		}
	}
	for id, entry := range cov.DiseaseCoverage {
		if entry.CoverType != 0 {
			mark(catalog.CoverTypeCategory(entry.CoverType))
			continue
		}
		mark(cat.DiseaseCategory(id))
	}

	return vector
}
