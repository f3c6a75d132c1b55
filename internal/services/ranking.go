package services

import (
	"sort"
	"time"

	"github.com/petsure/petsure/pkg/models"
)

// The ranked views use stable sorts on purpose: candidates with equal keys
// keep their catalog order instead of an arbitrary secondary tiebreak.

// RankBySure sorts descending by SURE score and keeps the top n.
func RankBySure(items []models.ScoredProduct, n int) []models.ScoredProduct {
	ranked := copyScored(items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SureScore > ranked[j].SureScore
	})
	return topN(ranked, n)
}

// RankByPrice sorts ascending by price score and keeps the top n.
func RankByPrice(items []models.ScoredProduct, n int) []models.ScoredProduct {
	ranked := copyScored(items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PriceScore < ranked[j].PriceScore
	})
	return topN(ranked, n)
}

// RankByCoverage sorts descending by coverage breadth and keeps the top n.
func RankByCoverage(items []models.ScoredProduct, n int) []models.ScoredProduct {
	ranked := copyScored(items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CoverageBreadth > ranked[j].CoverageBreadth
	})
	return topN(ranked, n)
}

func copyScored(items []models.ScoredProduct) []models.ScoredProduct {
	ranked := make([]models.ScoredProduct, len(items))
	copy(ranked, items)
	return ranked
}

func topN(items []models.ScoredProduct, n int) []models.ScoredProduct {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

// EligibleProducts filters the pool by species and the product's age and
// weight bounds. A bound that cannot be satisfied excludes the product
// silently; eligibility never fails a request.
func EligibleProducts(products []models.InsuranceProduct, profile *models.PetProfile, now time.Time) []models.InsuranceProduct {
	age := profile.Age(now)

	var eligible []models.InsuranceProduct
	for _, p := range products {
		if p.Species != "" && profile.Species != "" && p.Species != profile.Species {
			continue
		}
		if p.MinAge != nil && age < *p.MinAge {
			continue
		}
		if p.MaxAge != nil && age > *p.MaxAge {
			continue
		}
		if profile.Weight != nil {
			if p.MinWeight != nil && *profile.Weight < *p.MinWeight {
				continue
			}
			if p.MaxWeight != nil && *profile.Weight > *p.MaxWeight {
				continue
			}
		}
		eligible = append(eligible, p)
	}
	return eligible
}
