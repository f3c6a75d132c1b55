package services

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/petsure/petsure/pkg/models"
)

// SURE score weights. The breed bonus rides on top of the base weights, so
// a full match with a risk-covering product can exceed the nominal maximum;
// that behavior is load-bearing for the ranking and must stay.
const (
	companyScoreWeight  = 0.3
	priceScoreWeight    = 0.3
	matchingScoreWeight = 0.4
	breedBonusWeight    = 0.2

	maxCompanyRating = 5.0
)

// CosineSimilarity returns the cosine of the angle between two equal-length
// vectors. A zero-norm input yields 0.0 rather than dividing by zero.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return floats.Dot(a, b) / (normA * normB)
}

// JaccardSimilarity treats non-zero components as set membership and
// returns |intersection| / |union|. Two empty sets count as a perfect
// match by convention.
func JaccardSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	intersection, union := 0, 0
	for i := 0; i < n; i++ {
		inA := i < len(a) && a[i] != 0
		inB := i < len(b) && b[i] != 0
		if inA && inB {
			intersection++
		}
		if inA || inB {
			union++
		}
	}
	if intersection == 0 && union == 0 {
		return 1.0
	}
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// CompanyScore maps a company reliability rating onto [0,1].
func CompanyScore(rating float64) float64 {
	return rating / maxCompanyRating
}

// PriceScore is the mean of the product's line-item price scores when any
// exist, otherwise the raw base price stands in as a proxy. The two scales
// are intentionally not normalized against each other; reordering the price
// ranking by normalizing here would change established results.
func PriceScore(p models.InsuranceProduct) (float64, error) {
	score := p.BasePrice
	if len(p.PriceLineScores) > 0 {
		score = floats.Sum(p.PriceLineScores) / float64(len(p.PriceLineScores))
	}
	if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 {
		return 0, fmt.Errorf("malformed price score %v for product %s", score, p.ID)
	}
	return score, nil
}

// BreedDiseaseBonus is 1 when the product covers at least one disease the
// breed is predisposed to, else 0.
func BreedDiseaseBonus(coveredDiseaseIDs, breedDiseaseIDs []int64) float64 {
	if len(coveredDiseaseIDs) == 0 || len(breedDiseaseIDs) == 0 {
		return 0.0
	}
	covered := make(map[int64]bool, len(coveredDiseaseIDs))
	for _, id := range coveredDiseaseIDs {
		covered[id] = true
	}
	for _, id := range breedDiseaseIDs {
		if covered[id] {
			return 1.0
		}
	}
	return 0.0
}

// SureScore is the composite recommendation score.
func SureScore(companyScore, priceScore, matchingScore, breedBonus float64) float64 {
	base := companyScore*companyScoreWeight +
		priceScore*priceScoreWeight +
		matchingScore*matchingScoreWeight
	return base + breedBonus*breedBonusWeight
}

// CoverageBreadth counts the distinct coverage ids across every section.
func CoverageBreadth(cov models.CoverageDetails) int {
	return len(cov.AllItemIDs)
}
