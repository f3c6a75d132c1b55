package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petsure/petsure/pkg/models"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical vectors score 1", func(t *testing.T) {
		v := []float64{3, 1, 4, 1, 5, 2, 2, 3}
		assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-9)
	})

	t.Run("orthogonal vectors score 0", func(t *testing.T) {
		a := []float64{1, 0, 0, 0}
		b := []float64{0, 1, 0, 0}
		assert.InDelta(t, 0.0, CosineSimilarity(a, b), 1e-9)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := []float64{5, 3, 1, 4, 2, 3, 3, 5}
		b := []float64{1, 1, 0, 1, 0, 1, 0, 1}
		assert.InDelta(t, CosineSimilarity(a, b), CosineSimilarity(b, a), 1e-12)
	})

	t.Run("zero norm yields 0 not NaN", func(t *testing.T) {
		zero := []float64{0, 0, 0, 0}
		v := []float64{1, 2, 3, 4}
		assert.Equal(t, 0.0, CosineSimilarity(zero, v))
		assert.Equal(t, 0.0, CosineSimilarity(v, zero))
		assert.Equal(t, 0.0, CosineSimilarity(zero, zero))
	})

	t.Run("length mismatch yields 0", func(t *testing.T) {
		assert.Equal(t, 0.0, CosineSimilarity([]float64{1, 2}, []float64{1, 2, 3}))
		assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
	})

	t.Run("result bounded by 1 for non-negative inputs", func(t *testing.T) {
		a := []float64{5, 5, 5, 5, 5, 5, 5, 5}
		b := []float64{1, 0, 1, 0, 1, 0, 1, 0}
		score := CosineSimilarity(a, b)
		assert.Greater(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	})
}

func TestJaccardSimilarity(t *testing.T) {
	t.Run("two empty sets match perfectly", func(t *testing.T) {
		assert.Equal(t, 1.0, JaccardSimilarity([]float64{0, 0, 0}, []float64{0, 0, 0}))
		assert.Equal(t, 1.0, JaccardSimilarity(nil, nil))
	})

	t.Run("disjoint sets score 0", func(t *testing.T) {
		assert.Equal(t, 0.0, JaccardSimilarity([]float64{1, 0}, []float64{0, 1}))
	})

	t.Run("partial overlap", func(t *testing.T) {
		a := []float64{1, 1, 0, 0}
		b := []float64{1, 0, 1, 0}
		// intersection {0}, union {0,1,2}
		assert.InDelta(t, 1.0/3.0, JaccardSimilarity(a, b), 1e-9)
	})

	t.Run("identical sets score 1", func(t *testing.T) {
		v := []float64{1, 0, 1, 1}
		assert.Equal(t, 1.0, JaccardSimilarity(v, v))
	})

	t.Run("any non-zero component counts as membership", func(t *testing.T) {
		assert.Equal(t, 1.0, JaccardSimilarity([]float64{5, 0}, []float64{0.1, 0}))
	})
}

func TestCompanyScore(t *testing.T) {
	assert.InDelta(t, 0.9, CompanyScore(4.5), 1e-9)
	assert.Equal(t, 1.0, CompanyScore(5.0))
	assert.Equal(t, 0.0, CompanyScore(0))
}

func TestPriceScore(t *testing.T) {
	t.Run("mean of line scores when present", func(t *testing.T) {
		p := models.InsuranceProduct{
			BasePrice:       30000,
			PriceLineScores: []float64{0.8, 0.6, 0.7},
		}
		score, err := PriceScore(p)
		require.NoError(t, err)
		assert.InDelta(t, 0.7, score, 1e-9)
	})

	t.Run("raw base price without line scores", func(t *testing.T) {
		p := models.InsuranceProduct{BasePrice: 25000}
		score, err := PriceScore(p)
		require.NoError(t, err)
		assert.Equal(t, 25000.0, score)
	})

	t.Run("NaN line score is an error", func(t *testing.T) {
		p := models.InsuranceProduct{PriceLineScores: []float64{0.5, math.NaN()}}
		_, err := PriceScore(p)
		assert.Error(t, err)
	})

	t.Run("infinite score is an error", func(t *testing.T) {
		p := models.InsuranceProduct{PriceLineScores: []float64{math.Inf(1)}}
		_, err := PriceScore(p)
		assert.Error(t, err)
	})

	t.Run("negative base price is an error", func(t *testing.T) {
		p := models.InsuranceProduct{BasePrice: -1}
		_, err := PriceScore(p)
		assert.Error(t, err)
	})
}

func TestBreedDiseaseBonus(t *testing.T) {
	t.Run("overlap earns the bonus", func(t *testing.T) {
		assert.Equal(t, 1.0, BreedDiseaseBonus([]int64{101, 103}, []int64{101}))
	})

	t.Run("no overlap no bonus", func(t *testing.T) {
		assert.Equal(t, 0.0, BreedDiseaseBonus([]int64{103}, []int64{101, 102}))
	})

	t.Run("empty inputs no bonus", func(t *testing.T) {
		assert.Equal(t, 0.0, BreedDiseaseBonus(nil, []int64{101}))
		assert.Equal(t, 0.0, BreedDiseaseBonus([]int64{101}, nil))
		assert.Equal(t, 0.0, BreedDiseaseBonus(nil, nil))
	})
}

func TestSureScore(t *testing.T) {
	t.Run("weighted composite", func(t *testing.T) {
		// 0.3*0.9 + 0.3*0.7 + 0.4*0.8 = 0.8
		assert.InDelta(t, 0.8, SureScore(0.9, 0.7, 0.8, 0), 1e-9)
	})

	t.Run("breed bonus is additive on top", func(t *testing.T) {
		base := SureScore(0.9, 0.7, 0.8, 0)
		withBonus := SureScore(0.9, 0.7, 0.8, 1)
		assert.InDelta(t, base+0.2, withBonus, 1e-9)
	})

	t.Run("full match with bonus exceeds the nominal maximum", func(t *testing.T) {
		assert.InDelta(t, 1.2, SureScore(1, 1, 1, 1), 1e-9)
	})

	t.Run("monotone in each component", func(t *testing.T) {
		assert.Greater(t, SureScore(0.9, 0.5, 0.5, 0), SureScore(0.8, 0.5, 0.5, 0))
		assert.Greater(t, SureScore(0.5, 0.9, 0.5, 0), SureScore(0.5, 0.8, 0.5, 0))
		assert.Greater(t, SureScore(0.5, 0.5, 0.9, 0), SureScore(0.5, 0.5, 0.8, 0))
	})
}

func TestCoverageBreadth(t *testing.T) {
	cov := models.CoverageDetails{AllItemIDs: []int64{1, 2, 3, 101}}
	assert.Equal(t, 4, CoverageBreadth(cov))
	assert.Equal(t, 0, CoverageBreadth(models.CoverageDetails{}))
}
