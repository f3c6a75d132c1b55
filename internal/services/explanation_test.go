package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMatchReasons(t *testing.T) {
	prefs := map[string]int{
		"outpatient": 5,
		"inpatient":  3,
		"surgery":    4,
		"liability":  1,
		"joint":      4,
		"skin":       2,
		"oral":       3,
		"urinary":    3,
	}
	// basis: outpatient, inpatient, surgery, liability, joint, skin, oral, urinary
	productVector := []float64{1, 1, 0, 0, 1, 1, 0, 0}

	t.Run("covers only prioritized and covered categories", func(t *testing.T) {
		reasons := BuildMatchReasons(prefs, productVector, 4)
		require.Len(t, reasons, 1)
		// outpatient (5, covered) and joint (4, covered); surgery is
		// prioritized but not covered, inpatient covered but not prioritized.
		assert.Contains(t, reasons[0], "'통원'")
		assert.Contains(t, reasons[0], "'슬관절'")
		assert.NotContains(t, reasons[0], "'수술'")
		assert.NotContains(t, reasons[0], "'입원'")
		assert.Contains(t, reasons[0], "항목을 중시하셨고")
	})

	t.Run("no overlap yields no reasons", func(t *testing.T) {
		assert.Nil(t, BuildMatchReasons(prefs, []float64{0, 0, 0, 0, 0, 0, 0, 0}, 4))
	})

	t.Run("no prioritized categories yields no reasons", func(t *testing.T) {
		assert.Nil(t, BuildMatchReasons(prefs, productVector, 6))
	})

	t.Run("short product vector is tolerated", func(t *testing.T) {
		assert.Nil(t, BuildMatchReasons(prefs, []float64{0, 0}, 4))
	})
}

func TestBreedRiskReason(t *testing.T) {
	t.Run("names the breed and the diseases", func(t *testing.T) {
		reason := BreedRiskReason("푸들", []string{"슬개골 탈구", "피부염"})
		assert.Contains(t, reason, "푸들 품종은")
		assert.Contains(t, reason, "슬개골 탈구, 피부염")
	})

	t.Run("empty inputs yield no reason", func(t *testing.T) {
		assert.Empty(t, BreedRiskReason("", []string{"슬개골 탈구"}))
		assert.Empty(t, BreedRiskReason("푸들", nil))
	})
}
