package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petsure/petsure/internal/config"
	"github.com/petsure/petsure/pkg/models"
)

func testRecommendationConfig() *config.RecommendationConfig {
	return &config.RecommendationConfig{
		TopN:                  6,
		DefaultWeight:         3,
		HighPriorityThreshold: 4,
	}
}

func newTestRecommendationService(t *testing.T, mockDB pgxmock.PgxPoolIface) *RecommendationService {
	t.Helper()
	logger := testLogger()
	cat := testCatalog(t)
	profiles := NewProfileService(mockDB, logger)
	products := NewProductService(mockDB, cat, logger)
	return NewRecommendationService(profiles, products, cat, nil, testRecommendationConfig(), logger)
}

func expectProfile(mockDB pgxmock.PgxPoolIface, id uuid.UUID, breed string, preferences []byte) {
	rows := pgxmock.NewRows(profileTestColumns)
	now := time.Now()
	rows.AddRow(id, uuid.New(), "초코", "dog", breed,
		time.Date(2021, 3, 10, 0, 0, 0, 0, time.UTC), floatPtr(5.2),
		"F", true, []byte(nil), preferences, now, now)
	mockDB.ExpectQuery("SELECT (.+) FROM pet_profiles WHERE id").
		WithArgs(id).
		WillReturnRows(rows)
}

func productRowWith(rows *pgxmock.Rows, name string, basePrice float64, coverage, lineScores []byte) *pgxmock.Rows {
	now := time.Now()
	return rows.AddRow(uuid.New(), uuid.New(), name, "dog", basePrice,
		(*int)(nil), (*int)(nil), (*float64)(nil), (*float64)(nil),
		coverage, []byte(nil), lineScores,
		now, now,
		"든든보험", 4.5, (*float64)(nil), "1588-0000", (*string)(nil))
}

func TestRecommendationService_Recommend(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	service := newTestRecommendationService(t, mockDB)
	profileID := uuid.New()

	expectProfile(mockDB, profileID, "푸들", []byte(nil))
	mockDB.ExpectExec("UPDATE pet_profiles SET preferences").
		WithArgs(profileID, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	rows := pgxmock.NewRows(productTestColumns)
	// Covers outpatient + surgery plus the joint disease the breed is
	// predisposed to.
	productRowWith(rows, "조인트케어플랜", 30000,
		[]byte(`{"기본보장": [1, 2], "질병보장": {"101": {"cover_type": 4}}}`),
		[]byte(`[0.8, 0.6]`))
	productRowWith(rows, "기본플랜", 20000,
		[]byte(`{"기본보장": [1]}`),
		[]byte(`[0.9]`))
	mockDB.ExpectQuery("SELECT (.+) FROM insurance_products p").
		WillReturnRows(rows)

	submission := &models.PreferenceSubmission{
		Preferences: map[string]interface{}{
			"outpatient": 5,
			"joint":      5,
		},
	}

	result, err := service.Recommend(context.Background(), profileID, submission)
	require.NoError(t, err)
	require.NoError(t, mockDB.ExpectationsWereMet())

	assert.Equal(t, profileID, result.ProfileID)
	assert.False(t, result.CacheHit)

	// The snapshot comes back normalized over the full basis.
	require.Len(t, result.Preferences, 8)
	assert.Equal(t, 5, result.Preferences["outpatient"])
	assert.Equal(t, 5, result.Preferences["joint"])
	assert.Equal(t, 3, result.Preferences["surgery"])

	require.Len(t, result.SureRanking, 2)
	top := result.SureRanking[0]
	assert.Equal(t, "조인트케어플랜", top.Product.Name)

	// company 4.5/5=0.9, price mean 0.7, cosine of [5,3,3,3,5,3,3,3] against
	// [1,0,1,0,1,0,0,0], plus the breed bonus.
	assert.InDelta(t, 0.9, top.CompanyScore, 1e-9)
	assert.InDelta(t, 0.7, top.PriceScore, 1e-9)
	assert.Equal(t, 1.0, top.BreedBonus)
	assert.InDelta(t, 0.9744, top.SureScore, 0.001)
	assert.Equal(t, 3, top.CoverageBreadth)

	require.NotEmpty(t, top.MatchReasons)
	assert.Contains(t, top.MatchReasons[0], "푸들 품종은")
	assert.Contains(t, top.MatchReasons[0], "슬개골 탈구")
	assert.Contains(t, top.MatchReasons[1], "'통원'")
	assert.Contains(t, top.MatchReasons[1], "'슬관절'")

	runner := result.SureRanking[1]
	assert.Equal(t, "기본플랜", runner.Product.Name)
	assert.Equal(t, 0.0, runner.BreedBonus)

	// Cheaper line scores rank first in the price view; the breadth view
	// leads with the wider product.
	assert.Equal(t, "조인트케어플랜", result.PriceRanking[0].Product.Name)
	assert.Equal(t, "조인트케어플랜", result.CoverageRanking[0].Product.Name)

	assert.Contains(t, result.Reason, "푸들 품종은")
	assert.Contains(t, result.Reason, "슬개골 탈구")
}

func TestRecommendationService_Recommend_DropsMalformedCandidate(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	service := newTestRecommendationService(t, mockDB)
	profileID := uuid.New()

	expectProfile(mockDB, profileID, "", []byte(nil))
	mockDB.ExpectExec("UPDATE pet_profiles SET preferences").
		WithArgs(profileID, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	rows := pgxmock.NewRows(productTestColumns)
	productRowWith(rows, "깨진가격플랜", -1, []byte(`{"기본보장": [1]}`), []byte(nil))
	productRowWith(rows, "멀쩡플랜", 20000, []byte(`{"기본보장": [1]}`), []byte(nil))
	mockDB.ExpectQuery("SELECT (.+) FROM insurance_products p").
		WillReturnRows(rows)

	result, err := service.Recommend(context.Background(), profileID,
		&models.PreferenceSubmission{Preferences: map[string]interface{}{}})
	require.NoError(t, err)

	// The malformed candidate drops; the rest of the pool still ranks.
	require.Len(t, result.SureRanking, 1)
	assert.Equal(t, "멀쩡플랜", result.SureRanking[0].Product.Name)
}

func TestRecommendationService_Recommend_MissingProfile(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	service := newTestRecommendationService(t, mockDB)
	profileID := uuid.New()

	mockDB.ExpectQuery("SELECT (.+) FROM pet_profiles WHERE id").
		WithArgs(profileID).
		WillReturnRows(pgxmock.NewRows(profileTestColumns))

	_, err = service.Recommend(context.Background(), profileID,
		&models.PreferenceSubmission{Preferences: map[string]interface{}{}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecommendationService_FormState(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	service := newTestRecommendationService(t, mockDB)
	profileID := uuid.New()

	expectProfile(mockDB, profileID, "푸들", []byte(`{"outpatient": 5}`))

	state, err := service.FormState(context.Background(), profileID)
	require.NoError(t, err)

	assert.Equal(t, profileID, state.ProfileID)
	assert.Equal(t, "푸들", state.SelectedBreed)

	// Saved weights carry over, the rest fill with the default.
	require.Len(t, state.Preferences, 8)
	assert.Equal(t, 5, state.Preferences["outpatient"])
	assert.Equal(t, 3, state.Preferences["joint"])

	assert.Equal(t, "통원치료비", state.FieldLabels["outpatient"])
	assert.Equal(t, []string{"코리안숏헤어", "푸들"}, state.Breeds)
}

func TestRecommendationService_Compare(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	service := newTestRecommendationService(t, mockDB)
	profileID := uuid.New()

	expectProfile(mockDB, profileID, "푸들", []byte(nil))

	rows := pgxmock.NewRows(productTestColumns)
	for i := 0; i < 8; i++ {
		productRowWith(rows, "플랜", 20000, []byte(`{"기본보장": [1]}`), []byte(`[0.5]`))
	}
	mockDB.ExpectQuery("SELECT (.+) FROM insurance_products p").
		WillReturnRows(rows)

	result, err := service.Compare(context.Background(), profileID, nil)
	require.NoError(t, err)

	// The side-by-side view never truncates.
	assert.Len(t, result.Products, 8)
	assert.Equal(t, []string{"통원", "입원", "수술", "배상책임", "슬관절", "피부병", "구강질환", "비뇨기질환"},
		result.CoverageKeys)
	for _, pc := range result.Products {
		assert.Greater(t, pc.SureScore, 0.0)
	}

	require.NoError(t, mockDB.ExpectationsWereMet())
}
