package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/petsure/petsure/internal/catalog"
)

// testCatalog builds a small reference catalog the service tests share:
//
//	cover 1  → outpatient, cover 2 → surgery, cover 3 → skin, cover 4 → liability
//	disease 101 (슬개골 탈구) → joint, disease 102 (아토피 피부염) → skin,
//	disease 103 (치주질환) → oral
//	breed 푸들 → [101], breed 코리안숏헤어 → [102]
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	fixtures := map[string]string{
		"covers.json": `[
			{"id": 1, "cover_type": 1, "detail": "통원치료비 보장"},
			{"id": 2, "cover_type": 3, "detail": "수술치료비 보장"},
			{"id": 3, "cover_type": 5, "detail": "피부질환 치료비"},
			{"id": 4, "cover_type": 8, "detail": "배상책임 보장"}
		]`,
		"diseases.json": `[
			{"id": 101, "name": "슬개골 탈구", "cause": "유전적 요인", "cover_type": 4},
			{"id": 102, "name": "아토피 피부염", "cover_type": 5},
			{"id": 103, "name": "치주질환", "cover_type": 6}
		]`,
		"breeds.json": `[
			{"name": "푸들", "species": 1, "diseases": [101]},
			{"name": "코리안숏헤어", "species": 2, "diseases": [102]}
		]`,
	}

	dir := t.TempDir()
	for name, content := range fixtures {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	cat, err := catalog.Load(dir, testLogger())
	require.NoError(t, err)
	return cat
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func stringPtr(v string) *string  { return &v }
