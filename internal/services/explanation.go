package services

import (
	"fmt"
	"strings"

	"github.com/petsure/petsure/internal/catalog"
)

// Match-reason strings stay in the catalog's Korean voice; the frontend
// renders them verbatim.

// BuildMatchReasons returns one reason covering every preference category
// the user rated at or above threshold that the product actually covers.
func BuildMatchReasons(prefs map[string]int, productVector []float64, threshold int) []string {
	var highlighted []string
	for i, cat := range catalog.Basis() {
		if prefs[string(cat)] >= threshold && i < len(productVector) && productVector[i] == 1 {
			highlighted = append(highlighted, fmt.Sprintf("'%s'", catalog.ShortLabel(cat)))
		}
	}
	if len(highlighted) == 0 {
		return nil
	}
	return []string{fmt.Sprintf("%s 항목을 중시하셨고, 이 상품이 해당 보장을 포함합니다.", strings.Join(highlighted, ", "))}
}

// BreedRiskReason phrases the breed predisposition explanation naming the
// relevant diseases.
func BreedRiskReason(breed string, diseaseNames []string) string {
	if breed == "" || len(diseaseNames) == 0 {
		return ""
	}
	return fmt.Sprintf("%s 품종은 %s 질병에 취약하여, 해당 질병이 보장내역에 포함된 상품을 추천합니다.", breed, strings.Join(diseaseNames, ", "))
}
