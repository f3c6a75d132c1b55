package models

import (
	"time"

	"github.com/google/uuid"
)

// ScoredProduct is one candidate with every score the ranking views use.
type ScoredProduct struct {
	Product         InsuranceProduct `json:"product"`
	CompanyScore    float64          `json:"company_score"`
	PriceScore      float64          `json:"price_score"`
	MatchingScore   float64          `json:"matching_score"`
	BreedBonus      float64          `json:"breed_bonus"`
	SureScore       float64          `json:"sure_score"`
	CoverageBreadth int              `json:"coverage_breadth"`
	MatchReasons    []string         `json:"match_reasons"`
}

// RecommendationResult carries the three ranked views plus the overall
// breed-risk explanation, empty when the breed has no known risk diseases.
type RecommendationResult struct {
	ProfileID       uuid.UUID       `json:"profile_id"`
	Preferences     map[string]int  `json:"preferences"`
	SureRanking     []ScoredProduct `json:"sure_ranking"`
	PriceRanking    []ScoredProduct `json:"price_ranking"`
	CoverageRanking []ScoredProduct `json:"coverage_ranking"`
	Reason          string          `json:"reason,omitempty"`
	GeneratedAt     time.Time       `json:"generated_at"`
	CacheHit        bool            `json:"cache_hit"`
}

// ProductComparison is the side-by-side view: every eligible product with
// its SURE score, no truncation.
type ProductComparison struct {
	Product   InsuranceProduct `json:"product"`
	SureScore float64          `json:"sure_score"`
}

type ComparisonResult struct {
	ProfileID    uuid.UUID           `json:"profile_id"`
	CoverageKeys []string            `json:"coverage_keys"`
	Products     []ProductComparison `json:"products"`
	GeneratedAt  time.Time           `json:"generated_at"`
}
