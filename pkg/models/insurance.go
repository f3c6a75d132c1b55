package models

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/petsure/petsure/internal/catalog"
)

type InsuranceCompany struct {
	ID                   uuid.UUID `json:"id" db:"id"`
	Name                 string    `json:"name" db:"name"`
	Rating               float64   `json:"rating" db:"rating"` // reliability, 0.0-5.0
	CustomerSatisfaction *float64  `json:"customer_satisfaction,omitempty" db:"customer_satisfaction"`
	ContactNumber        string    `json:"contact_number" db:"contact_number"`
	Website              *string   `json:"website,omitempty" db:"website"`
}

// DiseaseCover is one entry of a product's disease-coverage section.
type DiseaseCover struct {
	CoverType int `json:"cover_type"`
}

// CoverageDetails is the validated form of a product's raw coverage
// structure. The raw document uses Korean section keys ("기본보장",
// "특별보장", "질병보장") plus optional direct category keys; everything is
// resolved once at read time so scoring never probes dynamic shapes.
type CoverageDetails struct {
	DirectCategories []catalog.Category     `json:"direct_categories,omitempty"`
	BasicItemIDs     []int64                `json:"basic_item_ids,omitempty"`
	SpecialItemIDs   []int64                `json:"special_item_ids,omitempty"`
	DiseaseCoverage  map[int64]DiseaseCover `json:"disease_coverage,omitempty"`

	// AllItemIDs is every distinct id seen across list- and map-valued
	// sections, including sections outside the basis. Coverage breadth
	// ranking counts these.
	AllItemIDs []int64 `json:"all_item_ids,omitempty"`
}

const (
	sectionBasic   = "기본보장"
	sectionSpecial = "특별보장"
	sectionDisease = "질병보장"
)

// DecodeCoverageDetails parses a raw coverage document. Unknown keys and
// malformed sections are skipped, never errors: an id that maps to nothing
// simply counts as "not covered".
func DecodeCoverageDetails(raw []byte) CoverageDetails {
	var cd CoverageDetails
	if len(raw) == 0 {
		return cd
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return cd
	}

	seen := make(map[int64]bool)
	collect := func(ids []int64) {
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				cd.AllItemIDs = append(cd.AllItemIDs, id)
			}
		}
	}

	for key, value := range sections {
		switch key {
		case sectionBasic:
			cd.BasicItemIDs = decodeIDList(value)
			collect(cd.BasicItemIDs)
		case sectionSpecial:
			cd.SpecialItemIDs = decodeIDList(value)
			collect(cd.SpecialItemIDs)
		case sectionDisease:
			var entries map[string]DiseaseCover
			if err := json.Unmarshal(value, &entries); err != nil {
				continue
			}
			cd.DiseaseCoverage = make(map[int64]DiseaseCover, len(entries))
			for idStr, entry := range entries {
				id, err := strconv.ParseInt(idStr, 10, 64)
				if err != nil {
					continue
				}
				cd.DiseaseCoverage[id] = entry
				collect([]int64{id})
			}
		default:
			if cat, ok := catalog.KoreanKeyCategory(key); ok {
				cd.DirectCategories = append(cd.DirectCategories, cat)
				continue
			}
			// Foreign sections still contribute to coverage breadth when
			// they hold ids.
			if ids := decodeIDList(value); ids != nil {
				collect(ids)
				continue
			}
			var m map[string]json.RawMessage
			if err := json.Unmarshal(value, &m); err == nil {
				var ids []int64
				for k := range m {
					if id, err := strconv.ParseInt(k, 10, 64); err == nil {
						ids = append(ids, id)
					}
				}
				collect(ids)
			}
		}
	}

	// Map iteration order is random; keep derived slices deterministic.
	sort.Slice(cd.AllItemIDs, func(i, j int) bool { return cd.AllItemIDs[i] < cd.AllItemIDs[j] })
	sort.Slice(cd.DirectCategories, func(i, j int) bool { return cd.DirectCategories[i] < cd.DirectCategories[j] })

	return cd
}

func decodeIDList(raw json.RawMessage) []int64 {
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil
	}
	return ids
}

// CoveredDiseaseIDs returns the disease ids this coverage includes: the
// disease-coverage section plus any basic/special item id that is a known
// disease. The breed-risk bonus joins these against the breed risk map.
func (cd CoverageDetails) CoveredDiseaseIDs(isDisease func(int64) bool) []int64 {
	seen := make(map[int64]bool)
	var ids []int64
	for id := range cd.DiseaseCoverage {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, list := range [][]int64{cd.BasicItemIDs, cd.SpecialItemIDs} {
		for _, id := range list {
			if !seen[id] && isDisease != nil && isDisease(id) {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type InsuranceProduct struct {
	ID              uuid.UUID         `json:"id" db:"id"`
	CompanyID       uuid.UUID         `json:"company_id" db:"company_id"`
	Company         *InsuranceCompany `json:"company,omitempty"`
	Name            string            `json:"name" db:"name"`
	Species         string            `json:"species" db:"species"` // dog | cat
	BasePrice       float64           `json:"base_price" db:"base_price"`
	MinAge          *int              `json:"min_age,omitempty" db:"min_age"`
	MaxAge          *int              `json:"max_age,omitempty" db:"max_age"`
	MinWeight       *float64          `json:"min_weight,omitempty" db:"min_weight"`
	MaxWeight       *float64          `json:"max_weight,omitempty" db:"max_weight"`
	Coverage        CoverageDetails   `json:"coverage"`
	SpecialBenefits []int64           `json:"special_benefits,omitempty"`
	PriceLineScores []float64         `json:"price_line_scores,omitempty"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`
}

// ProductDetail is the verbose presentation of a product: reference ids
// resolved to human-readable text and grouped per basis category.
type ProductDetail struct {
	Product                 InsuranceProduct    `json:"product"`
	CoverageVerbose         map[string][]string `json:"coverage_verbose"`
	SpecialBenefitsVerbose  []string            `json:"special_benefits_verbose"`
	CategoryCoverageSummary map[string][]string `json:"category_coverage_summary"`
}

type InsuranceChoice struct {
	ID             uuid.UUID `json:"id" db:"id"`
	PetProfileID   uuid.UUID `json:"pet_profile_id" db:"pet_profile_id"`
	ProductID      uuid.UUID `json:"product_id" db:"product_id"`
	MonthlyPremium int       `json:"monthly_premium" db:"monthly_premium"`
	StartDate      time.Time `json:"start_date" db:"start_date"`
	EndDate        time.Time `json:"end_date" db:"end_date"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
