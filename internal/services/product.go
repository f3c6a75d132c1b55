package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/petsure/petsure/internal/catalog"
	"github.com/petsure/petsure/pkg/models"
)

type ProductService struct {
	db      DatabaseQuerier
	catalog *catalog.Catalog
	logger  *logrus.Logger
}

func NewProductService(db DatabaseQuerier, cat *catalog.Catalog, logger *logrus.Logger) *ProductService {
	return &ProductService{db: db, catalog: cat, logger: logger}
}

const productColumns = `p.id, p.company_id, p.name, p.species, p.base_price,
	p.min_age, p.max_age, p.min_weight, p.max_weight,
	p.coverage_details, p.special_benefits, p.price_line_scores,
	p.created_at, p.updated_at,
	c.name, c.rating, c.customer_satisfaction, c.contact_number, c.website`

const productFrom = ` FROM insurance_products p
	JOIN insurance_companies c ON c.id = p.company_id`

// List returns the full product pool with companies joined. Rows that fail
// to scan are dropped with a log line; a bad product never sinks the pool.
func (s *ProductService) List(ctx context.Context) ([]models.InsuranceProduct, error) {
	rows, err := s.db.Query(ctx, `SELECT `+productColumns+productFrom+` ORDER BY p.created_at, p.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list insurance products: %w", err)
	}
	defer rows.Close()

	var products []models.InsuranceProduct
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			s.logger.WithError(err).Error("Failed to scan insurance product row")
			continue
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.InsuranceProduct, error) {
	rows, err := s.db.Query(ctx, `SELECT `+productColumns+productFrom+` WHERE p.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load insurance product: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to load insurance product: %w", err)
		}
		return nil, ErrNotFound
	}
	product, err := scanProduct(rows)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load insurance product: %w", err)
	}
	return product, nil
}

// Detail resolves the product's reference ids into human-readable text and
// groups the covered details per basis category.
func (s *ProductService) Detail(p *models.InsuranceProduct) models.ProductDetail {
	detail := models.ProductDetail{
		Product:                 *p,
		CoverageVerbose:         make(map[string][]string),
		CategoryCoverageSummary: make(map[string][]string),
	}

	resolve := func(ids []int64) []string {
		out := make([]string, 0, len(ids))
		for _, id := range ids {
			if text, ok := s.catalog.ItemDetail(id); ok {
				out = append(out, text)
			} else {
				out = append(out, strconv.FormatInt(id, 10))
			}
		}
		return out
	}

	if len(p.Coverage.BasicItemIDs) > 0 {
		detail.CoverageVerbose["기본보장"] = resolve(p.Coverage.BasicItemIDs)
	}
	if len(p.Coverage.SpecialItemIDs) > 0 {
		detail.CoverageVerbose["특별보장"] = resolve(p.Coverage.SpecialItemIDs)
	}
	if len(p.Coverage.DiseaseCoverage) > 0 {
		ids := make([]int64, 0, len(p.Coverage.DiseaseCoverage))
		for id := range p.Coverage.DiseaseCoverage {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		detail.CoverageVerbose["질병보장"] = resolve(ids)
	}

	detail.SpecialBenefitsVerbose = resolve(p.SpecialBenefits)

	// Per-category summary over basic+special items, deduplicated.
	seen := make(map[string]map[string]bool)
	for _, list := range [][]int64{p.Coverage.BasicItemIDs, p.Coverage.SpecialItemIDs} {
		for _, id := range list {
			item, ok := s.catalog.CoverItem(id)
			if !ok {
				continue
			}
			key := "기타"
			if cat, ok := catalog.CoverTypeCategory(item.CoverType); ok {
				key = catalog.ShortLabel(cat)
			}
			if seen[key] == nil {
				seen[key] = make(map[string]bool)
			}
			if !seen[key][item.Detail] {
				seen[key][item.Detail] = true
				detail.CategoryCoverageSummary[key] = append(detail.CategoryCoverageSummary[key], item.Detail)
			}
		}
	}
	for _, details := range detail.CategoryCoverageSummary {
		sort.Strings(details)
	}

	return detail
}

func scanProduct(row pgx.Row) (*models.InsuranceProduct, error) {
	var (
		p               models.InsuranceProduct
		company         models.InsuranceCompany
		coverageRaw     []byte
		specialBenefits []byte
		priceLineScores []byte
	)
	if err := row.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Species, &p.BasePrice,
		&p.MinAge, &p.MaxAge, &p.MinWeight, &p.MaxWeight,
		&coverageRaw, &specialBenefits, &priceLineScores,
		&p.CreatedAt, &p.UpdatedAt,
		&company.Name, &company.Rating, &company.CustomerSatisfaction,
		&company.ContactNumber, &company.Website); err != nil {
		return nil, err
	}
	company.ID = p.CompanyID
	p.Company = &company

	p.Coverage = models.DecodeCoverageDetails(coverageRaw)
	if len(specialBenefits) > 0 {
		// Malformed benefit lists degrade to empty; they only affect the
		// verbose presentation, never scoring.
		_ = json.Unmarshal(specialBenefits, &p.SpecialBenefits)
	}
	if len(priceLineScores) > 0 {
		_ = json.Unmarshal(priceLineScores, &p.PriceLineScores)
	}
	return &p, nil
}
