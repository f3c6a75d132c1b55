package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/petsure/petsure/internal/catalog"
	"github.com/petsure/petsure/internal/config"
	"github.com/petsure/petsure/pkg/models"
)

// RecommendationService runs a full recommendation pass for one pet
// profile: persist the preference snapshot, build vectors, score the
// eligible pool and produce the three ranked views. Everything happens
// synchronously inside the request.
type RecommendationService struct {
	profiles *ProfileService
	products *ProductService
	catalog  *catalog.Catalog
	redis    *redis.Client // warm cache
	config   *config.RecommendationConfig
	logger   *logrus.Logger

	requestsTotal     prometheus.Counter
	candidatesScored  prometheus.Counter
	candidatesDropped prometheus.Counter
}

func NewRecommendationService(
	profiles *ProfileService,
	products *ProductService,
	cat *catalog.Catalog,
	redisClient *redis.Client,
	cfg *config.RecommendationConfig,
	logger *logrus.Logger,
) *RecommendationService {
	s := &RecommendationService{
		profiles: profiles,
		products: products,
		catalog:  cat,
		redis:    redisClient,
		config:   cfg,
		logger:   logger,
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Recommendation computations served",
		}),
		candidatesScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recommendation_candidates_scored_total",
			Help: "Products scored across all recommendation requests",
		}),
		candidatesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recommendation_candidates_dropped_total",
			Help: "Products excluded due to malformed scoring input",
		}),
	}

	for _, c := range []prometheus.Counter{s.requestsTotal, s.candidatesScored, s.candidatesDropped} {
		if err := prometheus.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				logger.WithError(err).Warn("Failed to register recommendation metric")
			}
		}
	}

	return s
}

// FormState returns what the preference form should show: the last saved
// snapshot filled up with defaults, the field labels and the breed list.
func (s *RecommendationService) FormState(ctx context.Context, profileID uuid.UUID) (*models.PreferenceFormState, error) {
	profile, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}

	prefs := make(map[string]int, len(catalog.Basis()))
	labels := make(map[string]string, len(catalog.Basis()))
	for _, cat := range catalog.Basis() {
		weight := s.config.DefaultWeight
		if w, ok := profile.Preferences[string(cat)]; ok {
			weight = w
		}
		prefs[string(cat)] = weight
		labels[string(cat)] = catalog.Label(cat)
	}

	return &models.PreferenceFormState{
		ProfileID:     profile.ID,
		Preferences:   prefs,
		FieldLabels:   labels,
		Breeds:        s.catalog.BreedNames(),
		SelectedBreed: profile.Breed,
	}, nil
}

// Recommend validates and persists the submission, then scores and ranks
// the eligible pool. The snapshot write always happens, cache hit or not.
func (s *RecommendationService) Recommend(ctx context.Context, profileID uuid.UUID, submission *models.PreferenceSubmission) (*models.RecommendationResult, error) {
	profile, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}

	prefs := NormalizePreferences(submission.Preferences, s.config.DefaultWeight)
	if err := s.profiles.SavePreferences(ctx, profileID, prefs, submission.Breed); err != nil {
		return nil, err
	}
	profile.Preferences = prefs
	if submission.Breed != "" {
		profile.Breed = submission.Breed
	}

	cacheKey := fmt.Sprintf("recommendation:%s:%s", profileID, preferenceFingerprint(prefs, profile.Breed))
	if cached := s.cachedResult(ctx, cacheKey); cached != nil {
		s.logger.WithField("profile_id", profileID).Debug("Recommendation cache hit")
		return cached, nil
	}

	result, err := s.compute(ctx, profile)
	if err != nil {
		return nil, err
	}

	s.cacheResult(ctx, cacheKey, result)
	return result, nil
}

func (s *RecommendationService) compute(ctx context.Context, profile *models.PetProfile) (*models.RecommendationResult, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	eligible := EligibleProducts(products, profile, time.Now())
	userVector := UserVector(profile.Preferences, s.config.DefaultWeight)
	breedDiseaseIDs := s.catalog.BreedDiseaseIDs(profile.Breed)

	scored := make([]models.ScoredProduct, 0, len(eligible))
	for _, p := range eligible {
		sp, err := s.scoreProduct(p, userVector, profile.Preferences, breedDiseaseIDs, profile.Breed)
		if err != nil {
			s.logger.WithError(err).WithField("product_id", p.ID).
				Warn("Dropping candidate with malformed scoring input")
			s.candidatesDropped.Inc()
			continue
		}
		s.candidatesScored.Inc()
		scored = append(scored, sp)
	}

	result := &models.RecommendationResult{
		ProfileID:       profile.ID,
		Preferences:     profile.Preferences,
		SureRanking:     RankBySure(scored, s.config.TopN),
		PriceRanking:    RankByPrice(scored, s.config.TopN),
		CoverageRanking: RankByCoverage(scored, s.config.TopN),
		Reason:          s.breedRiskSummary(profile.Breed, breedDiseaseIDs),
		GeneratedAt:     time.Now().UTC(),
	}
	s.requestsTotal.Inc()

	s.logger.WithFields(logrus.Fields{
		"profile_id": profile.ID,
		"pool":       len(products),
		"eligible":   len(eligible),
		"scored":     len(scored),
	}).Debug("Recommendation computed")

	return result, nil
}

func (s *RecommendationService) scoreProduct(
	p models.InsuranceProduct,
	userVector []float64,
	prefs map[string]int,
	breedDiseaseIDs []int64,
	breed string,
) (models.ScoredProduct, error) {
	priceScore, err := PriceScore(p)
	if err != nil {
		return models.ScoredProduct{}, err
	}

	companyScore := 0.0
	if p.Company != nil {
		companyScore = CompanyScore(p.Company.Rating)
	}

	productVector := ProductVector(p.Coverage, s.catalog)
	matchingScore := CosineSimilarity(userVector, productVector)

	coveredDiseases := p.Coverage.CoveredDiseaseIDs(s.catalog.IsDisease)
	breedBonus := BreedDiseaseBonus(coveredDiseases, breedDiseaseIDs)

	sp := models.ScoredProduct{
		Product:         p,
		CompanyScore:    companyScore,
		PriceScore:      priceScore,
		MatchingScore:   matchingScore,
		BreedBonus:      breedBonus,
		SureScore:       SureScore(companyScore, priceScore, matchingScore, breedBonus),
		CoverageBreadth: CoverageBreadth(p.Coverage),
		MatchReasons:    BuildMatchReasons(prefs, productVector, s.config.HighPriorityThreshold),
	}

	if breedBonus > 0 {
		names := s.diseaseNames(intersect(coveredDiseases, breedDiseaseIDs))
		if reason := BreedRiskReason(breed, names); reason != "" {
			sp.MatchReasons = append([]string{reason}, sp.MatchReasons...)
		}
	}

	return sp, nil
}

// Compare scores every eligible product with the SURE score for the
// side-by-side view. Nothing is persisted and nothing is truncated; with
// no submitted preferences the user vector is neutral.
func (s *RecommendationService) Compare(ctx context.Context, profileID uuid.UUID, rawPrefs map[string]interface{}) (*models.ComparisonResult, error) {
	profile, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}

	prefs := NormalizePreferences(rawPrefs, s.config.DefaultWeight)
	userVector := UserVector(prefs, s.config.DefaultWeight)
	breedDiseaseIDs := s.catalog.BreedDiseaseIDs(profile.Breed)

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(catalog.Basis()))
	for _, cat := range catalog.Basis() {
		keys = append(keys, catalog.ShortLabel(cat))
	}

	result := &models.ComparisonResult{
		ProfileID:    profile.ID,
		CoverageKeys: keys,
		GeneratedAt:  time.Now().UTC(),
	}

	for _, p := range EligibleProducts(products, profile, time.Now()) {
		sp, err := s.scoreProduct(p, userVector, prefs, breedDiseaseIDs, profile.Breed)
		if err != nil {
			s.logger.WithError(err).WithField("product_id", p.ID).
				Warn("Dropping candidate with malformed scoring input")
			s.candidatesDropped.Inc()
			continue
		}
		result.Products = append(result.Products, models.ProductComparison{
			Product:   sp.Product,
			SureScore: sp.SureScore,
		})
	}

	return result, nil
}

// breedRiskSummary is the request-level reason line covering all of the
// breed's known risk diseases; empty when the breed is unknown.
func (s *RecommendationService) breedRiskSummary(breed string, breedDiseaseIDs []int64) string {
	return BreedRiskReason(breed, s.diseaseNames(breedDiseaseIDs))
}

func (s *RecommendationService) diseaseNames(ids []int64) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if d, ok := s.catalog.Disease(id); ok {
			names = append(names, d.Name)
		}
	}
	return names
}

func intersect(a, b []int64) []int64 {
	inB := make(map[int64]bool, len(b))
	for _, id := range b {
		inB[id] = true
	}
	var out []int64
	for _, id := range a {
		if inB[id] {
			out = append(out, id)
		}
	}
	return out
}

// preferenceFingerprint keys the warm cache: same snapshot and breed, same
// ranking. The basis order keeps it stable across map iteration.
func preferenceFingerprint(prefs map[string]int, breed string) string {
	parts := make([]string, 0, len(catalog.Basis())+1)
	for _, cat := range catalog.Basis() {
		parts = append(parts, fmt.Sprintf("%s=%d", cat, prefs[string(cat)]))
	}
	parts = append(parts, "breed="+breed)
	return strings.Join(parts, ";")
}

func (s *RecommendationService) cachedResult(ctx context.Context, key string) *models.RecommendationResult {
	if s.redis == nil {
		return nil
	}
	cached := s.redis.Get(ctx, key).Val()
	if cached == "" {
		return nil
	}
	var result models.RecommendationResult
	if err := json.Unmarshal([]byte(cached), &result); err != nil {
		return nil
	}
	result.CacheHit = true
	return &result
}

func (s *RecommendationService) cacheResult(ctx context.Context, key string, result *models.RecommendationResult) {
	if s.redis == nil || s.config.CacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, s.config.CacheTTL).Err(); err != nil {
		s.logger.WithError(err).Warn("Failed to cache recommendation result")
	}
}
