package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/petsure/petsure/pkg/models"
)

// ErrNotFound marks lookups for rows that do not exist; handlers map it to 404.
var ErrNotFound = errors.New("not found")

// DatabaseQuerier interface for database operations
type DatabaseQuerier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type ProfileService struct {
	db     DatabaseQuerier
	logger *logrus.Logger
}

func NewProfileService(db DatabaseQuerier, logger *logrus.Logger) *ProfileService {
	return &ProfileService{db: db, logger: logger}
}

const profileColumns = `id, owner_id, name, species, breed, birth_date, weight,
	gender, is_neutered, medical_history, preferences, created_at, updated_at`

func (s *ProfileService) Get(ctx context.Context, id uuid.UUID) (*models.PetProfile, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM pet_profiles WHERE id = $1`, id)

	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load pet profile: %w", err)
	}
	return profile, nil
}

func (s *ProfileService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.PetProfile, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+profileColumns+` FROM pet_profiles WHERE owner_id = $1 ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pet profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.PetProfile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			s.logger.WithError(err).Error("Failed to scan pet profile row")
			continue
		}
		profiles = append(profiles, *profile)
	}
	return profiles, rows.Err()
}

// SavePreferences overwrites the profile's preference snapshot. No history
// is kept and there is no row lock: concurrent submissions resolve as
// last-write-wins. A non-empty breed updates the profile's breed as well.
func (s *ProfileService) SavePreferences(ctx context.Context, id uuid.UUID, prefs map[string]int, breed string) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	var tag pgconn.CommandTag
	if breed != "" {
		tag, err = s.db.Exec(ctx,
			`UPDATE pet_profiles SET preferences = $2, breed = $3, updated_at = now() WHERE id = $1`,
			id, data, breed)
	} else {
		tag, err = s.db.Exec(ctx,
			`UPDATE pet_profiles SET preferences = $2, updated_at = now() WHERE id = $1`,
			id, data)
	}
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordChoice stores the product a profile selected. Earlier choices are
// deactivated; only the latest one stays active.
func (s *ProfileService) RecordChoice(ctx context.Context, profileID uuid.UUID, req *models.ChoiceRequest) (uuid.UUID, error) {
	if _, err := s.db.Exec(ctx,
		`UPDATE insurance_choices SET is_active = false WHERE pet_profile_id = $1 AND is_active`,
		profileID); err != nil {
		return uuid.Nil, fmt.Errorf("failed to deactivate previous choices: %w", err)
	}

	id := uuid.New()
	_, err := s.db.Exec(ctx,
		`INSERT INTO insurance_choices
			(id, pet_profile_id, product_id, monthly_premium, start_date, end_date, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, true, now())`,
		id, profileID, req.ProductID, req.MonthlyPremium, req.StartDate, req.EndDate)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to record insurance choice: %w", err)
	}
	return id, nil
}

func scanProfile(row pgx.Row) (*models.PetProfile, error) {
	var (
		p              models.PetProfile
		medicalHistory []byte
		preferences    []byte
	)
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Species, &p.Breed,
		&p.BirthDate, &p.Weight, &p.Gender, &p.IsNeutered,
		&medicalHistory, &preferences, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}

	if len(medicalHistory) > 0 {
		if err := json.Unmarshal(medicalHistory, &p.MedicalHistory); err != nil {
			return nil, fmt.Errorf("malformed medical history: %w", err)
		}
	}
	if len(preferences) > 0 {
		if err := json.Unmarshal(preferences, &p.Preferences); err != nil {
			return nil, fmt.Errorf("malformed preference snapshot: %w", err)
		}
	}
	return &p, nil
}
