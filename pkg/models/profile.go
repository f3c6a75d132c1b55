package models

import (
	"time"

	"github.com/google/uuid"
)

type PetProfile struct {
	ID             uuid.UUID              `json:"id" db:"id"`
	OwnerID        uuid.UUID              `json:"owner_id" db:"owner_id"`
	Name           string                 `json:"name" db:"name"`
	Species        string                 `json:"species" db:"species"` // dog | cat
	Breed          string                 `json:"breed" db:"breed"`
	BirthDate      time.Time              `json:"birth_date" db:"birth_date"`
	Weight         *float64               `json:"weight,omitempty" db:"weight"`
	Gender         string                 `json:"gender" db:"gender"`
	IsNeutered     bool                   `json:"is_neutered" db:"is_neutered"`
	MedicalHistory map[string]interface{} `json:"medical_history,omitempty" db:"medical_history"`

	// Preferences is the latest preference snapshot: category code to
	// weight 1-5. After a save it always carries all 8 basis keys.
	Preferences map[string]int `json:"preferences" db:"preferences"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Age returns the profile's age in whole years at now, counting a year
// only once the birthday has passed.
func (p *PetProfile) Age(now time.Time) int {
	age := now.Year() - p.BirthDate.Year()
	if now.Month() < p.BirthDate.Month() ||
		(now.Month() == p.BirthDate.Month() && now.Day() < p.BirthDate.Day()) {
		age--
	}
	return age
}

// PreferenceSubmission carries the raw form values. Values are untyped on
// purpose: out-of-range, non-numeric and missing entries all coerce to the
// neutral default instead of failing the request.
type PreferenceSubmission struct {
	Preferences map[string]interface{} `json:"preferences" binding:"required"`
	Breed       string                 `json:"breed,omitempty"`
}

// PreferenceFormState pre-fills the preference form: the saved snapshot (or
// defaults), the form field labels and the selectable breed names.
type PreferenceFormState struct {
	ProfileID     uuid.UUID         `json:"profile_id"`
	Preferences   map[string]int    `json:"preferences"`
	FieldLabels   map[string]string `json:"field_labels"`
	Breeds        []string          `json:"breeds"`
	SelectedBreed string            `json:"selected_breed"`
}

type ChoiceRequest struct {
	ProductID      uuid.UUID `json:"product_id" binding:"required"`
	MonthlyPremium int       `json:"monthly_premium" binding:"min=0"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
}
