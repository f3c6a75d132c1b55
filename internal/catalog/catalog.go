package catalog

import (
	"sort"

	"golang.org/x/text/unicode/norm"
)

// Category is one of the fixed coverage categories every vector comparison
// runs over. The basis order is fixed and must not change: scoring aligns
// user and product vectors by index.
type Category string

const (
	CategoryOutpatient Category = "outpatient"
	CategoryInpatient  Category = "inpatient"
	CategorySurgery    Category = "surgery"
	CategoryLiability  Category = "liability"
	CategoryJoint      Category = "joint"
	CategorySkin       Category = "skin"
	CategoryOral       Category = "oral"
	CategoryUrinary    Category = "urinary"
)

// Basis returns the ordered 8-category coverage basis.
func Basis() []Category {
	return []Category{
		CategoryOutpatient,
		CategoryInpatient,
		CategorySurgery,
		CategoryLiability,
		CategoryJoint,
		CategorySkin,
		CategoryOral,
		CategoryUrinary,
	}
}

// coverTypeCategories maps catalog cover-type codes to basis categories.
var coverTypeCategories = map[int]Category{
	1: CategoryOutpatient,
	2: CategoryInpatient,
	3: CategorySurgery,
	4: CategoryJoint,
	5: CategorySkin,
	6: CategoryOral,
	7: CategoryUrinary,
	8: CategoryLiability,
}

// CoverTypeCategory resolves a cover-type code to a basis category.
// Unknown codes are simply not part of the basis.
func CoverTypeCategory(coverType int) (Category, bool) {
	c, ok := coverTypeCategories[coverType]
	return c, ok
}

// koreanCategoryKeys maps the short Korean section keys that may appear
// directly inside a product's coverage details to basis categories.
var koreanCategoryKeys = map[string]Category{
	"통원":    CategoryOutpatient,
	"입원":    CategoryInpatient,
	"수술":    CategorySurgery,
	"배상책임":  CategoryLiability,
	"슬관절":   CategoryJoint,
	"피부병":   CategorySkin,
	"구강질환":  CategoryOral,
	"비뇨기질환": CategoryUrinary,
}

// KoreanKeyCategory resolves a raw coverage-details key to a basis category.
func KoreanKeyCategory(key string) (Category, bool) {
	c, ok := koreanCategoryKeys[key]
	return c, ok
}

// categoryLabels are the long-form Korean labels shown on the preference form.
var categoryLabels = map[Category]string{
	CategoryOutpatient: "통원치료비",
	CategoryInpatient:  "입원치료비",
	CategorySurgery:    "수술치료비",
	CategoryLiability:  "배상책임",
	CategoryJoint:      "슬관절",
	CategorySkin:       "피부병",
	CategoryOral:       "구강질환",
	CategoryUrinary:    "비뇨기질환",
}

// Label returns the Korean form label for a basis category.
func Label(c Category) string {
	return categoryLabels[c]
}

// shortLabels invert koreanCategoryKeys for reason phrasing.
var shortLabels = func() map[Category]string {
	m := make(map[Category]string, len(koreanCategoryKeys))
	for k, c := range koreanCategoryKeys {
		m[c] = k
	}
	return m
}()

// ShortLabel returns the short Korean name for a basis category.
func ShortLabel(c Category) string {
	return shortLabels[c]
}

// CoverItem is one coverage line in the static reference catalog.
type CoverItem struct {
	ID        int64  `json:"id"`
	CoverType int    `json:"cover_type"`
	Detail    string `json:"detail"`
}

// Disease is one entry in the static disease catalog.
type Disease struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Cause     string `json:"cause,omitempty"`
	Tip       string `json:"tip,omitempty"`
	CoverType int    `json:"cover_type"`
}

// Breed links a breed name to the diseases it is predisposed to.
type Breed struct {
	Name       string  `json:"name"`
	Species    int     `json:"species"`
	DiseaseIDs []int64 `json:"diseases"`
}

// Catalog holds the immutable reference data loaded at process start.
// It is safe for concurrent use; nothing mutates it after Load.
type Catalog struct {
	covers   map[int64]CoverItem
	diseases map[int64]Disease
	breeds   map[string]Breed // keyed by NFC-normalized name
}

func (c *Catalog) CoverItem(id int64) (CoverItem, bool) {
	item, ok := c.covers[id]
	return item, ok
}

// CoverItemCategory resolves a coverage-item id to its basis category.
func (c *Catalog) CoverItemCategory(id int64) (Category, bool) {
	item, ok := c.covers[id]
	if !ok {
		return "", false
	}
	return CoverTypeCategory(item.CoverType)
}

func (c *Catalog) Disease(id int64) (Disease, bool) {
	d, ok := c.diseases[id]
	return d, ok
}

// DiseaseCategory resolves a disease id to the basis category its
// cover type belongs to.
func (c *Catalog) DiseaseCategory(id int64) (Category, bool) {
	d, ok := c.diseases[id]
	if !ok {
		return "", false
	}
	return CoverTypeCategory(d.CoverType)
}

// IsDisease reports whether id refers to a known disease.
func (c *Catalog) IsDisease(id int64) bool {
	_, ok := c.diseases[id]
	return ok
}

// ItemDetail resolves an id to human-readable text, preferring coverage-item
// detail, then disease name. Returns false for ids in neither catalog.
func (c *Catalog) ItemDetail(id int64) (string, bool) {
	if item, ok := c.covers[id]; ok {
		return item.Detail, true
	}
	if d, ok := c.diseases[id]; ok {
		return d.Name, true
	}
	return "", false
}

// BreedDiseaseIDs returns the disease ids a breed is predisposed to.
// Unknown breeds yield nil, never an error.
func (c *Catalog) BreedDiseaseIDs(name string) []int64 {
	b, ok := c.breeds[norm.NFC.String(name)]
	if !ok {
		return nil
	}
	return b.DiseaseIDs
}

// BreedNames returns all known breed names sorted for form rendering.
func (c *Catalog) BreedNames() []string {
	names := make([]string, 0, len(c.breeds))
	for _, b := range c.breeds {
		names = append(names, b.Name)
	}
	sort.Strings(names)
	return names
}

// Sizes reports catalog entry counts for health reporting.
func (c *Catalog) Sizes() (covers, diseases, breeds int) {
	return len(c.covers), len(c.diseases), len(c.breeds)
}
