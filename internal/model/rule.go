package model

// Category is a persona dimension a rule can vote on
type Category string

const (
	CategoryAge        Category = "age"
	CategoryLocation   Category = "location"
	CategoryOccupation Category = "occupation"
	CategoryEducation  Category = "education"
	CategoryInterest   Category = "interest"
)

// DemographicCategories is the fixed render order for single-valued traits.
// Interests are multi-valued and reported as behavior findings instead.
var DemographicCategories = []Category{
	CategoryAge,
	CategoryLocation,
	CategoryOccupation,
	CategoryEducation,
}

// TraitRule maps a keyword set (or regex) to an inferred value for one
// category. Rules are static configuration, loaded once and never mutated.
type TraitRule struct {
	Category Category `yaml:"category"`
	Value    string   `yaml:"value"`
	Keywords []string `yaml:"keywords,omitempty"`
	Pattern  string   `yaml:"pattern,omitempty"` // Optional regex, matched case-insensitively
	Weight   int      `yaml:"weight,omitempty"`  // Defaults to 1
}
