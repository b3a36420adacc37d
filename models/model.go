// Package models holds typed views of iNaturalist API records and the
// helpers that decode parsed JSON into them.
package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Decode copies a parsed JSON value (maps, slices, float64 numbers) into
// out, matching fields by their json tags. Numbers and strings are
// converted loosely, and RFC 3339 strings decode into time.Time.
func Decode(input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("decode %T: %w", out, err)
	}
	return nil
}

// DecodeResults decodes each element of a "results" array.
func DecodeResults[T any](results []any) ([]*T, error) {
	out := make([]*T, 0, len(results))
	for i, r := range results {
		item := new(T)
		if err := Decode(r, item); err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
		out = append(out, item)
	}
	return out, nil
}

// User is an iNaturalist account.
type User struct {
	ID      int    `json:"id"`
	Login   string `json:"login"`
	Name    string `json:"name"`
	IconURL string `json:"icon_url"`
}

// Taxon is a node of the taxonomy.
type Taxon struct {
	ID                  int     `json:"id"`
	Name                string  `json:"name"`
	Rank                string  `json:"rank"`
	RankLevel           float64 `json:"rank_level"`
	PreferredCommonName string  `json:"preferred_common_name"`
	IconicTaxonName     string  `json:"iconic_taxon_name"`
	AncestorIDs         []int   `json:"ancestor_ids"`
	IsActive            bool    `json:"is_active"`
	DefaultPhoto        *Photo  `json:"default_photo"`
}

// Observation is a record of an organism at a place and time.
type Observation struct {
	ID               int       `json:"id"`
	UUID             string    `json:"uuid"`
	SpeciesGuess     string    `json:"species_guess"`
	Description      string    `json:"description"`
	ObservedOnString string    `json:"observed_on_string"`
	QualityGrade     string    `json:"quality_grade"`
	Location         string    `json:"location"`
	PlaceGuess       string    `json:"place_guess"`
	CreatedAt        time.Time `json:"created_at"`
	Taxon            *Taxon    `json:"taxon"`
	User             *User     `json:"user"`
	Photos           []*Photo  `json:"photos"`
	FavesCount       int       `json:"faves_count"`
}

// Identification is a user's opinion of what an observation shows.
type Identification struct {
	ID            int    `json:"id"`
	ObservationID int    `json:"observation_id"`
	TaxonID       int    `json:"taxon_id"`
	Body          string `json:"body"`
	Current       bool   `json:"current"`
	Taxon         *Taxon `json:"taxon"`
	User          *User  `json:"user"`
}

// Place is a named geographic area.
type Place struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	PlaceType   int    `json:"place_type"`
	AdminLevel  int    `json:"admin_level"`
}

// ScoredTaxon is one computer vision suggestion.
type ScoredTaxon struct {
	Taxon            *Taxon  `json:"taxon"`
	CombinedScore    float64 `json:"combined_score"`
	VisionScore      float64 `json:"vision_score"`
	FrequencyScore   float64 `json:"frequency_score"`
	OriginalGeoScore float64 `json:"original_geo_score"`
}
