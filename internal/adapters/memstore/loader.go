package memstore

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"rems-service/internal/core/domain"
	"rems-service/internal/seeddata"
)

type seedRecord struct {
	ID            string                `json:"id"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Location      string                `json:"location"`
	Price         float64               `json:"price"`
	Bedrooms      int                   `json:"bedrooms"`
	Bathrooms     int                   `json:"bathrooms"`
	Area          float64               `json:"area"`
	Type          string                `json:"type"`
	ImageURL      string                `json:"imageUrl"`
	Images        []string              `json:"images"`
	Features      []string              `json:"features"`
	Status        domain.PropertyStatus `json:"status"`
	YearBuilt     int                   `json:"yearBuilt"`
	ParkingSpaces int                   `json:"parkingSpaces"`
}

// LoadSeed decodes the embedded listing dataset after validating it against
// the embedded schema. A dataset that fails validation is a build problem,
// not a user error, so the caller is expected to treat any error as fatal.
func LoadSeed() ([]domain.Property, error) {
	schemaFile, err := seeddata.FS.Open(seeddata.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("open seed schema: %w", err)
	}
	defer schemaFile.Close()

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(seeddata.SchemaPath, schemaFile); err != nil {
		return nil, fmt.Errorf("add seed schema resource: %w", err)
	}
	schema, err := compiler.Compile(seeddata.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("compile seed schema: %w", err)
	}

	raw, err := seeddata.FS.ReadFile(seeddata.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("read seed dataset: %w", err)
	}

	// Validate against the generic decoding first; jsonschema works on
	// interface{} values, not on typed structs.
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("decode seed dataset: %w", err)
	}
	if err := schema.Validate(generic); err != nil {
		return nil, fmt.Errorf("seed dataset does not match schema: %w", err)
	}

	var records []seedRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode seed dataset: %w", err)
	}

	properties := make([]domain.Property, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("seed dataset contains duplicate id %q", r.ID)
		}
		seen[r.ID] = struct{}{}
		properties[i] = domain.Property{
			ID:            r.ID,
			Title:         r.Title,
			Description:   r.Description,
			Location:      r.Location,
			Price:         r.Price,
			Bedrooms:      r.Bedrooms,
			Bathrooms:     r.Bathrooms,
			Area:          r.Area,
			Type:          r.Type,
			ImageURL:      r.ImageURL,
			Images:        r.Images,
			Features:      r.Features,
			Status:        r.Status,
			YearBuilt:     r.YearBuilt,
			ParkingSpaces: r.ParkingSpaces,
		}
	}
	return properties, nil
}
