// Package catalog loads profiles and opportunities from JSON files and serves them
// from memory.
package catalog

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/opportunity-matcher/internal/schemas"
	"github.com/jonathan/opportunity-matcher/internal/types"
)

// LoadOpportunities loads an {"opportunities": [...]} file.
// Opportunities without an id get one derived from their title and organization.
func LoadOpportunities(path string) (*types.OpportunityCatalog, error) {
	content, err := readValidated(path, schemas.Opportunities)
	if err != nil {
		return nil, err
	}

	var catalog types.OpportunityCatalog
	if err := json.Unmarshal(content, &catalog); err != nil {
		return nil, &LoadError{Path: path, Message: "failed to unmarshal JSON", Cause: err}
	}

	for i := range catalog.Opportunities {
		o := &catalog.Opportunities[i]
		if o.ID == uuid.Nil {
			o.ID = OpportunityID(o.Title, o.Organization)
		}
	}

	if err := validator.New().Struct(&catalog); err != nil {
		return nil, &LoadError{Path: path, Message: "invalid opportunity", Cause: err}
	}
	return &catalog, nil
}

// LoadProfiles loads a {"profiles": [...]} file.
func LoadProfiles(path string) (*types.ProfileBank, error) {
	content, err := readValidated(path, schemas.Profiles)
	if err != nil {
		return nil, err
	}

	var bank types.ProfileBank
	if err := json.Unmarshal(content, &bank); err != nil {
		return nil, &LoadError{Path: path, Message: "failed to unmarshal JSON", Cause: err}
	}

	if err := validator.New().Struct(&bank); err != nil {
		return nil, &LoadError{Path: path, Message: "invalid profile", Cause: err}
	}
	return &bank, nil
}

// OpportunityID derives a stable id so that re-importing a file updates rows in place.
func OpportunityID(title, organization string) uuid.UUID {
	key := strings.ToLower(strings.TrimSpace(title)) + "|" + strings.ToLower(strings.TrimSpace(organization))
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
}

func readValidated(path, schema string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}
	if err := schemas.Validate(schema, content); err != nil {
		return nil, &LoadError{Path: path, Message: "schema validation failed", Cause: err}
	}
	return content, nil
}
