package handlers

import (
	"encoding/json"
	"errors"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
)

// Keywords accepts either a JSON array of strings or one comma-separated
// string ("hello, hi") and decodes both to a list. Array entries are
// normalized later by the service.
type Keywords []string

// UnmarshalJSON implements json.Unmarshaler.
func (k *Keywords) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*k = list
		return nil
	}
	var csv string
	if err := json.Unmarshal(b, &csv); err != nil {
		return errors.New("keywords must be an array of strings or a comma-separated string")
	}
	*k = domain.SplitKeywords(csv)
	return nil
}
