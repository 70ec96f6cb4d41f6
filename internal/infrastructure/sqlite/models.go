package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kalpruh/enrol/internal/registration"
)

// RegistrationModel is the database row for the registrations table. The
// draft is stored as a JSON document; email and solution_category are copied
// into columns for filtering. Timestamps are Unix milliseconds.
type RegistrationModel struct {
	ID               string
	Email            string
	SolutionCategory string
	Document         string
	CreatedAt        int64
	UpdatedAt        int64
}

// toRegistrationModel converts a document to a row.
func toRegistrationModel(doc *registration.Document) (*RegistrationModel, error) {
	body, err := json.Marshal(doc.Draft)
	if err != nil {
		return nil, fmt.Errorf("encoding registration document: %w", err)
	}
	return &RegistrationModel{
		ID:               doc.ID,
		Email:            doc.Email,
		SolutionCategory: string(doc.SolutionCategory),
		Document:         string(body),
		CreatedAt:        doc.CreatedAt.UnixMilli(),
		UpdatedAt:        doc.UpdatedAt.UnixMilli(),
	}, nil
}

// toDomain converts a row back to a document.
func (m *RegistrationModel) toDomain() (*registration.Document, error) {
	var d registration.Draft
	if err := json.Unmarshal([]byte(m.Document), &d); err != nil {
		return nil, fmt.Errorf("decoding registration %s: %w", m.ID, err)
	}
	if d.SelectedAlgorithms == nil {
		d.SelectedAlgorithms = []string{}
	}
	return &registration.Document{
		ID:        m.ID,
		Draft:     d,
		CreatedAt: time.UnixMilli(m.CreatedAt).UTC(),
		UpdatedAt: time.UnixMilli(m.UpdatedAt).UTC(),
	}, nil
}
