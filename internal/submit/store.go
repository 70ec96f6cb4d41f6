package submit

import (
	"context"

	"github.com/kalpruh/enrol/internal/log"
	"github.com/kalpruh/enrol/internal/registration"
	"github.com/kalpruh/enrol/internal/wizard"
)

// StoreCollaborator writes registrations straight into a repository. It is
// used in local submit mode, when no service is running.
type StoreCollaborator struct {
	repo registration.Repository
}

var _ wizard.Collaborator = (*StoreCollaborator)(nil)

// NewStoreCollaborator creates a collaborator over repo.
func NewStoreCollaborator(repo registration.Repository) *StoreCollaborator {
	return &StoreCollaborator{repo: repo}
}

// InsertRegistration creates one document. Failures are wrapped in *StoreError.
func (s *StoreCollaborator) InsertRegistration(ctx context.Context, d registration.Draft) (wizard.Result, error) {
	doc := registration.NewDocument(d)
	if err := s.repo.Insert(ctx, doc); err != nil {
		log.ErrorErr(log.CatDB, "Local insert failed", err)
		return wizard.Result{}, &StoreError{Err: err}
	}
	log.Info(log.CatDB, "Saved registration locally", "id", doc.ID)
	return wizard.Result{Message: savedMessage, ID: doc.ID}, nil
}
