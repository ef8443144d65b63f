package handlers

import (
	"github.com/google/uuid"

	"pressroom/internal/apperr"
)

// deleteInput is the shared payload for every delete procedure.
type deleteInput struct {
	ID uuid.UUID `json:"id"`
}

func (in *deleteInput) validate() error {
	if in.ID == uuid.Nil {
		return apperr.Validation("id", "id is required")
	}
	return nil
}
