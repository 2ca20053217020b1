package v1

import (
	ft_uuid "github.com/fintrack-app/backend/internal/uuid"
)

type URIID struct {
	ID ft_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// MessageResponse is the body of responses that only carry a message.
type MessageResponse struct {
	Message string `json:"message" example:"Password updated successfully"`
}
