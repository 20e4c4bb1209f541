package notification

import "time"

type NotificationResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Message       string  `json:"message"`
	Type          string  `json:"type"`
	ReferenceType string  `json:"reference_type,omitempty"`
	ReferenceID   *string `json:"reference_id,omitempty"`
	IsRead        bool    `json:"is_read"`
	ReadAt        *string `json:"read_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:            n.ID.String(),
		Title:         n.Title,
		Message:       n.Message,
		Type:          n.Type,
		ReferenceType: n.ReferenceType,
		IsRead:        n.IsRead,
		CreatedAt:     n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReferenceID != nil {
		v := n.ReferenceID.String()
		resp.ReferenceID = &v
	}
	if n.ReadAt != nil {
		v := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}
