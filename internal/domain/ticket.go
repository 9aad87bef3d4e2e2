package domain

// SupportTicket is a validated support request. Tickets are relayed to the
// team channel and then discarded; nothing is persisted.
type SupportTicket struct {
	Email   string `json:"email" validate:"required,contains=@"`
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`

	// ReferenceID is assigned at submission time and included in the team
	// relay and the confirmation email so both sides can correlate.
	ReferenceID string `json:"-"`
}
