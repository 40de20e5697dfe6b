package dto

// CreateWatchlistRequest is the body of POST /api/v1/watchlist.
type CreateWatchlistRequest struct {
	Symbol string  `json:"symbol" binding:"required" example:"NVDA"`
	Name   *string `json:"name,omitempty" example:"NVIDIA Corp"`
	Sector *string `json:"sector,omitempty" example:"Technology"`
}

// UpdateWatchlistRequest is the body of PATCH /api/v1/watchlist/{symbol}.
// Omitted fields are left unchanged.
type UpdateWatchlistRequest struct {
	Name   *string `json:"name,omitempty" example:"NVIDIA Corporation"`
	Sector *string `json:"sector,omitempty" example:"Semiconductors"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message" example:"NVDA removed from watchlist"`
}
