package models

// OverrideRequest is the body for setting a manual mileage quote. The route
// and program come from the URL.
type OverrideRequest struct {
	Miles int     `json:"miles"`
	Fees  float64 `json:"fees"`
}
