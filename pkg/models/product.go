package models

// Product is a transient catalog record submitted for embedding
// generation. All feature fields are optional; absent values fall back
// to neutral feature defaults (zero segments) during extraction.
type Product struct {
	ID       string   `json:"id,omitempty"`
	LegacyID string   `json:"_id,omitempty"`
	Category *string  `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Brand    *string  `json:"brand,omitempty"`
}

// ResolvedID returns the record identifier, preferring the legacy
// Mongo-style "_id" over "id". Empty string means the record carries
// no usable identifier and cannot be embedded.
func (p Product) ResolvedID() string {
	if p.LegacyID != "" {
		return p.LegacyID
	}
	return p.ID
}
