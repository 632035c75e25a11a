package models

// Interaction kinds accepted by the training endpoint. Anything else
// is normalized to KindView before it reaches the stores.
const (
	KindView     = "view"
	KindPurchase = "purchase"
	KindCart     = "cart"
	KindWishlist = "wishlist"
)

// Interaction is one immutable entry in a user's history.
type Interaction struct {
	ProductID string `json:"productId"`
	Kind      string `json:"type"`
}

// NormalizeKind maps unknown interaction kinds to KindView.
func NormalizeKind(kind string) string {
	switch kind {
	case KindView, KindPurchase, KindCart, KindWishlist:
		return kind
	default:
		return KindView
	}
}
