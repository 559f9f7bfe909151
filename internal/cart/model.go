package cart

// CartLine is one selection in the shopper's cart. Two lines are the same
// line iff both the product id and the size match.
type CartLine struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
}

type lineKey struct {
	productID string
	size      string
}

func (l CartLine) key() lineKey {
	return lineKey{productID: l.ProductID, size: l.Size}
}
