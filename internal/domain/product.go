package domain

// ProductRecord is one listed item on a merchant's page. Price is in
// whole currency units (tenge). Reviews defaults to zero when the card
// shows no rating block.
type ProductRecord struct {
	Title      string `json:"title"`
	SKU        string `json:"sku"`
	Price      int    `json:"price"`
	Link       string `json:"link"`
	Reviews    int    `json:"reviews"`
	MerchantID string `json:"merchant_id"`
}

func (p ProductRecord) UniqueKey() string {
	return p.SKU
}
