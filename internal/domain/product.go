package domain

import "time"

// Product is the catalog view the checkout pipeline consumes. Prices
// are stored as display strings and may carry currency decoration;
// the pricing package parses them into numbers.
type Product struct {
	ID        string `bson:"_id" json:"id"`
	Name      string `bson:"name" json:"name"`
	Price     string `bson:"price" json:"price"`
	SalePrice string `bson:"sale_price,omitempty" json:"sale_price,omitempty"`
	OnSale    bool   `bson:"on_sale" json:"on_sale"`
}

// InventoryRecord holds the available quantity for one product.
// Quantity is mutated exclusively through atomic increments.
type InventoryRecord struct {
	ProductID   string    `bson:"_id" json:"product_id"`
	Quantity    int       `bson:"quantity" json:"quantity"`
	LastUpdated time.Time `bson:"last_updated" json:"last_updated"`
}
