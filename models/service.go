package models

// Service is a lab exam offered in a merchant's catalogue.
// Prices are stored in integer minor units (centavos) to keep
// summation exact.
type Service struct {
	ID          string   `bson:"id" json:"id"`
	MerchantID  string   `bson:"merchant_id" json:"merchantId"`
	Name        string   `bson:"name" json:"name"`
	Category    string   `bson:"category" json:"category"`
	Synonyms    []string `bson:"synonyms,omitempty" json:"synonyms,omitempty"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	PriceCents  int64    `bson:"price_cents" json:"priceCents"`
	Active      bool     `bson:"active" json:"active"`
}
