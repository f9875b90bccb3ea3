package domain

import "time"

type CustomerStatus string

const (
	CustomerStatusActive      CustomerStatus = "active"
	CustomerStatusDeactivated CustomerStatus = "deactivated"
)

type Address struct {
	Governorate string `bson:"governorate" json:"governorate"`
	City        string `bson:"city" json:"city"`
	Landmark    string `bson:"landmark" json:"landmark"`
	FullAddress string `bson:"full_address" json:"full_address"`
}

// Customer is keyed by the normalized phone number: the document id IS
// the canonical phone, which makes identity resolution idempotent.
type Customer struct {
	ID          string         `bson:"_id" json:"id"`
	FullName    string         `bson:"full_name" json:"full_name"`
	Email       string         `bson:"email,omitempty" json:"email,omitempty"`
	Phone       string         `bson:"phone" json:"phone"`
	SecondPhone string         `bson:"second_phone,omitempty" json:"second_phone,omitempty"`
	Address     Address        `bson:"address" json:"address"`
	Status      CustomerStatus `bson:"status" json:"status"`
	CreatedAt   time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `bson:"updated_at" json:"updated_at"`
}
