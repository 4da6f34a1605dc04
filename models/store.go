package models

import "time"

// Store is one merchant's isolated catalog/branding/order namespace.
// The document id doubles as the merchant's stable store identifier.
type Store struct {
	ID          string  `json:"id" bson:"_id"`
	Name        string  `json:"name" bson:"name"`
	OwnerName   string  `json:"owner_name" bson:"ownerName"`
	Email       string  `json:"email" bson:"email"`
	Phone       string  `json:"phone" bson:"phone"`
	LogoURL     string  `json:"logo_url" bson:"logoUrl"`
	ThemeColor  string  `json:"theme_color" bson:"themeColor"`
	BankName    string  `json:"bank_name" bson:"bankName"`
	BankAccount string  `json:"bank_account" bson:"bankAccount"`

	// CustomPath is the merchant-chosen alias used for friendly URLs.
	// Empty means the store is only reachable by its raw id.
	CustomPath string `json:"custom_path,omitempty" bson:"customPath,omitempty"`

	// IsActive is a pointer because records created before the flag
	// existed have no value at all; absence means active.
	IsActive *bool `json:"is_active,omitempty" bson:"isActive,omitempty"`

	CreatedAt        time.Time  `json:"created_at" bson:"createdAt"`
	SubscriptionEnds *time.Time `json:"subscription_ends,omitempty" bson:"subscriptionEnds,omitempty"`
}

// Active reports whether the store may serve traffic. Only an explicit
// false denies; a missing flag defaults to active.
func (s *Store) Active() bool {
	return s.IsActive == nil || *s.IsActive
}
