package model

import "time"

// Contractor は外注先の施工業者。ユーザーごとに所有される。
type Contractor struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Trade     string    `json:"trade,omitempty"` // 例: "electrical", "groundworks"
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Postcode  string    `json:"postcode,omitempty"`
	Country   string    `json:"country"`
	IsActive  bool      `json:"is_active"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContractorListOptions carries filter parameters for listing contractors.
type ContractorListOptions struct {
	SearchTerm string
	Trade      string
	IsActive   *bool
}

// ContractorPatch holds fields that can be updated on a contractor.
type ContractorPatch struct {
	Name     *string `json:"name"`
	Trade    *string `json:"trade"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	Postcode *string `json:"postcode"`
	Country  *string `json:"country"`
	IsActive *bool   `json:"is_active"`
	Notes    *string `json:"notes"`
}
