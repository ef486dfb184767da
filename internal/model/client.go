package model

import "time"

// Client は見積の発注元となる顧客。ユーザーごとに所有される。
type Client struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Postcode  string    `json:"postcode,omitempty"`
	Country   string    `json:"country"`
	Website   string    `json:"website,omitempty"`
	IsActive  bool      `json:"is_active"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientListOptions carries filter parameters for listing clients.
type ClientListOptions struct {
	// SearchTerm matches against name, email and city (partial match).
	SearchTerm string
	// IsActive filters by active flag when non-nil.
	IsActive *bool
}

// ClientPatch holds fields that can be updated on a client.
type ClientPatch struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	Postcode *string `json:"postcode"`
	Country  *string `json:"country"`
	Website  *string `json:"website"`
	IsActive *bool   `json:"is_active"`
	Notes    *string `json:"notes"`
}
