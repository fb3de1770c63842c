package types

// ShippingAddress captures the optional address snapshot attached to an
// order. All fields are optional; the storefront submits whatever the
// customer filled in at checkout.
type ShippingAddress struct {
	Street string `json:"street,omitempty"`
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
	Zip    string `json:"zip,omitempty"`
}

// SavedAddress is one entry of the profile's saved-address list. The list is
// an unstructured JSON column on the profile row; the first entry is treated
// as the default when more than one claims the flag.
type SavedAddress struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Type      string `json:"type"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	IsDefault bool   `json:"isDefault"`
}

type SavedAddresses []SavedAddress
