package viewmodels

// AssetListItem is the JSON shape of one asset row in the inventory listing.
type AssetListItem struct {
	ID           string            `json:"id"`
	PID          string            `json:"pid"`
	Type         string            `json:"type"`
	Ownership    string            `json:"ownership"`
	Status       string            `json:"status"`
	Brand        string            `json:"brand,omitempty"`
	Model        string            `json:"model,omitempty"`
	SerialNumber string            `json:"serial_number,omitempty"`
	Price        string            `json:"price,omitempty"`
	AssignedTo   string            `json:"assigned_to,omitempty"`
	PurchasedAt  string            `json:"purchased_at,omitempty"`
	Components   []string          `json:"components,omitempty"`
	Attributes   map[string]string `json:"attributes,omitempty"`
}
