package domain

// RefundPolicy is reference data: the percentage of the total cost returned
// on cancellation. Vehicles without a policy refund nothing.
type RefundPolicy struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Percentage  int32  `json:"percentage"` // 0-100
	Description string `json:"description,omitempty"`
}

type Branch struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city,omitempty"`
}
