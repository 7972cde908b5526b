package domain

import "time"

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusReserved    VehicleStatus = "RESERVED"
	VehicleStatusMaintenance VehicleStatus = "MAINTENANCE"
	// VehicleStatusNone is the transient state of a vehicle that has been
	// registered but not yet put into circulation.
	VehicleStatusNone VehicleStatus = ""
)

type Vehicle struct {
	ID              int64         `json:"id"`
	LicensePlate    string        `json:"license_plate"`
	Brand           string        `json:"brand"`
	Model           string        `json:"model"`
	VehicleType     string        `json:"vehicle_type"`
	Year            int32         `json:"year"`
	Capacity        int32         `json:"capacity"`
	DailyPriceCents int64         `json:"daily_price_cents"`
	OdometerKm      int64         `json:"odometer_km"`
	Description     string        `json:"description"`
	RefundPolicyID  *int64        `json:"refund_policy_id,omitempty"`
	RefundPolicy    *RefundPolicy `json:"refund_policy,omitempty"` // populated on detail fetches
	BranchID        *int64        `json:"branch_id,omitempty"`
	Status          VehicleStatus `json:"status"`
	StatusChangedOn time.Time     `json:"status_changed_on"`
	CreatedOn       time.Time     `json:"created_on"`
}

func (v *Vehicle) Available() bool {
	return v.Status == VehicleStatusAvailable
}

func (v *Vehicle) Reserved() bool {
	return v.Status == VehicleStatusReserved
}

func (v *Vehicle) InMaintenance() bool {
	return v.Status == VehicleStatusMaintenance
}

// Reserve transitions AVAILABLE -> RESERVED. A false return means the
// vehicle was not available; the caller must treat that as a failed
// precondition and compensate.
func (v *Vehicle) Reserve() bool {
	if !v.Available() {
		return false
	}
	v.setStatus(VehicleStatusReserved)
	return true
}

// Release transitions RESERVED -> AVAILABLE or MAINTENANCE -> AVAILABLE.
func (v *Vehicle) Release() bool {
	if !v.Reserved() && !v.InMaintenance() {
		return false
	}
	v.setStatus(VehicleStatusAvailable)
	return true
}

// SendToMaintenance transitions AVAILABLE -> MAINTENANCE.
func (v *Vehicle) SendToMaintenance() bool {
	if !v.Available() {
		return false
	}
	v.setStatus(VehicleStatusMaintenance)
	return true
}

func (v *Vehicle) setStatus(s VehicleStatus) {
	v.Status = s
	v.StatusChangedOn = time.Now()
}
