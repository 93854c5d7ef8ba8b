package domain

import "time"

// PointPackage is a catalog entry. Packages referenced by a completed
// purchase are treated as immutable for audit fidelity; otherwise they are
// admin-editable.
type PointPackage struct {
	ID          int32     `json:"id"`
	Name        string    `json:"name"`
	Points      int32     `json:"points"`
	BonusPoints int32     `json:"bonus_points"`
	Price       int64     `json:"price"` // rupiah
	IsActive    bool      `json:"is_active"`
	CreatedOn   time.Time `json:"created_on"`
}

// TotalPoints is the number of points credited when a purchase completes.
func (p *PointPackage) TotalPoints() int32 {
	return p.Points + p.BonusPoints
}
