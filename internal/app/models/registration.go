package models

// Registration records that a student enrolled in an offering.
// Offering is a snapshot; its ID links it back to the catalog entry.
type Registration struct {
	ID       string   `json:"id,omitempty"`
	Student  string   `json:"student"`
	Offering Offering `json:"offering"`
}

func (r Registration) String() string {
	return r.Student + " registered for " + r.Offering.Label()
}
