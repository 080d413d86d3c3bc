package models

// Offering pairs one course with one course type; it is the unit students register for.
type Offering struct {
	ID     string `json:"id,omitempty"`
	Course string `json:"course"`
	Type   string `json:"type"`
}

// Label renders the offering the way lists display it: "<type> - <course>".
func (o Offering) Label() string {
	return o.Type + " - " + o.Course
}

// Matches reports whether the offering carries exactly this course and type.
func (o Offering) Matches(course, courseType string) bool {
	return o.Course == course && o.Type == courseType
}
