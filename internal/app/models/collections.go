package models

// Collections is a snapshot of the four registrar collections, in display order.
type Collections struct {
	CourseTypes   []string       `json:"courseTypes"`
	Courses       []string       `json:"courses"`
	Offerings     []Offering     `json:"offerings"`
	Registrations []Registration `json:"registrations"`
}
