package models

// Segment is a demographic or interest label derived from a user profile
type Segment string

const (
	SegmentGenZ       Segment = "GenZ"
	SegmentMillennial Segment = "Millennial"
	SegmentGenXPlus   Segment = "GenX+"

	SegmentFashionEnthusiast Segment = "Fashion Enthusiast"
	SegmentFitnessEnthusiast Segment = "Fitness Enthusiast"
	SegmentTechSavvy         Segment = "Tech Savvy"
	SegmentBookLover         Segment = "Book Lover"

	SegmentUrbanDweller     Segment = "Urban Dweller"
	SegmentSuburbanResident Segment = "Suburban Resident"
	SegmentRuralExplorer    Segment = "Rural Explorer"
)

// UserProfile is the transient per-request profile a campaign targets.
// It is never persisted; only the display name travels into the feedback table.
type UserProfile struct {
	Name      string   `json:"name"`
	Age       int      `json:"age" validate:"gte=0"`
	Interests []string `json:"interests"`
	Location  string   `json:"location"`
}

// DisplayName returns the customer-facing name, falling back to a generic form of address
func (p UserProfile) DisplayName() string {
	if p.Name == "" {
		return "Customer"
	}
	return p.Name
}
