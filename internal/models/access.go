package models

// AccessState is what the course page shows to the current visitor.
type AccessState string

const (
	// AccessAnonymous means no identity is present: show the login prompt.
	AccessAnonymous AccessState = "anonymous"

	// AccessUnpaid means the identity has not purchased: show the purchase prompt.
	AccessUnpaid AccessState = "unpaid"

	// AccessPaid means the identity may see the gated content.
	AccessPaid AccessState = "paid"
)

// AccessResponse is the body of the access endpoint.
type AccessResponse struct {
	State   AccessState `json:"state"`
	Email   string      `json:"email,omitempty"`
	HasPaid bool        `json:"hasPaid"`

	// CanViewCourse is true only in the paid state.
	CanViewCourse bool `json:"canViewCourse"`
}
