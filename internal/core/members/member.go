package members

import "time"

// Member statuses and types as stored in the membership master.
const (
	StatusActive  = "A"
	TypeRegular   = "R"
	TypeAssociate = "A"
)

// Member is a row from the membership master file.
type Member struct {
	MemberNo   string     `json:"memberNo"`
	LastName   string     `json:"lastName"`
	FirstName  string     `json:"firstName"`
	MiddleName string     `json:"middleName,omitempty"`
	BirthDate  *time.Time `json:"birthDate,omitempty"`
	MemberType string     `json:"memberType"`
	Status     string     `json:"status"`
	JoinDate   *time.Time `json:"joinDate,omitempty"`
	Address    string     `json:"address,omitempty"`
	Email      string     `json:"email,omitempty"`
	ContactNo  string     `json:"contactNo,omitempty"`
}

// FullName renders the display name in last-first order, the way the
// membership reports print it.
func (m *Member) FullName() string {
	name := m.LastName + ", " + m.FirstName
	if m.MiddleName != "" {
		name += " " + m.MiddleName
	}
	return name
}

// MembershipAge is elapsed time since the member joined.
type MembershipAge struct {
	Years  int `json:"years"`
	Months int `json:"months"`
}

// DividendSummary is the latest dividend and patronage refund posting.
type DividendSummary struct {
	Year      int     `json:"year"`
	Dividend  float64 `json:"dividend"`
	Patronage float64 `json:"patronage"`
}
