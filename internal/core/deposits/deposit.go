package deposits

import "time"

// Account statuses.
const (
	StatusOpen    = "O"
	StatusDormant = "D"
	StatusClosed  = "C"
)

// Account is a savings or share-capital account from the deposit master.
type Account struct {
	AcctNo      string  `json:"acctNo"`
	MemberNo    string  `json:"memberNo"`
	AcctType    string  `json:"acctType"`
	Description string  `json:"description"`
	Balance     float64 `json:"balance"`
	Status      string  `json:"status"`
}

// LedgerEntry is one posting on a deposit subsidiary ledger.
type LedgerEntry struct {
	TrDate      time.Time `json:"trDate"`
	Reference   string    `json:"reference"`
	Particulars string    `json:"particulars"`
	Deposit     float64   `json:"deposit"`
	Withdrawal  float64   `json:"withdrawal"`
	Balance     float64   `json:"balance"`
}

// TimeDeposit is a certificate of time deposit.
type TimeDeposit struct {
	CertNo       string     `json:"certNo"`
	MemberNo     string     `json:"memberNo"`
	Amount       float64    `json:"amount"`
	InterestRate float64    `json:"interestRate"`
	TermDays     int        `json:"termDays"`
	IssueDate    *time.Time `json:"issueDate,omitempty"`
	MaturityDate *time.Time `json:"maturityDate,omitempty"`
	Status       string     `json:"status"`
}
