package loans

import "time"

// Loan statuses as carried in the loan master.
const (
	StatusCurrent = "C"
	StatusPaid    = "P"
	StatusOverdue = "O"
)

// Loan is a row from the loan master.
type Loan struct {
	LoanNo       string     `json:"loanNo"`
	MemberNo     string     `json:"memberNo"`
	LoanType     string     `json:"loanType"`
	Description  string     `json:"description"`
	Principal    float64    `json:"principal"`
	Balance      float64    `json:"balance"`
	InterestRate float64    `json:"interestRate"`
	TermMonths   int        `json:"termMonths"`
	DateGranted  *time.Time `json:"dateGranted,omitempty"`
	MaturityDate *time.Time `json:"maturityDate,omitempty"`
	Status       string     `json:"status"`
}

// Application statuses.
const (
	AppPending  = "P"
	AppApproved = "A"
	AppReleased = "R"
	AppDenied   = "D"
)

// LoanType is a loan product. Only online products appear on the
// application form.
type LoanType struct {
	LoanType    string `json:"loanType"`
	Description string `json:"description"`
	Online      bool   `json:"online"`
}

// Application is a loan application filed through the portal.
type Application struct {
	AppNo      int64     `json:"appNo"`
	MemberNo   string    `json:"memberNo"`
	LoanType   string    `json:"loanType"`
	Amount     float64   `json:"amount"`
	TermMonths int       `json:"termMonths"`
	Status     string    `json:"status"`
	AppliedAt  time.Time `json:"appliedAt"`
}

// ApplyRequest carries a new loan application.
type ApplyRequest struct {
	MemberNo   string  `json:"memberNo"`
	LoanType   string  `json:"loanType"`
	Amount     float64 `json:"amount"`
	TermMonths int     `json:"termMonths"`
}

// LedgerEntry is one posting on a loan subsidiary ledger.
type LedgerEntry struct {
	TrDate      time.Time `json:"trDate"`
	Reference   string    `json:"reference"`
	Particulars string    `json:"particulars"`
	Debit       float64   `json:"debit"`
	Credit      float64   `json:"credit"`
	Balance     float64   `json:"balance"`
}

// Amortization is one scheduled installment.
type Amortization struct {
	DueDate   time.Time `json:"dueDate"`
	Principal float64   `json:"principal"`
	Interest  float64   `json:"interest"`
	Total     float64   `json:"total"`
	Paid      bool      `json:"paid"`
}
