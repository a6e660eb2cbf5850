package credit

import "time"

// User is a credit console login, granted per member by the credit
// department. The mobile number receives login PINs.
type User struct {
	Username string `json:"username"`
	MemberNo string `json:"memberNo"`
	MobileNo string `json:"-"`
	Active   bool   `json:"active"`
}

// OTP is a one-time PIN issued for a credit console login.
type OTP struct {
	Username  string
	PinHash   string
	ExpiresAt time.Time
	Consumed  bool
}

// Record is one posting on a member's credit history.
type Record struct {
	TrDate    time.Time `json:"trDate"`
	StoreCode string    `json:"storeCode"`
	StoreName string    `json:"storeName"`
	Reference string    `json:"reference"`
	Charge    float64   `json:"charge"`
	Payment   float64   `json:"payment"`
	Balance   float64   `json:"balance"`
}

// Store is a partner store accepting coop credit.
type Store struct {
	StoreCode string `json:"storeCode"`
	StoreName string `json:"storeName"`
	Active    bool   `json:"active"`
}

// OTPChallenge is returned after an OTP is issued. The mobile number is
// masked before it leaves the service.
type OTPChallenge struct {
	Username     string `json:"username"`
	MaskedMobile string `json:"maskedMobile"`
	TTLSeconds   int    `json:"ttlSeconds"`
}
