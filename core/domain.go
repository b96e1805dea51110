package core

// Domain records exchanged between agents and surfaced in envelope payloads.
// Field names follow the wire shape consumed by presentation collaborators.

// Car is one vehicle listing as held by a ListingStore.
type Car struct {
	ID       string   `json:"id"`
	Make     string   `json:"make"`
	Model    string   `json:"model"`
	Year     int      `json:"year"`
	Price    int      `json:"price"` // list price in rupees
	FuelType string   `json:"fuel_type"`
	Location string   `json:"location"`
	Rating   float64  `json:"rating"`
	Features []string `json:"features,omitempty"`
}

// Name returns the display name ("Tata Nexon EV").
func (c Car) Name() string { return c.Make + " " + c.Model }

// SearchCriteria is the structured filter the discovery agent derives from
// free text. Zero values mean "no constraint".
type SearchCriteria struct {
	MaxPrice int    `json:"max_price,omitempty"`
	FuelType string `json:"fuel_type,omitempty"`
	Location string `json:"location,omitempty"`
	Make     string `json:"make,omitempty"`
	MinYear  int    `json:"min_year,omitempty"`
}

// IsZero reports whether no constraint is set.
func (sc SearchCriteria) IsZero() bool {
	return sc.MaxPrice == 0 && sc.FuelType == "" && sc.Location == "" && sc.Make == "" && sc.MinYear == 0
}

// Snippet is one scored retrieval from the knowledge store.
type Snippet struct {
	ID    string  `json:"id"`
	Topic string  `json:"topic,omitempty"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// MarketFactor is a single named adjustment applied to a car's list price.
type MarketFactor struct {
	Name        string  `json:"name"`
	Impact      float64 `json:"impact"` // fractional, e.g. 0.05 = +5%
	Description string  `json:"description"`
}

// DealScore grades a listing against its market-adjusted value.
type DealScore struct {
	Score       string `json:"score"` // Excellent, Good, Fair, Overpriced
	Description string `json:"description"`
}

// PriceAnalysis carries the per-car valuation breakdown.
type PriceAnalysis struct {
	ListPrice       int            `json:"list_price"`
	MarketPrice     int            `json:"market_price"`
	Factors         []MarketFactor `json:"factors"`
	VariancePercent float64        `json:"variance_percent"`
}

// CarValuation is the valuation agent's result for one candidate.
type CarValuation struct {
	CarID          string        `json:"car_id"`
	CarName        string        `json:"car_name"`
	MarketValue    int           `json:"market_value"`
	Analysis       PriceAnalysis `json:"price_analysis"`
	DealScore      DealScore     `json:"deal_score"`
	Recommendation string        `json:"recommendation"`
}

// Lender describes one financing source in the lender table.
type Lender struct {
	Name           string  `json:"name"`
	InterestRate   float64 `json:"interest_rate"` // annual percent
	TenureMonths   int     `json:"tenure_months"`
	MaxLoanAmount  int     `json:"max_loan_amount"`
	ProcessingFee  int     `json:"processing_fee"`
	MinCreditScore int     `json:"min_credit_score"`
	MinDownPayment float64 `json:"min_down_payment"` // fraction of price
}

// LoanOption is one computed offer for a specific car and lender.
type LoanOption struct {
	LenderName    string  `json:"lender_name"`
	InterestRate  float64 `json:"interest_rate"`
	TenureMonths  int     `json:"tenure_months"`
	DownPayment   int     `json:"down_payment"`
	LoanAmount    int     `json:"loan_amount"`
	EMI           int     `json:"emi"`
	TotalPayment  int     `json:"total_payment"`
	TotalInterest int     `json:"total_interest"`
	ProcessingFee int     `json:"processing_fee"`
}

// Subsidy is a government or tax incentive applicable to a listing.
type Subsidy struct {
	Name        string `json:"name"`
	Amount      int    `json:"amount"`
	Description string `json:"description"`
	Eligibility string `json:"eligibility"`
}

// EligibilityCheck summarizes the income and documentation bar for a loan.
type EligibilityCheck struct {
	Status                string   `json:"status"`
	RequiredMonthlyIncome int      `json:"required_monthly_income"`
	CreditScoreRequired   int      `json:"credit_score_required"`
	DocumentsNeeded       []string `json:"documents_needed"`
}

// CarFinancing is the financing agent's result for one candidate.
type CarFinancing struct {
	CarID       string           `json:"car_id"`
	CarName     string           `json:"car_name"`
	CarPrice    int              `json:"car_price"`
	LoanOptions []LoanOption     `json:"loan_options"`
	Eligibility EligibilityCheck `json:"eligibility_check"`
	Subsidies   []Subsidy        `json:"subsidies,omitempty"`
}

// DocumentCheck is one item in the document agent's verification checklist.
type DocumentCheck struct {
	Document string `json:"document"`
	Status   string `json:"status"` // required, recommended
	Note     string `json:"note,omitempty"`
}

// AgentCapability describes a registered agent for capability listings.
type AgentCapability struct {
	Role         Role     `json:"role"`
	Description  string   `json:"description"`
	Capabilities []string `json:"capabilities"`
}
