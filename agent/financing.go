package agent

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/carmesh/carmesh/core"
)

// FinancingAgent computes loan offers across the lender table for the
// discovery candidates, checks eligibility requirements and attaches
// applicable subsidies.
type FinancingAgent struct {
	BaseAgent
	lenders []core.Lender
}

// NewFinancingAgent creates a financing agent with the built-in lender
// table.
func NewFinancingAgent(optFns ...func(o *Options)) *FinancingAgent {
	opts := applyOptions(optFns)
	return &FinancingAgent{
		BaseAgent: newBase(
			core.RoleFinancing,
			"Computes EMIs across lenders, checks eligibility and applicable subsidies.",
			[]string{"loan offers", "eligibility checks", "subsidies"},
			opts,
		),
		lenders: lenderTable,
	}
}

// lenderTable is the built-in financing source list. Rates are annual
// percentages; MinDownPayment is a fraction of the car price.
var lenderTable = []core.Lender{
	{Name: "HDFC Bank", InterestRate: 8.5, TenureMonths: 84, MaxLoanAmount: 5000000, ProcessingFee: 3500, MinCreditScore: 750, MinDownPayment: 0.15},
	{Name: "ICICI Bank", InterestRate: 8.75, TenureMonths: 84, MaxLoanAmount: 4500000, ProcessingFee: 2500, MinCreditScore: 740, MinDownPayment: 0.15},
	{Name: "Axis Bank", InterestRate: 9.0, TenureMonths: 72, MaxLoanAmount: 4000000, ProcessingFee: 3000, MinCreditScore: 720, MinDownPayment: 0.20},
	{Name: "Tata Capital", InterestRate: 9.25, TenureMonths: 84, MaxLoanAmount: 3500000, ProcessingFee: 2000, MinCreditScore: 700, MinDownPayment: 0.15},
	{Name: "Mahindra Finance", InterestRate: 9.5, TenureMonths: 72, MaxLoanAmount: 3000000, ProcessingFee: 2500, MinCreditScore: 680, MinDownPayment: 0.20},
}

// Run implements core.Agent. Like valuation, it degrades to an empty offer
// set when no discovery candidates exist.
func (a *FinancingAgent) Run(ctx context.Context, rc *core.RunContext, proj core.InputProjection) (core.AgentResult, error) {
	candidates := rc.Candidates()
	if len(candidates) == 0 {
		payload := core.FinancingPayload{Recommendation: "No candidate cars available to finance."}
		return core.Degraded(payload, payload.Recommendation, "no discovery candidates"), nil
	}

	options := make([]core.CarFinancing, len(candidates))
	for i, car := range candidates {
		options[i] = a.finance(car)
	}

	payload := core.FinancingPayload{
		Options:        options,
		Recommendation: a.recommendation(options),
	}
	heuristic := a.heuristicSummary(options)
	prompt := a.prompt(proj.Query, options)
	return a.finish(ctx, payload, prompt, heuristic), nil
}

// finance builds the full offer sheet for one car.
func (a *FinancingAgent) finance(car core.Car) core.CarFinancing {
	var offers []core.LoanOption
	for _, lender := range a.lenders {
		offer, ok := computeLoan(car.Price, lender)
		if !ok {
			continue
		}
		offers = append(offers, offer)
	}
	// Cheapest monthly outgo first; equal EMIs keep lender table order.
	sort.SliceStable(offers, func(i, j int) bool { return offers[i].EMI < offers[j].EMI })

	return core.CarFinancing{
		CarID:       car.ID,
		CarName:     car.Name(),
		CarPrice:    car.Price,
		LoanOptions: offers,
		Eligibility: eligibility(offers),
		Subsidies:   Subsidies(car),
	}
}

// computeLoan derives one lender's offer. The down payment is the lender's
// minimum; the tenure is the lender's maximum. Returns false when the
// required loan exceeds the lender's ceiling.
func computeLoan(price int, lender core.Lender) (core.LoanOption, bool) {
	downPayment := int(math.Round(float64(price) * lender.MinDownPayment))
	principal := price - downPayment
	if principal <= 0 || principal > lender.MaxLoanAmount {
		return core.LoanOption{}, false
	}

	emi := EMI(principal, lender.InterestRate, lender.TenureMonths)
	total := emi * lender.TenureMonths
	return core.LoanOption{
		LenderName:    lender.Name,
		InterestRate:  lender.InterestRate,
		TenureMonths:  lender.TenureMonths,
		DownPayment:   downPayment,
		LoanAmount:    principal,
		EMI:           emi,
		TotalPayment:  total,
		TotalInterest: total - principal,
		ProcessingFee: lender.ProcessingFee,
	}, true
}

// EMI computes the equated monthly installment for a principal at an
// annual percentage rate over the given tenure.
func EMI(principal int, annualRate float64, tenureMonths int) int {
	if tenureMonths <= 0 {
		return 0
	}
	r := annualRate / 12 / 100
	if r == 0 {
		return int(math.Round(float64(principal) / float64(tenureMonths)))
	}
	p := float64(principal)
	factor := math.Pow(1+r, float64(tenureMonths))
	return int(math.Round(p * r * factor / (factor - 1)))
}

// eligibility summarizes the bar for the cheapest offer. Lenders commonly
// cap the EMI at 40% of verified monthly income.
func eligibility(offers []core.LoanOption) core.EligibilityCheck {
	if len(offers) == 0 {
		return core.EligibilityCheck{Status: "no offers available"}
	}
	best := offers[0]
	return core.EligibilityCheck{
		Status:                "likely eligible with verified income",
		RequiredMonthlyIncome: int(math.Round(float64(best.EMI) / 0.4)),
		CreditScoreRequired:   minCreditScore(best.LenderName),
		DocumentsNeeded: []string{
			"PAN card",
			"Aadhaar card",
			"Last 3 salary slips",
			"Last 6 months bank statements",
		},
	}
}

func minCreditScore(lenderName string) int {
	for _, l := range lenderTable {
		if l.Name == lenderName {
			return l.MinCreditScore
		}
	}
	return 0
}

// Subsidies returns the incentives applicable to a listing: central FAME II
// and Section 80EEB for EVs, state incentives by registration city, and the
// CNG retrofit benefit.
func Subsidies(car core.Car) []core.Subsidy {
	var subsidies []core.Subsidy
	switch car.FuelType {
	case "Electric":
		if car.Price < 1500000 {
			subsidies = append(subsidies, core.Subsidy{
				Name: "FAME II", Amount: 150000,
				Description: "Central subsidy adjusted by the dealer at purchase",
				Eligibility: "Electric vehicles priced under ₹15 lakh",
			})
		}
		switch car.Location {
		case "Delhi":
			subsidies = append(subsidies, core.Subsidy{
				Name: "Delhi EV Policy", Amount: 30000,
				Description: "State subsidy plus road tax and registration waiver",
				Eligibility: "Electric vehicles registered in Delhi",
			})
		case "Mumbai", "Pune":
			subsidies = append(subsidies, core.Subsidy{
				Name: "Maharashtra EV Policy", Amount: 25000,
				Description: "State incentive for electric vehicles",
				Eligibility: "Electric vehicles registered in Maharashtra",
			})
		}
		subsidies = append(subsidies, core.Subsidy{
			Name: "Section 80EEB", Amount: 150000,
			Description: "Income tax deduction on EV loan interest",
			Eligibility: "First-time EV buyers with an active loan",
		})
	case "CNG":
		subsidies = append(subsidies, core.Subsidy{
			Name: "CNG Incentive", Amount: 20000,
			Description: "State incentive for factory-fitted CNG vehicles",
			Eligibility: "Factory-fitted CNG vehicles",
		})
	}
	return subsidies
}

func (a *FinancingAgent) recommendation(options []core.CarFinancing) string {
	best := options[0]
	for _, o := range options[1:] {
		if len(o.LoanOptions) == 0 {
			continue
		}
		if len(best.LoanOptions) == 0 || o.LoanOptions[0].EMI < best.LoanOptions[0].EMI {
			best = o
		}
	}
	if len(best.LoanOptions) == 0 {
		return "No lender in the table can finance these candidates."
	}
	offer := best.LoanOptions[0]
	return fmt.Sprintf("Lowest EMI: %s via %s at ₹%d/month (%.2f%%, %d months).",
		best.CarName, offer.LenderName, offer.EMI, offer.InterestRate, offer.TenureMonths)
}

func (a *FinancingAgent) heuristicSummary(options []core.CarFinancing) string {
	parts := make([]string, 0, len(options))
	for _, o := range options {
		if len(o.LoanOptions) == 0 {
			continue
		}
		offer := o.LoanOptions[0]
		part := fmt.Sprintf("%s from ₹%d/month (%s)", o.CarName, offer.EMI, offer.LenderName)
		if len(o.Subsidies) > 0 {
			total := 0
			for _, s := range o.Subsidies {
				total += s.Amount
			}
			part += fmt.Sprintf(" with ₹%s in incentives", formatRupees(total))
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return "No financing offers available for these candidates."
	}
	return "Financing: " + strings.Join(parts, "; ") + "."
}

func (a *FinancingAgent) prompt(query string, options []core.CarFinancing) string {
	var sb strings.Builder
	sb.WriteString("The user asked: " + query + "\nLoan offers:\n")
	for _, o := range options {
		if len(o.LoanOptions) == 0 {
			continue
		}
		offer := o.LoanOptions[0]
		fmt.Fprintf(&sb, "- %s: best EMI ₹%d/month via %s at %.2f%% for %d months, down payment ₹%s\n",
			o.CarName, offer.EMI, offer.LenderName, offer.InterestRate, offer.TenureMonths,
			formatRupees(offer.DownPayment))
		for _, s := range o.Subsidies {
			fmt.Fprintf(&sb, "  subsidy: %s ₹%s\n", s.Name, formatRupees(s.Amount))
		}
	}
	sb.WriteString("Summarize the most affordable financing path for the user.")
	return sb.String()
}
