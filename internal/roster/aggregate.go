package roster

// Option is a priced add-on selected through a boolean-ish column
type Option struct {
	Name  string
	Price Amount
}

// Pricing lists the options in column order
type Pricing [OptionCount]Option

// Cost returns the sum of the prices of the options selected on r
func (p Pricing) Cost(r Record) Amount {
	var total Amount
	for i := range p {
		if r.Selected(i) {
			total += p[i].Price
		}
	}
	return total
}

// Summary holds the aggregates derived from one record set
type Summary struct {
	ValidCount   int
	PaidCount    int
	PartialCount int
	UnpaidCount  int

	CollectedAmount   Amount
	PotentialAmount   Amount
	OutstandingAmount Amount

	// OptionCounts counts valid records selecting each option
	OptionCounts [OptionCount]int
}

// Aggregate derives the summary of a record set. Invalid records are ignored.
// Paid records contribute their full cost to the collected amount, partial
// records contribute their partial amount capped at their cost.
func Aggregate(records []Record, pricing Pricing) Summary {
	var s Summary
	for _, r := range records {
		if !r.IsValid() {
			continue
		}
		s.ValidCount++

		cost := pricing.Cost(r)
		s.PotentialAmount += cost
		for i := range s.OptionCounts {
			if r.Selected(i) {
				s.OptionCounts[i]++
			}
		}

		switch r.State() {
		case Paid:
			s.PaidCount++
			s.CollectedAmount += cost
		case Partial:
			s.PartialCount++
			s.CollectedAmount += min(r.PartialAmount, cost)
		default:
			s.UnpaidCount++
		}
	}
	s.OutstandingAmount = s.PotentialAmount - s.CollectedAmount
	return s
}
