package entity

// DefaultUtilityFee is what each citizen pays per turn.
const DefaultUtilityFee int64 = 50

// Rule is one per-turn update. Rules run in list order after the turn
// counter has been incremented.
type Rule interface {
	Name() string
	Apply(s *Simulation)
}

// UtilityFeeRule charges every citizen Fee and credits the first utility
// provider with the same amount, so money is conserved. Balances may go
// negative. Without a provider nobody is charged.
type UtilityFeeRule struct {
	Fee int64
}

func (r UtilityFeeRule) Name() string {
	return "utility_fee"
}

func (r UtilityFeeRule) Apply(s *Simulation) {
	if len(s.UtilityProviders) == 0 {
		return
	}
	provider := &s.UtilityProviders[0]
	for i := range s.Citizens {
		s.Citizens[i].Money -= r.Fee
		provider.Capital += r.Fee
	}
}

// DefaultRules is the rule list a fresh simulation runs.
func DefaultRules(utilityFee int64) []Rule {
	if utilityFee <= 0 {
		utilityFee = DefaultUtilityFee
	}
	return []Rule{UtilityFeeRule{Fee: utilityFee}}
}
