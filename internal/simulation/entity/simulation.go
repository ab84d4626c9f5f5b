package entity

import "time"

// Simulation owns every actor exclusively. Nothing here is safe for
// concurrent use; the simulation actor serializes access.
type Simulation struct {
	Turn             int64
	Citizens         []Citizen
	Companies        []Company
	Banks            []Bank
	Government       Government
	UtilityProviders []UtilityProvider

	rules []Rule
	dirty bool
}

// NewSimulation builds the seed roster at turn 0. With no rules the
// default utility fee rule is used.
func NewSimulation(rules ...Rule) *Simulation {
	if len(rules) == 0 {
		rules = DefaultRules(DefaultUtilityFee)
	}
	return &Simulation{
		Citizens: []Citizen{
			NewCitizen("Mario"),
			NewCitizen("Giovanni"),
		},
		Companies: []Company{
			NewCompany("TechCorp"),
			NewCompany("FoodInc"),
		},
		Banks: []Bank{
			NewBank("Banca Centrale"),
		},
		Government: NewGovernment("Stato"),
		UtilityProviders: []UtilityProvider{
			NewUtilityProvider("EnergyPlus"),
		},
		rules: append([]Rule(nil), rules...),
	}
}

// AdvanceTurn increments the turn and applies every rule once.
func (s *Simulation) AdvanceTurn() {
	s.Turn++
	for _, r := range s.rules {
		r.Apply(s)
	}
	s.dirty = true
}

func (s *Simulation) Rules() []string {
	names := make([]string, 0, len(s.rules))
	for _, r := range s.rules {
		names = append(names, r.Name())
	}
	return names
}

func (s *Simulation) Dirty() bool {
	return s.dirty
}

func (s *Simulation) ClearDirty() {
	s.dirty = false
}

// CitizenMoney is the sum of all citizen balances.
func (s *Simulation) CitizenMoney() int64 {
	var total int64
	for _, c := range s.Citizens {
		total += c.Money
	}
	return total
}

// BuildTurnRecord captures the state right after a turn for the archive.
// It reports false when nothing changed since the last capture.
func (s *Simulation) BuildTurnRecord(id int64, now time.Time) (*TurnRecord, bool) {
	if s == nil || !s.dirty {
		return nil, false
	}
	rec := &TurnRecord{
		ID:           id,
		Version:      SnapshotVersion,
		Turn:         s.Turn,
		Snapshot:     s.Snapshot(),
		CitizenMoney: s.CitizenMoney(),
		CreatedAt:    now,
	}
	if len(s.UtilityProviders) > 0 {
		rec.UtilityCapital = s.UtilityProviders[0].Capital
	}
	s.dirty = false
	return rec, true
}
