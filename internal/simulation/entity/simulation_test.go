package entity

import (
	"reflect"
	"testing"
	"time"
)

func citizenMoney(s Snapshot, name string) int64 {
	for _, c := range s.Citizens {
		if c.Name == name {
			return c.Money
		}
	}
	return -1
}

func TestNewSimulation_SeedRoster(t *testing.T) {
	s := NewSimulation().Snapshot()

	if s.Turn != 0 {
		t.Fatalf("turno=%d", s.Turn)
	}
	if citizenMoney(s, "Mario") != 1000 || citizenMoney(s, "Giovanni") != 1000 {
		t.Fatalf("citizens=%+v", s.Citizens)
	}
	if s.UtilityProviders[0].Name != "EnergyPlus" || s.UtilityProviders[0].Capital != 50000 {
		t.Fatalf("providers=%+v", s.UtilityProviders)
	}
	if s.Government != (GovernmentView{Name: "Stato", Treasury: 1000000}) {
		t.Fatalf("government=%+v", s.Government)
	}
	if s.Banks[0] != (BankView{Name: "Banca Centrale", Capital: 100000}) {
		t.Fatalf("banks=%+v", s.Banks)
	}
	for _, c := range s.Companies {
		if c.Capital != 10000 || c.Inventory == nil || len(c.Inventory) != 0 {
			t.Fatalf("company=%+v", c)
		}
	}
}

func TestAdvanceTurn_Scenarios(t *testing.T) {
	cases := []struct {
		turns    int
		citizen  int64
		provider int64
	}{
		{turns: 1, citizen: 950, provider: 50100},
		{turns: 3, citizen: 850, provider: 50300},
	}
	for _, tc := range cases {
		sim := NewSimulation()
		for i := 0; i < tc.turns; i++ {
			sim.AdvanceTurn()
		}
		s := sim.Snapshot()
		if s.Turn != int64(tc.turns) {
			t.Fatalf("turns=%d turno=%d", tc.turns, s.Turn)
		}
		if citizenMoney(s, "Mario") != tc.citizen || citizenMoney(s, "Giovanni") != tc.citizen {
			t.Fatalf("turns=%d citizens=%+v", tc.turns, s.Citizens)
		}
		if s.UtilityProviders[0].Capital != tc.provider {
			t.Fatalf("turns=%d provider=%d", tc.turns, s.UtilityProviders[0].Capital)
		}
	}
}

func TestAdvanceTurn_ConservesMoney(t *testing.T) {
	sim := NewSimulation()
	sim.Citizens = append(sim.Citizens, NewCitizen("Lucia"))
	n := int64(len(sim.Citizens))

	for i := 0; i < 40; i++ {
		beforeCitizens := sim.CitizenMoney()
		beforeProvider := sim.UtilityProviders[0].Capital

		sim.AdvanceTurn()

		if d := sim.CitizenMoney() - beforeCitizens; d != -DefaultUtilityFee*n {
			t.Fatalf("turn %d citizen delta=%d", sim.Turn, d)
		}
		if d := sim.UtilityProviders[0].Capital - beforeProvider; d != DefaultUtilityFee*n {
			t.Fatalf("turn %d provider delta=%d", sim.Turn, d)
		}
	}
	// 40 turns at 50 drive every citizen below zero; that is allowed
	if sim.Citizens[0].Money != 1000-40*50 {
		t.Fatalf("money=%d", sim.Citizens[0].Money)
	}
}

func TestAdvanceTurn_OnlyFirstProviderAndCitizensChange(t *testing.T) {
	sim := NewSimulation()
	sim.UtilityProviders = append(sim.UtilityProviders, NewUtilityProvider("AcquaPura"))
	before := sim.Snapshot()

	for i := 0; i < 10; i++ {
		sim.AdvanceTurn()
	}
	after := sim.Snapshot()

	if !reflect.DeepEqual(before.Banks, after.Banks) {
		t.Fatalf("banks changed: %+v -> %+v", before.Banks, after.Banks)
	}
	if before.Government != after.Government {
		t.Fatalf("government changed: %+v -> %+v", before.Government, after.Government)
	}
	if !reflect.DeepEqual(before.Companies, after.Companies) {
		t.Fatalf("companies changed")
	}
	if before.UtilityProviders[1] != after.UtilityProviders[1] {
		t.Fatalf("second provider changed: %+v", after.UtilityProviders[1])
	}
}

func TestAdvanceTurn_NoProviderChargesNobody(t *testing.T) {
	sim := NewSimulation()
	sim.UtilityProviders = nil
	sim.AdvanceTurn()

	if sim.Turn != 1 {
		t.Fatalf("turn=%d", sim.Turn)
	}
	if sim.CitizenMoney() != 2000 {
		t.Fatalf("citizen money=%d", sim.CitizenMoney())
	}
}

func TestSnapshot_OrderStable(t *testing.T) {
	sim := NewSimulation()
	for i := 0; i < 7; i++ {
		sim.AdvanceTurn()
	}
	s := sim.Snapshot()

	var names []string
	for _, c := range s.Citizens {
		names = append(names, c.Name)
	}
	for _, c := range s.Companies {
		names = append(names, c.Name)
	}
	want := []string{"Mario", "Giovanni", "TechCorp", "FoodInc"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("order=%v want=%v", names, want)
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	sim := NewSimulation()
	s := sim.Snapshot()
	s.Citizens[0].Money = 0
	s.Companies[0].Inventory["grano"] = 5

	if sim.Citizens[0].Money != 1000 {
		t.Fatalf("snapshot aliases citizens")
	}
	if len(sim.Companies[0].Inventory) != 0 {
		t.Fatalf("snapshot aliases inventory")
	}
}

type countingRule struct{ calls *[]string }

func (r countingRule) Name() string { return "counting" }
func (r countingRule) Apply(_ *Simulation) { *r.calls = append(*r.calls, "counting") }

func TestNewSimulation_CustomRulesRunInOrder(t *testing.T) {
	var calls []string
	sim := NewSimulation(countingRule{calls: &calls}, UtilityFeeRule{Fee: 10})
	sim.AdvanceTurn()

	if len(calls) != 1 {
		t.Fatalf("calls=%v", calls)
	}
	if sim.Citizens[0].Money != 990 {
		t.Fatalf("money=%d", sim.Citizens[0].Money)
	}
	if got := sim.Rules(); !reflect.DeepEqual(got, []string{"counting", "utility_fee"}) {
		t.Fatalf("rules=%v", got)
	}
}

func TestBuildTurnRecord_OnlyWhenDirty(t *testing.T) {
	sim := NewSimulation()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if _, ok := sim.BuildTurnRecord(1, now); ok {
		t.Fatalf("fresh simulation should not produce a record")
	}

	sim.AdvanceTurn()
	rec, ok := sim.BuildTurnRecord(2, now)
	if !ok {
		t.Fatalf("expected a record after advance")
	}
	if rec.ID != 2 || rec.Turn != 1 || rec.Version != SnapshotVersion {
		t.Fatalf("record=%+v", rec)
	}
	if rec.CitizenMoney != 1900 || rec.UtilityCapital != 50100 {
		t.Fatalf("totals=%d/%d", rec.CitizenMoney, rec.UtilityCapital)
	}
	if sim.Dirty() {
		t.Fatalf("building a record should clear dirty")
	}
	if _, ok := sim.BuildTurnRecord(3, now); ok {
		t.Fatalf("second build without advance should be empty")
	}
}
