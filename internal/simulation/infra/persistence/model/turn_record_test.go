package model

import (
	"EconSim/internal/simulation/entity"
	"strings"
	"testing"
	"time"
)

func sampleRecord(t *testing.T) *entity.TurnRecord {
	t.Helper()
	sim := entity.NewSimulation()
	sim.AdvanceTurn()
	rec, ok := sim.BuildTurnRecord(7, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	if !ok {
		t.Fatalf("advanced simulation should build a record")
	}
	return rec
}

func TestTurnRecordRow_RoundTrip(t *testing.T) {
	rec := sampleRecord(t)
	row, err := TurnRecordToRow(rec)
	if err != nil {
		t.Fatalf("to row: %v", err)
	}
	if !strings.Contains(row.Snapshot, `"fornitori_utenze":[{"nome":"EnergyPlus","capitale":50100}]`) {
		t.Fatalf("snapshot column should use the wire keys, got %s", row.Snapshot)
	}

	back, err := TurnRecordFromRow(row)
	if err != nil {
		t.Fatalf("from row: %v", err)
	}
	if back.ID != 7 || back.Turn != 1 || back.Snapshot.Citizens[0].Money != 950 {
		t.Fatalf("back=%+v", back)
	}
	if back.Snapshot.Companies[0].Inventory == nil {
		t.Fatalf("inventory must decode as an empty map")
	}
}

func TestTurnRecordFromRow_BadJSON(t *testing.T) {
	if _, err := TurnRecordFromRow(TurnRecordRow{Snapshot: "{"}); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestTurnRecordFromDoc_RestoresEmptyInventory(t *testing.T) {
	doc := TurnRecordToDoc(sampleRecord(t))
	for i := range doc.Snapshot.Companies {
		doc.Snapshot.Companies[i].Inventory = nil
	}
	back := TurnRecordFromDoc(doc)
	for _, c := range back.Snapshot.Companies {
		if c.Inventory == nil {
			t.Fatalf("company %s inventory is nil", c.Name)
		}
	}
	if back.UtilityCapital != 50100 || back.CitizenMoney != 1900 {
		t.Fatalf("totals=%d/%d", back.UtilityCapital, back.CitizenMoney)
	}
}
