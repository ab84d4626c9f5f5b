package app

import (
	"EconSim/internal/simulation/entity"
	"context"
	"errors"
	"testing"
)

type stubRuntime struct {
	sim *entity.Simulation
}

func (r *stubRuntime) State(context.Context) (entity.Snapshot, error) {
	return r.sim.Snapshot(), nil
}

func (r *stubRuntime) AdvanceTurn(context.Context) (entity.Snapshot, error) {
	r.sim.AdvanceTurn()
	return r.sim.Snapshot(), nil
}

type stubArchive struct {
	records  []*entity.TurnRecord
	err      error
	gotLimit int
}

func (a *stubArchive) Save(context.Context, []*entity.TurnRecord) error { return nil }

func (a *stubArchive) Recent(_ context.Context, limit int) ([]*entity.TurnRecord, error) {
	a.gotLimit = limit
	return a.records, a.err
}

func TestParseHistoryLimit(t *testing.T) {
	cases := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"", DefaultHistoryLimit, false},
		{" 5 ", 5, false},
		{"1000", MaxHistoryLimit, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseHistoryLimit(tc.raw)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Fatalf("raw=%q got=(%d,%v)", tc.raw, got, err)
		}
		if err != nil {
			if !errors.Is(err, ErrReqParam) || !IsBizError(err) {
				t.Fatalf("raw=%q err=%v should be a req param biz error", tc.raw, err)
			}
			if GetErrorReasonCode(err) != ReasonHistoryLimit.Code {
				t.Fatalf("reason=%q", GetErrorReasonCode(err))
			}
		}
	}
}

func TestSimulationService_StateAndAdvance(t *testing.T) {
	svc := NewSimulationService(&stubRuntime{sim: entity.NewSimulation()}, nil)

	s, err := svc.AdvanceTurn(context.Background())
	if err != nil || s.Turn != 1 {
		t.Fatalf("advance: turn=%d err=%v", s.Turn, err)
	}
	s, err = svc.State(context.Background())
	if err != nil || s.Turn != 1 {
		t.Fatalf("state: turn=%d err=%v", s.Turn, err)
	}
}

func TestSimulationService_History(t *testing.T) {
	archive := &stubArchive{}
	svc := NewSimulationService(&stubRuntime{sim: entity.NewSimulation()}, archive)

	records, err := svc.History(context.Background(), "")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("empty history should be a non-nil empty slice, got %v", records)
	}
	if archive.gotLimit != DefaultHistoryLimit {
		t.Fatalf("limit=%d", archive.gotLimit)
	}
}

func TestSimulationService_HistoryArchiveFailure(t *testing.T) {
	archive := &stubArchive{err: errors.New("connection refused")}
	svc := NewSimulationService(&stubRuntime{sim: entity.NewSimulation()}, archive)

	_, err := svc.History(context.Background(), "3")
	if !errors.Is(err, ErrArchiveUnavailable) {
		t.Fatalf("err=%v", err)
	}
	if IsBizError(err) {
		t.Fatalf("archive failure is a system error")
	}
}
