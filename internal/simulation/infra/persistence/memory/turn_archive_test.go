package memory

import (
	"EconSim/internal/simulation/entity"
	"context"
	"testing"
)

func records(turns ...int64) []*entity.TurnRecord {
	out := make([]*entity.TurnRecord, 0, len(turns))
	for _, t := range turns {
		out = append(out, &entity.TurnRecord{ID: t * 10, Turn: t})
	}
	return out
}

func TestTurnArchive_RecentNewestFirst(t *testing.T) {
	a := NewTurnArchive(0)
	ctx := context.Background()
	if err := a.Save(ctx, records(1, 2, 3)); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := a.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 || got[0].Turn != 3 || got[1].Turn != 2 {
		t.Fatalf("got=%+v", got)
	}

	all, _ := a.Recent(ctx, 100)
	if len(all) != 3 {
		t.Fatalf("len=%d", len(all))
	}
}

func TestTurnArchive_EvictsOldest(t *testing.T) {
	a := NewTurnArchive(2)
	ctx := context.Background()
	_ = a.Save(ctx, records(1, 2))
	_ = a.Save(ctx, records(3))

	if a.Len() != 2 {
		t.Fatalf("len=%d", a.Len())
	}
	got, _ := a.Recent(ctx, 10)
	if got[0].Turn != 3 || got[1].Turn != 2 {
		t.Fatalf("got=%+v", got)
	}
}

func TestTurnArchive_ReturnsCopies(t *testing.T) {
	a := NewTurnArchive(0)
	ctx := context.Background()
	in := records(1)
	_ = a.Save(ctx, in)
	in[0].Turn = 99

	got, _ := a.Recent(ctx, 1)
	got[0].Turn = 42
	again, _ := a.Recent(ctx, 1)
	if again[0].Turn != 1 {
		t.Fatalf("archive shares memory with callers, turn=%d", again[0].Turn)
	}
}

func TestTurnArchive_ZeroLimit(t *testing.T) {
	a := NewTurnArchive(0)
	_ = a.Save(context.Background(), records(1))
	got, err := a.Recent(context.Background(), 0)
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("got=%v err=%v", got, err)
	}
}
