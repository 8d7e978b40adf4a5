package board

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"participant_board/internal/roster"
	"participant_board/internal/view"
)

var pricing = roster.Pricing{
	{Name: "Jersey", Price: roster.Pesos(500)},
	{Name: "Shorts", Price: roster.Pesos(300)},
}

func sampleRecords() []roster.Record {
	return []roster.Record{
		{DisplayName: "John Doe", JerseyName: "DOE", Nickname: "JD", No: "7", Size: "M",
			Options: [roster.OptionCount]string{"true", "true"}, Payment: "Paid"},
		{DisplayName: "Jane Smith", JerseyName: "SMITH", Nickname: "J", No: "11", Size: "S",
			Options: [roster.OptionCount]string{"true", ""}},
	}
}

func TestReplaceIsIdempotent(t *testing.T) {
	s := NewState(pricing)
	now := time.Now()

	first := s.Replace(sampleRecords(), now)
	rowsFirst := s.Snapshot().Rows(view.NewController())
	second := s.Replace(sampleRecords(), now.Add(5*time.Second))
	rowsSecond := s.Snapshot().Rows(view.NewController())

	if first != second {
		t.Errorf("Expected identical summaries, got %+v and %+v", first, second)
	}
	if !reflect.DeepEqual(rowsFirst, rowsSecond) {
		t.Errorf("Expected identical rows, got %+v and %+v", rowsFirst, rowsSecond)
	}
}

func TestFailureLeavesStateUntouched(t *testing.T) {
	s := NewState(pricing)
	s.Replace(sampleRecords(), time.Now())
	before := s.Snapshot()

	s.RecordFailure(errors.New("status 500"), time.Now())
	after := s.Snapshot()

	if before.Summary != after.Summary {
		t.Errorf("Expected summary to survive failure, got %+v", after.Summary)
	}
	if !reflect.DeepEqual(before.Rows(view.NewController()), after.Rows(view.NewController())) {
		t.Error("Expected rows to survive failure")
	}
	if after.Sync.Failures != 1 || after.Sync.LastError != "status 500" {
		t.Errorf("Unexpected sync status %+v", after.Sync)
	}
}

func TestFiltersDoNotAffectSummary(t *testing.T) {
	s := NewState(pricing)
	summary := s.Replace(sampleRecords(), time.Now())

	ctrl := view.NewController()
	ctrl.Confirm("Jane")
	ctrl.SetStatus(view.ShowUnpaid)
	snap := s.Snapshot()

	if snap.Summary != summary {
		t.Errorf("Expected summary unaffected by filters, got %+v", snap.Summary)
	}
	rows := snap.Rows(ctrl)
	if len(rows) != 1 || rows[0].DisplayName != "Jane Smith" || !rows[0].Visible {
		t.Errorf("Unexpected rows %+v", rows)
	}
	if all := s.Snapshot().Rows(view.NewController()); len(all) != 2 {
		t.Errorf("Expected filters of one render not to leak into the next, got %d rows", len(all))
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewState(pricing)
	s.Replace(sampleRecords(), time.Now())

	snap := s.Snapshot()
	snap.Records[0].DisplayName = "Changed"

	if s.Snapshot().Records[0].DisplayName != "John Doe" {
		t.Error("Expected snapshot mutation not to leak into state")
	}
}
