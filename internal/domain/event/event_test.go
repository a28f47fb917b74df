package event

import (
	"encoding/json"
	"testing"
)

func TestEventID(t *testing.T) {
	evt := Event{BlockHeight: 120, IndexInBlock: 3}
	if evt.ID() != "120-3" {
		t.Fatalf("ID = %q, want %q", evt.ID(), "120-3")
	}
}

func TestEventAfter(t *testing.T) {
	tests := []struct {
		name  string
		evt   Event
		block uint64
		index uint32
		want  bool
	}{
		{"later block", Event{BlockHeight: 10, IndexInBlock: 0}, 9, 5, true},
		{"earlier block", Event{BlockHeight: 8, IndexInBlock: 9}, 9, 0, false},
		{"same block later index", Event{BlockHeight: 9, IndexInBlock: 3}, 9, 2, true},
		{"same block same index", Event{BlockHeight: 9, IndexInBlock: 2}, 9, 2, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.evt.After(tc.block, tc.index); got != tc.want {
				t.Fatalf("After(%d, %d) = %v, want %v", tc.block, tc.index, got, tc.want)
			}
		})
	}
}

func TestEventValidate(t *testing.T) {
	valid := Event{Name: NameChannelCreated, Params: json.RawMessage(`{}`)}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}
	if err := (Event{Params: json.RawMessage(`{}`)}).Validate(); err == nil {
		t.Fatal("expected error for missing name")
	}
	if err := (Event{Name: NameChannelCreated}).Validate(); err == nil {
		t.Fatal("expected error for missing params")
	}
}
