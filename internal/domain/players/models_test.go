package players

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/preston-bernstein/team-ledger/internal/domain"
)

func TestPositionsDecodeNormalizesMalformedValues(t *testing.T) {
	cases := []string{
		`{"id":"p1"}`,
		`{"id":"p1","positions":null}`,
		`{"id":"p1","positions":"PIVOT"}`,
		`{"id":"p1","positions":{"a":1}}`,
		`{"id":"p1","positions":[1,2]}`,
	}
	for _, doc := range cases {
		var p Player
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			t.Fatalf("expected %s to decode, got %v", doc, err)
		}
		p.Normalize()
		if p.Positions == nil || len(p.Positions) != 0 {
			t.Fatalf("expected empty positions for %s, got %#v", doc, p.Positions)
		}
	}
}

func TestPositionsEncodeNeverNull(t *testing.T) {
	data, err := json.Marshal(Player{ID: "p1"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var raw map[string]json.RawMessage
	_ = json.Unmarshal(data, &raw)
	if string(raw["positions"]) != "[]" {
		t.Fatalf("expected positions to encode as [], got %s", raw["positions"])
	}
}

func TestNormalizeDropsUnknownAndDuplicates(t *testing.T) {
	got := Positions{Pivot, "STRIKER", Pivot, Goalkeeper}.Normalize()
	if len(got) != 2 || got[0] != Pivot || got[1] != Goalkeeper {
		t.Fatalf("unexpected normalized positions %v", got)
	}
}

func TestPlayerNormalizeKeepsStoredTags(t *testing.T) {
	p := Player{ID: "p1", Positions: Positions{"STRIKER", Pivot, Pivot}}
	p.Normalize()
	if len(p.Positions) != 3 || p.Positions[0] != "STRIKER" {
		t.Fatalf("expected stored tags kept on read, got %v", p.Positions)
	}

	Patch{Comments: new(string)}.Apply(&p, time.Now())
	if len(p.Positions) != 3 {
		t.Fatalf("patch without positions should keep stored tags, got %v", p.Positions)
	}
}

func TestInputValidate(t *testing.T) {
	valid := Input{FirstName: "Ana", LastName: "Lopez", Positions: Positions{LeftWing}, DateOfBirth: "2005-04-12"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	missing := Input{LastName: "Lopez"}
	if err := missing.Validate(); !domain.IsInputError(err) {
		t.Fatalf("expected input error for missing first name, got %v", err)
	}

	badPosition := Input{FirstName: "Ana", LastName: "Lopez", Positions: Positions{"STRIKER"}}
	if err := badPosition.Validate(); !domain.IsInputError(err) {
		t.Fatalf("expected input error for unknown position, got %v", err)
	}

	badDate := Input{FirstName: "Ana", LastName: "Lopez", DateOfBirth: "12/04/2005"}
	if err := badDate.Validate(); !domain.IsInputError(err) {
		t.Fatalf("expected input error for malformed date, got %v", err)
	}
}

func TestPatchApplyKeepsIdentity(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := created.Add(time.Hour)
	p := NewPlayer("p1", Input{FirstName: "Ana", LastName: "Lopez"}, created)

	name := "Anna"
	jersey := 7
	Patch{FirstName: &name, JerseyNumber: &jersey, Positions: Positions{Pivot}}.Apply(&p, later)

	if p.ID != "p1" || !p.CreatedAt.Equal(created) {
		t.Fatalf("expected identity preserved, got %+v", p)
	}
	if p.FirstName != "Anna" || p.LastName != "Lopez" || *p.JerseyNumber != 7 {
		t.Fatalf("unexpected patched player %+v", p)
	}
	if len(p.Positions) != 1 || p.Positions[0] != Pivot {
		t.Fatalf("expected positions replaced, got %v", p.Positions)
	}
	if !p.UpdatedAt.Equal(later) {
		t.Fatalf("expected updatedAt stamped")
	}
}
