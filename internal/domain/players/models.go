package players

import (
	"encoding/json"
	"time"

	"github.com/preston-bernstein/team-ledger/internal/validation"
)

// Position is a handball playing position.
type Position string

const (
	Goalkeeper Position = "GOALKEEPER"
	LeftWing   Position = "LEFT_WING"
	LeftBack   Position = "LEFT_BACK"
	CenterBack Position = "CENTER_BACK"
	Pivot      Position = "PIVOT"
	RightBack  Position = "RIGHT_BACK"
	RightWing  Position = "RIGHT_WING"
)

// AllPositions lists every known position in display order.
var AllPositions = []Position{Goalkeeper, LeftWing, LeftBack, CenterBack, Pivot, RightBack, RightWing}

// Valid reports whether p is a known position.
func (p Position) Valid() bool {
	for _, known := range AllPositions {
		if p == known {
			return true
		}
	}
	return false
}

// Positions is a set-like ordered list that never encodes as null.
type Positions []Position

// MarshalJSON encodes nil as an empty list.
func (p Positions) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Position(p))
}

// UnmarshalJSON accepts any document; null or non-list values decode to an empty list.
func (p *Positions) UnmarshalJSON(data []byte) error {
	var raw []Position
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		*p = Positions{}
		return nil
	}
	*p = Positions(raw)
	return nil
}

// Normalize drops unknown and repeated tags, keeping first-seen order.
func (p Positions) Normalize() Positions {
	out := make(Positions, 0, len(p))
	seen := make(map[Position]struct{}, len(p))
	for _, pos := range p {
		if !pos.Valid() {
			continue
		}
		if _, dup := seen[pos]; dup {
			continue
		}
		seen[pos] = struct{}{}
		out = append(out, pos)
	}
	return out
}

// Player is a roster entry.
type Player struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	JerseyNumber *int      `json:"jerseyNumber,omitempty"`
	Positions    Positions `json:"positions"`
	DateOfBirth  string    `json:"dateOfBirth,omitempty"`
	Photo        string    `json:"photo,omitempty"`
	Comments     string    `json:"comments,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Normalize guarantees Positions is a non-nil list. Stored tags are kept as written.
func (p *Player) Normalize() {
	if p.Positions == nil {
		p.Positions = Positions{}
	}
}

// Input carries the fields a caller supplies when creating a player.
type Input struct {
	FirstName    string    `json:"firstName" validate:"required,max=100"`
	LastName     string    `json:"lastName" validate:"required,max=100"`
	JerseyNumber *int      `json:"jerseyNumber,omitempty" validate:"omitempty,min=0,max=999"`
	Positions    Positions `json:"positions" validate:"dive,oneof=GOALKEEPER LEFT_WING LEFT_BACK CENTER_BACK PIVOT RIGHT_BACK RIGHT_WING"`
	DateOfBirth  string    `json:"dateOfBirth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Photo        string    `json:"photo,omitempty"`
	Comments     string    `json:"comments,omitempty"`
}

// Validate checks required fields, formats and position tags.
func (in Input) Validate() error {
	return validation.Struct(in)
}

// NewPlayer builds a Player from validated input.
func NewPlayer(id string, in Input, now time.Time) Player {
	p := Player{
		ID:           id,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		JerseyNumber: in.JerseyNumber,
		Positions:    in.Positions.Normalize(),
		DateOfBirth:  in.DateOfBirth,
		Photo:        in.Photo,
		Comments:     in.Comments,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	p.Normalize()
	return p
}

// Patch lists the updatable player fields; nil members are left unchanged.
// A non-nil empty Positions clears the list.
type Patch struct {
	FirstName    *string   `json:"firstName,omitempty" validate:"omitempty,min=1,max=100"`
	LastName     *string   `json:"lastName,omitempty" validate:"omitempty,min=1,max=100"`
	JerseyNumber *int      `json:"jerseyNumber,omitempty" validate:"omitempty,min=0,max=999"`
	Positions    Positions `json:"positions,omitempty" validate:"dive,oneof=GOALKEEPER LEFT_WING LEFT_BACK CENTER_BACK PIVOT RIGHT_BACK RIGHT_WING"`
	DateOfBirth  *string   `json:"dateOfBirth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Photo        *string   `json:"photo,omitempty"`
	Comments     *string   `json:"comments,omitempty"`
}

// Validate checks the supplied fields.
func (p Patch) Validate() error {
	return validation.Struct(p)
}

// Apply merges the patch over player and stamps UpdatedAt.
func (p Patch) Apply(player *Player, now time.Time) {
	if p.FirstName != nil {
		player.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		player.LastName = *p.LastName
	}
	if p.JerseyNumber != nil {
		player.JerseyNumber = p.JerseyNumber
	}
	if p.Positions != nil {
		player.Positions = p.Positions.Normalize()
	}
	if p.DateOfBirth != nil {
		player.DateOfBirth = *p.DateOfBirth
	}
	if p.Photo != nil {
		player.Photo = *p.Photo
	}
	if p.Comments != nil {
		player.Comments = *p.Comments
	}
	player.Normalize()
	player.UpdatedAt = now
}
