package games

import (
	"time"

	"github.com/preston-bernstein/team-ledger/internal/validation"
)

// Game is a scheduled match against an opponent.
type Game struct {
	ID         string    `json:"id"`
	Date       string    `json:"date"`
	StartTime  string    `json:"startTime"`
	Opponent   string    `json:"opponent"`
	Location   string    `json:"location,omitempty"`
	HomeGame   bool      `json:"homeGame"`
	FinalScore string    `json:"finalScore,omitempty"`
	VideoURL   string    `json:"videoUrl,omitempty"`
	Comments   string    `json:"comments,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Input carries the fields a caller supplies when scheduling a game.
type Input struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"required,datetime=15:04"`
	Opponent  string `json:"opponent" validate:"required,max=200"`
	Location  string `json:"location,omitempty"`
	HomeGame  bool   `json:"homeGame"`
	VideoURL  string `json:"videoUrl,omitempty" validate:"omitempty,url"`
	Comments  string `json:"comments,omitempty"`
}

// Validate checks required fields and formats.
func (in Input) Validate() error {
	return validation.Struct(in)
}

// NewGame builds a Game from validated input.
func NewGame(id string, in Input, now time.Time) Game {
	return Game{
		ID:        id,
		Date:      in.Date,
		StartTime: in.StartTime,
		Opponent:  in.Opponent,
		Location:  in.Location,
		HomeGame:  in.HomeGame,
		VideoURL:  in.VideoURL,
		Comments:  in.Comments,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Patch lists the updatable game fields; nil members are left unchanged.
type Patch struct {
	Date       *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime  *string `json:"startTime,omitempty" validate:"omitempty,datetime=15:04"`
	Opponent   *string `json:"opponent,omitempty" validate:"omitempty,min=1,max=200"`
	Location   *string `json:"location,omitempty"`
	HomeGame   *bool   `json:"homeGame,omitempty"`
	FinalScore *string `json:"finalScore,omitempty"`
	VideoURL   *string `json:"videoUrl,omitempty" validate:"omitempty,url"`
	Comments   *string `json:"comments,omitempty"`
}

// Validate checks the supplied fields.
func (p Patch) Validate() error {
	return validation.Struct(p)
}

// Apply merges the patch over game and stamps UpdatedAt.
func (p Patch) Apply(g *Game, now time.Time) {
	if p.Date != nil {
		g.Date = *p.Date
	}
	if p.StartTime != nil {
		g.StartTime = *p.StartTime
	}
	if p.Opponent != nil {
		g.Opponent = *p.Opponent
	}
	if p.Location != nil {
		g.Location = *p.Location
	}
	if p.HomeGame != nil {
		g.HomeGame = *p.HomeGame
	}
	if p.FinalScore != nil {
		g.FinalScore = *p.FinalScore
	}
	if p.VideoURL != nil {
		g.VideoURL = *p.VideoURL
	}
	if p.Comments != nil {
		g.Comments = *p.Comments
	}
	g.UpdatedAt = now
}
