package drills

import (
	"time"

	"github.com/preston-bernstein/team-ledger/internal/validation"
)

// Drill is a reusable practice exercise. Templates are drills flagged for reuse.
type Drill struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Objectives  []string  `json:"objectives,omitempty"`
	Feedback    string    `json:"feedback,omitempty"`
	Duration    *int      `json:"duration,omitempty"`
	Category    string    `json:"category,omitempty"`
	IsTemplate  bool      `json:"isTemplate"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	VideoURL    string    `json:"videoUrl,omitempty"`
	DiagramData string    `json:"diagramData,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Input carries the fields a caller supplies when creating a drill.
type Input struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description,omitempty"`
	Objectives  []string `json:"objectives,omitempty" validate:"dive,required"`
	Feedback    string   `json:"feedback,omitempty"`
	Duration    *int     `json:"duration,omitempty" validate:"omitempty,min=0"`
	Category    string   `json:"category,omitempty"`
	IsTemplate  bool     `json:"isTemplate"`
	ImageURL    string   `json:"imageUrl,omitempty" validate:"omitempty,url"`
	VideoURL    string   `json:"videoUrl,omitempty" validate:"omitempty,url"`
	DiagramData string   `json:"diagramData,omitempty"`
}

// Validate checks required fields and formats.
func (in Input) Validate() error {
	return validation.Struct(in)
}

// NewDrill builds a Drill from validated input.
func NewDrill(id string, in Input, now time.Time) Drill {
	return Drill{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Objectives:  in.Objectives,
		Feedback:    in.Feedback,
		Duration:    in.Duration,
		Category:    in.Category,
		IsTemplate:  in.IsTemplate,
		ImageURL:    in.ImageURL,
		VideoURL:    in.VideoURL,
		DiagramData: in.DiagramData,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Patch lists the updatable drill fields; nil members are left unchanged.
type Patch struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description,omitempty"`
	Objectives  []string `json:"objectives,omitempty" validate:"dive,required"`
	Feedback    *string  `json:"feedback,omitempty"`
	Duration    *int     `json:"duration,omitempty" validate:"omitempty,min=0"`
	Category    *string  `json:"category,omitempty"`
	IsTemplate  *bool    `json:"isTemplate,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty" validate:"omitempty,url"`
	VideoURL    *string  `json:"videoUrl,omitempty" validate:"omitempty,url"`
	DiagramData *string  `json:"diagramData,omitempty"`
}

// Validate checks the supplied fields.
func (p Patch) Validate() error {
	return validation.Struct(p)
}

// Apply merges the patch over drill and stamps UpdatedAt.
func (p Patch) Apply(d *Drill, now time.Time) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Objectives != nil {
		d.Objectives = p.Objectives
	}
	if p.Feedback != nil {
		d.Feedback = *p.Feedback
	}
	if p.Duration != nil {
		d.Duration = p.Duration
	}
	if p.Category != nil {
		d.Category = *p.Category
	}
	if p.IsTemplate != nil {
		d.IsTemplate = *p.IsTemplate
	}
	if p.ImageURL != nil {
		d.ImageURL = *p.ImageURL
	}
	if p.VideoURL != nil {
		d.VideoURL = *p.VideoURL
	}
	if p.DiagramData != nil {
		d.DiagramData = *p.DiagramData
	}
	d.UpdatedAt = now
}
