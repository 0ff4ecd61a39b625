package report

import (
	"github.com/HendryAvila/cyclesense/internal/cycle"
	"github.com/HendryAvila/cyclesense/internal/inference"
	"github.com/HendryAvila/cyclesense/internal/profile"
)

// Context is the per-request data a personal report is rendered from.
type Context struct {
	Name          string
	Age           int
	BMI           float64
	Pregnancies   int
	Complications bool
	Assignment    profile.Assignment
}

// NewContext combines a subject's details with their assignment. BMI is
// computed from height and weight.
func NewContext(s cycle.Subject, a profile.Assignment) Context {
	return Context{
		Name:          s.Name,
		Age:           s.Age,
		BMI:           s.BMI(),
		Pregnancies:   s.Pregnancies,
		Complications: s.Complications,
		Assignment:    a,
	}
}

// Logical is the profile the narrative is keyed by.
func (c Context) Logical() profile.Logical {
	return c.Assignment.Logical
}

func (c Context) subject() inference.Subject {
	return inference.Subject{
		Profile:       c.Assignment.Logical,
		Age:           c.Age,
		BMI:           c.BMI,
		Pregnancies:   c.Pregnancies,
		Complications: c.Complications,
	}
}
