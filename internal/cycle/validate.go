package cycle

import (
	"errors"
	"fmt"
)

// Bounds is an inclusive [Min, Max] range.
type Bounds struct {
	Min, Max float64
}

func (b Bounds) contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Input bounds accepted by the intake form. Classification itself is total;
// these only guard what front ends let through.
var (
	CycleLengthBounds  = Bounds{15, 60}
	MensesLengthBounds = Bounds{2, 10}
	OvulationDayBounds = Bounds{10, 30}

	AgeBounds       = Bounds{18, 60}
	HeightBounds    = Bounds{1.0, 2.2}
	WeightBounds    = Bounds{30, 200}
	PregnancyBounds = Bounds{0, 20}
)

// Validate checks every record against the intake bounds and reports all
// violations at once.
func (rs Records) Validate() error {
	var errs []error
	for i, r := range rs {
		n := i + 1
		errs = append(errs,
			checkBounds(fmt.Sprintf("cycle %d length", n), r.Length, CycleLengthBounds),
			checkBounds(fmt.Sprintf("cycle %d menses length", n), r.MensesLength, MensesLengthBounds),
			checkBounds(fmt.Sprintf("cycle %d ovulation day", n), r.OvulationDay, OvulationDayBounds),
		)
	}
	return errors.Join(errs...)
}

// Subject is the demographic part of a report request.
type Subject struct {
	Name          string
	Age           int
	HeightM       float64
	WeightKg      float64
	Pregnancies   int
	Complications bool
}

// Validate checks the demographic fields against the intake bounds.
func (s Subject) Validate() error {
	return errors.Join(
		checkBounds("age", float64(s.Age), AgeBounds),
		checkBounds("height (m)", s.HeightM, HeightBounds),
		checkBounds("weight (kg)", s.WeightKg, WeightBounds),
		checkBounds("pregnancies", float64(s.Pregnancies), PregnancyBounds),
	)
}

// BMI returns the subject's body-mass index.
func (s Subject) BMI() float64 {
	return BMI(s.HeightM, s.WeightKg)
}

// BMI is weight in kilograms over height in metres squared. A non-positive
// height yields 0.
func BMI(heightM, weightKg float64) float64 {
	if heightM <= 0 {
		return 0
	}
	return weightKg / (heightM * heightM)
}

func checkBounds(field string, v float64, b Bounds) error {
	if b.contains(v) {
		return nil
	}
	return fmt.Errorf("%s = %g is outside [%g, %g]", field, v, b.Min, b.Max)
}
