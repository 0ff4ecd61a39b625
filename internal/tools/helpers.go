// Package tools implements the CycleSense MCP tool handlers.
//
// Each tool is a struct that receives its dependencies via its constructor,
// exposes Definition() for registration and Handle() for calls:
// - one file per tool
// - input problems are returned as tool errors (mcp.NewToolResultError)
// - infrastructure failures are returned as Go errors
package tools

import (
	"errors"
	"fmt"

	"github.com/HendryAvila/cyclesense/internal/cycle"
	"github.com/mark3labs/mcp-go/mcp"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// numberArg extracts a required number argument.
func numberArg(req mcp.CallToolRequest, key string) (float64, error) {
	raw, ok := req.GetArguments()[key]
	if !ok {
		return 0, fmt.Errorf("'%s' is required", key)
	}
	v, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("'%s' must be a number", key)
	}
	return v, nil
}

func cycleKey(i int, field string) string {
	return fmt.Sprintf("cycle%d_%s", i, field)
}

// cycleOptions declares the nine per-cycle number arguments.
func cycleOptions() []mcp.ToolOption {
	var opts []mcp.ToolOption
	for i := 1; i <= cycle.Count; i++ {
		opts = append(opts,
			mcp.WithNumber(cycleKey(i, "length"),
				mcp.Required(),
				mcp.Description(fmt.Sprintf("Cycle %d: total length in days (15-60)", i)),
			),
			mcp.WithNumber(cycleKey(i, "menses_length"),
				mcp.Required(),
				mcp.Description(fmt.Sprintf("Cycle %d: length of menses in days (2-10)", i)),
			),
			mcp.WithNumber(cycleKey(i, "ovulation_day"),
				mcp.Required(),
				mcp.Description(fmt.Sprintf("Cycle %d: estimated day of ovulation (10-30)", i)),
			),
		)
	}
	return opts
}

// readRecords reads and validates the three cycles of a request.
func readRecords(req mcp.CallToolRequest) (cycle.Records, error) {
	var records cycle.Records
	var errs []error
	for i := range records {
		n := i + 1
		var err error
		if records[i].Length, err = numberArg(req, cycleKey(n, "length")); err != nil {
			errs = append(errs, err)
		}
		if records[i].MensesLength, err = numberArg(req, cycleKey(n, "menses_length")); err != nil {
			errs = append(errs, err)
		}
		if records[i].OvulationDay, err = numberArg(req, cycleKey(n, "ovulation_day")); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return records, errors.Join(errs...)
	}
	return records, records.Validate()
}

// subjectOptions declares the personal-detail arguments.
func subjectOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("User's name, used in the report greeting"),
		),
		mcp.WithNumber("age",
			mcp.Required(),
			mcp.Description("Age in years (18-60)"),
		),
		mcp.WithNumber("height_m",
			mcp.Required(),
			mcp.Description("Height in metres (1.0-2.2)"),
		),
		mcp.WithNumber("weight_kg",
			mcp.Required(),
			mcp.Description("Weight in kilograms (30-200)"),
		),
		mcp.WithNumber("pregnancies",
			mcp.Description("Number of previous pregnancies (0-20, default: 0)"),
		),
		mcp.WithBoolean("complications",
			mcp.Description("Whether the user has reproductive complications (default: false)"),
		),
	}
}

// readSubject reads and validates the personal details of a request.
func readSubject(req mcp.CallToolRequest) (cycle.Subject, error) {
	s := cycle.Subject{
		Name:          req.GetString("name", ""),
		Pregnancies:   intArg(req, "pregnancies", 0),
		Complications: boolArg(req, "complications", false),
	}
	var errs []error
	if s.Name == "" {
		errs = append(errs, errors.New("'name' is required"))
	}
	age, err := numberArg(req, "age")
	if err != nil {
		errs = append(errs, err)
	}
	s.Age = int(age)
	if s.HeightM, err = numberArg(req, "height_m"); err != nil {
		errs = append(errs, err)
	}
	if s.WeightKg, err = numberArg(req, "weight_kg"); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return s, errors.Join(errs...)
	}
	return s, s.Validate()
}
