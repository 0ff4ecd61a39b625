package report

import (
	"errors"
	"fmt"
)

// ErrNoContext is returned when a personal report is requested without a
// profiled user.
var ErrNoContext = errors.New("report needs a profiled user")

// Result is the outcome of rendering one kind. Exactly one of Text and Err
// is meaningful.
type Result struct {
	Kind Kind
	Text string
	Err  error
}

// RenderFunc renders a single kind.
type RenderFunc func(kind Kind, c *Context) (string, error)

// Render renders one kind. c may be nil for the technical report.
func (r *Renderer) Render(kind Kind, c *Context) (string, error) {
	switch kind {
	case KindTTC:
		if c == nil {
			return "", ErrNoContext
		}
		return r.TTC(*c), nil
	case KindClinician:
		if c == nil {
			return "", ErrNoContext
		}
		return r.Clinician(*c), nil
	case KindTechnical:
		return r.Technical().Text(), nil
	}
	return "", fmt.Errorf("unknown report kind %q", kind)
}

// RenderAll renders every requested kind with the Renderer.
func (r *Renderer) RenderAll(kinds []Kind, c *Context) []Result {
	return RenderAll(kinds, c, r.Render)
}

// RenderAll renders each kind in isolation: an error or panic while
// rendering one kind is recorded in its Result and the remaining kinds are
// still rendered.
func RenderAll(kinds []Kind, c *Context, render RenderFunc) []Result {
	results := make([]Result, 0, len(kinds))
	for _, k := range kinds {
		text, err := renderIsolated(render, k, c)
		results = append(results, Result{Kind: k, Text: text, Err: err})
	}
	return results
}

func renderIsolated(render RenderFunc, kind Kind, c *Context) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			text = ""
			err = fmt.Errorf("rendering %s report: panic: %v", kind, p)
		}
	}()
	text, err = render(kind, c)
	if err != nil {
		return "", fmt.Errorf("rendering %s report: %w", kind, err)
	}
	return text, nil
}
