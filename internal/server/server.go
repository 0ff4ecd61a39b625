// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it opens the store, loads the artifact
// bundle once and injects it into the tools, prompts and resources.
// No business logic lives here, only wiring.
package server

import (
	"errors"
	"fmt"

	"github.com/HendryAvila/cyclesense/internal/artifacts"
	"github.com/HendryAvila/cyclesense/internal/config"
	"github.com/HendryAvila/cyclesense/internal/logging"
	"github.com/HendryAvila/cyclesense/internal/profile"
	"github.com/HendryAvila/cyclesense/internal/prompts"
	"github.com/HendryAvila/cyclesense/internal/report"
	"github.com/HendryAvila/cyclesense/internal/resources"
	"github.com/HendryAvila/cyclesense/internal/store"
	"github.com/HendryAvila/cyclesense/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Name is the MCP server name reported to hosts.
const Name = "cyclesense"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered.
//
// The returned cleanup function closes the store and must be called on
// shutdown (typically via defer). It is always non-nil.
func New(cfg *config.Config) (*server.MCPServer, func(), error) {
	st, err := store.New(cfg.StoreConfig())
	if err != nil {
		return nil, noop, fmt.Errorf("opening store: %w", err)
	}
	cleanup := func() {
		if err := st.Close(); err != nil {
			logging.Warn("store close failed", "err", err)
		}
	}

	bundle, err := st.LoadBundle()
	if errors.Is(err, store.ErrNoArtifacts) {
		cleanup()
		return nil, noop, fmt.Errorf("%w: run `cyclesense artifacts import <file>` or `cyclesense artifacts import --sample` first", err)
	}
	if err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("loading artifacts: %w", err)
	}

	s, err := NewWithBundle(bundle, st, cfg.History)
	if err != nil {
		cleanup()
		return nil, noop, err
	}
	return s, cleanup, nil
}

// NewWithBundle builds the server around an already loaded bundle. st may
// be nil, which disables the history tool and the artifact info resource.
func NewWithBundle(bundle *artifacts.Bundle, st *store.Store, history config.HistoryConfig) (*server.MCPServer, error) {
	assigner, err := profile.New(bundle)
	if err != nil {
		return nil, fmt.Errorf("building classifiers: %w", err)
	}
	renderer := report.NewRenderer(bundle)

	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register tools ---

	assignTool := tools.NewAssignTool(assigner)
	s.AddTool(assignTool.Definition(), assignTool.Handle)

	reportTool := tools.NewReportTool(assigner, renderer)
	s.AddTool(reportTool.Definition(), reportTool.Handle)

	technicalTool := tools.NewTechnicalTool(renderer)
	s.AddTool(technicalTool.Definition(), technicalTool.Handle)

	// History is optional: without a store, or with history disabled,
	// reports are rendered but never recorded.
	if st != nil && history.Enabled {
		reportTool.SetObserver(tools.NewHistoryRecorder(st, history.Limit))

		historyTool := tools.NewHistoryTool(st, history.Limit)
		s.AddTool(historyTool.Definition(), historyTool.Handle)
	}

	// --- Register prompts ---

	intakePrompt := prompts.NewIntakePrompt()
	s.AddPrompt(intakePrompt.Definition(), intakePrompt.Handle)

	if st != nil && history.Enabled {
		historyPrompt := prompts.NewHistoryPrompt()
		s.AddPrompt(historyPrompt.Definition(), historyPrompt.Handle)
	}

	// --- Register resources ---

	resourceHandler := resources.NewHandler(bundle, renderer, st)
	s.AddResource(resourceHandler.TechnicalResource(), resourceHandler.HandleTechnical)
	s.AddResource(resourceHandler.ProfilesResource(), resourceHandler.HandleProfiles)
	s.AddResource(resourceHandler.ArtifactsResource(), resourceHandler.HandleArtifacts)

	logging.Debug("server ready",
		"raw_clusters", len(bundle.Raw.Names),
		"variability_clusters", len(bundle.Variability.Names),
		"history", st != nil && history.Enabled,
	)
	return s, nil
}

// noop is the cleanup returned when nothing was opened.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use CycleSense.
func serverInstructions() string {
	return `You have access to CycleSense, a menstrual-cycle profiling MCP server.

## What it does

From three recorded cycles (total length, menses length, ovulation day) it
assigns a cycle profile using two pre-trained cluster models, then renders
narrative reports:
- ttc: a lay "trying to conceive" summary for the user
- clinician: a clinician-facing summary with cluster averages
- technical: the clustering evaluation metrics of the loaded models

## Tools
- cycle_assign_profile: profile only, with the variability summary
- cycle_report: personal details + three cycles -> report text
- cycle_technical_report: model evaluation report (markdown or json)
- cycle_report_history: previously generated reports (when history is enabled)

## Rules
- Collect ALL inputs from the user before calling a tool. Never invent
  values or fill in defaults for cycle measurements.
- Valid ranges: cycle length 15-60 days, menses 2-10 days, ovulation day
  10-30, age 18-60, height 1.0-2.2 m, weight 30-200 kg.
- Present report text as returned. Do not add diagnoses: the reports are
  informational and not medical advice.`
}
