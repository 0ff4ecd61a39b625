// Package resources implements MCP resource handlers for CycleSense.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (cyclesense://...) following MCP conventions.
package resources

import (
	"context"
	"errors"
	"fmt"

	"github.com/HendryAvila/cyclesense/internal/artifacts"
	"github.com/HendryAvila/cyclesense/internal/profile"
	"github.com/HendryAvila/cyclesense/internal/report"
	"github.com/HendryAvila/cyclesense/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// Resource URIs.
const (
	TechnicalURI = "cyclesense://technical"
	ProfilesURI  = "cyclesense://profiles"
	ArtifactsURI = "cyclesense://artifacts/info"
)

// Handler manages CycleSense resource endpoints.
type Handler struct {
	renderer *report.Renderer
	bundle   *artifacts.Bundle
	store    *store.Store
}

// NewHandler creates a resource Handler. store may be nil, in which case
// the artifacts resource reports that no import information is available.
func NewHandler(b *artifacts.Bundle, renderer *report.Renderer, s *store.Store) *Handler {
	return &Handler{renderer: renderer, bundle: b, store: s}
}

// TechnicalResource returns the MCP resource definition for the model
// evaluation report.
func (h *Handler) TechnicalResource() mcp.Resource {
	return mcp.NewResource(
		TechnicalURI,
		"Clustering Evaluation Report",
		mcp.WithResourceDescription("Evaluation metrics, cluster sizes and naming maps of the loaded models"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleTechnical returns the technical report as JSON.
func (h *Handler) HandleTechnical(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, h.renderer.Technical())
}

// ProfilesResource returns the MCP resource definition for the profile
// catalogue.
func (h *Handler) ProfilesResource() mcp.Resource {
	return mcp.NewResource(
		ProfilesURI,
		"Cycle Profiles",
		mcp.WithResourceDescription("Every logical cycle profile with its descriptions and cluster averages"),
		mcp.WithMIMEType("application/json"),
	)
}

// ProfileEntry describes one logical profile.
type ProfileEntry struct {
	Name             string                  `json:"name"`
	Reassuring       bool                    `json:"reassuring"`
	Description      string                  `json:"description"`
	ShortDescription string                  `json:"short_description"`
	Stats            *artifacts.ClusterStats `json:"stats,omitempty"`
}

// HandleProfiles returns the profile catalogue as JSON.
func (h *Handler) HandleProfiles(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, h.Profiles())
}

// Profiles lists the known profiles in display order.
func (h *Handler) Profiles() []ProfileEntry {
	engine := h.renderer.Engine()
	out := make([]ProfileEntry, 0, len(profile.All()))
	for _, l := range profile.All() {
		e := ProfileEntry{
			Name:             string(l),
			Reassuring:       l.Reassuring(),
			Description:      engine.Describe(l),
			ShortDescription: engine.ShortDescription(l),
		}
		if st, ok := h.bundle.Stats.Lookup(string(l)); ok {
			e.Stats = &st
		}
		out = append(out, e)
	}
	return out
}

// ArtifactsResource returns the MCP resource definition for import info.
func (h *Handler) ArtifactsResource() mcp.Resource {
	return mcp.NewResource(
		ArtifactsURI,
		"Artifact Import Info",
		mcp.WithResourceDescription("Where the loaded model artifacts came from and when they were imported"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleArtifacts returns the import info as JSON.
func (h *Handler) HandleArtifacts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if h.store == nil {
		return errorResource(req.Params.URI, "no artifact store configured"), nil
	}
	info, err := h.store.Info()
	if errors.Is(err, store.ErrNoArtifacts) {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading artifact info: %w", err)
	}
	return jsonResource(req.Params.URI, info)
}
