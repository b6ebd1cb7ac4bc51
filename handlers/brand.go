// ABOUTME: Brand profile MCP tool handlers
// ABOUTME: Implements get_brand and update_brand tools
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bizdesk/bizdesk/models"
	"github.com/bizdesk/bizdesk/store"
)

type BrandHandlers struct {
	store *store.Store
}

func NewBrandHandlers(s *store.Store) *BrandHandlers {
	return &BrandHandlers{store: s}
}

type GetBrandInput struct{}

type BrandOutput struct {
	Name           string   `json:"name"`
	Industry       string   `json:"industry,omitempty"`
	Description    string   `json:"description,omitempty"`
	TargetAudience string   `json:"target_audience,omitempty"`
	Archetype      string   `json:"archetype,omitempty"`
	Tone           string   `json:"tone,omitempty"`
	Principles     []string `json:"principles,omitempty"`
	AdCount        int      `json:"ad_count"`
}

func (h *BrandHandlers) GetBrand(_ context.Context, request *mcp.CallToolRequest, input GetBrandInput) (*mcp.CallToolResult, BrandOutput, error) {
	return nil, brandToOutput(h.store.Brand()), nil
}

type UpdateBrandInput struct {
	Name           string `json:"name,omitempty" jsonschema:"Business name"`
	Industry       string `json:"industry,omitempty" jsonschema:"Industry or niche"`
	Description    string `json:"description,omitempty" jsonschema:"What the business does"`
	TargetAudience string `json:"target_audience,omitempty" jsonschema:"Who the business sells to"`
	Archetype      string `json:"archetype,omitempty" jsonschema:"Brand voice archetype"`
	Tone           string `json:"tone,omitempty" jsonschema:"Brand voice tone"`
}

func (h *BrandHandlers) UpdateBrand(_ context.Context, request *mcp.CallToolRequest, input UpdateBrandInput) (*mcp.CallToolResult, BrandOutput, error) {
	patch := models.BrandPatch{}
	if input.Name != "" {
		patch.Name = &input.Name
	}
	if input.Industry != "" {
		patch.Industry = &input.Industry
	}
	if input.Description != "" {
		patch.Description = &input.Description
	}
	if input.TargetAudience != "" {
		patch.TargetAudience = &input.TargetAudience
	}
	if input.Archetype != "" || input.Tone != "" {
		voice := h.store.Brand().Psychology
		if input.Archetype != "" {
			voice.Archetype = input.Archetype
		}
		if input.Tone != "" {
			voice.Tone = input.Tone
		}
		patch.Psychology = &voice
	}

	brand, err := h.store.UpdateBrand(patch)
	if err != nil {
		return nil, BrandOutput{}, fmt.Errorf("failed to update brand: %w", err)
	}

	return nil, brandToOutput(brand), nil
}

func brandToOutput(brand models.BrandProfile) BrandOutput {
	return BrandOutput{
		Name:           brand.Name,
		Industry:       brand.Industry,
		Description:    brand.Description,
		TargetAudience: brand.TargetAudience,
		Archetype:      brand.Psychology.Archetype,
		Tone:           brand.Psychology.Tone,
		Principles:     brand.Psychology.Principles,
		AdCount:        len(brand.Memory.AdHistory),
	}
}
