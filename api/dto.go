/*
dto.go - Data Transfer Objects for API requests and responses

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

  Rule patches are decoded straight into rules.Patch: absent fields stay nil
  and are left alone by the engine.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/warp/leave-rules/catalog"
	"github.com/warp/leave-rules/policy"
	"github.com/warp/leave-rules/rules"
	"github.com/warp/leave-rules/summary"
	"github.com/warp/leave-rules/workspace"
)

// =============================================================================
// CATALOG
// =============================================================================

// CatalogDTO is the condition catalog plus the alphabetical selector order.
type CatalogDTO struct {
	catalog.Document
	SortedConditionTypes []string `json:"sortedConditionTypes"`
}

func toCatalogDTO(c *catalog.Catalog) CatalogDTO {
	return CatalogDTO{
		Document:             catalog.ToDocument(c),
		SortedConditionTypes: c.SortedConditionTypes(),
	}
}

// =============================================================================
// WORKSPACE
// =============================================================================

// WorkspaceDTO is the working list as the rule builder draws it.
type WorkspaceDTO struct {
	Rows              []rules.RowView `json:"rows"`
	CanSave           bool            `json:"canSave"`
	IncompleteRuleIDs []string        `json:"incompleteRuleIds"`
	EditingPolicyID   string          `json:"editingPolicyId,omitempty"`
}

func toWorkspaceDTO(s workspace.State) WorkspaceDTO {
	incomplete := rules.Incomplete(s.Rules)
	if incomplete == nil {
		incomplete = []string{}
	}
	return WorkspaceDTO{
		Rows:              s.Rows,
		CanSave:           s.CanSave,
		IncompleteRuleIDs: incomplete,
		EditingPolicyID:   s.EditingID,
	}
}

// ReorderRequest is a drag of one row onto another.
type ReorderRequest struct {
	FromID string `json:"fromId"`
	ToID   string `json:"toId"`
}

// SavePolicyRequest names the snapshot. The body is optional.
type SavePolicyRequest struct {
	Name string `json:"name"`
}

// =============================================================================
// SAVED POLICIES
// =============================================================================

// PolicyDTO is a saved policy with its generated summary.
type PolicyDTO struct {
	policy.SavedPolicy
	Card    summary.PolicyCard `json:"card"`
	Summary summary.Summary    `json:"summary"`
}

func toPolicyDTO(p policy.SavedPolicy) PolicyDTO {
	if p.Rules == nil {
		p.Rules = []rules.Fields{}
	}
	return PolicyDTO{
		SavedPolicy: p,
		Card:        summary.Card(p),
		Summary:     summary.Summarize(p.Rules),
	}
}

// =============================================================================
// PRESETS
// =============================================================================

// PresetDTO describes a sample policy.
type PresetDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func toPresetDTOs(presets []workspace.Preset) []PresetDTO {
	out := make([]PresetDTO, len(presets))
	for i, p := range presets {
		out[i] = PresetDTO{ID: p.ID, Name: p.Name, Description: p.Description, Category: p.Category}
	}
	return out
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error             string   `json:"error"`
	Code              int      `json:"code"`
	Details           string   `json:"details,omitempty"`
	IncompleteRuleIDs []string `json:"incompleteRuleIds,omitempty"`
}
