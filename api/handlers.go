/*
handlers.go - HTTP API handlers for the rule builder

PURPOSE:
  Exposes the rule builder session via REST API. Each UI gesture is one
  request; handlers decode the body, call the session and render the new
  state.

ENDPOINTS:
  Catalog:
    GET    /api/catalog                 Rule types, condition types, specs

  Workspace:
    GET    /api/workspace               Row views and the save gate
    POST   /api/workspace/reset         Start a new policy
    POST   /api/workspace/rules         Append a blank row
    PATCH  /api/workspace/rules/{id}    Change fields of a row
    DELETE /api/workspace/rules/{id}    Delete a row (default rows stay)
    POST   /api/workspace/reorder       Drag one row onto another
    GET    /api/workspace/summary       Narrative, digest and line items
    POST   /api/workspace/save          Save the working list

  Saved policies:
    GET    /api/policies                Cards in saved order
    GET    /api/policies/{id}           Policy with summary
    POST   /api/policies/{id}/edit      Load into the workspace
    DELETE /api/policies/{id}           Delete

  Presets:
    GET    /api/presets                 Sample policies
    POST   /api/presets/{id}/load       Load into the workspace

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed request body
  - 404: Unknown saved policy or preset
  - 422: Save attempted with incomplete rows
  - 500: Storage failures

  Gestures on unknown row ids are not errors: the engine ignores them and
  the unchanged workspace is returned.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - workspace/session.go: The session behind every handler
*/
package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/warp/leave-rules/catalog"
	"github.com/warp/leave-rules/rules"
	"github.com/warp/leave-rules/summary"
	"github.com/warp/leave-rules/workspace"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Session *workspace.Session
	Catalog *catalog.Catalog

	log *slog.Logger
}

// NewHandler creates a handler over one session.
func NewHandler(session *workspace.Session, c *catalog.Catalog, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{Session: session, Catalog: c, log: log}
}

// =============================================================================
// CATALOG
// =============================================================================

// GetCatalog returns the condition catalog.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, toCatalogDTO(h.Catalog))
}

// =============================================================================
// WORKSPACE
// =============================================================================

// GetWorkspace returns the working list.
func (h *Handler) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, toWorkspaceDTO(h.Session.State()))
}

// ResetWorkspace starts a new, unsaved policy.
func (h *Handler) ResetWorkspace(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, toWorkspaceDTO(h.Session.Reset()))
}

// AddRule appends a blank row.
func (h *Handler) AddRule(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toWorkspaceDTO(h.Session.OnRuleAdd()))
}

// UpdateRule merges the fields present in the body into one row.
func (h *Handler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	const op = "api.UpdateRule"

	var patch rules.Patch
	if err := render.DecodeJSON(r.Body, &patch); err != nil {
		h.writeError(w, r, op, http.StatusBadRequest, "invalid request body", err)
		return
	}

	id := chi.URLParam(r, "id")
	render.JSON(w, r, toWorkspaceDTO(h.Session.OnRuleFieldChange(id, patch)))
}

// DeleteRule removes one row. Default rows are kept.
func (h *Handler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	render.JSON(w, r, toWorkspaceDTO(h.Session.OnRuleDelete(id)))
}

// ReorderRules moves one row to the position of another.
func (h *Handler) ReorderRules(w http.ResponseWriter, r *http.Request) {
	const op = "api.ReorderRules"

	var req ReorderRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.writeError(w, r, op, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.FromID == "" || req.ToID == "" {
		h.writeError(w, r, op, http.StatusBadRequest, "fromId and toId are required", nil)
		return
	}

	render.JSON(w, r, toWorkspaceDTO(h.Session.OnReorder(req.FromID, req.ToID)))
}

// GetSummary explains the working list.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.Session.Summary())
}

// SavePolicy saves the working list, appending or replacing the policy
// being edited.
func (h *Handler) SavePolicy(w http.ResponseWriter, r *http.Request) {
	const op = "api.SavePolicy"

	var req SavePolicyRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, r, op, http.StatusBadRequest, "invalid request body", err)
		return
	}

	saved, err := h.Session.OnSavePolicy(r.Context(), req.Name)
	if err != nil {
		h.handleError(w, r, op, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toPolicyDTO(saved))
}

// =============================================================================
// SAVED POLICIES
// =============================================================================

// ListPolicies returns saved policy cards in saved order.
func (h *Handler) ListPolicies(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, summary.Cards(h.Session.SavedPolicies(r.Context())))
}

// GetPolicy returns one saved policy with its summary.
func (h *Handler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	const op = "api.GetPolicy"

	p, err := h.Session.SavedPolicy(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, op, err)
		return
	}
	render.JSON(w, r, toPolicyDTO(p))
}

// EditPolicy loads a saved policy into the workspace.
func (h *Handler) EditPolicy(w http.ResponseWriter, r *http.Request) {
	const op = "api.EditPolicy"

	state, err := h.Session.OnLoadPolicyForEdit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, op, err)
		return
	}
	render.JSON(w, r, toWorkspaceDTO(state))
}

// DeletePolicy removes a saved policy. Unknown ids are not an error.
func (h *Handler) DeletePolicy(w http.ResponseWriter, r *http.Request) {
	const op = "api.DeletePolicy"

	remaining, err := h.Session.OnDeleteSavedPolicy(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, op, err)
		return
	}
	render.JSON(w, r, summary.Cards(remaining))
}

// =============================================================================
// PRESETS
// =============================================================================

// ListPresets returns the sample policies.
func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, toPresetDTOs(h.Session.ListPresets()))
}

// LoadPreset replaces the working list with a sample policy.
func (h *Handler) LoadPreset(w http.ResponseWriter, r *http.Request) {
	const op = "api.LoadPreset"

	state, err := h.Session.LoadPreset(chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, op, err)
		return
	}
	render.JSON(w, r, toWorkspaceDTO(state))
}

// =============================================================================
// HELPERS
// =============================================================================

// handleError maps session errors to HTTP status codes.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var incomplete *workspace.IncompletePolicyError
	switch {
	case errors.As(err, &incomplete):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, ErrorResponse{
			Error:             "policy has incomplete rules",
			Code:              http.StatusUnprocessableEntity,
			IncompleteRuleIDs: incomplete.RuleIDs,
		})
	case workspace.IsNotFound(err):
		h.writeError(w, r, op, http.StatusNotFound, "not found", err)
	case errors.Is(err, workspace.ErrInvalidPolicy):
		h.writeError(w, r, op, http.StatusUnprocessableEntity, "policy has incomplete rules", err)
	default:
		h.writeError(w, r, op, http.StatusInternalServerError, "internal error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, status int, message string, err error) {
	resp := ErrorResponse{Error: message, Code: status}
	if err != nil {
		resp.Details = err.Error()
	}

	log := h.log.With(slog.String("op", op), slog.String("request_id", middleware.GetReqID(r.Context())))
	if status >= http.StatusInternalServerError {
		log.Error(message, slog.Any("error", err))
	} else {
		log.Debug(message, slog.Int("status", status), slog.Any("error", err))
	}

	render.Status(r, status)
	render.JSON(w, r, resp)
}
