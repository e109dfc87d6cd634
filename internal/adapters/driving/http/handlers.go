package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/parley-labs/parley-core/internal/core/domain"
)

// ErrorResponse is the standard error payload
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a simple status payload
type StatusResponse struct {
	Status string `json:"status"`
}

// VersionResponse carries the server version
type VersionResponse struct {
	Version string `json:"version"`
}

// handleHealth godoc
// @Summary Health check
// @Description Returns 200 if the server is running
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// handleReady godoc
// @Summary Readiness check
// @Description Returns 200 if the server can reach its backing stores
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 503 {object} ErrorResponse
// @Router /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ready"})
}

// handleVersion godoc
// @Summary Server version
// @Tags health
// @Produce json
// @Success 200 {object} VersionResponse
// @Router /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: s.version})
}

// handleIssueToken godoc
// @Summary Issue an access token
// @Description Exchanges a tenant ID and API key for a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.TokenRequest true "Tenant credentials"
// @Success 200 {object} domain.TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/auth/token [post]
func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	var req domain.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.IssueToken(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, domain.ErrTenantDisabled):
			writeError(w, http.StatusForbidden, "tenant disabled")
		default:
			writeError(w, http.StatusInternalServerError, "failed to issue token")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleChatMessage godoc
// @Summary Handle a chat message
// @Description Answers an end-user message from the knowledge base, enriched with customer context
// @Tags chat
// @Accept json
// @Produce json
// @Param request body domain.ChatRequest true "Chat message"
// @Success 200 {object} domain.ChatReply
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/chat/message [post]
func (s *Server) handleChatMessage(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetTokenClaims(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := s.chatService.HandleMessage(r.Context(), claims.TenantID, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to handle message")
		}
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

// handleGetContext godoc
// @Summary Get customer context
// @Description Returns the aggregated customer context, cached for a short TTL
// @Tags context
// @Produce json
// @Param email query string false "Customer email"
// @Param conversation_id query string false "Conversation ID"
// @Param force_refresh query bool false "Bypass the cache"
// @Success 200 {object} domain.CustomerContext
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/context [get]
func (s *Server) handleGetContext(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	conversationID := r.URL.Query().Get("conversation_id")
	forceRefresh := r.URL.Query().Get("force_refresh") == "true"

	cc, err := s.contextService.GetContext(r.Context(), email, conversationID, forceRefresh)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get context")
		return
	}

	writeJSON(w, http.StatusOK, cc)
}

// handleContextSummary godoc
// @Summary Get context summary
// @Description Returns the agent-facing summary of the customer context
// @Tags context
// @Produce json
// @Param email query string false "Customer email"
// @Param conversation_id query string false "Conversation ID"
// @Success 200 {object} domain.ContextSummary
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/context/summary [get]
func (s *Server) handleContextSummary(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	conversationID := r.URL.Query().Get("conversation_id")

	cc, err := s.contextService.GetContext(r.Context(), email, conversationID, false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get context")
		return
	}

	writeJSON(w, http.StatusOK, s.contextService.Summary(cc))
}

// handleRefreshContext godoc
// @Summary Force refresh customer context
// @Description Refetches commerce and helpdesk data, bypassing the cache
// @Tags context
// @Produce json
// @Param email query string false "Customer email"
// @Param conversation_id query string false "Conversation ID"
// @Success 200 {object} domain.CustomerContext
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/context/refresh [post]
func (s *Server) handleRefreshContext(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	conversationID := r.URL.Query().Get("conversation_id")

	cc, err := s.contextService.GetContext(r.Context(), email, conversationID, true)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to refresh context")
		return
	}

	writeJSON(w, http.StatusOK, cc)
}

// updateContextRequest wraps a context update with its cache identity
type updateContextRequest struct {
	Email          string               `json:"email,omitempty"`
	ConversationID string               `json:"conversation_id,omitempty"`
	Update         domain.ContextUpdate `json:"update"`
}

// handleUpdateContext godoc
// @Summary Update customer context
// @Description Merges partial commerce or helpdesk data into the cached context and recomputes insights
// @Tags context
// @Accept json
// @Produce json
// @Param request body updateContextRequest true "Context update"
// @Success 200 {object} domain.CustomerContext
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/context [patch]
func (s *Server) handleUpdateContext(w http.ResponseWriter, r *http.Request) {
	var req updateContextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cc, err := s.contextService.UpdateContext(r.Context(), req.Email, req.ConversationID, req.Update)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update context")
		return
	}

	writeJSON(w, http.StatusOK, cc)
}

// handleClearContext godoc
// @Summary Clear one cached context
// @Tags context
// @Produce json
// @Param email query string false "Customer email"
// @Param conversation_id query string false "Conversation ID"
// @Success 200 {object} StatusResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/context [delete]
func (s *Server) handleClearContext(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	conversationID := r.URL.Query().Get("conversation_id")

	if err := s.contextService.ClearContext(r.Context(), email, conversationID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear context")
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Status: "cleared"})
}

// handleClearAllContexts godoc
// @Summary Clear all cached contexts
// @Tags context
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/contexts [delete]
func (s *Server) handleClearAllContexts(w http.ResponseWriter, r *http.Request) {
	if err := s.contextService.ClearAll(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear contexts")
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Status: "cleared"})
}

// handleUploadDocument godoc
// @Summary Upload a knowledge document
// @Description Ingests a document into the tenant knowledge base, chunking long content
// @Tags documents
// @Accept json
// @Produce json
// @Param request body domain.UploadDocumentRequest true "Document"
// @Success 201 {object} domain.KnowledgeDocument
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/documents [post]
func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetTokenClaims(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req domain.UploadDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := s.documentService.Upload(r.Context(), claims.TenantID, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to upload document")
		}
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

// handleListDocuments godoc
// @Summary List knowledge documents
// @Tags documents
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} domain.KnowledgeDocument
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/documents [get]
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetTokenClaims(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	limit := parseIntParam(r, "limit", 0)
	offset := parseIntParam(r, "offset", 0)

	docs, err := s.documentService.List(r.Context(), claims.TenantID, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}

	writeJSON(w, http.StatusOK, docs)
}

// handleGetDocument godoc
// @Summary Get a knowledge document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} domain.KnowledgeDocument
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/documents/{id} [get]
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetTokenClaims(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	doc, err := s.documentService.Get(r.Context(), claims.TenantID, r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "document not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get document")
		}
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// handleEnableDocument godoc
// @Summary Enable a knowledge document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} StatusResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/documents/{id}/enable [post]
func (s *Server) handleEnableDocument(w http.ResponseWriter, r *http.Request) {
	s.setDocumentEnabled(w, r, true)
}

// handleDisableDocument godoc
// @Summary Disable a knowledge document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} StatusResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/documents/{id}/disable [post]
func (s *Server) handleDisableDocument(w http.ResponseWriter, r *http.Request) {
	s.setDocumentEnabled(w, r, false)
}

func (s *Server) setDocumentEnabled(w http.ResponseWriter, r *http.Request, enabled bool) {
	claims, ok := GetTokenClaims(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	err := s.documentService.SetEnabled(r.Context(), claims.TenantID, r.PathValue("id"), enabled)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "document not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update document")
		}
		return
	}

	status := "disabled"
	if enabled {
		status = "enabled"
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: status})
}

// handleDeleteDocument godoc
// @Summary Delete a knowledge document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} StatusResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/documents/{id} [delete]
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetTokenClaims(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	err := s.documentService.Delete(r.Context(), claims.TenantID, r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "document not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to delete document")
		}
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

func parseIntParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
