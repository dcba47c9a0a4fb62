package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/docnav/internal/docstore"
	"github.com/go-chi/chi/v5"
)

// handleListDocuments lists all cataloged documents, newest first.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.docs.List(r.Context())
	if err != nil {
		s.log.Error("list documents failed", "error", err)
		jsonError(w, "failed to list documents", http.StatusInternalServerError)
		return
	}
	if docs == nil {
		docs = []docstore.Metadata{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": docs})
}

// handleGetDocument returns metadata for one document.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	meta, err := s.docs.Get(r.Context(), docID)
	if err != nil {
		s.log.Error("get document failed", "doc_id", docID, "error", err)
		jsonError(w, "failed to load document", http.StatusInternalServerError)
		return
	}
	if meta == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(meta)
}

// handleDeleteDocument removes a document's catalog row and stored file.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	ctx := r.Context()

	meta, err := s.docs.Get(ctx, docID)
	if err != nil {
		s.log.Error("get document failed", "doc_id", docID, "error", err)
		jsonError(w, "failed to load document", http.StatusInternalServerError)
		return
	}
	if meta == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	deleted, err := s.docs.Delete(ctx, docID)
	if err != nil {
		s.log.Error("delete document failed", "doc_id", docID, "error", err)
		jsonError(w, "failed to delete document", http.StatusInternalServerError)
		return
	}

	fileRemoved := false
	if meta.FilePath != "" {
		if err := s.files.Remove(meta.FilePath); err != nil {
			s.log.Warn("stored file removal failed", "doc_id", docID, "path", meta.FilePath, "error", err)
		} else {
			fileRemoved = true
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"deleted":      deleted,
		"file_removed": fileRemoved,
	})
}
