package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dgallion1/docnav/internal/document"
	"github.com/dgallion1/docnav/internal/navigator"
	"github.com/dgallion1/docnav/internal/parser"
)

type askRequest struct {
	DocumentID string `json:"document_id"`
	Question   string `json:"question"`
	MaxDepth   *int   `json:"max_depth"`
}

type askResponse struct {
	Answer     string   `json:"answer"`
	Citations  []string `json:"citations"`
	Depth      int      `json:"depth"`
	Scratchpad []string `json:"scratchpad"`
}

// handleAsk answers a question against one stored document. The document
// text is re-extracted per request; navigation state lives only in the
// request scope.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.DocumentID) == "" {
		jsonError(w, "document_id is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	meta, err := s.docs.Get(ctx, req.DocumentID)
	if err != nil {
		s.log.Error("get document failed", "doc_id", req.DocumentID, "error", err)
		jsonError(w, "failed to load document", http.StatusInternalServerError)
		return
	}
	if meta == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	f, err := s.files.Open(meta.FilePath)
	if err != nil {
		s.log.Error("stored file missing", "doc_id", meta.ID, "path", meta.FilePath, "error", err)
		jsonError(w, "document file not found on disk", http.StatusNotFound)
		return
	}
	defer f.Close()

	p, err := parser.ForFile(meta.Filename, parser.Options{PDFFallbackPdftotext: s.cfg.PDFFallbackPdftotext})
	if err != nil {
		s.log.Error("unsupported stored format", "doc_id", meta.ID, "filename", meta.Filename, "error", err)
		jsonError(w, "stored document has unsupported format", http.StatusInternalServerError)
		return
	}
	res, err := p.Parse(f, meta.Filename)
	if err != nil {
		s.log.Error("re-extraction failed", "doc_id", meta.ID, "error", err)
		jsonError(w, "failed to extract document text", http.StatusInternalServerError)
		return
	}

	maxDepth := s.cfg.DefaultMaxDepth
	if req.MaxDepth != nil {
		maxDepth = *req.MaxDepth
	}

	result, err := s.nav.Run(ctx, document.New(res.Text), req.Question, maxDepth)
	if err != nil {
		s.writeNavError(w, r, err)
		return
	}

	citations := result.Citations
	if citations == nil {
		citations = []string{}
	}
	pad := make([]string, 0, len(result.Scratchpad))
	for _, entry := range result.Scratchpad {
		pad = append(pad, entry.String())
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(askResponse{
		Answer:     result.Answer,
		Citations:  citations,
		Depth:      result.Depth,
		Scratchpad: pad,
	})
}

func (s *Server) writeNavError(w http.ResponseWriter, r *http.Request, err error) {
	if r.Context().Err() != nil {
		// Client went away; nothing useful to write.
		s.log.Info("ask abandoned", "error", err)
		return
	}

	navErr, ok := navigator.AsNavError(err)
	if !ok {
		s.log.Error("ask failed", "error", err)
		jsonError(w, "navigation failed", http.StatusInternalServerError)
		return
	}

	s.log.Error("ask failed",
		"kind", string(navErr.Kind),
		"depth", navErr.Depth,
		"error", navErr.Err,
	)
	switch navErr.Kind {
	case navigator.KindMalformedInput:
		jsonError(w, navErr.Error(), http.StatusBadRequest)
	case navigator.KindOracleUnavailable, navigator.KindContractViolation:
		jsonError(w, navErr.Error(), http.StatusBadGateway)
	default:
		jsonError(w, navErr.Error(), http.StatusInternalServerError)
	}
}
