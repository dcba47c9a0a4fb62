package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgallion1/docnav/internal/docstore"
	"github.com/dgallion1/docnav/internal/document"
	"github.com/dgallion1/docnav/internal/filestore"
	"github.com/dgallion1/docnav/internal/parser"
)

// Worker processes a single document job.
type Worker struct {
	docs      *docstore.Store
	files     *filestore.Store
	log       *slog.Logger
	parseOpts parser.Options
}

func NewWorker(docs *docstore.Store, files *filestore.Store, log *slog.Logger, parseOpts parser.Options) *Worker {
	return &Worker{
		docs:      docs,
		files:     files,
		log:       log,
		parseOpts: parseOpts,
	}
}

// Process runs the full ingest pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, w.parseOpts)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	res, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if job.Title == "" {
		job.SetTitle(res.Title)
	}

	// Phase 2: Analyze
	job.SetStatus(StatusAnalyzing, "analyzing")
	if strings.TrimSpace(res.Text) == "" {
		log.Warn("no text extracted")
		job.AddError("no extractable content")
		job.SetStatus(StatusFailed, "analyzing")
		return
	}
	stats := document.ComputeStats(res.Text)
	job.SetAnalysis(stats, res.Pages)
	log.Info("analyzed document",
		"words", stats.Words,
		"sentences", stats.Sentences,
		"tokens", stats.Tokens,
		"pages", res.Pages)

	// Hash the extracted text, not the raw bytes, so re-encoded copies of
	// the same document still dedup.
	job.SetContentHash(ContentHashHex([]byte(res.Text)))

	// Phase 2.5: Dedup check
	existing, err := w.docs.FindByHash(ctx, job.ContentHash)
	if err != nil {
		log.Warn("dedup check failed, proceeding", "error", err)
	} else if existing != nil {
		log.Info("duplicate document, skipping", "existing_doc_id", existing.ID)
		job.SetDocID(existing.ID)
		job.SetStatus(StatusDupSkipped, "dedup")
		return
	}

	// Phase 3: Store the uploaded file and catalog the document.
	job.SetStatus(StatusStoring, "storing")
	path, err := w.files.Save(job.DocID, job.Filename, job.FileData())
	if err != nil {
		log.Error("file save failed", "error", err)
		job.AddError(fmt.Sprintf("save: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	meta := docstore.Metadata{
		ID:          job.DocID,
		Filename:    job.Filename,
		Title:       job.Title,
		FilePath:    path,
		ContentHash: job.ContentHash,
		Pages:       res.Pages,
		Words:       stats.Words,
		Sentences:   stats.Sentences,
		Tokens:      stats.Tokens,
		CreatedAt:   job.CreatedAt,
	}
	if err := w.docs.Put(ctx, meta); err != nil {
		log.Error("catalog write failed", "error", err)
		job.AddError(fmt.Sprintf("catalog: %s", err))
		job.SetStatus(StatusFailed, "storing")
		if rmErr := w.files.Remove(path); rmErr != nil {
			log.Warn("orphaned file cleanup failed", "path", path, "error", rmErr)
		}
		return
	}

	log.Info("document ingested", "title", job.Title, "tokens", stats.Tokens)
	job.SetStatus(StatusCompleted, "done")
}
