package importer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/willfaleixo/Dashboards-BI/internal/loader"
	"github.com/willfaleixo/Dashboards-BI/internal/model"
	"github.com/willfaleixo/Dashboards-BI/internal/parser"
	"github.com/willfaleixo/Dashboards-BI/internal/store"
)

// Error kinds stored in the load history and returned by the API
const (
	KindFileNotFound     = "file_not_found"
	KindPermissionDenied = "permission_denied"
	KindEmptyFile        = "empty_file"
	KindUnreadableFile   = "unreadable_file"
	KindSchemaMismatch   = "schema_mismatch"
	KindNoValidRows      = "no_valid_rows"
	KindCancelled        = "cancelled"
	KindUnknown          = "unknown"
)

// ErrorKind classifies a load failure; "" for nil.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, loader.ErrFileNotFound):
		return KindFileNotFound
	case errors.Is(err, loader.ErrPermissionDenied):
		return KindPermissionDenied
	case errors.Is(err, loader.ErrEmptyFile):
		return KindEmptyFile
	case errors.Is(err, loader.ErrUnreadableFile):
		return KindUnreadableFile
	case errors.Is(err, parser.ErrSchemaMismatch):
		return KindSchemaMismatch
	case errors.Is(err, parser.ErrNoValidRows):
		return KindNoValidRows
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCancelled
	default:
		return KindUnknown
	}
}

// Coordinator runs loader and cleaner and records every attempt
type Coordinator struct {
	store   *store.Store
	loader  *loader.Loader
	cleaner *parser.Cleaner
}

// NewCoordinator creates a coordinator. st may be nil, in which case no history is kept.
func NewCoordinator(st *store.Store, l *loader.Loader, c *parser.Cleaner) *Coordinator {
	if l == nil {
		l = loader.New(loader.Options{})
	}
	if c == nil {
		c = parser.NewCleaner(parser.Options{})
	}
	return &Coordinator{store: st, loader: l, cleaner: c}
}

// LoadOptions one load request
type LoadOptions struct {
	FilePath string
	Kind     loader.Kind
	Progress func(ProgressEvent)
}

// LoadReport outcome of one load
type LoadReport struct {
	ID        uuid.UUID           `json:"id"`
	FilePath  string              `json:"filePath"`
	Filename  string              `json:"filename"`
	Kind      string              `json:"kind"`
	Source    model.SourceInfo    `json:"source"`
	Clean     *parser.CleanReport `json:"clean,omitempty"`
	ErrorKind string              `json:"errorKind,omitempty"`
	Error     string              `json:"error,omitempty"`
	StartedAt time.Time           `json:"startedAt"`
	Duration  time.Duration       `json:"duration"`
}

// Load reads and cleans opts.FilePath. The report is returned even when the load fails.
func (c *Coordinator) Load(ctx context.Context, opts LoadOptions) (*model.Dataset, *LoadReport, error) {
	kind := opts.Kind
	if kind == loader.KindAuto {
		kind = loader.KindFor(opts.FilePath, false)
	}
	report := &LoadReport{
		ID:        uuid.New(),
		FilePath:  opts.FilePath,
		Filename:  filepath.Base(opts.FilePath),
		Kind:      kind.String(),
		StartedAt: time.Now(),
	}
	entry := c.startLog(report)

	ds, err := c.run(ctx, opts, kind, report)
	report.Duration = time.Since(report.StartedAt)
	if err != nil {
		report.ErrorKind = ErrorKind(err)
		report.Error = err.Error()
		reportProgress(opts.Progress, 100, StageError, err.Error())
		log.Printf("[loader] load %s failed (%s): %v", report.Filename, report.ErrorKind, err)
	} else {
		reportProgress(opts.Progress, 100, StageDone, fmt.Sprintf("%d rows loaded", ds.Len()))
		log.Printf("[loader] loaded %s: %d rows in %s", report.Filename, ds.Len(), report.Duration.Round(time.Millisecond))
	}
	c.finishLog(entry, report)
	return ds, report, err
}

func (c *Coordinator) run(ctx context.Context, opts LoadOptions, kind loader.Kind, report *LoadReport) (*model.Dataset, error) {
	reportProgress(opts.Progress, 10, StageReading, fmt.Sprintf("reading %s", report.Filename))
	raw, err := c.loader.Load(ctx, opts.FilePath, kind)
	if err != nil {
		return nil, err
	}

	sig, err := loader.Signature(opts.FilePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", loader.ErrUnreadableFile, err)
	}
	report.Source = sig

	reportProgress(opts.Progress, 60, StageCleaning, fmt.Sprintf("cleaning %d rows", raw.RowCount()))
	ds, clean, err := c.cleaner.Clean(raw)
	report.Clean = clean
	if err != nil {
		return nil, err
	}
	ds.Source = sig
	return ds, nil
}

func (c *Coordinator) startLog(report *LoadReport) *store.LoadLog {
	if c.store == nil {
		return nil
	}
	entry := &store.LoadLog{
		LoadID:    report.ID.String(),
		Filename:  report.Filename,
		FilePath:  report.FilePath,
		StartedAt: report.StartedAt,
	}
	if _, err := c.store.CreateLoadLog(entry); err != nil {
		log.Printf("[loader] history unavailable: %v", err)
		return nil
	}
	return entry
}

func (c *Coordinator) finishLog(entry *store.LoadLog, report *LoadReport) {
	if entry == nil {
		return
	}
	entry.FileSize = report.Source.Size
	entry.FileHash = report.Source.Hash
	entry.Status = store.LoadStatusSuccess
	if report.ErrorKind != "" {
		entry.Status = store.LoadStatusError
		entry.ErrorKind = report.ErrorKind
		entry.ErrorMessage = report.Error
	}
	if cr := report.Clean; cr != nil {
		entry.RawRows = cr.RawRows
		entry.KeptRows = cr.Rows
		entry.DroppedRows = cr.DroppedRows
		entry.CoercedValues = cr.CoercedValues
		entry.FilledSentinels = cr.FilledSentinels
		for _, f := range cr.Missing {
			entry.MissingColumns = append(entry.MissingColumns, string(f))
		}
	}
	if err := c.store.FinishLoadLog(entry); err != nil {
		log.Printf("[loader] failed to record load %s: %v", entry.LoadID, err)
	}
	if report.ErrorKind == "" {
		if err := c.store.SetLastDataFile(report.FilePath); err != nil {
			log.Printf("[loader] failed to remember data file: %v", err)
		}
	}
}

// History recent loads, newest first
func (c *Coordinator) History(limit int) ([]store.LoadLog, error) {
	if c.store == nil {
		return nil, nil
	}
	return c.store.ListLoadLogs(limit)
}

// LastDataFile the file of the last successful load, "" when unknown
func (c *Coordinator) LastDataFile() string {
	if c.store == nil {
		return ""
	}
	return c.store.LastDataFile()
}
