package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/willfaleixo/Dashboards-BI/internal/model"
	"github.com/willfaleixo/Dashboards-BI/internal/service/excel"
)

var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrEmptyFile        = errors.New("empty file")
	// ErrUnreadableFile returned once every retry has failed
	ErrUnreadableFile = errors.New("unreadable file")
)

// Kind input file type
type Kind int

const (
	KindAuto Kind = iota
	KindSpreadsheet
	KindCSV
)

func (k Kind) String() string {
	switch k {
	case KindSpreadsheet:
		return "xlsx"
	case KindCSV:
		return "csv"
	default:
		return "auto"
	}
}

// KindFor picks the reader for path; forceCSV wins over the extension.
func KindFor(path string, forceCSV bool) Kind {
	if forceCSV || strings.EqualFold(filepath.Ext(path), ".csv") {
		return KindCSV
	}
	return KindSpreadsheet
}

const (
	DefaultRetries    = 3
	DefaultRetryDelay = 3 * time.Second
)

// Options retry policy
type Options struct {
	Retries    int
	RetryDelay time.Duration
}

// Loader reads the input file into a raw table
type Loader struct {
	retries int
	delay   time.Duration

	read  func(path string, kind Kind) (*model.RawTable, error)
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a loader; zero options mean 3 attempts 3s apart.
func New(opts Options) *Loader {
	l := &Loader{
		retries: opts.Retries,
		delay:   opts.RetryDelay,
		sleep:   sleepContext,
	}
	if l.retries <= 0 {
		l.retries = DefaultRetries
	}
	if l.delay <= 0 {
		l.delay = DefaultRetryDelay
	}
	l.read = readFile
	return l
}

// Load reads path. Missing files, unreadable permissions and empty content fail at once;
// other read errors are retried and end in ErrUnreadableFile with a nil table.
func (l *Loader) Load(ctx context.Context, path string, kind Kind) (*model.RawTable, error) {
	if kind == KindAuto {
		kind = KindFor(path, false)
	}
	if err := checkFile(path); err != nil {
		log.Printf("[loader] %v", err)
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= l.retries; attempt++ {
		table, err := l.read(path, kind)
		if err == nil {
			log.Printf("[loader] %s loaded (%s): %d rows, %d columns", filepath.Base(path), kind, table.RowCount(), len(table.Headers))
			return table, nil
		}
		if errors.Is(err, ErrEmptyFile) {
			log.Printf("[loader] %v", err)
			return nil, err
		}

		lastErr = err
		log.Printf("[loader] attempt %d/%d reading %s failed: %v", attempt, l.retries, path, err)
		if attempt < l.retries {
			if err := l.sleep(ctx, l.delay); err != nil {
				return nil, err
			}
		}
	}
	return nil, fmt.Errorf("%w: %s after %d attempts: %v", ErrUnreadableFile, path, l.retries, lastErr)
}

func checkFile(path string) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
	case err != nil:
		return fmt.Errorf("%w: %s: %v", ErrUnreadableFile, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrFileNotFound, path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnreadableFile, path, err)
	}
	return f.Close()
}

func readFile(path string, kind Kind) (*model.RawTable, error) {
	if kind == KindCSV {
		return readCSV(path)
	}

	p := excel.NewParser()
	if err := p.Open(path); err != nil {
		return nil, err
	}
	defer p.Close()

	table, err := p.ReadFirstSheet()
	if errors.Is(err, excel.ErrNoSheets) || errors.Is(err, excel.ErrEmptySheet) {
		return nil, fmt.Errorf("%w: %s: %v", ErrEmptyFile, path, err)
	}
	return table, err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
