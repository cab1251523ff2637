// Package loader materialises a corpus from a directory of text files or from
// a SQL table. Loading is all-or-nothing: any unreadable or invalid document
// aborts the load and no partial corpus is returned.
package loader

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/corpus-questions/internal/ingestion"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/internal/ingestion/validator"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/pkg/database"
	apperrors "github.com/Adithya-Monish-Kumar-K/corpus-questions/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/pkg/logger"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Open loads the corpus named by location. postgres:// and postgresql://
// URLs are read through lib/pq, sqlite://<path> through the SQLite driver,
// and anything else is treated as a directory path.
func Open(ctx context.Context, location string, cfg *config.Config) (ingestion.Corpus, error) {
	driver, dsn := parseLocation(location)
	if driver == "" {
		return LoadDir(ctx, location, cfg.Corpus.LoadConcurrency)
	}
	client, err := database.New(ctx, driver, dsn, cfg.Database)
	if err != nil {
		return nil, loadError(location, err)
	}
	defer client.Close()
	logger.WithComponent("corpus-loader").Debug("corpus database connected", "driver", client.Driver())
	return LoadSQL(ctx, client.DB, cfg.Corpus.Table)
}

func parseLocation(location string) (driver string, dsn string) {
	switch {
	case strings.HasPrefix(location, "postgres://"), strings.HasPrefix(location, "postgresql://"):
		return database.DriverPostgres, location
	case strings.HasPrefix(location, "sqlite://"):
		return database.DriverSQLite, strings.TrimPrefix(location, "sqlite://")
	default:
		return "", location
	}
}

// LoadDir reads every regular file directly inside dir, keyed by file name.
// Sub-directories are skipped. Up to concurrency files are read at once.
func LoadDir(ctx context.Context, dir string, concurrency int) (ingestion.Corpus, error) {
	log := logger.WithComponent("corpus-loader").With("dir", dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, loadError(dir, err)
	}

	var mu sync.Mutex
	corpus := make(ingestion.Corpus, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			log.Debug("skipping sub-directory", "name", entry.Name())
			continue
		}
		name := entry.Name()
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return fmt.Errorf("reading %s: %w", name, err)
			}
			text := string(data)
			if err := validator.ValidateDocument(name, text); err != nil {
				return err
			}
			mu.Lock()
			corpus[name] = text
			mu.Unlock()
			log.Info("document loaded", "doc_id", name, "bytes", len(data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, loadError(dir, err)
	}
	log.Info("corpus loaded", "documents", len(corpus), "bytes", corpus.Size())
	return corpus, nil
}

// LoadSQL reads (name, body) rows from table. Duplicate names are rejected.
func LoadSQL(ctx context.Context, db *sql.DB, table string) (ingestion.Corpus, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, apperrors.Newf(apperrors.ErrInvalidInput, apperrors.ExitFailure,
			"invalid corpus table name %q", table)
	}
	log := logger.WithComponent("corpus-loader").With("table", table)

	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT name, body FROM %s", table))
	if err != nil {
		return nil, loadError(table, fmt.Errorf("querying documents: %w", err))
	}
	defer rows.Close()

	corpus := make(ingestion.Corpus)
	for rows.Next() {
		var name, body string
		if err := rows.Scan(&name, &body); err != nil {
			return nil, loadError(table, fmt.Errorf("scanning row: %w", err))
		}
		if err := validator.ValidateDocument(name, body); err != nil {
			return nil, loadError(table, err)
		}
		if _, dup := corpus[name]; dup {
			return nil, loadError(table, fmt.Errorf("duplicate document name %q", name))
		}
		corpus[name] = body
		log.Info("document loaded", "doc_id", name, "bytes", len(body))
	}
	if err := rows.Err(); err != nil {
		return nil, loadError(table, fmt.Errorf("iterating rows: %w", err))
	}
	log.Info("corpus loaded", "documents", len(corpus), "bytes", corpus.Size())
	return corpus, nil
}

func loadError(source string, err error) error {
	return fmt.Errorf("%w: %s: %w", apperrors.ErrCorpusLoad, source, err)
}
