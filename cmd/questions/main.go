// questions answers a free-text question from a corpus of documents. It
// ranks documents by TF-IDF, then ranks the sentences of the best documents
// by IDF with query-term density as the tiebreak, and prints the best
// sentences one per line.
//
// The corpus is a directory of text files, a sqlite://<path> database or a
// postgres:// URL; SQL sources are read from a (name, body) table.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/Adithya-Monish-Kumar-K/corpus-questions/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/internal/ingestion/loader"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/corpus-questions/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/corpus-questions/pkg/metrics"
)

const usageLine = "Usage: questions [flags] corpus"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		if !errors.Is(err, apperrors.ErrUsage) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(apperrors.ExitCode(err))
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var configPath string
	var fileMatches, sentenceMatches int

	flagSet := pflag.NewFlagSet("questions", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&configPath, "config", "", "path to YAML config file")
	flagSet.IntVar(&fileMatches, "files", 1, "number of documents searched for answer sentences")
	flagSet.IntVar(&sentenceMatches, "sentences", 1, "number of answer sentences printed")
	flagSet.Usage = func() {
		fmt.Fprintln(stderr, usageLine)
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return apperrors.New(apperrors.ErrUsage, apperrors.ExitUsage, err.Error())
	}
	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return apperrors.Newf(apperrors.ErrUsage, apperrors.ExitUsage,
			"expected 1 corpus argument, got %d", flagSet.NArg())
	}
	location := flagSet.Arg(0)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagSet.Changed("files") {
		cfg.Search.FileMatches = fileMatches
	}
	if flagSet.Changed("sentences") {
		cfg.Search.SentenceMatches = sentenceMatches
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	m := metrics.New()
	if cfg.Metrics.Textfile != "" {
		defer func() {
			if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
				slog.Error("failed to write metrics textfile", "path", cfg.Metrics.Textfile, "error", err)
			}
		}()
	}

	corpus, err := loader.Open(ctx, location, cfg)
	if err != nil {
		return err
	}
	m.DocumentsLoaded.Set(float64(len(corpus)))
	m.CorpusBytes.Set(float64(corpus.Size()))

	tok := tokenizer.New(
		tokenizer.WithStemming(cfg.Tokenizer.Stem),
		tokenizer.WithStopWords(cfg.Tokenizer.ExtraStopwords...),
	)
	engine := indexer.NewEngine(corpus, tok)
	m.VocabularySize.Set(float64(engine.Index().VocabularySize()))
	m.IndexBuildSeconds.Set(engine.BuildTime().Seconds())

	var collector *analytics.Collector
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.QueryEvents)
		defer producer.Close()
		collector = analytics.NewCollector(producer, 16)
		collector.Start(ctx)
		defer collector.Close()
		slog.Info("query events enabled", "topic", cfg.Kafka.Topics.QueryEvents)
	}

	query, err := readQuery(ctx, stdin, stdout)
	if err != nil {
		return err
	}

	exec := executor.New(engine, executor.Limits{
		FileMatches:     cfg.Search.FileMatches,
		SentenceMatches: cfg.Search.SentenceMatches,
	}, m, collector)
	answer, err := exec.Execute(ctx, parser.Parse(tok, query))
	if err != nil {
		return fmt.Errorf("answering query: %w", err)
	}
	for _, sentence := range answer.Sentences {
		fmt.Fprintln(stdout, sentence)
	}
	return nil
}

// readQuery prompts on stdout and reads one line from stdin. A final line
// without a newline is accepted; no input at all is an error. Cancelling ctx
// abandons the read.
func readQuery(ctx context.Context, stdin io.Reader, stdout io.Writer) (string, error) {
	fmt.Fprint(stdout, "Query: ")

	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		done <- result{line: line, err: err}
	}()

	var res result
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("reading query: %w", ctx.Err())
	case res = <-done:
	}
	if res.err != nil && !(errors.Is(res.err, io.EOF) && res.line != "") {
		if errors.Is(res.err, io.EOF) {
			return "", apperrors.New(apperrors.ErrInvalidInput, apperrors.ExitFailure, "no query on standard input")
		}
		return "", fmt.Errorf("reading query: %w", res.err)
	}
	return strings.TrimRight(res.line, "\r\n"), nil
}
