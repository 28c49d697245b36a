// Package orchestrator sequences a token lookup.
// Flow: metadata address → (mint ∥ metadata) → off-chain document → DNS → report
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"solana-token-info/internal/domain"
	"solana-token-info/internal/observability"
	"solana-token-info/internal/solana"
	"solana-token-info/internal/token"
)

// Stage names used in errors, logs and metrics.
const (
	StageDerive   = "derive"
	StageMint     = "mint"
	StageMetadata = "metadata"
	StageOffChain = "offchain"
	StageDNS      = "dns"
)

// Orchestrator errors.
var (
	// ErrOnChain wraps every failure that aborts a run.
	ErrOnChain = errors.New("on-chain lookup failed")

	// ErrMetadataMismatch is returned when the metadata account belongs to another mint.
	ErrMetadataMismatch = errors.New("metadata account does not belong to mint")
)

// OnChainReader reads the two on-chain records of a token.
type OnChainReader interface {
	ReadMint(ctx context.Context, address solana.PublicKey) (*domain.MintRecord, error)
	ReadMetadata(ctx context.Context, address solana.PublicKey) (*domain.MetadataRecord, error)
}

// OffChainFetcher downloads the document the metadata URI points to.
type OffChainFetcher interface {
	Fetch(ctx context.Context, uri string) (*domain.OffChainMetadata, error)
}

// RecordCounter counts DNS IP records for a website.
type RecordCounter interface {
	CountRecords(ctx context.Context, website string) (int, error)
}

// Orchestrator coordinates one token lookup.
type Orchestrator struct {
	reader  OnChainReader
	fetcher OffChainFetcher
	counter RecordCounter
	metrics *observability.Metrics
	logger  logrus.FieldLogger
}

// Options for creating Orchestrator.
type Options struct {
	// Required collaborators
	Reader  OnChainReader
	Fetcher OffChainFetcher
	Counter RecordCounter

	// Optional
	Metrics *observability.Metrics
	Logger  logrus.FieldLogger
}

// New creates a new Orchestrator.
func New(opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	return &Orchestrator{
		reader:  opts.Reader,
		fetcher: opts.Fetcher,
		counter: opts.Counter,
		metrics: opts.Metrics,
		logger:  logger,
	}
}

// Run resolves everything known about mint.
// Only on-chain failures are returned; off-chain and DNS failures leave
// the corresponding report fields nil.
func (o *Orchestrator) Run(ctx context.Context, mint solana.PublicKey) (*domain.TokenReport, error) {
	log := o.logger.WithField("mint", mint.String())

	// Step 1: derive metadata address
	metadataAddr, err := solana.MetadataAddress(mint)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOnChain, StageDerive, err)
	}
	log.WithField("metadata", metadataAddr.String()).Debug("Derived metadata address")

	// Step 2: read mint and metadata accounts concurrently
	mintRec, metaRec, err := o.readOnChain(ctx, mint, metadataAddr)
	if err != nil {
		return nil, err
	}

	report := &domain.TokenReport{
		Mint:            mint,
		Name:            metaRec.Name,
		Symbol:          metaRec.Symbol,
		Supply:          mintRec.Supply,
		Decimals:        mintRec.Decimals,
		MintAuthority:   mintRec.MintAuthority,
		FreezeAuthority: mintRec.FreezeAuthority,
	}

	// Step 3: off-chain document. DNS needs its website, so it runs first.
	doc, ok := bestEffort(ctx, o, log, StageOffChain, func(ctx context.Context) (*domain.OffChainMetadata, error) {
		return o.fetcher.Fetch(ctx, token.TrimPadding(metaRec.URI))
	})
	if !ok || doc == nil {
		doc = &domain.OffChainMetadata{}
	}
	report.Description = doc.Description
	report.Image = doc.Image
	report.Website = doc.Website

	// Step 4: DNS records for the website, if any
	if doc.Website != nil {
		website := *doc.Website
		count, ok := bestEffort(ctx, o, log, StageDNS, func(ctx context.Context) (int, error) {
			return o.counter.CountRecords(ctx, website)
		})
		if ok {
			report.DNSRecords = &count
		}
	}

	return report, nil
}

// readOnChain issues both account reads on the same client and waits for both.
func (o *Orchestrator) readOnChain(ctx context.Context, mint, metadataAddr solana.PublicKey) (*domain.MintRecord, *domain.MetadataRecord, error) {
	var (
		mintRec *domain.MintRecord
		metaRec *domain.MetadataRecord
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		start := time.Now()
		rec, err := o.reader.ReadMint(gctx, mint)
		o.observe(StageMint, err, start)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrOnChain, StageMint, err)
		}
		mintRec = rec
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		rec, err := o.reader.ReadMetadata(gctx, metadataAddr)
		if err == nil && rec.Mint != mint {
			err = fmt.Errorf("%w: account %s names mint %s", ErrMetadataMismatch, metadataAddr, rec.Mint)
		}
		o.observe(StageMetadata, err, start)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrOnChain, StageMetadata, err)
		}
		metaRec = rec
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return mintRec, metaRec, nil
}

func (o *Orchestrator) observe(stage string, err error, start time.Time) {
	result := observability.ResultOK
	if err != nil {
		result = observability.ResultError
	}
	o.metrics.ObserveStage(stage, result, time.Since(start))
}

// bestEffort runs fn and collapses any error into ok=false.
// The error is logged at debug level and counted as degraded.
func bestEffort[T any](ctx context.Context, o *Orchestrator, log logrus.FieldLogger, stage string, fn func(context.Context) (T, error)) (T, bool) {
	start := time.Now()
	v, err := fn(ctx)
	if err != nil {
		o.metrics.ObserveStage(stage, observability.ResultDegraded, time.Since(start))
		log.WithError(err).WithField("stage", stage).Debug("Stage unavailable")
		var zero T
		return zero, false
	}
	o.metrics.ObserveStage(stage, observability.ResultOK, time.Since(start))
	return v, true
}
