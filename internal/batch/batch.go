// Package batch generates one printable statement per customer of a
// ledger and collects them into a zip archive. Customers with nothing
// outstanding are counted and skipped rather than given empty documents.
package batch

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"statements/internal/core"
	"statements/internal/render"
	"statements/internal/statement"
)

// Options controls one batch run. LedgerName and Now feed the archive
// member names; Workers bounds the per-customer render concurrency.
type Options struct {
	LedgerName string
	Branding   render.Branding
	Workers    int
	Now        time.Time

	// Progress, when set, receives (done, total) after each customer
	// completes. Calls are serialized.
	Progress func(done, total int)
}

// Result is the outcome of a batch run. Generated+Skipped always equals
// the number of distinct customers; nothing is omitted silently.
type Result struct {
	Archive   []byte
	Files     []string
	Generated int
	Skipped   int
}

// Run generates statements for every distinct customer in rows. Each
// customer is aggregated over the unbounded period, so the opening
// balance is always zero and the closing balance equals the outstanding
// due total. A customer whose due total is not positive is skipped.
// Rows that fail normalization degrade field by field like everywhere
// else; they never abort the run.
func Run(ctx context.Context, rows []core.LedgerRow, opts Options) (*Result, error) {
	customers := statement.Customers(rows)
	if len(customers) == 0 {
		return nil, core.ErrNoRows
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	type doc struct {
		name string
		data []byte
	}

	var (
		mu        sync.Mutex
		docs      = make(map[string]doc, len(customers))
		generated atomic.Int64
		skipped   atomic.Int64
		done      atomic.Int64
	)

	report := func() {
		if opts.Progress == nil {
			return
		}
		mu.Lock()
		opts.Progress(int(done.Load()), len(customers))
		mu.Unlock()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for _, customer := range customers {
		customer := customer
		g.Go(func() error {
			defer func() {
				done.Add(1)
				report()
			}()

			// Each worker aggregates its own filtered copy; rows are
			// only ever read.
			st, err := statement.Aggregate(rows, customer, statement.Period{})
			if err != nil {
				skipped.Add(1)
				slog.WarnContext(ctx, "Skipping customer", "customer", customer, "reason", err)
				return nil
			}
			if !st.TotalDue.IsPositive() {
				skipped.Add(1)
				slog.DebugContext(ctx, "Skipping customer with nothing outstanding", "customer", customer)
				return nil
			}

			data, err := render.PDF(st, opts.Branding, opts.Now)
			if err != nil {
				return fmt.Errorf("render %s: %w", customer, err)
			}
			name := memberName(customer, opts.LedgerName, opts.Now)
			mu.Lock()
			docs[customer] = doc{name: name, data: data}
			mu.Unlock()
			generated.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Archive assembly happens on one goroutine, in customer order,
	// so member order is deterministic.
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	var files []string
	for _, customer := range customers {
		d, ok := docs[customer]
		if !ok {
			continue
		}
		w, err := zw.Create(d.name)
		if err != nil {
			return nil, fmt.Errorf("archive %s: %w", d.name, err)
		}
		if _, err := w.Write(d.data); err != nil {
			return nil, fmt.Errorf("archive %s: %w", d.name, err)
		}
		files = append(files, d.name)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}

	res := &Result{
		Archive:   buf.Bytes(),
		Files:     files,
		Generated: int(generated.Load()),
		Skipped:   int(skipped.Load()),
	}
	slog.InfoContext(ctx, "Batch run complete",
		"ledger", opts.LedgerName, "customers", len(customers),
		"generated", res.Generated, "skipped", res.Skipped)
	return res, nil
}

// memberName builds the archive file name carrying customer, ledger and
// generation date.
func memberName(customer, ledger string, now time.Time) string {
	date := now.Format(core.DisplayDateLayout)
	return fmt.Sprintf("%s_%s_Statement_%s.pdf", sanitize(customer), sanitize(ledger), date)
}

// sanitize keeps archive member names filesystem-safe.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	repl := strings.NewReplacer("/", "-", "\\", "-", ":", "-", "*", "", "?", "", "\"", "", "<", "", ">", "", "|", "")
	return repl.Replace(s)
}
