// Package translate implements the incremental translation engine: it
// executes a worklist produced by the plan package, calling an external
// translation capability for each key that needs work, retrying transient
// failures with linear backoff, and accumulating a merged output document
// plus per-key statistics.
package translate

import (
	"context"
	"time"

	"github.com/intellator/intellator/jsonfile"
	"github.com/intellator/intellator/plan"
)

// Translator is the external translation capability for one fixed
// (source, target) language pair. Failures are opaque: the engine does not
// distinguish failure kinds, it only counts attempts.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(ctx context.Context, text string) (string, error)

// Translate calls f.
func (f TranslatorFunc) Translate(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Options controls the engine's behavior.
type Options struct {
	// MaxRetries is the number of attempts per key. Default: 3.
	MaxRetries int
	// RetryDelay is the backoff unit: the wait before attempt n (n >= 2)
	// is RetryDelay * (n - 1). Default: 1 second.
	RetryDelay time.Duration
	// OnProgress is called once per processed item, regardless of outcome.
	// done increases monotonically from 1 to total.
	OnProgress func(key string, action plan.Action, done, total int)
	// OnLog emits log messages during translation.
	OnLog func(format string, args ...any)
	// Verbose enables per-key log output.
	Verbose bool
}

func (o *Options) effectiveMaxRetries() int {
	if o.MaxRetries > 0 {
		return o.MaxRetries
	}
	return 3
}

func (o *Options) effectiveRetryDelay() time.Duration {
	if o.RetryDelay > 0 {
		return o.RetryDelay
	}
	return time.Second
}

func (o *Options) log(format string, args ...any) {
	if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

func (o *Options) progress(key string, action plan.Action, done, total int) {
	if o.OnProgress != nil {
		o.OnProgress(key, action, done, total)
	}
}

// sleepFn waits for d or until the context is cancelled. Overridden in
// tests to avoid real backoff delays.
var sleepFn = func(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// retryPolicy is the per-key retry behavior: a fixed number of attempts
// with a linearly growing wait between them.
type retryPolicy struct {
	maxAttempts int
	baseDelay   time.Duration
}

// delayBefore returns the wait inserted before the given attempt
// (1-based). The first attempt never waits.
func (r retryPolicy) delayBefore(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}
	return r.baseDelay * time.Duration(attempt-1)
}

// Run executes the worklist strictly in order and returns the merged
// document and the run's statistics.
//
// Per-key translation failures are never fatal: after the retry budget is
// exhausted the original value is kept (the key is never dropped) and the
// key is recorded in the failed bucket. The only error Run returns is
// context cancellation.
func Run(ctx context.Context, items []plan.Item, tr Translator, opts Options) (*jsonfile.Document, *Stats, error) {
	start := time.Now()

	merged := jsonfile.New()
	stats := &Stats{TotalKeys: len(items)}
	policy := retryPolicy{
		maxAttempts: opts.effectiveMaxRetries(),
		baseDelay:   opts.effectiveRetryDelay(),
	}

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		switch item.Action {
		case plan.Reuse:
			merged.Set(item.Key, item.Value)
			stats.Skipped.add(item.Key)

		case plan.Passthrough:
			merged.Set(item.Key, item.Value)
			stats.Passthrough.add(item.Key)

		case plan.Translate:
			translated, err := translateWithRetry(ctx, tr, item.Value.Str, policy, &opts)
			if err != nil {
				if ctx.Err() != nil {
					return nil, nil, ctx.Err()
				}
				// Keep the original value so no key is ever dropped.
				merged.Set(item.Key, item.Value)
				stats.Failed.add(item.Key)
				if opts.Verbose {
					opts.log("failed to translate %q after %d attempts: %v", item.Key, policy.maxAttempts, err)
				}
			} else {
				merged.Set(item.Key, jsonfile.String(translated))
				stats.Translated.add(item.Key)
			}
		}

		opts.progress(item.Key, item.Action, i+1, len(items))
	}

	stats.Elapsed = time.Since(start)
	return merged, stats, nil
}

// translateWithRetry attempts one translation up to policy.maxAttempts
// times, sleeping policy.delayBefore(n) before attempt n.
func translateWithRetry(ctx context.Context, tr Translator, text string, policy retryPolicy, opts *Options) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= policy.maxAttempts; attempt++ {
		if wait := policy.delayBefore(attempt); wait > 0 {
			if opts.Verbose {
				opts.log("retry %d/%d after %v", attempt-1, policy.maxAttempts, wait)
			}
			if err := sleepFn(ctx, wait); err != nil {
				return "", err
			}
		}

		translated, err := tr.Translate(ctx, text)
		if err == nil {
			return translated, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return "", lastErr
}
