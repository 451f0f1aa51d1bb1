package prover

import (
	"context"
	"fmt"

	"github.com/ahmedwaqar/oblige/internal/ir"
	"github.com/ahmedwaqar/oblige/internal/oracle"
)

// Options configures proof attempts.
type Options struct {
	// Verbose enables progress notifications through Notifier.
	Verbose bool

	// Notifier receives progress lines in verbose mode.
	// Nil means SlogNotifier{} (slog.Default).
	Notifier Notifier

	// Observer, if non-nil, is told the outcome of every attempt.
	Observer Observer
}

func (o Options) notifier() Notifier {
	if o.Notifier != nil {
		return o.Notifier
	}
	return SlogNotifier{}
}

// ProveObligation attempts to discharge one obligation via the oracle.
//
// The outcome is always returned as data, never as a Go error:
//
//   - oracle verdict true  -> success, empty diagnostic
//   - oracle verdict false -> failure, "obligation <name> does not hold: <statement>"
//   - oracle fault         -> failure, "oracle error <err> while proving <name>: <statement>"
//
// The "oracle error" prefix keeps faults distinguishable from genuine
// logical counter-examples in aggregated reports.
//
// In verbose mode a bracketed attempt line is emitted before the oracle call
// and a matching completion line after, so progress output pairs up visually
// when interleaved with oracle output.
func ProveObligation(ctx context.Context, ob ir.Obligation, orc oracle.Oracle, opts Options) ir.Outcome {
	outcome := proveObligation(ctx, ob, orc, opts)
	if opts.Observer != nil {
		opts.Observer.Observe(ob, outcome)
	}
	return outcome
}

func proveObligation(ctx context.Context, ob ir.Obligation, orc oracle.Oracle, opts Options) ir.Outcome {
	if opts.Verbose {
		opts.notifier().Notify(fmt.Sprintf("[attempting %s: %s]", ob.Name, ob.Statement))
	}

	holds, err := orc.Attempt(ctx, ob.Statement, ob.Strategy)
	switch {
	case err != nil:
		if opts.Verbose {
			opts.notifier().Notify(fmt.Sprintf("[%s: oracle error]", ob.Name))
		}
		return ir.Failure(fmt.Sprintf("oracle error %v while proving %s: %s", err, ob.Name, ob.Statement))

	case !holds:
		if opts.Verbose {
			opts.notifier().Notify(fmt.Sprintf("[%s: failed]", ob.Name))
		}
		return ir.Failure(fmt.Sprintf("obligation %s does not hold: %s", ob.Name, ob.Statement))
	}

	if opts.Verbose {
		opts.notifier().Notify(fmt.Sprintf("[%s: done]", ob.Name))
	}
	// Success diagnostic stays empty for now; the field is reserved for
	// success-case reporting.
	return ir.Success()
}
