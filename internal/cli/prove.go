package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ahmedwaqar/oblige/internal/compiler"
	"github.com/ahmedwaqar/oblige/internal/journal"
	"github.com/ahmedwaqar/oblige/internal/oracle"
	"github.com/ahmedwaqar/oblige/internal/prover"
)

// ProveResult is the success payload for the prove command.
type ProveResult struct {
	Ledger      string `json:"ledger"`
	Obligations int    `json:"obligations"`
	RunToken    string `json:"run_token,omitempty"`
}

// NewProveCommand creates the prove command.
func NewProveCommand(rootOpts *RootOptions) *cobra.Command {
	var journalPath string

	cmd := &cobra.Command{
		Use:   "prove <ledger>",
		Short: "Prove every obligation in a ledger",
		Long: `Compile a CUE ledger, validate it, and attempt every obligation strictly
in order against the built-in evaluating oracle. The run aborts at the
first obligation that does not hold and its diagnostic is printed verbatim.

With --journal, every attempt is recorded under a fresh run token.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProve(rootOpts, args[0], journalPath, cmd)
		},
	}

	cmd.Flags().StringVar(&journalPath, "journal", "", "record attempts to a journal database at this path")

	return cmd
}

func runProve(opts *RootOptions, path, journalPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	compiled, err := loadForCommand(formatter, path)
	if err != nil {
		return err
	}
	if validationErrors := compiler.ValidateLedger(compiled); len(validationErrors) > 0 {
		return outputValidationErrors(formatter, compiled.Name, validationErrors)
	}

	recorder, closeJournal, err := openRecorder(cmd, formatter, journalPath, compiled.Name)
	if err != nil {
		return err
	}
	defer closeJournal()

	proveOpts := prover.Options{
		Verbose:  opts.Verbose,
		Notifier: prover.WriterNotifier{W: formatter.GetErrWriter()},
	}
	if recorder != nil {
		proveOpts.Observer = recorder
	}

	if err := prover.Enforce(cmd.Context(), compiled.Obligations, oracle.NewEval(), proveOpts); err != nil {
		_ = formatter.Error(ErrCodeProofFailed, err.Error(), nil)
		return WrapExitError(ExitFailure, ErrCodeProofFailed, err)
	}

	if recorder != nil {
		if werr := recorder.Err(); werr != nil {
			_ = formatter.Error(ErrCodeJournal, werr.Error(), nil)
			return WrapExitError(ExitCommandError, ErrCodeJournal, werr)
		}
	}

	result := ProveResult{Ledger: compiled.Name, Obligations: len(compiled.Obligations)}
	if recorder != nil {
		result.RunToken = recorder.Token()
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ all %d obligations discharged\n", result.Obligations)
	if result.RunToken != "" {
		fmt.Fprintf(formatter.Writer, "run %s\n", result.RunToken)
	}
	return nil
}

// openRecorder opens the journal and starts a run when a path is given.
// The returned cleanup is always safe to call.
func openRecorder(cmd *cobra.Command, formatter *OutputFormatter, journalPath, ledgerName string) (*journal.Recorder, func(), error) {
	if journalPath == "" {
		return nil, func() {}, nil
	}

	j, err := journal.Open(journalPath)
	if err != nil {
		_ = formatter.Error(ErrCodeJournal, err.Error(), nil)
		return nil, func() {}, WrapExitError(ExitCommandError, ErrCodeJournal, err)
	}

	recorder, err := j.StartRun(cmd.Context(), journal.UUIDv7Generator{}, ledgerName)
	if err != nil {
		j.Close()
		_ = formatter.Error(ErrCodeJournal, err.Error(), nil)
		return nil, func() {}, WrapExitError(ExitCommandError, ErrCodeJournal, err)
	}

	return recorder, func() { j.Close() }, nil
}
