package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ahmedwaqar/oblige/internal/artifact"
	"github.com/ahmedwaqar/oblige/internal/compiler"
	"github.com/ahmedwaqar/oblige/internal/oracle"
	"github.com/ahmedwaqar/oblige/internal/prover"
)

// EmittedArtifact is one artifact descriptor in emit output.
type EmittedArtifact struct {
	Name      string   `json:"name"`
	Source    string   `json:"source"`
	Statement string   `json:"statement"`
	Local     bool     `json:"local"`
	Enabled   bool     `json:"enabled"`
	Classes   []string `json:"classes"`
}

// EmitResult is the success payload for the emit command.
type EmitResult struct {
	Ledger    string              `json:"ledger"`
	RunToken  string              `json:"run_token,omitempty"`
	Names     []artifact.NamePair `json:"names"`
	Artifacts []EmittedArtifact   `json:"artifacts"`
}

// NewEmitCommand creates the emit command.
func NewEmitCommand(rootOpts *RootOptions) *cobra.Command {
	var journalPath string
	var avoid []string

	cmd := &cobra.Command{
		Use:   "emit <ledger>",
		Short: "Prove a ledger and emit artifact descriptors",
		Long: `Prove every obligation in a CUE ledger and, if all are discharged,
generate one artifact descriptor per obligation under fresh collision-free
names. Names already taken in the host world are passed with --avoid; each
generated name also avoids the ones generated before it in the same batch.

Nothing is emitted if any obligation fails.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(rootOpts, args[0], journalPath, avoid, cmd)
		},
	}

	cmd.Flags().StringVar(&journalPath, "journal", "", "record attempts and artifacts to a journal database at this path")
	cmd.Flags().StringSliceVar(&avoid, "avoid", nil, "names already taken in the host world")

	return cmd
}

func runEmit(opts *RootOptions, path, journalPath string, avoid []string, cmd *cobra.Command) error {
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

	names, arts, err := artifact.BuildBatchSeqs(
		compiled.Obligations, compiled.Locals, compiled.Enableds, compiled.Classes,
		artifact.NewNameSet(avoid...))
	if err != nil {
		_ = formatter.Error(ErrCodeEmitFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeEmitFailed, err)
	}

	if recorder != nil {
		for _, a := range arts {
			recorder.RecordBuilt(a)
		}
		if werr := recorder.Err(); werr != nil {
			_ = formatter.Error(ErrCodeJournal, werr.Error(), nil)
			return WrapExitError(ExitCommandError, ErrCodeJournal, werr)
		}
	}

	result := EmitResult{Ledger: compiled.Name, Names: names}
	if recorder != nil {
		result.RunToken = recorder.Token()
	}
	for _, a := range arts {
		classes := make([]string, len(a.Classes))
		for i, c := range a.Classes {
			classes[i] = string(c)
		}
		result.Artifacts = append(result.Artifacts, EmittedArtifact{
			Name:      a.Name,
			Source:    a.Source,
			Statement: a.Statement.String(),
			Local:     a.Local,
			Enabled:   a.Enabled,
			Classes:   classes,
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ all %d obligations discharged\n", len(compiled.Obligations))
	if result.RunToken != "" {
		fmt.Fprintf(formatter.Writer, "run %s\n", result.RunToken)
	}
	for _, a := range result.Artifacts {
		flags := describeFlags(a)
		fmt.Fprintf(formatter.Writer, "  %s <- %s  %s\n", a.Name, a.Source, flags)
	}
	return nil
}

func describeFlags(a EmittedArtifact) string {
	var parts []string
	if a.Local {
		parts = append(parts, "local")
	}
	if !a.Enabled {
		parts = append(parts, "disabled")
	}
	if len(a.Classes) > 0 {
		parts = append(parts, "["+strings.Join(a.Classes, " ")+"]")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
