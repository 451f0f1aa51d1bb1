package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ahmedwaqar/oblige/internal/compiler"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                       `json:"valid"`
	Ledger string                     `json:"ledger,omitempty"`
	Errors []compiler.ValidationError `json:"errors,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <ledger>",
		Short: "Validate a ledger without proving it",
		Long: `Compile a CUE ledger and run semantic validation without attempting any
proofs. Faster than prove for development feedback.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
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

	formatter.VerboseLog("Checking ledger %q (%d obligations)", compiled.Name, len(compiled.Obligations))

	validationErrors := compiler.ValidateLedger(compiled)
	if len(validationErrors) > 0 {
		return outputValidationErrors(formatter, compiled.Name, validationErrors)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Ledger: compiled.Name})
	}
	fmt.Fprintf(formatter.Writer, "✓ ledger %q valid (%d obligations)\n", compiled.Name, len(compiled.Obligations))
	return nil
}

// loadForCommand loads a ledger and converts load errors into command-level
// exit errors with formatted output. Shared by check, prove, and emit.
func loadForCommand(formatter *OutputFormatter, path string) (*compiler.Compiled, error) {
	compiled, err := LoadLedger(path)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
			return nil, WrapExitError(ExitCommandError, loadErr.Code, err)
		}
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, ErrCodeGeneric, err)
	}
	return compiled, nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, ledgerName string, errs []compiler.ValidationError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Ledger: ledgerName, Errors: errs},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n", err.Code, err.Field, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
