package cli

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ahmedwaqar/oblige/internal/journal"
)

// RunDetail is the JSON payload for runs show.
type RunDetail struct {
	Run       journal.Run              `json:"run"`
	Attempts  []journal.Attempt        `json:"attempts"`
	Artifacts []journal.ArtifactRecord `json:"artifacts"`
}

// NewRunsCommand creates the runs command group.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	var journalPath string

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded journal runs",
	}

	cmd.PersistentFlags().StringVar(&journalPath, "journal", "", "journal database path (required)")

	cmd.AddCommand(newRunsListCommand(rootOpts, &journalPath))
	cmd.AddCommand(newRunsShowCommand(rootOpts, &journalPath))

	return cmd
}

func newRunsListCommand(rootOpts *RootOptions, journalPath *string) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List recorded runs in chronological order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsList(rootOpts, *journalPath, cmd)
		},
	}
}

func newRunsShowCommand(rootOpts *RootOptions, journalPath *string) *cobra.Command {
	return &cobra.Command{
		Use:           "show <token>",
		Short:         "Show one run's attempts and artifacts",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsShow(rootOpts, *journalPath, args[0], cmd)
		},
	}
}

func openJournalForCommand(formatter *OutputFormatter, path string) (*journal.Journal, error) {
	if path == "" {
		_ = formatter.Error(ErrCodeJournal, "--journal is required", nil)
		return nil, NewExitError(ExitCommandError, "--journal is required")
	}
	j, err := journal.Open(path)
	if err != nil {
		_ = formatter.Error(ErrCodeJournal, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, ErrCodeJournal, err)
	}
	return j, nil
}

func runRunsList(opts *RootOptions, journalPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	j, err := openJournalForCommand(formatter, journalPath)
	if err != nil {
		return err
	}
	defer j.Close()

	runs, err := j.ListRuns(cmd.Context())
	if err != nil {
		_ = formatter.Error(ErrCodeJournal, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeJournal, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "no runs recorded")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(formatter.Writer, "%s  %s  %s\n", r.Token, r.Ledger, r.StartedAt)
	}
	return nil
}

func runRunsShow(opts *RootOptions, journalPath, token string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	j, err := openJournalForCommand(formatter, journalPath)
	if err != nil {
		return err
	}
	defer j.Close()

	ctx := cmd.Context()

	run, err := j.ReadRun(ctx, token)
	if errors.Is(err, sql.ErrNoRows) {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("run not found: %s", token), nil)
		return NewExitError(ExitCommandError, "run not found")
	}
	if err != nil {
		_ = formatter.Error(ErrCodeJournal, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeJournal, err)
	}

	attempts, err := j.ReadAttempts(ctx, token)
	if err != nil {
		_ = formatter.Error(ErrCodeJournal, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeJournal, err)
	}
	artifacts, err := j.ReadArtifacts(ctx, token)
	if err != nil {
		_ = formatter.Error(ErrCodeJournal, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeJournal, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(RunDetail{Run: run, Attempts: attempts, Artifacts: artifacts})
	}

	fmt.Fprintf(formatter.Writer, "run %s\n", run.Token)
	fmt.Fprintf(formatter.Writer, "ledger %s  started %s  engine %s  ir %s\n",
		run.Ledger, run.StartedAt, run.EngineVersion, run.IRVersion)

	for _, a := range attempts {
		status := "ok"
		if !a.OK {
			status = "FAILED"
		}
		fmt.Fprintf(formatter.Writer, "  #%d %-6s %s: %s\n", a.Seq, status, a.Obligation, a.Statement)
		if a.Diagnostic != "" {
			fmt.Fprintf(formatter.Writer, "       %s\n", a.Diagnostic)
		}
	}
	for _, a := range artifacts {
		fmt.Fprintf(formatter.Writer, "  #%d artifact %s <- %s\n", a.Seq, a.Name, a.Source)
	}
	return nil
}
