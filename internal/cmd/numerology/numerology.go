// Package numerology builds the numerology command line: one-shot profile,
// reduction and interpretation lookups computed in process.
package numerology

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/louisbranch/mysticnumbers/internal/numerology"
	apperrors "github.com/louisbranch/mysticnumbers/internal/platform/errors"
	"github.com/louisbranch/mysticnumbers/internal/platform/i18n/catalog"
	calculator "github.com/louisbranch/mysticnumbers/internal/services/calculator/domain"
	"github.com/spf13/cobra"
)

// maxRevealDelay bounds the optional pause before a profile is printed.
const maxRevealDelay = 5 * time.Second

// app carries the state shared by every subcommand.
type app struct {
	svc        *calculator.Service
	catalogDir string
	jsonOutput bool
	locale     string

	title   lipgloss.Style
	number  lipgloss.Style
	muted   lipgloss.Style
	heading lipgloss.Style
}

// NewRootCommand returns the numerology command tree writing results to out
// and progress messages to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	root, _ := newRootCommand(out, errOut)
	return root
}

func newRootCommand(out, errOut io.Writer) (*cobra.Command, *app) {
	a := &app{}
	renderer := lipgloss.NewRenderer(out)
	a.heading = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	a.title = renderer.NewStyle().Bold(true)
	a.number = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	a.muted = renderer.NewStyle().Faint(true)

	root := &cobra.Command{
		Use:   "numerology",
		Short: "Compute Pythagorean numerology profiles",
		Long: `numerology computes the six core numbers of a birth date and name
(life path, birthday, attitude, expression, soul urge, personality) and
prints their interpretations in English, Vietnamese, Italian or Japanese.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadService()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&a.catalogDir, "catalog-dir", "", "Directory holding a locales/ catalog tree that replaces the embedded catalogs")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Print results as JSON")
	root.PersistentFlags().StringVar(&a.locale, "lang", "", "Output locale: en-US, vi-VN, it-IT or ja-JP")

	root.AddCommand(
		a.profileCommand(),
		a.reduceCommand(),
		a.describeCommand(),
		a.localesCommand(),
	)
	return root, a
}

// Execute runs the command tree with args and returns the process exit code.
// Failures are printed to errOut in the requested locale.
func Execute(ctx context.Context, args []string, out, errOut io.Writer) int {
	root, a := newRootCommand(out, errOut)
	root.SetArgs(args)
	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}
	var locale string
	if cmd != nil {
		locale, _ = cmd.Flags().GetString("lang")
	}
	fmt.Fprintf(errOut, "numerology: %s\n", a.errorMessage(err, locale))
	return 1
}

// errorMessage localizes coded errors with the catalogs in use, so
// --catalog-dir overrides apply to error texts too.
func (a *app) errorMessage(err error, locale string) string {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		return err.Error()
	}
	svc := a.svc
	if svc == nil {
		svc = calculator.NewService(nil, nil)
	}
	return apperrors.UserMessage(err, svc.ErrorCatalog(locale))
}

func (a *app) loadService() error {
	if a.svc != nil {
		return nil
	}
	if strings.TrimSpace(a.catalogDir) == "" {
		a.svc = calculator.NewService(nil, nil)
		return nil
	}
	bundle, err := catalog.LoadDir(a.catalogDir)
	if err != nil {
		return fmt.Errorf("load catalogs: %w", err)
	}
	a.svc = calculator.NewService(catalog.NewHolder(bundle), nil)
	return nil
}

func (a *app) profileCommand() *cobra.Command {
	var (
		in          calculator.ProfileInput
		revealDelay time.Duration
	)
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Compute the six core numbers for a birth date and name",
		Example: `  numerology profile --birth-date 1990-05-15 --name "John Smith"
  numerology profile --birth-date 1987-11-29 --lang ja --reveal-delay 2s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.Locale = a.locale
			view, err := a.svc.ComputeProfile(cmd.Context(), in)
			if err != nil {
				return err
			}
			if revealDelay > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), a.svc.Text(view.Locale, "core.reveal.calculating"))
				if err := wait(cmd.Context(), min(revealDelay, maxRevealDelay)); err != nil {
					return err
				}
			}
			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), view)
			}
			a.printProfile(cmd.OutOrStdout(), view)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.BirthDate, "birth-date", "", "Birth date as YYYY-MM-DD")
	cmd.Flags().StringVar(&in.Name, "name", "", "Full name; letters outside A-Z are folded or ignored")
	cmd.Flags().BoolVar(&in.KeepMasters, "keep-masters", false, "Stop reducing at master numbers 11, 22 and 33")
	cmd.Flags().DurationVar(&revealDelay, "reveal-delay", 0, "Pause before printing the profile, at most 5s")
	return cmd
}

func (a *app) reduceCommand() *cobra.Command {
	var keepMasters bool
	cmd := &cobra.Command{
		Use:     "reduce NUMBER",
		Short:   "Reduce a whole number to a single digit",
		Example: "  numerology reduce 1990\n  numerology reduce 29 --keep-masters",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := calculator.ParseNumber(args[0])
			if err != nil {
				return err
			}
			view, err := a.svc.Reduce(cmd.Context(), calculator.ReduceInput{Number: n, KeepMasters: keepMasters})
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), view)
			}
			out := cmd.OutOrStdout()
			for _, step := range view.Steps {
				fmt.Fprintln(out, step)
			}
			fmt.Fprintln(out, a.number.Render(fmt.Sprint(view.Result)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&keepMasters, "keep-masters", false, "Stop reducing at master numbers 11, 22 and 33")
	return cmd
}

func (a *app) describeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe CATEGORY NUMBER",
		Short: "Print the interpretation of a number",
		Long: `Print the interpretation of NUMBER in CATEGORY, one of lifePath,
birthday, attitude, expression, soulUrge or personality.`,
		Example: "  numerology describe lifePath 7 --lang it",
		Args:    cobra.ExactArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var names []string
			for _, category := range numerology.Categories() {
				names = append(names, string(category))
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := calculator.ParseNumber(args[1])
			if err != nil {
				return err
			}
			entry, err := a.svc.Describe(cmd.Context(), calculator.DescribeInput{Category: args[0], Number: n, Locale: a.locale})
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), entry)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", a.title.Render(entry.Title), a.number.Render(fmt.Sprint(entry.Number)))
			fmt.Fprintln(out, entry.Text)
			return nil
		},
	}
}

func (a *app) localesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the supported output locales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			locales, err := a.svc.Locales(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), locales)
			}
			for _, locale := range locales {
				marker := ""
				if locale.Default {
					marker = a.muted.Render(" (default)")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s%s\n", locale.Tag, locale.Name, marker)
			}
			return nil
		},
	}
}

func (a *app) printProfile(out io.Writer, view calculator.ProfileView) {
	fmt.Fprintln(out, a.heading.Render(a.svc.Text(view.Locale, "core.app.title")))
	fmt.Fprintf(out, "%s  %s\n", view.BirthDate, view.Name)

	interpretations := make(map[numerology.Category]string, len(view.Interpretations))
	for _, entry := range view.Interpretations {
		interpretations[entry.Category] = entry.Text
	}
	for _, trace := range view.Traces {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s %s\n", a.title.Render(trace.Title), a.number.Render(fmt.Sprint(trace.Result)))
		for _, step := range trace.Steps {
			fmt.Fprintln(out, a.muted.Render("  "+step))
		}
		if trace.Note != "" {
			fmt.Fprintln(out, a.muted.Render("  "+trace.Note))
		}
		if text := interpretations[numerology.Category(trace.Category)]; text != "" {
			fmt.Fprintln(out, text)
		}
	}
}

// wait blocks for d or until ctx ends.
func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
