package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"promptsite/internal/handlers"
	"promptsite/internal/site"
	"promptsite/internal/style"
)

// newRootCmd builds the command tree. open and renderer are injected so
// tests can run against a memory store.
func newRootCmd(open opener, renderer handlers.Renderer) *cobra.Command {
	var (
		verbose  bool
		provider string
	)

	root := &cobra.Command{
		Use:          "sitectl",
		Short:        "Generate and inspect prompt-built sites",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log generation details to stderr")
	root.PersistentFlags().StringVar(&provider, "provider", "", "AI provider to use instead of AI_PROVIDER (openai, gemini, claude, mistral)")

	withProvider := func(ctx context.Context) (*site.Service, func() error, error) {
		return open(ctx, provider)
	}
	root.AddCommand(
		newGenerateCmd(withProvider),
		newListCmd(withProvider),
		newShowCmd(withProvider, renderer),
		newStyleCmd(),
	)
	return root
}

// connector opens the site service with the root command's flags applied.
type connector func(ctx context.Context) (*site.Service, func() error, error)

// withService opens the service for the duration of fn.
func withService(ctx context.Context, open connector, fn func(*site.Service) error) error {
	svc, closeFn, err := open(ctx)
	if err != nil {
		return fmt.Errorf("open site store: %w", err)
	}
	defer func() {
		if closeFn != nil {
			if err := closeFn(); err != nil {
				slog.Warn("close site store", "error", err)
			}
		}
	}()
	return fn(svc)
}

func newGenerateCmd(open connector) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "generate <prompt...>",
		Short: "Generate and store a site from a prompt",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			return withService(cmd.Context(), open, func(svc *site.Service) error {
				created, err := svc.CreateSite(cmd.Context(), prompt)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if asJSON {
					return writeJSON(out, created)
				}
				fmt.Fprintf(out, "%s %s\n", created.Icon, created.Title)
				fmt.Fprintf(out, "  slug:     %s\n", created.Slug)
				fmt.Fprintf(out, "  template: %s\n", created.TemplateID)
				fmt.Fprintf(out, "  url:      %s\n", created.URL())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored record as JSON")
	return cmd
}

func newListCmd(open connector) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored sites, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), open, func(svc *site.Service) error {
				sites, err := svc.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if asJSON {
					return writeJSON(out, sites)
				}
				if len(sites) == 0 {
					fmt.Fprintln(out, "No sites found.")
					return nil
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "SLUG\tTEMPLATE\tTITLE\tCREATED")
				for _, s := range sites {
					fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\n",
						s.Slug, s.TemplateID, s.Icon, s.Title, s.CreatedAt.Format("2006-01-02 15:04"))
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of sites")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")
	return cmd
}

func newShowCmd(open connector, renderer handlers.Renderer) *cobra.Command {
	var (
		asHTML bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Show a stored site record, or render its page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), open, func(svc *site.Service) error {
				page, err := svc.Load(cmd.Context(), args[0])
				if errors.Is(err, site.ErrNotFound) {
					return fmt.Errorf("no site with slug %q", args[0])
				}
				if err != nil {
					return err
				}

				if output != "" {
					return renderToFile(output, renderer, page)
				}

				out := cmd.OutOrStdout()
				if asHTML {
					return renderer.Render(out, page.Site, page.Props, page.Style)
				}
				return writeJSON(out, struct {
					Record any            `json:"record"`
					Style  style.Resolved `json:"resolvedStyle"`
				}{page.Site, page.Style})
			})
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "render the page as HTML")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the rendered page to a file")
	return cmd
}

// renderToFile writes the rendered page to path. A failed close is reported
// since it can lose buffered output.
func renderToFile(path string, renderer handlers.Renderer, page *site.Page) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := renderer.Render(f, page.Site, page.Props, page.Style); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func newStyleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "style <identifier>",
		Short: "Show the style a record without stored style resolves to",
		Long: `Resolve the color scheme and grid layout derived from an identifier.
Records created without a stored style render with this result, keyed by
their title.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := style.Resolve(nil, args[0])
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "palette: %s\n", r.Colors.Name)
			fmt.Fprintf(out, "  background: %s\n", r.Colors.Background)
			fmt.Fprintf(out, "  primary:    %s\n", r.Colors.Primary)
			fmt.Fprintf(out, "  accent:     %s\n", r.Colors.Accent)
			fmt.Fprintf(out, "grid:    %s (%d columns, max %d items)\n", r.Grid.Name, r.Grid.Columns, r.Grid.MaxItems)
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
