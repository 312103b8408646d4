package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/corpora-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/corpora-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/corpora-cli/internal/core/domain"
	"github.com/custodia-labs/corpora-cli/internal/core/ports/driven"
	"github.com/custodia-labs/corpora-cli/internal/core/ports/driving"
	"github.com/custodia-labs/corpora-cli/internal/core/services"
	"github.com/custodia-labs/corpora-cli/internal/readers"
	"github.com/custodia-labs/corpora-cli/internal/readers/remote"
	"github.com/custodia-labs/corpora-cli/internal/scan"
)

var (
	ingestRemote   bool
	ingestFormats  []string
	ingestExclude  []string
	ingestCollapse bool
	ingestOut      string
	ingestSave     bool
	ingestWatch    bool
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [root]",
	Short: "Ingest documents under a directory or base URL into a corpus",
	Long: `Scans the root location for document files, converts each to plain
text, joins sidecar csv/yaml metadata, and reports the assembled corpus.
Unreadable files are listed at the end; they never abort the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestRemote, "remote", false, "Treat root as a base URL with a remote file listing")
	ingestCmd.Flags().StringSliceVar(&ingestFormats, "formats", nil, "Accepted document formats (default: docx,odt,txt,pdf,xml)")
	ingestCmd.Flags().StringSliceVar(&ingestExclude, "exclude", nil, "Exclude globs applied to candidate names")
	ingestCmd.Flags().BoolVar(&ingestCollapse, "collapse-whitespace", false, "Collapse whitespace runs in document content")
	ingestCmd.Flags().StringVarP(&ingestOut, "out", "o", "", "Write the corpus as CSV to this file")
	ingestCmd.Flags().BoolVar(&ingestSave, "save", false, "Persist the run to the local corpora database")
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "Re-run the ingestion when the tree changes (local roots only)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	root := args[0]

	if ingestWatch && ingestRemote {
		return errors.New("--watch requires a local root")
	}

	store, err := configfile.NewSettingsStore("")
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	settings := store.Settings()

	svc := buildImporter(cmd, root, settings)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := ingestOnce(ctx, cmd, svc, root); err != nil {
		return err
	}

	if ingestWatch {
		cmd.Println("Watching for changes. Press Ctrl+C to stop.")
		err := scan.Watch(ctx, root, func() {
			if err := ingestOnce(ctx, cmd, svc, root); err != nil {
				cmd.PrintErrln(errorStyle.Render(err.Error()))
			}
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return nil
}

// buildImporter wires the registry, scanner and optional remote reader
// for one run, merging persisted settings with command flags.
func buildImporter(cmd *cobra.Command, root string, settings configfile.Settings) driving.Importer {
	registry := readers.NewDefault()

	formats := settings.Formats
	if len(ingestFormats) > 0 {
		formats = ingestFormats
	}
	exclude := settings.ExcludePatterns
	if len(ingestExclude) > 0 {
		exclude = ingestExclude
	}
	collapse := settings.CollapseWhitespace || ingestCollapse

	opts := []services.Option{
		services.WithFormats(formats),
		services.WithExcludePatterns(exclude),
		services.WithCollapseWhitespace(collapse),
		services.WithProgress(func(p driving.Progress) {
			cmd.Printf("\r%3.0f%%  %s", p.Fraction*100, p.LastPath)
		}),
	}

	var scanner driven.Scanner
	if ingestRemote {
		scanner = scan.NewRemote(scan.NewListingClient())
		var remoteOpts []remote.Option
		if settings.RemoteTimeoutSeconds > 0 {
			remoteOpts = append(remoteOpts, remote.WithTimeout(time.Duration(settings.RemoteTimeoutSeconds)*time.Second))
		}
		if settings.RemoteFetchRate > 0 {
			remoteOpts = append(remoteOpts, remote.WithFetchRate(settings.RemoteFetchRate))
		}
		opts = append(opts, services.WithRemoteReader(remote.New(registry, remoteOpts...)))
	} else {
		scanner = scan.NewLocal()
	}

	return services.NewImportService(root, registry, scanner, opts...)
}

// ingestOnce runs the pipeline once and reports the outcome.
func ingestOnce(ctx context.Context, cmd *cobra.Command, svc driving.Importer, root string) error {
	started := time.Now()
	result, err := svc.Run(ctx)
	cmd.Println()
	if err != nil {
		if errors.Is(err, domain.ErrNoDocuments) {
			return fmt.Errorf("no documents found under %s", root)
		}
		return err
	}

	printSummary(cmd, result)

	if result.Cancelled || result.Corpus == nil {
		return nil
	}

	if ingestOut != "" {
		if err := writeCSV(ingestOut, result.Corpus); err != nil {
			return fmt.Errorf("write %s: %w", ingestOut, err)
		}
		cmd.Printf("Corpus written to %s\n", ingestOut)
	}

	if ingestSave {
		store, err := sqlite.NewStore("")
		if err != nil {
			return fmt.Errorf("open corpora database: %w", err)
		}
		defer store.Close()
		run := &driven.RunRecord{
			ID:        uuid.New().String(),
			Root:      root,
			StartedAt: started,
			Corpus:    result.Corpus,
			Errors:    result.Errors,
		}
		if err := store.SaveRun(ctx, run); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		cmd.Printf("Run %s saved to %s\n", run.ID, store.Path())
	}

	return nil
}

// printSummary renders the corpus shape and the per-file errors.
func printSummary(cmd *cobra.Command, result *driving.RunResult) {
	if result.Cancelled {
		cmd.Println(errorStyle.Render("Run cancelled."))
	} else if result.Corpus == nil {
		cmd.Println(errorStyle.Render("No document could be read."))
	} else {
		c := result.Corpus
		line := fmt.Sprintf("%d documents, %d columns", c.Len(), len(c.Columns()))
		if c.HasCategory() {
			line += fmt.Sprintf(", %d categories", len(c.CategoryValues()))
		}
		cmd.Println(successStyle.Render(line))
	}

	if len(result.Errors) > 0 {
		cmd.Println(headerStyle.Render(fmt.Sprintf("%d files could not be read:", len(result.Errors))))
		for _, e := range result.Errors {
			cmd.Printf("  %s\n", errorStyle.Render(e))
		}
	}
}
