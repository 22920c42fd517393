// Package cli implements the comicdl command line: flag parsing, the
// interactive menus and the rendering of results and download summaries.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vrsandeep/comicdl/internal/config"
	"github.com/vrsandeep/comicdl/internal/core"
	"github.com/vrsandeep/comicdl/internal/logging"
	"github.com/vrsandeep/comicdl/internal/models"
)

// errDownloadsFailed is returned when the batch ran but some jobs failed.
// The summary table has already told the user which.
var errDownloadsFailed = errors.New("some downloads failed")

type rootFlags struct {
	tag        string
	date       string
	output     string
	minIssue   float64
	maxIssue   float64
	results    int
	verbose    bool
	yes        bool
	configFile string
}

// NewRootCommand builds the comicdl command. Prompts read from in and all
// user-facing output goes to out.
func NewRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	var f rootFlags
	cmd := &cobra.Command{
		Use:   "comicdl [query]",
		Short: "Search for and download comics from getcomics",
		Long: `Search getcomics by query or tag, pick releases from the results and
download them. Run without a query or tag to use the interactive menu.

Examples:
  comicdl "saga" -r 30
  comicdl -t marvel -d 2024-01-01 --min 1 --max 5
  comicdl "batman" -y -o ~/Comics`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, &f, in, out)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.tag, "tag", "t", "", "search by tag instead of a query")
	fs.StringVarP(&f.date, "date", "d", "", "only list releases published on or after this date (YYYY-MM-DD)")
	fs.StringVarP(&f.output, "output", "o", "", `download directory (default "./Downloaded Comics")`)
	fs.Float64Var(&f.minIssue, "min", 0, "minimum issue number")
	fs.Float64Var(&f.maxIssue, "max", 0, "maximum issue number")
	fs.IntVarP(&f.results, "results", "r", models.DefaultResults, "number of results to list")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "detailed output")
	fs.BoolVarP(&f.yes, "yes", "y", false, "download every result without showing the menu")
	fs.StringVar(&f.configFile, "config", "", "config file (default is ./config.yml)")
	return cmd
}

// bindFlags lets command-line flags override config.yml and environment
// values.
func bindFlags(fs *pflag.FlagSet) error {
	for key, flag := range map[string]string{
		"output_dir": "output",
		"results":    "results",
		"verbose":    "verbose",
	} {
		if err := viper.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind %s flag: %w", flag, err)
		}
	}
	return nil
}

func runRoot(cmd *cobra.Command, args []string, f *rootFlags, in io.Reader, out io.Writer) error {
	if err := bindFlags(cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	p := newPrompter(in, out)
	var opts *sessionOptions
	if len(args) == 0 && f.tag == "" {
		opts, err = mainMenu(p, defaultOptions(cfg))
		if err != nil {
			return err
		}
		if opts == nil {
			fmt.Fprintln(out, "Exiting without downloading.")
			return nil
		}
	} else {
		opts, err = optionsFromFlags(cmd.Flags(), args, f, cfg, out)
		if err != nil {
			return err
		}
	}

	if opts.Verbose {
		cfg.LogLevel = "debug"
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	app, err := core.New(cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	s := &session{app: app, opts: *opts, prompt: p, out: out, reporter: newProgressReporter}
	return s.run(cmd.Context())
}

func optionsFromFlags(fs *pflag.FlagSet, args []string, f *rootFlags, cfg *config.Config, out io.Writer) (*sessionOptions, error) {
	term := strings.TrimSpace(strings.Join(args, " "))
	if term != "" && f.tag != "" {
		return nil, fmt.Errorf("you can only provide a search query or a tag, not both")
	}

	opts := defaultOptions(cfg)
	opts.Query.Term = term
	opts.Query.Tag = f.tag
	opts.Yes = f.yes
	if f.date != "" {
		d, err := parseDate(f.date)
		if err != nil {
			fmt.Fprintln(out, "Warning: Date format should be YYYY-MM-DD. Date filter disabled.")
		} else {
			opts.Query.MinDate = &d
		}
	}
	if fs.Changed("min") {
		opts.Query.MinIssue = &f.minIssue
	}
	if fs.Changed("max") {
		opts.Query.MaxIssue = &f.maxIssue
	}
	return &opts, nil
}

// Execute runs comicdl with the process arguments and returns the exit
// code.
func Execute() int {
	// .env is optional
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, NewRootCommand(os.Stdin, os.Stdout), os.Args[1:], os.Stderr)
}

func run(ctx context.Context, cmd *cobra.Command, args []string, errOut io.Writer) int {
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errDownloadsFailed):
		return 1
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(errOut, "Operation cancelled by user.")
		return 1
	default:
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}
}
