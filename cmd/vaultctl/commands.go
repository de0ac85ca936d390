package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/bootstrap"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
)

// cli carries the state shared by every subcommand.
type cli struct {
	profile string
	verbose bool

	load   func(profile string) (*config.Config, error)
	logger *slog.Logger
}

func newCLI() *cli {
	return &cli{load: func(profile string) (*config.Config, error) { return config.Load(profile) }}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "vaultctl",
		Short:         "Administer the QuoteVault record store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := "warn"
			if c.verbose {
				level = "debug"
			}

			c.logger = logging.NewWithWriter(&logging.Config{
				Level:   level,
				Format:  "text",
				Service: "vaultctl",
			}, cmd.ErrOrStderr())

			return nil
		},
	}

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	root.PersistentFlags().StringVarP(&c.profile, "profile", "p", profile, "configuration profile under configs/")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log debug output")

	root.AddCommand(newMigrateCmd(c), newSeedCmd(c), newQODCmd(c))

	return root
}

// config loads and validates the profile.
func (c *cli) config() (*config.Config, error) {
	cfg, err := c.load(c.profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *cli) openStore(ctx context.Context, cfg *config.Config) (bootstrap.RecordStore, bootstrap.CloseFunc, error) {
	store, closeStore, err := bootstrap.OpenRecordStore(ctx, cfg, c.logger)
	if err != nil {
		return nil, closeStore, fmt.Errorf("opening record store: %w", err)
	}

	return store, closeStore, nil
}

func newMigrateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the QuoteVault tables in PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}

			if cfg.Store.Driver != "postgres" {
				return fmt.Errorf("migrate needs store.driver postgres, profile %q uses %q", c.profile, cfg.Store.Driver)
			}

			cfg.Database.Migrate = true

			_, closeStore, err := c.openStore(cmd.Context(), cfg)
			defer closeStore()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")

			return err
		},
	}
}

func newSeedCmd(c *cli) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert quotes from a YAML file",
		Long: `Reads a YAML list of quotes and inserts them into the record store.

Each entry has quote, author and category keys; id is optional. Quotes that
already exist are skipped.

Example:
  vaultctl seed --file quotes.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			quotes, err := bootstrap.LoadSeedFile(file)
			if err != nil {
				return err
			}

			cfg, err := c.config()
			if err != nil {
				return err
			}

			store, closeStore, err := c.openStore(cmd.Context(), cfg)
			defer closeStore()
			if err != nil {
				return err
			}

			n, err := bootstrap.Seed(cmd.Context(), store, quotes)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "inserted %d of %d quotes\n", n, len(quotes))

			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with quotes")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// errNoQuote is returned by qod when the corpus is empty.
var errNoQuote = errors.New("no quote of the day: the quotes table is empty")

func newQODCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "qod",
		Short: "Print today's quote of the day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}

			store, closeStore, err := c.openStore(cmd.Context(), cfg)
			defer closeStore()
			if err != nil {
				return err
			}

			quotes := app.NewQuoteService(app.QuoteServiceConfig{Records: store, Logger: c.logger})

			q, err := quotes.QuoteOfTheDay(cmd.Context())
			if err != nil {
				return err
			}

			if q == nil {
				return errNoQuote
			}

			return printQuote(cmd.OutOrStdout(), q.ID, q.ShareText())
		},
	}
}

func printQuote(w io.Writer, id int64, text string) error {
	_, err := fmt.Fprintf(w, "#%d\n%s\n", id, text)
	return err
}
