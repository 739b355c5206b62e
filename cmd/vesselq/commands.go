package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"vesselq/internal/core/version"
	"vesselq/internal/modkit"
	"vesselq/internal/platform/config"
	"vesselq/internal/platform/store"
	ptime "vesselq/internal/platform/time"
	"vesselq/internal/services/api"
	"vesselq/internal/services/vessels/importer"
	"vesselq/internal/services/vessels/repo"

	"github.com/spf13/cobra"
)

// opener opens the configured store
type opener func(context.Context) (*store.Store, error)

// withStore opens the store for the duration of fn
func withStore(cmd *cobra.Command, open opener, fn func(*store.Store) error) error {
	st, err := open(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(context.Background()) }()
	return fn(st)
}

func newRootCmd(cfg config.Conf, open opener) *cobra.Command {
	root := &cobra.Command{
		Use:   "vesselq",
		Short: "vesselq - free text questions about tracked vessels",
		Long: `vesselq answers free text questions about vessels in an AIS position store.

The store is chosen with CORE_STORE_DRIVER (sqlite, pg or clickhouse) and
configured through SERVICE_SQLITE_*, SERVICE_PGSQL_* or SERVICE_CLICKHOUSE_*.

Examples:
  vesselq schema
  vesselq import AIS_2024_03_05.csv
  vesselq vessels la
  vesselq ask "where will LAVACA be in 30 minutes"`,
		SilenceUsage: true,
	}
	root.AddCommand(
		newAskCmd(cfg, open),
		newVesselsCmd(cfg, open),
		newSchemaCmd(open),
		newImportCmd(cfg, open),
		newVersionCmd(),
	)
	return root
}

func newAskCmd(cfg config.Conf, open opener) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a free text question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, open, func(st *store.Store) error {
				mods := api.Build(modkit.NewDeps(cfg, st))
				reply, err := mods.QueryService().Ask(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(reply)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the parsed query and structured answer as JSON")
	return cmd
}

func newVesselsCmd(cfg config.Conf, open opener) *cobra.Command {
	var (
		limit   int
		summary bool
	)
	cmd := &cobra.Command{
		Use:   "vessels [prefix]",
		Short: "List known vessels",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, open, func(st *store.Store) error {
				svc := api.Build(modkit.NewDeps(cfg, st)).VesselsService()
				out := cmd.OutOrStdout()
				if summary {
					sums, err := svc.Summaries(cmd.Context())
					if err != nil {
						return err
					}
					tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "NAME\tMMSI\tFIXES\tFIRST SEEN\tLAST SEEN")
					for _, s := range sums {
						fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", s.Name, s.MMSI, s.Count, ptime.Format(s.FirstSeen), ptime.Format(s.LastSeen))
					}
					return tw.Flush()
				}
				prefix := ""
				if len(args) == 1 {
					prefix = args[0]
				}
				names, err := svc.Names(cmd.Context(), prefix, limit)
				if err != nil {
					return err
				}
				for _, n := range names {
					fmt.Fprintln(out, n)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum names printed; prefix searches cap at 50")
	cmd.Flags().BoolVar(&summary, "summary", false, "print fix counts and first and last seen")
	return cmd
}

func newSchemaCmd(open opener) *cobra.Command {
	var printOnly string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Create the vessel_positions table and indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if printOnly != "" {
				stmts, err := repo.Schema(store.Driver(printOnly))
				if err != nil {
					return err
				}
				for _, s := range stmts {
					fmt.Fprintf(cmd.OutOrStdout(), "%s;\n", s)
				}
				return nil
			}
			return withStore(cmd, open, func(st *store.Store) error {
				if err := repo.ApplySchema(cmd.Context(), st.DB, st.Driver); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schema applied on %s\n", st.Driver)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&printOnly, "print", "", "print the DDL for a driver instead of applying it")
	return cmd
}

func newImportCmd(cfg config.Conf, open opener) *cobra.Command {
	var ic importer.Config
	cmd := &cobra.Command{
		Use:   "import <csv>...",
		Short: "Load MarineCadastre AIS csv files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, open, func(st *store.Store) error {
				stats, err := importer.New(modkit.NewDeps(cfg, st), ic).Import(cmd.Context(), importer.Files(args...))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d rows from %d files in %d batches (%d skipped)\n",
					stats.Rows, stats.Files, stats.Batches, stats.Skipped)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&ic.Replace, "replace", false, "purge existing positions in the same transaction")
	cmd.Flags().IntVar(&ic.BatchSize, "batch", importer.DefaultBatchSize, "rows per insert")
	cmd.Flags().IntVar(&ic.Workers, "workers", importer.DefaultWorkers, "files parsed concurrently")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bi := version.Info()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s, %s)\n", bi.Service, bi.Version, bi.Commit, bi.Date)
			return err
		},
	}
}
