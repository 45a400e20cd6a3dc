package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/TFMV/nlmunicipality/internal/bootstrap"
	"github.com/TFMV/nlmunicipality/internal/matcher"
	"github.com/TFMV/nlmunicipality/pkg/config"
	"github.com/TFMV/nlmunicipality/pkg/db"
	"github.com/TFMV/nlmunicipality/pkg/utils"
)

func addOptionFlags(cmd *cobra.Command) {
	d := matcher.DefaultOptions()
	f := cmd.Flags()
	f.String("province", "", "Restrict the lookup to a province (name or abbreviation)")
	f.String("date", "", "Reference date or period (yyyy, yyyy-mm, yyyy-mm-dd)")
	f.Int("threshold", 0, "Fuzzy acceptance score 1..100 (default from config)")
	f.Bool("clean", d.Clean, "Normalize the input before lookup")
	f.Bool("history", d.CheckHistory, "Look up former municipalities")
	f.Bool("places", d.CheckPlaces, "Look up places")
	f.Bool("neighbourhoods", d.CheckNeighbourhoods, "Look up neighbourhoods")
	f.Bool("variants", d.CheckVariants, "Accept spelling variants of former municipalities")
	f.Bool("fuzzy", d.CheckFuzzy, "Enable fuzzy matching")
	f.Bool("municipality-fuzzy", d.CheckMunicipalityFuzzy, "Fuzzy match municipality names")
	f.Bool("history-fuzzy", d.CheckHistoryFuzzy, "Fuzzy match former municipality names")
	f.Bool("places-fuzzy", d.CheckPlaceFuzzy, "Fuzzy match place names")
	f.Bool("neighbourhoods-fuzzy", d.CheckNeighbourhoodFuzzy, "Fuzzy match neighbourhood names")
	f.Bool("delimiters", d.Delimiters, "Split the input on delimiters")
}

func optionsFromFlags(cmd *cobra.Command) matcher.Options {
	o := matcher.DefaultOptions()
	f := cmd.Flags()
	o.Province, _ = f.GetString("province")
	o.Date, _ = f.GetString("date")
	o.Threshold, _ = f.GetInt("threshold")
	o.Clean, _ = f.GetBool("clean")
	o.CheckHistory, _ = f.GetBool("history")
	o.CheckPlaces, _ = f.GetBool("places")
	o.CheckNeighbourhoods, _ = f.GetBool("neighbourhoods")
	o.CheckVariants, _ = f.GetBool("variants")
	o.CheckFuzzy, _ = f.GetBool("fuzzy")
	o.CheckMunicipalityFuzzy, _ = f.GetBool("municipality-fuzzy")
	o.CheckHistoryFuzzy, _ = f.GetBool("history-fuzzy")
	o.CheckPlaceFuzzy, _ = f.GetBool("places-fuzzy")
	o.CheckNeighbourhoodFuzzy, _ = f.GetBool("neighbourhoods-fuzzy")
	o.Delimiters, _ = f.GetBool("delimiters")
	return o
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return bootstrap.LoadConfig(path)
}

func startRuntime(cmd *cobra.Command, log *utils.Logger) (*bootstrap.Runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cmd.Context(), cfg, log)
}

func guessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guess <location>...",
		Short: "Resolve one or more locations",
		Long: `Resolve each argument and print the municipality and the tier that
matched it.

Example:
  nlmunicipality guess "Den Haag" Zaandam
  nlmunicipality guess --date 2020 "Haarlemmerliede en Spaarnwoude"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			rt, err := startRuntime(cmd, utils.NewLogger("cli"))
			if err != nil {
				return err
			}
			defer rt.Close()

			opts := optionsFromFlags(cmd)
			out := cmd.OutOrStdout()
			for _, loc := range args {
				r := rt.Engine.Resolve(cmd.Context(), loc, opts)
				if asJSON {
					b, err := json.Marshal(map[string]any{"location": loc, "municipality": r.Name, "method": r.Method})
					if err != nil {
						return err
					}
					fmt.Fprintln(out, string(b))
					continue
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", loc, r.Name, r.Method)
			}
			return nil
		},
	}
	addOptionFlags(cmd)
	cmd.Flags().Bool("json", false, "Print one JSON object per location")
	return cmd
}

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Resolve a column of a CSV file",
		Long: `Read a CSV file, resolve one column and write the file back with
municipality and method columns appended.

Example:
  nlmunicipality batch --input records.csv --column woonplaats --output out.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			output, _ := cmd.Flags().GetString("output")
			column, _ := cmd.Flags().GetString("column")
			workers, _ := cmd.Flags().GetInt("workers")

			log := utils.NewLogger("cli")
			rt, err := startRuntime(cmd, log)
			if err != nil {
				return err
			}
			defer rt.Close()
			if workers <= 0 {
				workers = rt.Config.Engine.Workers
			}

			var r io.Reader = cmd.InOrStdin()
			if input != "" && input != "-" {
				f, err := os.Open(input)
				if err != nil {
					return fmt.Errorf("error opening file: %w", err)
				}
				defer f.Close()
				r = f
			}
			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("error creating file: %w", err)
				}
				defer f.Close()
				w = f
			}

			start := time.Now()
			n, err := resolveCSV(cmd.Context(), rt.Engine, r, w, column, optionsFromFlags(cmd), workers)
			if err != nil {
				return err
			}
			log.Info("batch finished", "rows", n, "duration", time.Since(start).String())
			return nil
		},
	}
	addOptionFlags(cmd)
	cmd.Flags().StringP("input", "i", "-", "Input CSV file (- for stdin)")
	cmd.Flags().StringP("output", "o", "-", "Output CSV file (- for stdout)")
	cmd.Flags().StringP("column", "c", "location", "Column holding the location")
	cmd.Flags().Int("workers", 0, "Concurrent lookups (default from config, else CPU count)")
	return cmd
}

// resolveCSV resolves column of every record in r and writes the records to
// w with municipality and method appended.
func resolveCSV(ctx context.Context, engine *matcher.Engine, r io.Reader, w io.Writer, column string, opts matcher.Options, workers int) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("error reading CSV: %w", err)
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("empty CSV input")
	}

	header := records[0]
	col := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), column) {
			col = i
			break
		}
	}
	if col < 0 {
		return 0, fmt.Errorf("column %q not found in header %v", column, header)
	}

	rows := records[1:]
	locations := make([]string, len(rows))
	for i, rec := range rows {
		if col < len(rec) {
			locations[i] = rec[col]
		}
	}
	results, err := engine.ResolveBatch(ctx, locations, opts, workers)
	if err != nil {
		return 0, err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(append(header, "municipality", "method")); err != nil {
		return 0, err
	}
	for i, rec := range rows {
		if err := writer.Write(append(rec, results[i].Name, string(results[i].Method))); err != nil {
			return 0, err
		}
	}
	writer.Flush()
	return len(rows), writer.Error()
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the CSV reference tables into Postgres",
		Long: `Create the reference tables if needed and replace their contents with
the CSV files of a data directory, in one transaction.

Example:
  DATABASE_URL=postgres://localhost/nlm nlmunicipality import --dir data`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			dir, _ := cmd.Flags().GetString("dir")
			if dir == "" {
				dir = cfg.Data.Dir
			}

			log := utils.NewLogger("import")
			pool, err := db.NewConnection(cmd.Context(), cfg.DBCreds.ConnString())
			if err != nil {
				return err
			}
			defer pool.Close()

			counts, err := db.ImportDir(cmd.Context(), pool, dir, log)
			if err != nil {
				return err
			}
			for table, n := range counts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", table, n)
			}
			return nil
		},
	}
	cmd.Flags().String("dir", "", "Directory with the CSV tables (default from config)")
	return cmd
}

func unresolvedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unresolved",
		Short: "List register codes whose chain does not reach a current municipality",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := startRuntime(cmd, utils.NewLogger("cli"))
			if err != nil {
				return err
			}
			defer rt.Close()

			reg := rt.Engine.History().Register()
			for _, code := range reg.Unresolved() {
				e, _ := reg.Entry(code)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", code, e.Name)
			}
			return nil
		},
	}
}
