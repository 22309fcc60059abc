package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"skinrisk/adapters/datareadiness/coercer"
	"skinrisk/adapters/excel"
	"skinrisk/app"
	"skinrisk/domain/survey"
	"skinrisk/internal/config"
	"skinrisk/internal/container"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "skinrisk",
		Short:         "Clean survey answers and score skin-cancer risk",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	var modelPath string
	rootCmd.PersistentFlags().StringVar(&modelPath, "model", "", "model JSON file (overrides MODEL_PATH)")

	rootCmd.AddCommand(
		newAssessCmd(&modelPath),
		newCleanCmd(),
		newBatchCmd(&modelPath),
		newProfileCmd(&modelPath),
		newSchemaCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap builds the container; withModel also loads the classifier
func bootstrap(ctx context.Context, modelPath string, withModel bool) (*container.Container, *app.AssessmentService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if modelPath != "" {
		cfg.Model.Source = config.ModelSourceFile
		cfg.Model.Path = modelPath
	}

	c, err := container.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	if withModel {
		if err := c.LoadClassifier(ctx); err != nil {
			return nil, nil, err
		}
	}
	return c, c.BuildService(), nil
}

// recordInput collects a raw record from a JSON file and --set overrides
type recordInput struct {
	file string
	path string
	sets []string
}

func (in *recordInput) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&in.file, "file", "f", "", "JSON object of field to value; - reads stdin")
	cmd.Flags().StringVar(&in.path, "path", "", "gjson path of the record inside --file, e.g. respondents.0")
	cmd.Flags().StringArrayVar(&in.sets, "set", nil, "FIELD=VALUE, repeatable; names may be aliases")
}

func (in *recordInput) read(stdin io.Reader, schema *survey.Schema) (survey.RawRecord, error) {
	c := coercer.NewValueCoercer(coercer.DefaultCoercionConfig())
	values := make(map[string]survey.Value)

	if in.file != "" {
		var data []byte
		var err error
		if in.file == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(in.file)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		if err := in.readJSON(data, c, values); err != nil {
			return nil, err
		}
	}

	for _, kv := range in.sets {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("--set wants FIELD=VALUE, got %q", kv)
		}
		value, ok := c.CoerceString(raw)
		if !ok {
			return nil, fmt.Errorf("field %s is not numeric: %s", name, raw)
		}
		values[strings.TrimSpace(name)] = value
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("no input: use --file or --set")
	}
	return survey.RawRecordFromNames(schema, values)
}

// readJSON reads the selected object's members. Number and string members
// both go through the coercer, so "88" and 88 read the same.
func (in *recordInput) readJSON(data []byte, c *coercer.ValueCoercer, values map[string]survey.Value) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("record file is not valid JSON")
	}
	record := gjson.ParseBytes(data)
	if in.path != "" {
		record = gjson.GetBytes(data, in.path)
		if !record.Exists() {
			return fmt.Errorf("path %q not found in record file", in.path)
		}
	}
	if !record.IsObject() {
		return fmt.Errorf("record must be a JSON object")
	}

	var err error
	record.ForEach(func(key, v gjson.Result) bool {
		name := key.String()
		var value survey.Value
		ok := true
		switch v.Type {
		case gjson.Null:
			value = survey.Missing()
		case gjson.Number, gjson.String:
			value, ok = c.CoerceString(v.String())
		case gjson.True, gjson.False:
			value, ok = c.CoerceValue(v.Bool())
		default:
			ok = false
		}
		if !ok {
			err = fmt.Errorf("field %s is not numeric: %s", name, v.Raw)
			return false
		}
		values[name] = value
		return true
	})
	return err
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newAssessCmd(modelPath *string) *cobra.Command {
	var in recordInput
	var strict bool

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Score one raw survey record",
		Long: `Clean one raw survey record, run the classifier and print the assessment.

Example: skinrisk assess --set GENHLTH=8 --set POORHLTH=88 --set BMI_SCALED=2500`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, err := bootstrap(cmd.Context(), *modelPath, true)
			if err != nil {
				return err
			}
			raw, err := in.read(cmd.InOrStdin(), svc.Schema())
			if err != nil {
				return err
			}
			a, err := svc.AssessRecord(cmd.Context(), raw, strict)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"assessment": a,
				"label":      a.Tier.Label(),
				"advisory":   a.Tier.Advisory(),
			})
		},
	}
	in.bind(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "reject values outside their survey domain")
	return cmd
}

func newCleanCmd() *cobra.Command {
	var in recordInput

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean one raw survey record and show what changed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, err := bootstrap(cmd.Context(), "", false)
			if err != nil {
				return err
			}
			raw, err := in.read(cmd.InOrStdin(), svc.Schema())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), svc.Clean(raw))
		},
	}
	in.bind(cmd)
	return cmd
}

func newBatchCmd(modelPath *string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "batch [dataset.csv|dataset.xlsx]",
		Short: "Score every row of a survey dataset and write a report",
		Long: `Read a survey dataset, clean and score each row concurrently (BATCH_CONCURRENCY),
and write one report line per row in input order.

Example: skinrisk batch responses.xlsx --out report.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, svc, err := bootstrap(cmd.Context(), *modelPath, true)
			if err != nil {
				return err
			}
			if out == "" {
				out = strings.TrimSuffix(args[0], fileExt(args[0])) + "_report.xlsx"
			}
			reader := excel.NewDataReader(args[0], svc.Schema(), c.Logger)
			summary, err := svc.RunBatch(cmd.Context(), reader, excel.NewReportWriter(out))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "report written to %s\n", out)
			return printJSON(cmd.OutOrStdout(), summary)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "report path (.xlsx or .csv); defaults next to the input")
	return cmd
}

func newProfileCmd(modelPath *string) *cobra.Command {
	var withTiers bool

	cmd := &cobra.Command{
		Use:   "profile [dataset.csv|dataset.xlsx]",
		Short: "Profile cleaned values of a survey dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, svc, err := bootstrap(cmd.Context(), *modelPath, withTiers)
			if err != nil {
				return err
			}
			profile, err := svc.Profile(cmd.Context(), excel.NewDataReader(args[0], svc.Schema(), c.Logger))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), profile)
		},
	}
	cmd.Flags().BoolVar(&withTiers, "tiers", false, "also score rows and count them per tier")
	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "List survey fields, aliases and cleaning rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FIELD\tALIASES\tRULE\tDOMAIN")
			for _, spec := range survey.DefaultSchema().Specs() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", spec.Field, strings.Join(spec.Aliases, ","), spec.Rule.Kind, spec.Domain)
			}
			return w.Flush()
		},
	}
}

func fileExt(path string) string {
	if i := strings.LastIndex(path, "."); i > strings.LastIndex(path, "/") {
		return path[i:]
	}
	return ""
}
