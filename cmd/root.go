package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	explorer "github.com/muneeb706/ad-data-explorer"
	"github.com/muneeb706/ad-data-explorer/config"
	"github.com/muneeb706/ad-data-explorer/datasets"
	"github.com/muneeb706/ad-data-explorer/execution"
	"github.com/muneeb706/ad-data-explorer/outputs/formats"
	"github.com/muneeb706/ad-data-explorer/table"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ad-data-explorer <dataset>",
	Args:  cobra.ExactArgs(1),
	Short: "Explore delimited cohort datasets from the command line",
	Example: `ad-data-explorer donors --select "Donor ID,Sex" --where "Age at Death > 80"
ad-data-explorer donors --group-by Sex --agg mean:"Brain Weight" --agg count
ad-data-explorer donors --join measurements --on "Donor ID" --output csv`,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFlags(); err != nil {
			return err
		}

		cfg, err := config.ReadConfig(configPath)
		if err != nil {
			return fmt.Errorf("couldn't read config: %w", err)
		}
		cache := datasets.NewCache(cfg)

		out, err := cache.Get(args[0])
		if err != nil {
			return fmt.Errorf("couldn't load dataset: %w", err)
		}

		if out, err = applyFilters(out); err != nil {
			return err
		}

		if joinDataset != "" {
			right, err := cache.Get(joinDataset)
			if err != nil {
				return fmt.Errorf("couldn't load join dataset: %w", err)
			}
			rightKey := joinRightOn
			if rightKey == "" {
				rightKey = joinOn
			}
			if out, err = execution.JoinOn(out, right, joinOn, rightKey); err != nil {
				return fmt.Errorf("couldn't join datasets: %w", err)
			}
		}

		if groupBy != "" {
			if out, err = applyAggregation(out); err != nil {
				return err
			}
		} else if len(aggSpecs) > 0 {
			return fmt.Errorf("--agg requires --group-by")
		}

		if len(selectColumns) > 0 {
			if out, err = out.Select(splitList(selectColumns)); err != nil {
				return fmt.Errorf("couldn't select columns: %w", err)
			}
		}

		if limit > 0 {
			out = out.Head(limit)
		}

		formatter, ok := formats.New(outputFormat, os.Stdout)
		if !ok {
			return fmt.Errorf("unknown output format %q", outputFormat)
		}
		return formats.WriteTable(formatter, out)
	},
}

func applyFilters(t *table.Table) (*table.Table, error) {
	if len(whereConditions) == 0 {
		return t, nil
	}

	var combined table.Mask
	for _, condition := range whereConditions {
		column, relation, literal, err := parseCondition(t, condition)
		if err != nil {
			return nil, err
		}
		mask, err := execution.BuildMask(t, column, relation, literal)
		if err != nil {
			return nil, fmt.Errorf("couldn't evaluate condition %q: %w", condition, err)
		}

		if combined == nil {
			combined = mask
			continue
		}
		switch whereLogic {
		case "and":
			combined, err = execution.MaskAnd(combined, mask)
		case "or":
			combined, err = execution.MaskOr(combined, mask)
		default:
			return nil, fmt.Errorf("unknown condition logic %q, want and or or", whereLogic)
		}
		if err != nil {
			return nil, err
		}
	}

	out, err := execution.Filter(t, combined)
	if err != nil {
		return nil, fmt.Errorf("couldn't filter rows: %w", err)
	}
	return out, nil
}

// parseCondition splits "column op literal". The column may contain spaces,
// so the condition is anchored on the operator token.
func parseCondition(t *table.Table, condition string) (string, execution.Relation, explorer.Value, error) {
	fields := strings.Fields(condition)
	operatorIndex := -1
	var relation execution.Relation
	for i, field := range fields {
		rel, err := execution.RelationFromString(field)
		if err == nil {
			operatorIndex = i
			relation = rel
			break
		}
	}
	if operatorIndex <= 0 || operatorIndex == len(fields)-1 {
		return "", 0, explorer.Value{}, fmt.Errorf(
			"invalid condition %q, want \"column operator literal\"", condition)
	}

	column := strings.Join(fields[:operatorIndex], " ")
	raw := strings.Join(fields[operatorIndex+1:], " ")
	literal, err := parseLiteral(t, column, raw)
	if err != nil {
		return "", 0, explorer.Value{}, err
	}
	return column, relation, literal, nil
}

// parseLiteral types the literal after the column it is compared against:
// numeric columns parse numbers, string columns take the text verbatim. The
// bare word null is the missing-value literal for any column.
func parseLiteral(t *table.Table, column, raw string) (explorer.Value, error) {
	if raw == "null" {
		return explorer.NewNull(), nil
	}
	raw = strings.Trim(raw, `"'`)

	col, err := t.Column(column)
	if err != nil {
		return explorer.Value{}, err
	}

	switch col.Type() {
	case explorer.TypeIDInt:
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return explorer.NewInt(i), nil
		}
		fallthrough
	case explorer.TypeIDFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return explorer.Value{}, fmt.Errorf(
				"column %q is numeric, couldn't parse literal %q as a number", column, raw)
		}
		return explorer.NewFloat(f), nil
	default:
		return explorer.NewString(raw), nil
	}
}

func applyAggregation(t *table.Table) (*table.Table, error) {
	partition, err := execution.GroupBy(t, groupBy)
	if err != nil {
		return nil, fmt.Errorf("couldn't group rows: %w", err)
	}

	specs := make([]execution.AggregateSpec, 0, len(aggSpecs))
	for _, raw := range aggSpecs {
		function, column, _ := strings.Cut(raw, ":")
		specs = append(specs, execution.AggregateSpec{
			Function: function,
			Column:   column,
		})
	}
	if len(specs) == 0 {
		specs = append(specs, execution.AggregateSpec{Function: "count"})
	}

	out, err := execution.Aggregate(partition, specs)
	if err != nil {
		return nil, fmt.Errorf("couldn't aggregate groups: %w", err)
	}
	return out, nil
}

func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			out = append(out, strings.TrimSpace(part))
		}
	}
	return out
}

func Execute(ctx context.Context) {
	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}

var configPath string
var selectColumns []string
var whereConditions []string
var whereLogic string
var groupBy string
var aggSpecs []string
var joinDataset string
var joinOn string
var joinRightOn string
var limit int
var outputFormat string

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "datasets.yml", "Path to the dataset catalog.")
	rootCmd.Flags().StringArrayVar(&selectColumns, "select", nil, "Columns to keep, comma separated or repeated.")
	rootCmd.Flags().StringArrayVar(&whereConditions, "where", nil, `Row condition "column operator literal", repeatable.`)
	rootCmd.Flags().StringVar(&whereLogic, "where-logic", "and", "How repeated conditions combine: and or or.")
	rootCmd.Flags().StringVar(&groupBy, "group-by", "", "Column to group rows by.")
	rootCmd.Flags().StringArrayVar(&aggSpecs, "agg", nil, `Aggregate "function:column", repeatable; bare count counts rows.`)
	rootCmd.Flags().StringVar(&joinDataset, "join", "", "Dataset to inner-join with.")
	rootCmd.Flags().StringVar(&joinOn, "on", "", "Join key column.")
	rootCmd.Flags().StringVar(&joinRightOn, "right-on", "", "Join key column on the right dataset, when named differently.")
	rootCmd.Flags().IntVar(&limit, "limit", 0, "Keep only the first n result rows.")
	rootCmd.Flags().StringVar(&outputFormat, "output", "table", "Output format: table, csv or json.")
}

var errJoinNeedsKey = errors.New("--join requires --on")

func validateFlags() error {
	if joinDataset != "" && joinOn == "" {
		return errJoinNeedsKey
	}
	return nil
}
