package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/XGenerationLab/XiYan-DateResolver/internal/dateparse"
	"github.com/XGenerationLab/XiYan-DateResolver/internal/output"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [expression...]",
	Short: "Resolve time expressions",
	Long: `Resolve time expressions into "expression=value" lines.

Expressions come from the arguments and from --file (one per line, "-" for
stdin). Expressions that match no known pattern are left out of the output.

Examples:
  xiyandate resolve 去年本季度 近3个完整月 本月第2周
  xiyandate resolve --now 2024-03-15 --json 上月今天
  xiyandate resolve --now "last friday" 本周
  cat expressions.txt | xiyandate resolve --file - --header`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exprs, err := expressionsFrom(cmd, args)
		if err != nil {
			return err
		}
		anchor, err := anchorFrom(cmd)
		if err != nil {
			return err
		}

		engine := newEngine(newLogger())
		results, err := engine.ResolveAll(cmd.Context(), anchor, exprs)
		if err != nil {
			return fmt.Errorf("failed to resolve expressions: %w", err)
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		opts := output.Options{
			JSON:   jsonOutput || cfg.Output == "json",
			Header: cfg.Header,
		}
		return output.Write(cmd.OutOrStdout(), anchor, output.FormatResolveResponse(anchor, results), opts)
	},
}

var commentCmd = &cobra.Command{
	Use:   "comment [expression...]",
	Short: "Build a date-time comment for a prompt",
	Long: `Print the today header, the "需要计算的时间是：" line and the resolved expressions,
ready to be pasted into a prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exprs, err := expressionsFrom(cmd, args)
		if err != nil {
			return err
		}
		anchor, err := anchorFrom(cmd)
		if err != nil {
			return err
		}

		engine := newEngine(newLogger())
		fmt.Fprintln(cmd.OutOrStdout(), engine.BuildDateTimeComment(anchor, exprs))
		return nil
	},
}

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List expression categories",
	Long:  `List the recognized expression categories in the order they are tried.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		categories := newEngine(newLogger()).Categories()

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			return output.WriteJSON(cmd.OutOrStdout(), output.FormatListResponse(categories, len(categories)))
		}

		for i, c := range categories {
			fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, c)
		}
		return nil
	},
}

// anchorFrom returns the --now anchor, or today in the configured time zone.
func anchorFrom(cmd *cobra.Command) (time.Time, error) {
	today, err := dateparse.Now(cfg.Timezone)
	if err != nil {
		return time.Time{}, err
	}
	now, _ := cmd.Flags().GetString("now")
	anchor, err := dateparse.ParseAnchor(now, today)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now: %w", err)
	}
	return anchor, nil
}

// expressionsFrom collects expressions from args and --file.
func expressionsFrom(cmd *cobra.Command, args []string) ([]string, error) {
	exprs := append([]string(nil), args...)

	file, _ := cmd.Flags().GetString("file")
	if file != "" {
		var r io.Reader
		if file == "-" {
			r = cmd.InOrStdin()
		} else {
			f, err := os.Open(file)
			if err != nil {
				return nil, fmt.Errorf("failed to open expressions file: %w", err)
			}
			defer f.Close()
			r = f
		}

		lines, err := readExpressions(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read expressions: %w", err)
		}
		exprs = append(exprs, lines...)
	}

	if len(exprs) == 0 {
		return nil, fmt.Errorf("no expressions given")
	}
	return exprs, nil
}

// readExpressions reads one expression per line, skipping blank lines.
func readExpressions(r io.Reader) ([]string, error) {
	var exprs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			exprs = append(exprs, line)
		}
	}
	return exprs, scanner.Err()
}

func init() {
	for _, cmd := range []*cobra.Command{resolveCmd, commentCmd} {
		cmd.Flags().String("now", "", "Anchor date (e.g. 2024-03-15, 2024年03月15日, yesterday). Default: today")
		cmd.Flags().String("file", "", "Read expressions from a file, one per line (- for stdin)")
		cmd.Flags().Int("workers", 0, "Number of expressions resolved concurrently (default from config)")
		cmd.Flags().Bool("last-complete-week", false, "Recognize \"本月最后一个完整周\" expressions")
	}

	resolveCmd.Flags().Bool("json", false, "Output as JSON")
	resolveCmd.Flags().Bool("header", false, "Prepend the today header")

	patternsCmd.Flags().Bool("json", false, "Output as JSON")
	patternsCmd.Flags().Bool("last-complete-week", false, "Include the \"最后一个完整周\" category")
}
