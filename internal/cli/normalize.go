package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/allyourbase/numcanon/internal/cli/ui"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <number>...",
	Short: "Convert phone numbers to E.164",
	Long: `Convert each argument to a single canonical E.164 number.

Numbers starting with + are parsed as international numbers. Anything else is
resolved in --region, else the region of --local, or under --calling-code.
Numbers that cannot be resolved are reported, not guessed.`,
	Example: `numcanon normalize --region US "1 (902) 555-0123"
numcanon normalize --calling-code 49 493083050
numcanon normalize "+44 20 7946 0958"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().String("local", "", "Your own number in E.164 form (sets the region)")
	normalizeCmd.Flags().String("region", "", "Region for numbers without +, e.g. US, BR (overrides the region of --local)")
	normalizeCmd.Flags().Int("calling-code", 0, "Calling code to resolve numbers without + under")
}

type normalizeResult struct {
	Input string `json:"input"`
	E164  string `json:"e164,omitempty"`
	OK    bool   `json:"ok"`
}

func runNormalize(cmd *cobra.Command, args []string) error {
	outFmt, err := checkOutputFormat(cmd)
	if err != nil {
		return err
	}
	e, err := loadEngine(cmd)
	if err != nil {
		return err
	}
	callingCode, _ := cmd.Flags().GetInt("calling-code")
	if callingCode < 0 {
		return fmt.Errorf("--calling-code must be positive, got %d", callingCode)
	}

	region := e.region()
	results := make([]normalizeResult, len(args))
	for i, arg := range args {
		results[i] = normalizeResult{Input: arg}
		if n, ok := e.gen.Parser().ParseContextual(arg, callingCode, region); ok {
			results[i].E164 = n.String()
			results[i].OK = true
		} else {
			e.logger.Info("number not resolved", "region", region, "calling_code", callingCode)
		}
	}

	out := cmd.OutOrStdout()
	switch outFmt {
	case "json":
		return writeJSON(out, results)
	case "csv":
		rows := make([][]string, len(results))
		for i, r := range results {
			rows[i] = []string{r.Input, r.E164}
		}
		return writeCSV(out, []string{"input", "e164"}, rows)
	}

	c := colorEnabled()
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, r := range results {
		if r.OK {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.Input, ui.SymbolArrow, green(r.E164, c))
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.Input, ui.SymbolCross, dim("not a valid number", c))
		}
	}
	return w.Flush()
}
