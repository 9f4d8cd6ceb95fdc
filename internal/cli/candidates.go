package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/allyourbase/numcanon/internal/cli/ui"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates <number>...",
	Short: "List every canonical number an entry may stand for",
	Long: `List the canonical numbers a phone entry could stand for, most direct
interpretation first. Bare subscriber numbers borrow the area code of your own
number (North America, Brazil), and Mexican mobile numbers are listed both
with and without the retired "1" prefix.`,
	Example: `numcanon candidates --local +13233214321 555-1234
numcanon candidates --local +5521912345678 98765-4321 3234-5678`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCandidates,
}

func init() {
	candidatesCmd.Flags().String("local", "", "Your own number in E.164 form")
}

type candidatesResult struct {
	Input      string   `json:"input"`
	Candidates []string `json:"candidates"`
}

func runCandidates(cmd *cobra.Command, args []string) error {
	outFmt, err := checkOutputFormat(cmd)
	if err != nil {
		return err
	}
	e, err := loadEngine(cmd)
	if err != nil {
		return err
	}
	if err := e.requireLocal(); err != nil {
		return err
	}

	results := make([]candidatesResult, len(args))
	for i, arg := range args {
		results[i] = candidatesResult{Input: arg, Candidates: e.gen.Generate(arg, e.local).Strings()}
	}

	out := cmd.OutOrStdout()
	switch outFmt {
	case "json":
		return writeJSON(out, results)
	case "csv":
		var rows [][]string
		for _, r := range results {
			for rank, n := range r.Candidates {
				rows = append(rows, []string{r.Input, fmt.Sprint(rank + 1), n})
			}
		}
		return writeCSV(out, []string{"input", "rank", "e164"}, rows)
	}

	c := colorEnabled()
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, r := range results {
		if len(r.Candidates) == 0 {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.Input, ui.SymbolCross, dim("no candidates", c))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Input, ui.SymbolArrow, green(strings.Join(r.Candidates, ", "), c))
	}
	return w.Flush()
}
