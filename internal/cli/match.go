package cli

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/allyourbase/numcanon/internal/cli/ui"
	"github.com/allyourbase/numcanon/internal/contacts"
)

var matchCmd = &cobra.Command{
	Use:   "match [file]",
	Short: "Build discovery match sets for a list of contacts",
	Long: `Read contacts and print, for each one, the set of canonical numbers it may
be registered under. Reads stdin when no file (or "-") is given.

CSV input has the columns contact_id,label,number (header optional); rows with
the same contact_id belong to one contact. JSON input is an array of
{"id": "...", "entries": [{"label": "...", "number": "..."}]}.`,
	Example: `numcanon match --local +13233214321 contacts.csv
numcanon match --local +5521912345678 --format json --json < contacts.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().String("local", "", "Your own number in E.164 form")
	matchCmd.Flags().String("format", "", "Input format: csv or json (default from config)")
	matchCmd.Flags().Int("workers", 0, "Contacts processed in parallel (default from config)")
}

func runMatch(cmd *cobra.Command, args []string) error {
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

	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening contacts: %w", err)
		}
		defer f.Close()
		in = f
	}
	batch, err := readContacts(in, e.cfg.Batch.InputFormat)
	if err != nil {
		return err
	}

	var progress *ui.Progress
	if ui.IsTerminal(os.Stderr.Fd()) {
		progress = ui.NewProgress(cmd.ErrOrStderr(), false)
		progress.Start(fmt.Sprintf("Matching %d contacts...", len(batch)))
	}
	results, err := e.aggregator().AggregateAll(cmd.Context(), batch, e.local)
	if err != nil {
		if progress != nil {
			progress.Fail("interrupted")
		}
		return fmt.Errorf("matching contacts: %w", err)
	}
	if progress != nil {
		progress.Done(fmt.Sprintf("%d numbers", countNumbers(results)))
	}

	return writeMatchResults(cmd.OutOrStdout(), outFmt, results)
}

func countNumbers(results []contacts.Result) int {
	n := 0
	for _, r := range results {
		n += r.Matches.Len()
	}
	return n
}

func writeMatchResults(out io.Writer, outFmt string, results []contacts.Result) error {
	switch outFmt {
	case "json":
		if results == nil {
			results = []contacts.Result{}
		}
		return writeJSON(out, results)
	case "csv":
		var rows [][]string
		for _, r := range results {
			for _, n := range r.Matches.Strings() {
				rows = append(rows, []string{r.ContactID, n})
			}
		}
		return writeCSV(out, []string{"contact_id", "e164"}, rows)
	}

	c := colorEnabled()
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, bold("CONTACT\tNUMBERS", c))
	for _, r := range results {
		numbers := dim("-", c)
		if r.Matches.Len() > 0 {
			numbers = strings.Join(r.Matches.Strings(), ", ")
		}
		fmt.Fprintf(w, "%s\t%s\n", r.ContactID, numbers)
	}
	return w.Flush()
}

// readContacts decodes a contact list in the given format.
func readContacts(r io.Reader, format string) ([]contacts.Contact, error) {
	switch format {
	case "json":
		var batch []contacts.Contact
		if err := json.NewDecoder(r).Decode(&batch); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, fmt.Errorf("decoding contacts JSON: %w", err)
		}
		return batch, nil
	case "csv":
		return readContactsCSV(r)
	default:
		return nil, fmt.Errorf("unsupported input format %q (use csv or json)", format)
	}
}

// readContactsCSV groups contact_id,label,number rows by contact, keeping
// the order in which contacts first appear.
func readContactsCSV(r io.Reader) ([]contacts.Contact, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	var batch []contacts.Contact
	index := make(map[string]int)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading contacts CSV: %w", err)
		}
		if line == 1 && strings.EqualFold(rec[0], "contact_id") {
			continue
		}
		id := strings.TrimSpace(rec[0])
		if id == "" {
			return nil, fmt.Errorf("reading contacts CSV: line %d: empty contact_id", line)
		}
		i, ok := index[id]
		if !ok {
			i = len(batch)
			index[id] = i
			batch = append(batch, contacts.Contact{ID: id})
		}
		batch[i].Entries = append(batch[i].Entries, contacts.Entry{Label: rec[1], Raw: rec[2]})
	}
	return batch, nil
}
