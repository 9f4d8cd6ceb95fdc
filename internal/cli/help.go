package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/allyourbase/numcanon/internal/candidates"
	"github.com/allyourbase/numcanon/internal/cli/ui"
)

const (
	groupNumbers = "numbers"
	groupConfig  = "config"
)

// initHelp registers command groups and the styled help renderer.
func initHelp() {
	rootCmd.AddGroup(
		&cobra.Group{ID: groupNumbers, Title: "NUMBERS"},
		&cobra.Group{ID: groupConfig, Title: "CONFIGURATION"},
	)

	assign := map[string]string{
		"normalize":  groupNumbers,
		"candidates": groupNumbers,
		"match":      groupNumbers,
		"config":     groupConfig,
		"version":    groupConfig,
	}
	for _, cmd := range rootCmd.Commands() {
		if gid, ok := assign[cmd.Name()]; ok {
			cmd.GroupID = gid
		}
	}

	rootCmd.SetHelpFunc(styledHelp)
	rootCmd.SetUsageFunc(func(cmd *cobra.Command) error {
		styledHelp(cmd, nil)
		return nil
	})
}

func styledHelp(cmd *cobra.Command, _ []string) {
	c := colorEnabled()
	w := cmd.ErrOrStderr()

	fmt.Fprintln(w)
	switch {
	case cmd == rootCmd:
		fmt.Fprintf(w, "  %s %s\n\n", ui.SymbolPhone, boldCyan("numcanon", c))
		for _, line := range strings.Split(cmd.Long, "\n") {
			switch {
			case strings.TrimSpace(line) == "":
				fmt.Fprintln(w)
			case strings.HasPrefix(line, "  "):
				fmt.Fprintf(w, "    %s\n", green(strings.TrimSpace(line), c))
			default:
				fmt.Fprintf(w, "  %s\n", dim(line, c))
			}
		}
	case cmd.Long != "":
		for _, line := range strings.Split(cmd.Long, "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
	default:
		fmt.Fprintf(w, "  %s\n", cmd.Short)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, heading("USAGE", c))
	useLine := cmd.UseLine()
	if cmd.HasAvailableSubCommands() {
		useLine = cmd.CommandPath() + " [command]"
	}
	fmt.Fprintf(w, "  %s\n\n", useLine)

	if cmd.Example != "" {
		fmt.Fprintln(w, heading("EXAMPLES", c))
		for _, line := range strings.Split(cmd.Example, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				fmt.Fprintf(w, "  %s\n", green(line, c))
			}
		}
		fmt.Fprintln(w)
	}

	printCommands(w, cmd, c)
	printFlags(w, cmd, c)

	// Rule names are what engine.disabled_rules accepts.
	if cmd == rootCmd || cmd == candidatesCmd || cmd == matchCmd {
		fmt.Fprintln(w, heading("CANDIDATE RULES", c))
		for _, r := range candidates.DefaultRules {
			fmt.Fprintf(w, "  %s  %s\n", bold(fmt.Sprintf("%-18s", r.Name), c), dim(r.Kind.String()+" ("+r.Region+")", c))
		}
		fmt.Fprintln(w)
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintln(w, dim(fmt.Sprintf("Use \"%s [command] --help\" for more information about a command.", cmd.CommandPath()), c))
		fmt.Fprintln(w)
	}
}

// printCommands lists subcommands, by group when the command has groups.
func printCommands(w io.Writer, cmd *cobra.Command, c bool) {
	if !cmd.HasAvailableSubCommands() {
		return
	}
	grouped := make(map[string][]*cobra.Command)
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() {
			grouped[sub.GroupID] = append(grouped[sub.GroupID], sub)
		}
	}
	for _, g := range cmd.Groups() {
		printCommandList(w, heading(g.Title, c), grouped[g.ID], c)
	}
	title := "COMMANDS"
	if len(cmd.Groups()) > 0 {
		title = "OTHER"
	}
	printCommandList(w, heading(title, c), grouped[""], c)
}

func printCommandList(w io.Writer, title string, cmds []*cobra.Command, c bool) {
	if len(cmds) == 0 {
		return
	}
	pad := 0
	for _, cmd := range cmds {
		pad = max(pad, len(cmd.Name())+4)
	}
	fmt.Fprintln(w, title)
	for _, cmd := range cmds {
		fmt.Fprintf(w, "  %s%s\n", bold(fmt.Sprintf("%-*s", pad, cmd.Name()), c), dim(cmd.Short, c))
	}
	fmt.Fprintln(w)
}

// printFlags shows local flags, then the global ones (root shows both together).
func printFlags(w io.Writer, cmd *cobra.Command, c bool) {
	if cmd == rootCmd {
		printFlagSet(w, "FLAGS", cmd.Flags(), c)
		return
	}
	printFlagSet(w, "FLAGS", cmd.LocalNonPersistentFlags(), c)
	printFlagSet(w, "GLOBAL FLAGS", cmd.InheritedFlags(), c)
}

func printFlagSet(w io.Writer, title string, fs *pflag.FlagSet, c bool) {
	usage := strings.TrimRight(fs.FlagUsages(), "\n")
	if strings.TrimSpace(usage) == "" {
		return
	}
	fmt.Fprintln(w, heading(title, c))
	for _, line := range strings.Split(usage, "\n") {
		if strings.TrimSpace(line) != "" {
			fmt.Fprintln(w, colorizeFlag(line, c))
		}
	}
	fmt.Fprintln(w)
}

// colorizeFlag paints the flag part of a pflag usage line cyan and dims the
// description. pflag separates the two with at least three spaces.
func colorizeFlag(line string, c bool) string {
	if !c {
		return line
	}
	trimmed := strings.TrimLeft(line, " ")
	indent := strings.Repeat(" ", len(line)-len(trimmed))
	if flag, desc, ok := strings.Cut(trimmed, "   "); ok {
		if desc = strings.TrimLeft(desc, " "); desc != "" {
			return indent + cyan(flag, c) + "   " + dim(desc, c)
		}
	}
	return indent + cyan(trimmed, c)
}

func heading(title string, c bool) string {
	return boldCyan(title, c)
}
