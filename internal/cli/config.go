package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/allyourbase/numcanon/internal/candidates"
	"github.com/allyourbase/numcanon/internal/cli/ui"
	"github.com/allyourbase/numcanon/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print resolved configuration",
	Long: `Load and print the resolved numcanon configuration as TOML.
Shows the result of merging defaults, numcanon.toml, NUMCANON_* environment
variables, and flags.`,
	RunE: runConfig,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long: `Get a configuration value by dotted key.
Keys: engine.local_number, engine.default_region, engine.disabled_rules,
batch.workers, batch.input_format, logging.level, logging.format`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value in numcanon.toml",
	Long: `Set a configuration value in the config file, creating it if needed.
List values (engine.disabled_rules) are comma-separated.`,
	Example: `numcanon config set engine.local_number +13233214321
numcanon config set engine.disabled_rules mx-mobile-prefix
numcanon config set batch.workers 16`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default numcanon.toml",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
}

func configPath(cmd *cobra.Command) string {
	p, _ := cmd.Flags().GetString("config")
	if p == "" {
		return config.DefaultPath
	}
	return p
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath(cmd), nil)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if outputFormat(cmd) == "json" {
		return writeJSON(cmd.OutOrStdout(), cfg)
	}
	out, err := cfg.ToTOML()
	if err != nil {
		return fmt.Errorf("serializing config: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath(cmd), nil)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	value, err := config.GetValue(cfg, args[0])
	if err != nil {
		return err
	}
	if outputFormat(cmd) == "json" {
		return writeJSON(cmd.OutOrStdout(), map[string]any{"key": args[0], "value": value})
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path := configPath(cmd)
	key, value := args[0], args[1]

	if key == "engine.disabled_rules" {
		if _, err := candidates.RulesExcept(config.SplitList(value)...); err != nil {
			return err
		}
	}
	if err := config.SetValue(path, key, value); err != nil {
		return fmt.Errorf("setting config value: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s = %s\n", key, value)
	fmt.Fprintf(out, "Written to %s\n", path)

	// Values may be set one at a time, so an invalid result only warns.
	if _, err := config.Load(path, nil); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", ui.StyleWarning.Render("Warning:"), err)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath(cmd)
	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := config.GenerateDefault(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", ui.SymbolCheck, path)
	return nil
}
