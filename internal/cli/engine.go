package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/allyourbase/numcanon/internal/candidates"
	"github.com/allyourbase/numcanon/internal/config"
	"github.com/allyourbase/numcanon/internal/contacts"
	"github.com/allyourbase/numcanon/internal/numplan"
	"github.com/allyourbase/numcanon/internal/phone"
)

// ErrNoLocalNumber is returned by commands that need the owner's number.
var ErrNoLocalNumber = errors.New("no local number configured")

// engine bundles everything a command needs to resolve numbers.
type engine struct {
	cfg    *config.Config
	logger *slog.Logger
	oracle numplan.Oracle
	gen    *candidates.Generator
	local  phone.Number
	// regionSet records an explicit --region, which beats the local number.
	regionSet bool
}

// overrideFlags are command flags that take precedence over config and env.
var overrideFlags = []string{"local", "region", "workers", "format", "log-level"}

func loadEngine(cmd *cobra.Command) (*engine, error) {
	configPath, _ := cmd.Flags().GetString("config")
	flags := make(map[string]string)
	for _, name := range overrideFlags {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			flags[name] = f.Value.String()
		}
	}

	cfg, err := config.Load(configPath, flags)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)

	rules, err := candidates.RulesExcept(cfg.Engine.DisabledRules...)
	if err != nil {
		return nil, fmt.Errorf("engine.disabled_rules: %w", err)
	}
	oracle := numplan.Default()
	e := &engine{
		cfg:    cfg,
		logger: logger,
		oracle: oracle,
		gen:    candidates.NewGenerator(oracle, rules),

		regionSet: flags["region"] != "",
	}

	if cfg.Engine.LocalNumber != "" {
		local, ok := e.gen.Parser().ParseCanonical(cfg.Engine.LocalNumber)
		if !ok {
			return nil, fmt.Errorf("local number %s is not a valid phone number", cfg.Engine.LocalNumber)
		}
		e.local = local
	}
	logger.Debug("engine ready", "local_set", !e.local.IsZero(), "region", e.region(), "rules", len(rules))
	return e, nil
}

// region is an explicit --region, else the local number's region, else
// engine.default_region.
func (e *engine) region() string {
	if !e.regionSet && !e.local.IsZero() {
		return e.oracle.RegionForCallingCode(e.local.CallingCode())
	}
	return e.cfg.Engine.DefaultRegion
}

func (e *engine) requireLocal() error {
	if e.local.IsZero() {
		return ErrNoLocalNumber
	}
	return nil
}

func (e *engine) aggregator() *contacts.Aggregator {
	return contacts.NewAggregator(e.gen, e.logger, e.cfg.Batch.Workers)
}

// Hints suggests follow-up commands for errors the user can fix directly.
func Hints(err error) []string {
	switch {
	case errors.Is(err, ErrNoLocalNumber):
		return []string{
			"pass --local +<your number>",
			"numcanon config set engine.local_number +<your number>",
			"export NUMCANON_LOCAL_NUMBER=+<your number>",
		}
	case errors.Is(err, candidates.ErrUnknownRule):
		return []string{"known rules: " + strings.Join(candidates.RuleNames(), ", ")}
	case errors.Is(err, config.ErrUnknownKey):
		return []string{"numcanon config get --help"}
	}
	return nil
}
