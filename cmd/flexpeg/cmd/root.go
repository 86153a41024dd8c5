package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ava12/flexpeg/internal/config"
	"github.com/ava12/flexpeg/internal/host"
	"github.com/ava12/flexpeg/internal/logging"
)

// Version is the program version, may be overridden at link time.
var Version = "0.1.0"

type rootOptions struct {
	cfgFile string
	flags   *config.Config
	sexp    bool
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	o := &rootOptions{flags: config.Default()}
	c := &cobra.Command{
		Use:   "flexpeg [flags] [<flexfile>]",
		Short: "Translate flex lexer specification to Treetop grammar",
		Long: `flexpeg reads a flex file (or standard input if it is not a terminal)
and writes an equivalent Treetop grammar: name definitions and rules
become grammar rules, rule names are deduced from actions
like "{ return NAME; }" or "/* SOME NAME */".`,
		Args:          cobra.MaximumNArgs(1),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, args []string) error {
			return o.run(c, args)
		},
	}

	fs := c.Flags()
	fs.StringVar(&o.cfgFile, "config", "", "config file (.toml, .yaml), default is $"+config.EnvVar)
	fs.StringVarP(&o.flags.Grammar, "grammar", "g", "", `also output grammar declaration (or "Mod1::Mod2::Grammar")`)
	fs.BoolVarP(&o.flags.CaseInsensitive, "case-insensitive", "i", false, "fold letter ranges of character classes")
	fs.StringVarP(&o.flags.Output, "output", "o", "", "output grammar file, default is standard output")
	fs.BoolVarP(&o.flags.Force, "force", "f", false, "regenerate existing output file")
	fs.BoolVar(&o.flags.Buffered, "buffered", false, "write output at once after successful translation")
	fs.BoolVarP(&o.sexp, "sexp", "s", false, "show sexp of parsed flex file and exit")
	fs.StringVar(&o.flags.LogLevel, "log-level", o.flags.LogLevel, "log level (debug, info, warning, error)")
	fs.StringVar(&o.flags.LogFormat, "log-format", o.flags.LogFormat, "log format (text, json)")
	return c
}

// Execute runs the root command and reports its error to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "flexpeg:", err)
	}
	return err
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.cfgFile != "" {
		return config.Load(o.cfgFile)
	}
	return config.LoadFromEnv()
}

// mergeFlags overrides config settings with explicitly set flags.
func (o *rootOptions) mergeFlags(cfg *config.Config, fs *pflag.FlagSet) {
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}

	set("grammar", func() { cfg.Grammar = o.flags.Grammar })
	set("case-insensitive", func() { cfg.CaseInsensitive = o.flags.CaseInsensitive })
	set("output", func() { cfg.Output = o.flags.Output })
	set("force", func() { cfg.Force = o.flags.Force })
	set("buffered", func() { cfg.Buffered = o.flags.Buffered })
	set("log-level", func() { cfg.LogLevel = o.flags.LogLevel })
	set("log-format", func() { cfg.LogFormat = o.flags.LogFormat })
}

func (o *rootOptions) run(c *cobra.Command, args []string) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	o.mergeFlags(cfg, c.Flags())

	if err = logging.SetupLogging(c.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}

	h := host.New()
	h.Stdin = c.InOrStdin()
	h.Stdout = c.OutOrStdout()
	return h.Run(host.Options{
		Grammar:         cfg.Grammar,
		CaseInsensitive: cfg.CaseInsensitive,
		Output:          cfg.Output,
		Force:           cfg.Force,
		Buffered:        cfg.Buffered,
		Sexp:            o.sexp,
	}, args)
}
