package commands

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/config"
	"github.com/Carmen-Shannon/oxy-gl/engine/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type options struct {
	cfgFile string
	verbose bool
	v       *viper.Viper
	cfg     *config.Config
}

// NewRootCommand builds the oxygl command tree. Running it without a
// subcommand opens the viewer.
func NewRootCommand() *cobra.Command {
	o := &options{v: viper.New()}

	root := &cobra.Command{
		Use:   "oxygl",
		Short: "Deferred rendering playground",
		Long: `oxygl renders a lit scene into a geometry buffer and shows one of its
attachments through a full-screen post-process pass: Bayer dithering,
Prewitt edges, Prewitt edges on normals, or a convolution filter.

Settings come from config.yaml, OXYGL_* environment variables and flags,
with flags taking precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(o.cfg)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&o.cfgFile, "config", "", "config file (default is ./config.yaml or $HOME/.oxygl/config.yaml)")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")
	flags.String("pass", "", "post-process pass: bayer, prewitt, prewitt_normals or filter")
	flags.String("source", "", "geometry buffer attachment fed to the pass: position, albedo, normal or depth")

	root.AddCommand(newPassesCommand())
	return root
}

// load merges defaults, the config file, the environment and flags, then
// sets up logging.
func (o *options) load(cmd *cobra.Command) error {
	if err := config.Bind(o.v, o.cfgFile); err != nil {
		return err
	}
	flags := cmd.Flags()
	for key, flag := range map[string]string{
		"pipeline.pass":   "pass",
		"pipeline.source": "source",
	} {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			if err := o.v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	cfg, err := config.FromViper(o.v)
	if err != nil {
		return err
	}
	if o.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Init(cfg.Logging.Level, cfg.Logging.File, cfg.Logging.Console); err != nil {
		return err
	}
	if used := o.v.ConfigFileUsed(); used != "" {
		logging.Get().WithField("file", used).Debug("config loaded")
	}
	o.cfg = cfg
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
