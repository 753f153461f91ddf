package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ocrstream/internal/config"
)

// options are the process-level inputs that are not part of config.Config.
type options struct {
	configPath string
	envFiles   []string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. The root command serves.
func newRootCmd() *cobra.Command {
	opts := &options{}
	defs := config.Defaults()

	root := &cobra.Command{
		Use:           "ocrstreamd",
		Short:         "Streaming OCR websocket server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Config file (.yaml, .toml or .json)")
	pf.StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, "dotenv files loaded before OCRSTREAM_* variables are read")
	pf.String("addr", defs.Addr, "HTTP listen address")
	pf.String("lang", defs.Lang, "Recognition language(s), e.g. eng or eng+deu")
	pf.Bool("use-gpu", defs.UseGPU, "Request GPU inference when the engine supports it")
	pf.String("det-model-dir", "", "Detection model directory")
	pf.String("rec-model-dir", "", "Recognition model (tessdata) directory")
	pf.Int("workers", defs.NumWorkers, "Number of OCR workers")
	pf.Int("queue-capacity", defs.QueueCapacity, "Frame queue capacity; frames beyond it are dropped")
	pf.Bool("notify-drops", defs.NotifyDrops, "Send frame_dropped after the ack when a frame is shed")
	pf.StringSlice("cors-origins", nil, "Allowed origins for CORS and websocket upgrades")
	pf.String("log-level", defs.LogLevel, "Log level: debug|info|warn|error")
	pf.String("log-format", defs.LogFormat, "Log format: json|console")
	pf.String("log-file", "", "Also write logs to this file, rotated")

	root.AddCommand(newSanityCmd(opts), newLanguagesCmd(opts))
	return root
}

// resolveConfig layers defaults, the config file, the environment and
// explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	if err := config.LoadDotEnv(opts.envFiles...); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Resolve(opts.configPath, os.LookupEnv)
	if err != nil {
		return cfg, err
	}
	if err := applyFlags(cmd.Flags(), &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// applyFlags copies only the flags the user changed onto cfg.
func applyFlags(fs *pflag.FlagSet, cfg *config.Config) error {
	var err error
	str := func(name string, dst *string) {
		if err == nil && fs.Changed(name) {
			*dst, err = fs.GetString(name)
		}
	}
	integer := func(name string, dst *int) {
		if err == nil && fs.Changed(name) {
			*dst, err = fs.GetInt(name)
		}
	}
	boolean := func(name string, dst *bool) {
		if err == nil && fs.Changed(name) {
			*dst, err = fs.GetBool(name)
		}
	}
	str("addr", &cfg.Addr)
	str("lang", &cfg.Lang)
	boolean("use-gpu", &cfg.UseGPU)
	str("det-model-dir", &cfg.DetModelDir)
	str("rec-model-dir", &cfg.RecModelDir)
	integer("workers", &cfg.NumWorkers)
	integer("queue-capacity", &cfg.QueueCapacity)
	boolean("notify-drops", &cfg.NotifyDrops)
	str("log-level", &cfg.LogLevel)
	str("log-format", &cfg.LogFormat)
	str("log-file", &cfg.LogFile)
	if err == nil && fs.Changed("cors-origins") {
		cfg.CORSOrigins, err = fs.GetStringSlice("cors-origins")
	}
	return err
}
