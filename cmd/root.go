package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-addsum/internal/checksum"
	"github.com/deploymenttheory/go-addsum/internal/config"
	"github.com/deploymenttheory/go-addsum/internal/digest"
	"github.com/deploymenttheory/go-addsum/internal/errors"
	"github.com/deploymenttheory/go-addsum/internal/logger"
	"github.com/deploymenttheory/go-addsum/internal/report"
	"github.com/deploymenttheory/go-addsum/internal/runner"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "0.1.0"

// NewRootCmd builds the addsum command around cfg. Flags that are set
// explicitly override the loaded configuration.
func NewRootCmd(cfg *config.AppConfig) *cobra.Command {
	var (
		cfgFile string
		expect  string
	)

	cmd := &cobra.Command{
		Use:   config.AppName + " <filename> <8|16|32>",
		Short: "Compute an additive 8, 16 or 32 bit checksum of a text file",
		Long: `addsum reads a text file, pads it with 'X' to the word size of the
requested checksum, echoes the padded text in 80 character lines and prints
the checksum in hexadecimal.

The 8 bit checksum is the sum of all bytes. The 16 and 32 bit checksums sum
big-endian words of two and four bytes. Each result keeps only the low
8, 16 or 32 bits.`,
		Example: `  addsum input.txt 8
  addsum --format json input.txt 32
  addsum --expect 4142 input.txt 16`,
		Version:       Version,
		Args:          exactArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// If config file was explicitly specified via flag, reload
			if cmd.Flags().Changed("config") && cfgFile != "" {
				loaded, _, err := config.Load(cfgFile)
				if err != nil {
					return errors.NewCLIError(errors.KindConfig, err)
				}
				*cfg = *loaded
			}

			if err := applyFlags(cmd, cfg); err != nil {
				return errors.NewCLIError(errors.KindConfig, err)
			}

			if anyChanged(cmd, "config", "debug", "log-format", "log-file") {
				if err := logger.InitLogger(logger.LoggerConfig{
					Debug:     cfg.Debug,
					LogFormat: cfg.LogFormat,
					LogFile:   cfg.LogFile,
				}); err != nil {
					return errors.NewCLIError(errors.KindConfig, err)
				}
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			width, err := checksum.ParseWidth(args[1])
			if err != nil {
				return errors.NewCLIError(errors.KindInvalidWidth, err)
			}

			format, err := report.ParseFormat(cfg.Output.Format)
			if err != nil {
				return errors.NewCLIError(errors.KindOutput, err)
			}

			algorithm, err := digest.ParseAlgorithm(cfg.Digest)
			if err != nil {
				return errors.NewCLIError(errors.KindOutput, err)
			}

			_, err = runner.Run(runner.Options{
				Path:       args[0],
				Width:      width,
				Input:      cfg.InputOptions(),
				Format:     format,
				LineLength: cfg.Output.LineLength,
				Digest:     algorithm,
				Expect:     expect,
			}, cmd.OutOrStdout())
			return err
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is addsum.yaml in ., the user config dir or /etc/addsum)")
	flags.Bool("debug", cfg.Debug, "Enable debug logging")
	flags.String("log-format", cfg.LogFormat, "Log format: json or human")
	flags.String("log-file", cfg.LogFile, "Also write logs to this file")

	local := cmd.Flags()
	local.Int("max-bytes", cfg.Input.MaxBytes, "Maximum number of input bytes to read, 0 for no limit")
	local.Bool("decompress", cfg.Input.Decompress, "Decode gzip, bzip2, xz or zstd input before checksumming")
	local.Int("line-length", cfg.Output.LineLength, "Characters per line when echoing the input")
	local.StringP("format", "o", cfg.Output.Format, "Output format: text, json, yaml or plist")
	local.String("digest", cfg.Digest, "Also print a digest: sha256, blake2b-256 or sha3-256")
	local.StringVar(&expect, "expect", "", "Expected checksum in hex; a mismatch fails the command")

	// A version subcommand would shadow a file named "version".
	cmd.SetVersionTemplate(config.AppName + " v{{.Version}}\n")

	return cmd
}

// Execute runs the root command against config.Instance and reports any
// failure on stderr. config.Initialize must have run first.
func Execute() error {
	rootCmd := NewRootCmd(&config.Instance)
	err := rootCmd.Execute()
	if err != nil {
		reportError(rootCmd, err)
	}
	return err
}

func reportError(cmd *cobra.Command, err error) {
	kind := errors.Kind(err)

	logger.LogDebug("Command execution failed", map[string]interface{}{
		"kind":  kind.String(),
		"error": err.Error(),
	})

	w := cmd.ErrOrStderr()
	if kind == errors.KindUsage {
		fmt.Fprintf(w, "Usage: %s\n", cmd.UseLine())
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func exactArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return errors.NewCLIError(errors.KindUsage,
			errors.Wrap(errors.ErrUsage, "expected <filename> <8|16|32>, got %d argument(s)", len(args)))
	}
	return nil
}

// applyFlags copies explicitly set flags onto cfg and validates the result.
func applyFlags(cmd *cobra.Command, cfg *config.AppConfig) error {
	flags := cmd.Flags()

	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("log-format") {
		cfg.LogFormat, _ = flags.GetString("log-format")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
	if flags.Changed("max-bytes") {
		cfg.Input.MaxBytes, _ = flags.GetInt("max-bytes")
	}
	if flags.Changed("decompress") {
		cfg.Input.Decompress, _ = flags.GetBool("decompress")
	}
	if flags.Changed("line-length") {
		cfg.Output.LineLength, _ = flags.GetInt("line-length")
	}
	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("digest") {
		cfg.Digest, _ = flags.GetString("digest")
	}

	return cfg.Validate()
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			return true
		}
	}
	return false
}
