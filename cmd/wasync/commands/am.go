package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gwu-libraries/wasync/am"
	"github.com/gwu-libraries/wasync/errors"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Manage wasync configuration",
	Long: `am - Manage wasync configuration ("I am")

Configuration sources (later overrides earlier):
1. Default values
2. System config (/etc/wasync/config.toml)
3. User config (~/.wasync/am.toml)
4. Project config (./am.toml, searched up from the working directory)
5. Environment variables (WASYNC_* prefix, e.g. WASYNC_ASPACE_PASSWORD)

--config <file> replaces steps 2-4 with a single file.

Examples:
  wasync am show                    # Show current configuration
  wasync am show --format json      # Show configuration in JSON format
  wasync am get reconcile.subject   # Get specific config value
  wasync am validate                # Validate current configuration
  wasync am where                   # List config files checked`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the effective configuration from all sources, with passwords masked",
	RunE:  runAmShow,
}

var amGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., aspace.base_url, http.timeout_seconds)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAmGet,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	RunE:  runAmValidate,
}

var amWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show which configuration files are loaded",
	RunE:  runAmWhere,
}

var configFormat string

func init() {
	amShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amGetCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amWhereCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	data, err := marshalConfig(cfg.Redacted(), configFormat)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// marshalConfig renders the configuration in one of the supported formats
func marshalConfig(cfg am.Config, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to JSON")
		}
		return append(data, '\n'), nil

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to YAML")
		}
		return append([]byte("# wasync configuration\n"), data...), nil

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to TOML")
		}
		return append([]byte("# wasync configuration\n"), data...), nil
	}
	return nil, errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)
}

func runAmGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !am.IsSet(key) {
		return errors.Newf("configuration key %q not found", key)
	}
	value := am.Get(key)
	if isSecretKey(key) && value != "" {
		value = "********"
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func isSecretKey(key string) bool {
	return strings.HasSuffix(key, ".password")
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	pterm.Success.WithWriter(cmd.OutOrStdout()).Println("Configuration is valid")
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	pterm.DefaultSection.WithWriter(out).Println("Configuration cascade (later overrides earlier)")

	data := pterm.TableData{{"File", "Status"}}
	for _, path := range am.ConfigPaths() {
		status := "missing"
		if _, err := os.Stat(path); err == nil {
			status = pterm.Green("loaded")
		}
		data = append(data, []string{path, status})
	}
	data = append(data, []string{"WASYNC_* environment", "always"})
	return pterm.DefaultTable.WithWriter(out).WithHasHeader().WithData(data).Render()
}
