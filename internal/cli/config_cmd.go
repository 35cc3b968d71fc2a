package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jra3/orgmind/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective or on-disk configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the resolved configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd, configPathCmd)
}

// resolvedConfigPath applies the same "default extensionless to .toml" rule
// the original tool applies to an explicit --config value or the XDG default.
func resolvedConfigPath(cmd *cobra.Command) string {
	explicit, _ := cmd.Flags().GetString("config")
	path := explicit
	if path == "" {
		path = config.DefaultPath(os.Getenv)
	}
	if filepath.Ext(path) == "" {
		path += ".toml"
	}
	return path
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := resolvedConfigPath(cmd)

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Configuration file already exists at: %s\n", path)
		fmt.Println("Use 'org config show' to view current configuration")
		return nil
	}

	defaultConfig, err := config.GenerateDefault()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return err
	}

	fmt.Printf("Default configuration file created at: %s\n", path)
	fmt.Println("Edit this file to customize your org-mode setup")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	explicit, _ := cmd.Flags().GetString("config")

	if cfg, err := config.Load(explicit, os.Getenv); err == nil {
		body, err := tomlDisplay(cfg)
		if err != nil {
			return err
		}
		fmt.Println(body)
		return nil
	}

	path := resolvedConfigPath(cmd)
	if data, err := os.ReadFile(path); err == nil {
		fmt.Println(string(data))
		return nil
	}

	defaultConfig, err := config.GenerateDefault()
	if err != nil {
		return err
	}
	fmt.Println(defaultConfig)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	fmt.Println(resolvedConfigPath(cmd))
	return nil
}

// tomlDisplay re-renders a successfully loaded config back to TOML, the way
// `config show` displays whatever is actually in effect (defaults, file, and
// environment overrides all folded together) rather than the raw file.
func tomlDisplay(cfg *config.Config) (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return "", err
	}
	return b.String(), nil
}
