package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/deputes/internal/model"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage deputes configuration",
	Long: `Manage deputes configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (DEPUTES_*)
3. Config file (~/.deputes/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := model.DefaultConfig()

		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}
		fmt.Println(string(yamlData))

		fmt.Println("Configuration hierarchy (highest to lowest priority):")
		fmt.Println("  1. CLI flags")
		fmt.Println("  2. Environment variables (DEPUTES_*, OPENAI_API_KEY)")
		fmt.Println("  3. Config file (~/.deputes/config.yaml)")
		fmt.Println("  4. Defaults (shown above)")

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configDir := filepath.Join(home, ".deputes")
		configPath := filepath.Join(configDir, "config.yaml")

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s\nUse 'deputes config show' to view it, or delete it first to recreate", configPath)
		}

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}

		yamlData, err := yaml.Marshal(model.DefaultConfig())
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}

		content := "# Deputes configuration file\n" +
			"# See https://github.com/ppiankov/deputes for documentation\n" +
			"#\n" +
			"# Hierarchy (highest to lowest priority):\n" +
			"#   1. CLI flags\n" +
			"#   2. Environment variables (DEPUTES_*)\n" +
			"#   3. This config file\n" +
			"#   4. Built-in defaults\n\n" +
			string(yamlData) +
			"\n# API keys are read from the environment:\n" +
			"#   export OPENAI_API_KEY=sk-...\n" +
			"#   export OLLAMA_BASE_URL=http://localhost:11434\n"

		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			return fmt.Errorf("error writing config: %w", err)
		}

		fmt.Printf("✓ Created default configuration: %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
