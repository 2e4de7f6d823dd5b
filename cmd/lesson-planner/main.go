// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lesson-planner CLI. It collects
// lesson parameters, asks a chat-completion service for a plan, shows the
// plan section by section, and exports it as PDF or DOCX.
package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lesson-planner/internal/secrets"
	"github.com/pdiddy/lesson-planner/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from the secrets directory at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the lesson-planner CLI.
var rootCmd = &cobra.Command{
	Use:   "lesson-planner",
	Short: "Generate structured lesson plans with an LLM",
	Long: `lesson-planner turns a subject, topic, grade level, and teaching style into a
lesson plan with four sections: learning objectives, teaching strategies,
homework assignments, and practice problems with solutions.

The last generated plan is kept in a session file so it can be shown again,
copied section by section, or exported to PDF and DOCX.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger.SetLevel(logrus.DebugLevel)
		}
		s, err := secrets.Load(viper.GetString("secrets_dir"), logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.WithField("keys", keys).Debug("loaded secrets")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lesson-planner.yaml or ~/.config/lesson-planner/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().String("session-file", "", "session file holding the last generated plan")
	rootCmd.PersistentFlags().String("secrets-dir", "", "directory of secret files")

	_ = viper.BindPFlag("session_file", rootCmd.PersistentFlags().Lookup("session-file"))
	_ = viper.BindPFlag("secrets_dir", rootCmd.PersistentFlags().Lookup("secrets-dir"))
}

func setDefaults() {
	def := types.DefaultCompletionConfig()
	viper.SetDefault("completion.endpoint", def.Endpoint)
	viper.SetDefault("completion.model", def.Model)
	viper.SetDefault("completion.max_tokens", def.MaxTokens)
	viper.SetDefault("completion.temperature", def.Temperature)
	viper.SetDefault("completion.timeout", def.Timeout)
	viper.SetDefault("completion.user_agent", def.UserAgent)
	viper.SetDefault("export.output_dir", ".")
	viper.SetDefault("export.formats", []string{"pdf", "docx"})
	viper.SetDefault("ledger.path", filepath.Join(".lesson-planner", "attempts.db"))
	viper.SetDefault("session_file", filepath.Join(".lesson-planner", "session.yaml"))
	viper.SetDefault("secrets_dir", secrets.DefaultDir)
}

func initConfig() {
	setDefaults()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lesson-planner")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lesson-planner"))
		}
	}

	viper.SetEnvPrefix("LESSON_PLANNER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	}
}

// plannerConfig assembles the typed configuration from viper. The API key
// is resolved from flag, then config or environment, then the secrets
// directory.
func plannerConfig(apiKeyFlag string) types.PlannerConfig {
	cfg := types.PlannerConfig{
		Completion: types.CompletionConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("completion.timeout"),
				UserAgent: viper.GetString("completion.user_agent"),
			},
			Endpoint:    viper.GetString("completion.endpoint"),
			Model:       viper.GetString("completion.model"),
			MaxTokens:   viper.GetInt("completion.max_tokens"),
			Temperature: viper.GetFloat64("completion.temperature"),
		},
		Export: types.ExportConfig{
			OutputDir: viper.GetString("export.output_dir"),
			Formats:   viper.GetStringSlice("export.formats"),
		},
		Ledger:      types.LedgerConfig{Path: viper.GetString("ledger.path")},
		SessionFile: viper.GetString("session_file"),
		SecretsDir:  viper.GetString("secrets_dir"),
	}
	cfg.Completion.APIKey = secrets.Resolve(loadedSecrets, secrets.TogetherAPIKey,
		apiKeyFlag, viper.GetString("completion.api_key"))
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
