package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/syntra-ai/syntra/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		for _, k := range config.ShowAll(cfg) {
			fmt.Printf("  %s = %s  %s\n", colorize(boldStyle, k.Key), k.Value, colorize(faintStyle, k.EnvVar))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  "Set a configuration value. Valid keys: " + strings.Join(config.ValidKeys(), ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Reset a configuration value to its default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.UnsetKey(args[0]); err != nil {
			return err
		}
		printSuccess("Unset %s", args[0])
		return nil
	},
}

var configTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the API bearer token",
}

var configTokenShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the API bearer token",
	RunE: func(cmd *cobra.Command, args []string) error {
		tok, err := config.GetAPIToken(config.NewKeychain())
		if err != nil {
			return err
		}
		fmt.Println(tok)
		return nil
	},
}

var configTokenRotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Replace the API bearer token",
	RunE: func(cmd *cobra.Command, args []string) error {
		kc := config.NewKeychain()
		if err := config.RotateAPIToken(kc); err != nil {
			return err
		}
		if _, err := config.GetAPIToken(kc); err != nil {
			return err
		}
		printSuccess("API token rotated; restart the server to apply it")
		return nil
	},
}

func init() {
	configTokenCmd.AddCommand(configTokenShowCmd, configTokenRotateCmd)
	configCmd.AddCommand(configShowCmd, configSetCmd, configUnsetCmd, configTokenCmd)
}
