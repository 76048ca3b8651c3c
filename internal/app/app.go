package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eshaanmathakari/Datenschutz/internal/cli"
)

func BuildRoot() *cobra.Command {
	root := &cobra.Command{Use: "datenschutz", Short: "Security vulnerability scanner with rule-based and model-based detection"}
	root.PersistentFlags().Bool("debug", false, "Enable debug logging")
	_ = viper.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))
	cli.AddCommands(root)
	return root
}
