package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	tt "github.com/gamemath-labs/mlin/internal/types"
	"github.com/gamemath-labs/mlin/lint"
)

// initCmd: mlin init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new linter configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfigurationFile(cfgFile); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		fmt.Printf("Configuration file created/updated: %s\n", cfgFile)
	},
}

func initConfigurationFile(configurationPath string) error {
	if configurationPath == "" {
		configurationPath = ".mlin.yaml"
	}

	config := lint.Config{
		Name: "mlin",
		Rules: map[string]tt.ConfigRule{
			"simplify-multiplicative": {Severity: tt.SeverityWarning},
			"net-zero-update":         {Severity: tt.SeverityWarning},
			"epsilon-zero-check":      {Severity: tt.SeverityInfo},
		},
	}
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
