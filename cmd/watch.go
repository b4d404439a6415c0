package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gamemath-labs/mlin/lint"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-lint script files whenever they change",
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		engine, err := lint.New(dir, cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		if err := engine.StartWatching(); err != nil {
			logger.Fatal("Failed to start watching", zap.Error(err))
		}
		defer func() {
			_ = engine.StopWatching()
		}()

		fmt.Printf("watching %s, press Ctrl-C to stop\n", dir)
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
	},
}
