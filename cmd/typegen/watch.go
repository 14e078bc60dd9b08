package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cakeruu/typegen/internal/project"
	"github.com/cakeruu/typegen/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild automatically when schema files change",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := project.LoadConfig(".")
		if err != nil {
			return err
		}

		log, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer log.Sync()

		// Initial build; a failure is reported but watching continues,
		// since the next edit may fix it
		if err := runBuild(".", os.Stdout); err != nil {
			log.Warn("initial build failed", zap.Error(err))
		}

		watcher, err := watch.New(filepath.Join(".", cfg.SourceDir), log, func(changed []string) error {
			log.Info("rebuilding", zap.Int("changed", len(changed)))
			return runBuild(".", os.Stdout)
		})
		if err != nil {
			return err
		}
		if err := watcher.Start(); err != nil {
			return err
		}
		defer watcher.Stop()

		log.Info("watching for changes", zap.String("dir", cfg.SourceDir))

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		return nil
	},
}
