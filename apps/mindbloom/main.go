package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/mindbloom/apps"
	"github.com/trezcool/mindbloom/core"
	"github.com/trezcool/mindbloom/core/wellness"
	logsvc "github.com/trezcool/mindbloom/services/logger"
	inmemdb "github.com/trezcool/mindbloom/storage/inmem"
)

var (
	loadConfigFunc = core.NewConfig   // mockable
	newLoggerFunc  = logsvc.NewLogger // mockable
)

func main() {
	a := &app{}
	err := newRootCmd(a).Execute()
	a.close()
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds what the commands share: one in-memory session per process.
type app struct {
	conf    *core.Config
	logger  *logsvc.Logger
	svc     *wellness.Service
	catalog *wellness.Catalog
}

func (a *app) init(conf *core.Config) error {
	logger, err := newLoggerFunc(conf, "mindbloom")
	if err != nil {
		return err
	}
	translator := core.NewTranslator()
	validator, err := wellness.NewValidator(
		wellness.Policy{HealthyThreshold: conf.HealthyThreshold},
		core.NewValidate(translator),
		translator,
	)
	if err != nil {
		logger.Close()
		return err
	}

	a.conf = conf
	a.logger = logger
	a.svc = wellness.NewService(inmemdb.NewEntryStore(), validator, logger)
	a.catalog = wellness.NewCatalog(conf.WellnessActivities, conf.MeTimeActivities)
	logger.Debug("session started", map[string]interface{}{
		"env":       conf.Env,
		"threshold": conf.HealthyThreshold,
	})
	return nil
}

func (a *app) close() {
	if a.logger != nil {
		a.logger.Close()
	}
}

func newRootCmd(a *app) *cobra.Command {
	var (
		threshold float64
		verbose   bool
	)

	root := &cobra.Command{
		Use:           "mindbloom",
		Short:         "Log and review student wellness entries",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfigFunc()
			if err != nil {
				return errors.Wrap(err, "loading config")
			}
			if cmd.Flags().Changed("threshold") {
				if !(threshold > 0) {
					return apps.NewArgumentError("--threshold must be greater than 0")
				}
				conf.HealthyThreshold = threshold
			}
			if verbose {
				conf.LogLevel = "debug"
			}
			return a.init(conf)
		},
	}
	root.PersistentFlags().Float64Var(&threshold, "threshold", wellness.DefaultHealthyThreshold,
		"screen-free minutes needed for a Healthy entry (overrides the config)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")

	root.AddCommand(newValidateCmd(a))
	root.AddCommand(newPreviewCmd(a))
	root.AddCommand(newShellCmd(a))
	root.AddCommand(newFormCmd(a))
	root.AddCommand(newBatchCmd(a))
	return root
}

// printError writes err for a human: validation errors are listed field by field.
func printError(w io.Writer, err error) {
	if vErr, ok := wellness.AsValidationError(err); ok {
		_, _ = fmt.Fprintf(w, "invalid input:\n%s\n", vErr.Details())
		return
	}
	_, _ = fmt.Fprintf(w, "error: %s\n", err)
}
