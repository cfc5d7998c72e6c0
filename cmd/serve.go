package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/26sneakysnake/Career-Compass/internal/catalog"
	"github.com/26sneakysnake/Career-Compass/internal/coach"
	"github.com/26sneakysnake/Career-Compass/internal/metrics"
	"github.com/26sneakysnake/Career-Compass/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve recommendations over HTTP",
	Run: func(_ *cobra.Command, _ []string) {
		runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().Int("rate-limit", 0, "requests per minute per client IP, 0 disables limiting (default 100)")

	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("server.rate-limit", serveCmd.Flags().Lookup("rate-limit"))
}

func runServe() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, config := setup()
	logger.Info("starting the career-compass server", currentBuild().Fields()...)

	engine := loadEngine(config, logger)

	tables := engine.Tables()
	metrics.SetCatalogRecords(catalog.TableEmployees, len(tables.Employees))
	metrics.SetCatalogRecords(catalog.TableCareerPaths, len(tables.CareerPaths))
	metrics.SetCatalogRecords(catalog.TableTrainings, len(tables.Trainings))

	var careerCoach *coach.Coach
	if config.Coach.Enabled {
		var err error
		careerCoach, err = newCoach(ctx, config.Coach, logger)
		if err != nil {
			logger.Warn("serving without career coach", zap.Error(err))
		}
	}

	srv := server.New(engine, careerCoach, config.Server, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Fatal("running http server", zap.Error(err))
	}

	logger.Info("exiting", zap.String("reason", "shutdown requested"))
}
