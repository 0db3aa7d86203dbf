package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/rickyckwong/transfer-suggest/internal/domain"
	"github.com/rickyckwong/transfer-suggest/internal/engine"
	"github.com/rickyckwong/transfer-suggest/internal/service"
	"github.com/rickyckwong/transfer-suggest/pkg/logger"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "transfer",
		Usage: "Generate inter-shop transfer suggestions from an inventory dataset",
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "Analyze a dataset and write the suggestion report",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Inventory dataset (.xlsx or .csv)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "mode",
						Aliases: []string{"m"},
						Usage:   "Transfer mode: A, B or C",
						Value:   "A",
						EnvVars: []string{"TRANSFER_MODE"},
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Report path (defaults to a timestamped file next to the input)",
					},
					&cli.IntFlag{
						Name:    "workers",
						Usage:   "Number of articles analyzed in parallel (0 uses the default)",
						EnvVars: []string{"APP_ENGINE_WORKERS"},
					},
					&cli.StringFlag{
						Name:    "log-level",
						Usage:   "Log level (debug, release)",
						Value:   "release",
						EnvVars: []string{"LOG_LEVEL"},
					},
				},
				Action: runAnalyze,
			},
			{
				Name:   "modes",
				Usage:  "List the available transfer modes",
				Action: listModes,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runAnalyze(c *cli.Context) error {
	logger.SetLevel(c.String("log-level"))

	input := c.String("input")
	mode, err := domain.ParseMode(c.String("mode"))
	if err != nil {
		return err
	}

	eng := engine.New(engine.WithWorkers(c.Int("workers")))
	transferService := service.NewTransferService(eng, nil, nil, nil)

	result, err := transferService.AnalyzeFile(c.Context, input, filepath.Base(input), mode)
	if err != nil {
		return err
	}

	report, filename, err := transferService.ExportReport(c.Context, result)
	if err != nil {
		return err
	}

	output := c.String("output")
	if output == "" {
		output = filepath.Join(filepath.Dir(input), filename)
	}
	if err := os.WriteFile(output, report, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", output, err)
	}

	fmt.Printf("Mode %s (%s): %d suggestion lines, %d pcs across %d articles\n",
		mode, mode.Name(), result.Summary.TotalLines, result.Summary.TotalTransferQty,
		len(result.Summary.ByArticle))
	if result.Diagnostic != nil {
		fmt.Printf("No transfers suggested: %s\n", result.Diagnostic.Reason)
		for _, s := range result.Diagnostic.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}
	fmt.Printf("Report written to %s\n", output)
	return nil
}

func listModes(c *cli.Context) error {
	for _, mode := range domain.Modes {
		fmt.Printf("%s\t%s\n", mode, mode.Name())
	}
	return nil
}
