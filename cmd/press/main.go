package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"
	"philcali.me/button/internal/app"
	"philcali.me/button/internal/config"
	"philcali.me/button/internal/data"
	"philcali.me/button/internal/loggers"
)

type ClickCmd struct {
	Serial    string `arg:"--serial,required" help:"button serial number"`
	ClickType string `arg:"--click-type" default:"SINGLE" help:"SINGLE, DOUBLE or LONG"`
	Battery   string `arg:"--battery" default:"1500mV" help:"reported battery voltage"`
}

type HistoryCmd struct {
	Serial    string `arg:"--serial,required" help:"button serial number"`
	Limit     int    `arg:"--limit" default:"10" help:"presses per page"`
	NextToken string `arg:"--next-token" help:"token from a previous page"`
}

type args struct {
	EnvFile string      `arg:"--env-file" help:"dotenv file loaded before reading configuration"`
	Click   *ClickCmd   `arg:"subcommand:click" help:"simulate a button press"`
	History *HistoryCmd `arg:"subcommand:history" help:"list recorded presses"`
}

func main() {
	var cli args
	parser := arg.MustParse(&cli)
	if cli.Click == nil && cli.History == nil {
		parser.Fail("a subcommand is required: click or history")
	}
	if err := run(context.Background(), cli, os.Stdout); err != nil {
		log.Fatalf("press: %v", err)
	}
}

// run returns instead of exiting so the deferred logger flush happens.
func run(ctx context.Context, cli args, out io.Writer) error {
	if len(cli.EnvFile) > 0 {
		if err := godotenv.Load(cli.EnvFile); err != nil {
			return fmt.Errorf("error loading %s: %w", cli.EnvFile, err)
		}
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	logger, err := loggers.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	button, err := app.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("error creating aws clients: %w", err)
	}

	var output interface{}
	switch {
	case cli.Click != nil:
		output, err = button.HandleRequest(ctx, data.ClickEvent{
			SerialNumber:   cli.Click.Serial,
			BatteryVoltage: cli.Click.Battery,
			ClickType:      data.ClickType(cli.Click.ClickType),
		})
	case cli.History != nil:
		output, err = history(ctx, button, cli.History)
	default:
		return errors.New("a subcommand is required: click or history")
	}
	if err != nil {
		logger.Errorf("Command failed: %v", err)
		return err
	}
	if err := json.NewEncoder(out).Encode(output); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}
	return nil
}

type historyOutput struct {
	Items     []data.PressDTO `json:"items"`
	NextToken string          `json:"nextToken,omitempty"`
}

func history(ctx context.Context, button *app.App, cmd *HistoryCmd) (*historyOutput, error) {
	if button.Presses == nil {
		return nil, fmt.Errorf("%s is not set, press history is disabled", config.Env_TableName)
	}
	results, err := button.Presses.List(ctx, cmd.Serial, data.QueryParams{
		Limit:     cmd.Limit,
		NextToken: []byte(cmd.NextToken),
	})
	if err != nil {
		return nil, err
	}
	// Tokens are already URL safe, so print them as-is instead of base64 again.
	return &historyOutput{
		Items:     results.Items,
		NextToken: string(results.NextToken),
	}, nil
}
