package main

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/sweepr/sweepr/internal/config"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	app := cli.NewApp()

	app.Version = version
	app.Name = "sweepr"
	app.Usage = "Move all the funds of a seed to a single address"
	app.Before = func(*cli.Context) error {
		log.SetOutput(os.Stderr)
		return config.InitConfig()
	}
	app.Commands = append(
		app.Commands,
		&sweep,
		&scan,
		&templates,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else if !errors.Is(err, errIncomplete) {
		_, _ = fmt.Fprintf(os.Stderr, "[sweepr] %v\n", err)
	}
	os.Exit(1)
}
