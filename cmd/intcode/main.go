// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/image"
	"github.com/db47h/intcode/vm"
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	logLevel string
	logger   log.Logger
	debug    bool
)

// parseLevel converts a level name to a log level.
func parseLevel(lvl string) (slog.Level, error) {
	switch strings.ToUpper(lvl) {
	case "TRACE":
		return log.LevelTrace, nil
	case "DEBUG":
		return log.LevelDebug, nil
	case "INFO":
		return log.LevelInfo, nil
	case "WARN", "WARNING":
		return log.LevelWarn, nil
	case "ERROR":
		return log.LevelError, nil
	case "CRIT", "CRITICAL":
		return log.LevelCrit, nil
	}
	return 0, errors.Errorf("invalid log level: %s", lvl)
}

func setupLogger(cmd *cobra.Command, args []string) error {
	lvl, err := parseLevel(logLevel)
	if err != nil {
		return err
	}
	useColor := term.IsTerminal(int(os.Stderr.Fd()))
	logger = log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, lvl, useColor))
	log.SetDefault(logger)
	return nil
}

// loadProgram loads an intcode program. Files with a .asm or .ic extension are
// assembled, anything else is parsed as a list of integers.
func loadProgram(name string) ([]vm.Cell, error) {
	switch filepath.Ext(name) {
	case ".asm", ".ic":
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return asm.Assemble(name, f)
	}
	return image.Load(name)
}

// vmOptions returns the vm options common to all commands.
func vmOptions() []vm.Option {
	if logger == nil {
		return nil
	}
	return []vm.Option{vm.Logger(logger)}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "intcode",
		Short:             "Run, assemble and inspect intcode programs",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogger,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error, crit)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "print full error stack traces")

	root.AddCommand(
		newRunCmd(),
		newAsmCmd(),
		newDisasmCmd(),
		newAmpCmd(),
		newPaintCmd(),
		newArcadeCmd(),
		newMazeCmd(),
		newGravityCmd(),
	)
	return root
}

func atExit(err error) {
	if err == nil {
		return
	}
	if debug {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	os.Exit(1)
}

func main() {
	root := newRootCmd()
	root.SilenceErrors = true
	atExit(root.Execute())
}
