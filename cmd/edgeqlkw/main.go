/*
Copyright 2025 The Multigres Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// edgeqlkw lists, classifies and checks EdgeQL keywords and tokenizes
// EdgeQL source files.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joshuanianji/edgedb/go/cmd/edgeqlkw/command"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, ec := command.GetRootCommand()
	err := root.ExecuteContext(ctx)
	if err != nil {
		slog.Error("Command execution failed", "error", err)
	}
	if closeErr := ec.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "closing log output: %v\n", closeErr)
		err = errors.Join(err, closeErr)
	}
	if err != nil {
		stop()
		os.Exit(1)
	}
}
