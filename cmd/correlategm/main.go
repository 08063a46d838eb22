// SPDX-License-Identifier: MIT

// Command correlategm correlates NMF grey-matter components with atlas tract
// blueprints and saves the matrix as CSV and as a heatmap.
//
//	correlategm <n_components> <NMF_GM_path> <atlas_tractography_path> <save_directory>
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/katalvlaran/correlategm/correlate"
)

func main() {
	args, err := correlate.ParseArgs(os.Args[1:])
	if err != nil {
		exitf(2, "%v\n%s", err, correlate.Usage)
	}
	cfg, err := correlate.ParseEnv()
	if err != nil {
		exitf(2, "config: %v", err)
	}

	var logFile *string
	if cfg.LogFile != "" {
		logFile = &cfg.LogFile
	}
	commonlog.Configure(cfg.Verbosity, logFile)
	log := commonlog.GetLogger("correlategm")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := correlate.Run(ctx, cfg, args, log); err != nil {
		stop()
		if errors.Is(err, context.Canceled) {
			exitf(130, "interrupted")
		}
		exitf(1, "correlategm: %v", err)
	}
}
