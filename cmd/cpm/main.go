// Command cpm plans and runs Convolutional Pose Machine inference.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/born-ml/posemachine/internal/envconfig"
	"github.com/born-ml/posemachine/internal/logutil"
)

func main() {
	slog.SetDefault(logutil.NewLogger(os.Stderr, envconfig.LogLevel()))
	cobra.CheckErr(NewCLI().ExecuteContext(context.Background()))
}
