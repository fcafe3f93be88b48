package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const configFlag = "config"

// errReported 错误已按统一响应结构输出，只需要设置退出码
var errReported = errors.New("reported")

func newRootCmd() *cobra.Command {
	c := &cobra.Command{
		Use:           "toolkit",
		Short:         "Query descriptor toolkit.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.PersistentFlags().StringP(configFlag, "c", "", "config file, entities are read from metadata.entities")
	c.AddCommand(newExplainCmd())
	return c
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
