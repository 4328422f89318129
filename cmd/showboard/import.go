package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"showboard/internal/importer"
)

func newImportCmd(c *cli) *cobra.Command {
	var keepUnknown bool

	cmd := &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "导入排期工作簿到本地数据库",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := c.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			coord := importer.NewCoordinator(st, tablesFromConfig(c.cfg), c.logger)
			events := coord.Import(cmd.Context(), importer.ImportOptions{
				FilePath:    args[0],
				Filename:    filepath.Base(args[0]),
				KeepUnknown: keepUnknown,
			})
			return printImportEvents(cmd.OutOrStdout(), events)
		},
	}

	cmd.Flags().BoolVar(&keepUnknown, "keep-unknown", false, "保留未识别的 Sheet（以原 Sheet 名入库）")
	return cmd
}

// printImportEvents 逐条输出进度事件；出现 error 事件时返回错误
func printImportEvents(w io.Writer, events <-chan importer.ProgressEvent) error {
	var failed string
	for ev := range events {
		fmt.Fprintf(w, "[%s] %s\n", ev.Type, ev.Message)
		if ev.Type == importer.EventError {
			failed = ev.Message
		}
	}
	if failed != "" {
		return fmt.Errorf("import failed: %s", failed)
	}
	return nil
}
