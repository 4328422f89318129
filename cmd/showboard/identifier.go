package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newIdentifierCmd(c *cli) *cobra.Command {
	var year string

	cmd := &cobra.Command{
		Use:   "identifier <show> <client>",
		Short: "计算展会标识符（客户 年份 展会）",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := c.queryService()
			if err != nil {
				return err
			}
			defer closeFn()

			id := svc.ComputeIdentifier(cmd.Context(), args[0], args[1], year)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}

	cmd.Flags().StringVar(&year, "year", "", "年份")
	return cmd
}
