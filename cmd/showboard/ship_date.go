package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"showboard/internal/model"
)

func newShipDateCmd(c *cli) *cobra.Command {
	var (
		cells      []string
		identifier string
	)

	cmd := &cobra.Command{
		Use:   "ship-date",
		Short: "推断一行排期的发货日期",
		Long: `Guess the ship date of a schedule row.

The row is either given cell by cell with --set or looked up in the
schedule by its identifier.`,
		Example: `  showboard ship-date --set "S. Start=6/15/2025" --set Year=2025
  showboard ship-date --identifier "ACME 2025 SUMMIT"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(cells) == 0) == (identifier == "") {
				return fmt.Errorf("exactly one of --set or --identifier is required")
			}

			svc, closeFn, err := c.queryService()
			if err != nil {
				return err
			}
			defer closeFn()

			var row model.Row
			if identifier != "" {
				row, err = svc.GetShowDetails(cmd.Context(), identifier)
				if err != nil {
					return fmt.Errorf("lookup %q: %w", identifier, err)
				}
				if row == nil {
					return fmt.Errorf("show %q not found", identifier)
				}
			} else {
				row, err = parseCells(cells)
				if err != nil {
					return err
				}
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), svc.GuessShipDate(row))
			return err
		},
	}

	cmd.Flags().StringArrayVar(&cells, "set", nil, "单元格，格式为 列名=值（可重复）")
	cmd.Flags().StringVar(&identifier, "identifier", "", "按标识符查找排期行")
	return cmd
}

// parseCells 将 列名=值 列表转换为一行
func parseCells(cells []string) (model.Row, error) {
	row := make(model.Row, len(cells))
	for _, cell := range cells {
		col, value, ok := strings.Cut(cell, "=")
		col = strings.TrimSpace(col)
		if !ok || col == "" {
			return nil, fmt.Errorf("invalid --set %q, expected column=value", cell)
		}
		row[col] = strings.TrimSpace(value)
	}
	return row, nil
}
