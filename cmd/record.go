package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fabianopolone123/ERP-TI/internal/registry"
	"github.com/spf13/cobra"
)

var recordFields []string

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Read and add rows in the IT asset registers",
}

var recordModulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List register modules",
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *Application) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tTITLE\tFIELDS")
		for _, m := range app.Registry.Modules() {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Key, m.Title, strings.Join(m.Fields, ", "))
		}
		return tw.Flush()
	}),
}

var recordListCmd = &cobra.Command{
	Use:   "list <module>",
	Short: "List the rows of a register",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *Application) error {
		m, err := app.Registry.Module(args[0])
		if err != nil {
			return err
		}
		rows, err := app.Registry.List(cmd.Context(), m.Key)
		if err != nil {
			return err
		}
		printRows(cmd, m, rows)
		return nil
	}),
}

var recordAddCmd = &cobra.Command{
	Use:   "add <module>",
	Short: "Add a row, fields given as --set column=value",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *Application) error {
		values := make(map[string]string, len(recordFields))
		for _, kv := range recordFields {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("invalid --set %q, expected column=value", kv)
			}
			values[strings.TrimSpace(k)] = v
		}
		row, err := app.Registry.Insert(cmd.Context(), args[0], values)
		if err != nil {
			return err
		}
		m, _ := app.Registry.Module(args[0])
		printRows(cmd, m, []registry.Row{row})
		return nil
	}),
}

func printRows(cmd *cobra.Command, m *registry.Module, rows []registry.Row) {
	columns := append([]string{"id"}, m.Columns...)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(columns, "\t")))
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, c := range columns {
			cells[i] = cell(row[c])
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	_ = tw.Flush()
}

func cell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}

func init() {
	recordAddCmd.Flags().StringArrayVar(&recordFields, "set", nil, "column=value, repeatable")
	recordCmd.AddCommand(recordModulesCmd, recordListCmd, recordAddCmd)
}
