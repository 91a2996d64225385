package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trezcool/mindbloom/core/wellness"
)

// entryFlags binds the fields of a candidate entry to cmd's flags.
func entryFlags(cmd *cobra.Command) *wellness.NewEntry {
	ne := new(wellness.NewEntry)
	cmd.Flags().StringVar(&ne.StudentName, "name", "", "student name")
	cmd.Flags().StringVar(&ne.WellnessActivity, "wellness", "", "wellness activity")
	cmd.Flags().StringVar(&ne.MeTimeActivity, "metime", "", "me-time activity")
	cmd.Flags().StringVar(&ne.ScreenFreeMinutes, "minutes", "", "screen-free time, in minutes")
	cmd.Flags().StringVar(&ne.Notes, "notes", "", "optional notes")
	return ne
}

func newValidateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate one entry and print its status",
		Args:  cobra.NoArgs,
	}
	ne := entryFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		e, _, err := a.svc.Log(*ne)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s screen-free minutes)\n",
			e.StudentName(), e.Status(), wellness.FormatMinutes(e.ScreenFreeMinutes()))
		return nil
	}
	return cmd
}

func newPreviewCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the live status of a possibly incomplete entry",
		Args:  cobra.NoArgs,
	}
	ne := entryFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), a.svc.Preview(*ne).Message())
		return nil
	}
	return cmd
}
