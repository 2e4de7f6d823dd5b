// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current lesson plan to PDF or DOCX",
	Long: `Export renders the session's lesson plan and writes
{subject}_{topic}_LessonPlan.pdf and/or .docx to the output directory.
Nothing is written if any requested format fails to render.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		requested, _ := cmd.Flags().GetStringSlice("format")
		if !cmd.Flags().Changed("format") {
			requested = viper.GetStringSlice("export.formats")
		}
		formats, err := resolveFormats(requested)
		if err != nil {
			return err
		}

		sess, err := loadPlan(viper.GetString("session_file"))
		if err != nil {
			return err
		}
		dir := viper.GetString("export.output_dir")
		if cmd.Flags().Changed("out-dir") {
			dir, _ = cmd.Flags().GetString("out-dir")
		}
		return writeExports(cmd.OutOrStdout(), sess, formats, dir)
	},
}

func init() {
	exportCmd.Flags().StringSlice("format", []string{"all"}, "formats: pdf, docx, or all")
	exportCmd.Flags().String("out-dir", "", "directory for exported files")

	rootCmd.AddCommand(exportCmd)
}
