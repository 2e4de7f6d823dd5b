// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lesson-planner/internal/display"
	"github.com/pdiddy/lesson-planner/pkg/types"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current lesson plan",
	Long: `Show prints the session's lesson plan one card per section. With --copy it
places a single section on the system clipboard instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")
		copyKey, _ := cmd.Flags().GetString("copy")

		sess, err := loadPlan(viper.GetString("session_file"))
		if err != nil {
			return err
		}

		if copyKey != "" {
			key, err := types.ParseSectionKey(copyKey)
			if err != nil {
				return err
			}
			if err := display.Copy(sess.Sections(), key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "copied %s to clipboard\n", key.Title())
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", sess.Title())
		return printCards(cmd.OutOrStdout(), sess, plain)
	},
}

func init() {
	showCmd.Flags().Bool("plain", false, "print raw Markdown instead of styled cards")
	showCmd.Flags().String("copy", "", "copy one section: objectives, strategies, homework, practice")

	rootCmd.AddCommand(showCmd)
}
