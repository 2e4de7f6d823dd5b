// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lesson-planner/internal/completion"
	"github.com/pdiddy/lesson-planner/internal/session"
	"github.com/pdiddy/lesson-planner/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a lesson plan",
	Long: `Generate sends the subject, topic, grade level, and teaching style to the
chat-completion service and replaces the session's plan with the result. The
plan is printed one card per section and can be exported in the same run.

Grade levels: elementary, middle-school, high-school, college.
Teaching styles: direct, inquiry-based, collaborative, flipped.
Labels such as "Middle School" or "Flipped Classroom" are also accepted.`,
	Example: `  lesson-planner generate --subject Physics --topic "Newton's Laws" \
      --grade high-school --style inquiry-based --export pdf,docx`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("subject", "", "subject, e.g. Mathematics")
	generateCmd.Flags().String("topic", "", "topic, e.g. Quadratic Equations")
	generateCmd.Flags().String("grade", string(types.GradeElementary), "grade level")
	generateCmd.Flags().String("style", string(types.StyleDirect), "teaching style")
	generateCmd.Flags().String("api-key", "", "chat-completion API key (overrides config and secrets)")
	generateCmd.Flags().String("model", "", "model identifier")
	generateCmd.Flags().StringSlice("export", nil, "also export: pdf, docx, or all")
	generateCmd.Flags().String("out-dir", "", "directory for exported files")
	generateCmd.Flags().Bool("plain", false, "print raw Markdown instead of styled cards")

	_ = viper.BindPFlag("completion.model", generateCmd.Flags().Lookup("model"))

	rootCmd.AddCommand(generateCmd)
}

// choice parses an enum flag. Unknown values pass through unchanged so
// validation reports them together with any other problems.
func choice[T ~string](s string, parse func(string) (T, error)) T {
	if v, err := parse(s); err == nil {
		return v
	}
	return T(s)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	subject, _ := cmd.Flags().GetString("subject")
	topic, _ := cmd.Flags().GetString("topic")
	grade, _ := cmd.Flags().GetString("grade")
	style, _ := cmd.Flags().GetString("style")
	apiKey, _ := cmd.Flags().GetString("api-key")
	exportFormats, _ := cmd.Flags().GetStringSlice("export")
	plain, _ := cmd.Flags().GetBool("plain")

	req := types.LessonRequest{
		Subject:       subject,
		Topic:         topic,
		GradeLevel:    choice(grade, types.ParseGradeLevel),
		TeachingStyle: choice(style, types.ParseTeachingStyle),
	}

	formats, err := resolveFormats(exportFormats)
	if err != nil {
		return err
	}

	cfg := plannerConfig(apiKey)
	if cmd.Flags().Changed("out-dir") {
		cfg.Export.OutputDir, _ = cmd.Flags().GetString("out-dir")
	}
	sess, err := session.Load(cfg.SessionFile)
	if err != nil {
		return err
	}

	rec, closeLedger := openRecorder(cfg.Ledger)
	defer closeLedger()

	gen := &session.Generator{Recorder: rec, Logger: logger}
	// A request that fails validation never reaches the network, so the
	// client is only built for valid input.
	if session.Validate(req) == nil {
		client, err := completion.New(cfg.Completion, logger)
		if err != nil {
			return err
		}
		gen.Completer = client
	}

	logger.WithField("model", cfg.Completion.Model).Info("generating lesson plan")
	if err := gen.Generate(cmd.Context(), sess, req); err != nil {
		return err
	}
	if err := sess.Save(cfg.SessionFile); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	out := cmd.OutOrStdout()
	if err := printCards(out, sess, plain); err != nil {
		return err
	}
	if len(formats) > 0 {
		return writeExports(out, sess, formats, cfg.Export.OutputDir)
	}
	return nil
}
