package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/careerpath/internal/assistant"
	"github.com/jonathan/careerpath/internal/export"
	"github.com/jonathan/careerpath/internal/report"
	"github.com/jonathan/careerpath/internal/tui"
	"github.com/jonathan/careerpath/internal/views"
	"github.com/jonathan/careerpath/internal/wizard"
)

var (
	exportPosition string
	exportSaveCopy bool
)

var exportCmd = &cobra.Command{
	Use:   "export [resume.json]",
	Short: "Export a resume to PDF",
	Long: `Render a resume and print it to PDF with headless Chrome. When printing is not
possible the reduced HTML version is saved instead. Without a file the stored draft
is exported. Output goes to export.dir, or to S3 when export.s3.bucket is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a resume step by step",
	Long: `Walk through the seven resume steps in the terminal, starting from the stored
draft when there is one. Finishing the last step exports the resume like "export" does.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

var resumesCmd = &cobra.Command{
	Use:   "resumes",
	Short: "List saved resumes",
	RunE:  runResumes,
}

var feedbackCmd = &cobra.Command{
	Use:   "feedback <resume.json>",
	Short: "Review a resume",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := readResume(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), assistant.Feedback(r))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportPosition, "position", "", "Apply the role template for this position before exporting")
	exportCmd.Flags().BoolVar(&exportSaveCopy, "save", false, "Keep a copy in the saved resume list")
	rootCmd.AddCommand(buildCmd, exportCmd, resumesCmd, feedbackCmd)
}

func newExporter(ctx context.Context, a *app) (*export.Exporter, error) {
	var sink export.Sink = export.DirSink{Dir: a.cfg.Export.Dir}
	if a.cfg.Export.S3.Bucket != "" {
		s3Sink, err := export.NewS3Sink(ctx, a.cfg.Export.S3)
		if err != nil {
			return nil, err
		}
		sink = s3Sink
	}

	var printer export.Printer
	if !a.cfg.Export.DisablePDF {
		printer = &export.ChromePrinter{
			ExecPath: a.cfg.Export.ChromePath,
			Timeout:  a.cfg.Export.PrintTimeout,
			Logger:   a.logger,
		}
	}
	return export.NewExporter(printer, sink, a.logger), nil
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	s, err := openSession(ctx, a)
	if err != nil {
		return err
	}
	defer s.close()

	exporter, err := newExporter(ctx, a)
	if err != nil {
		return err
	}
	deps := wizard.Deps{
		Templates: a.catalog,
		Tips:      assistant.NewScripted(),
		Exporter:  exporter,
		Drafts:    s.store,
		Logger:    a.logger,
	}

	var w *wizard.Wizard
	if len(args) == 1 {
		r, err := readResume(args[0])
		if err != nil {
			return err
		}
		w = wizard.FromResume(deps, r)
	} else {
		draft, ok, err := s.store.Draft(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no resume file given and no saved draft")
		}
		w = wizard.FromResume(deps, draft)
	}

	if exportPosition != "" {
		w.SelectPosition(exportPosition)
		if err := w.SaveDraft(ctx); err != nil {
			a.logger.Warn("draft not saved", zap.Error(err))
		}
	}

	w.GoTo(wizard.LastStep)
	res, err := w.Primary(ctx)
	if err != nil {
		return err
	}
	if exportSaveCopy {
		if err := s.store.SaveResume(ctx, w.Data()); err != nil {
			return err
		}
	}
	report.NewPrinter(cmd.OutOrStdout()).PrintExport(res)
	return nil
}

func runBuild(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	s, err := openSession(ctx, a)
	if err != nil {
		return err
	}
	defer s.close()

	exporter, err := newExporter(ctx, a)
	if err != nil {
		return err
	}
	deps := wizard.Deps{
		Templates: a.catalog,
		Tips:      assistant.NewScripted(),
		Exporter:  exporter,
		Drafts:    s.store,
		Logger:    a.logger,
	}

	draft, ok, err := s.store.Draft(ctx)
	if err != nil {
		return err
	}
	w := wizard.New(deps)
	if ok {
		w = wizard.FromResume(deps, draft)
	}

	templates := a.catalog.Templates()
	positions := make([]string, 0, len(templates))
	for _, t := range templates {
		positions = append(positions, t.Position)
	}

	res, err := tui.RunBuilder(ctx, w, positions)
	if err != nil {
		return err
	}
	if res == nil {
		return nil
	}
	if err := w.SaveDraft(ctx); err != nil {
		a.logger.Warn("draft not saved", zap.Error(err))
	}
	report.NewPrinter(cmd.OutOrStdout()).PrintExport(res)
	return nil
}

func runResumes(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	s, err := openSession(ctx, a)
	if err != nil {
		return err
	}
	defer s.close()

	saved, err := s.store.Resumes(ctx)
	if err != nil {
		return err
	}
	rows := views.ResumeList(saved)
	if len(rows) == 0 {
		rows = views.SampleResumes()
	}
	report.NewPrinter(cmd.OutOrStdout()).PrintResumes(rows)
	return nil
}
