package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ocrstream/internal/common/fsutil"
	"ocrstream/internal/pipeline"
	"ocrstream/internal/registry"
)

var (
	okMark   = color.New(color.FgGreen, color.Bold).SprintFunc()
	failMark = color.New(color.FgRed, color.Bold).SprintFunc()
	dimText  = color.New(color.Faint).SprintFunc()
)

var errSanityFailed = errors.New("sanity check failed")

func newSanityCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "sanity",
		Short:   "Check that the recognizer and its model files are available",
		Example: "  ocrstreamd sanity --lang eng+deu --rec-model-dir /usr/share/tesseract-ocr/5/tessdata",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			rep := pipeline.SanityCheck(settingsFrom(cfg))
			printSanity(cmd.OutOrStdout(), rep)
			if !rep.OK() {
				return errSanityFailed
			}
			return nil
		},
	}
}

func printSanity(w io.Writer, rep pipeline.SanityReport) {
	check := func(ok bool, label, detail string) {
		mark := okMark("ok  ")
		if !ok {
			mark = failMark("FAIL")
		}
		if detail != "" {
			detail = " " + dimText(detail)
		}
		fmt.Fprintf(w, "%s %s%s\n", mark, label, detail)
	}
	check(rep.EngineBuilt, "engine "+rep.Engine, "")
	check(rep.LanguageFound, "language "+rep.Language, "")
	if rep.RecModelDir != "" {
		check(rep.RecModelDirFound, "rec_model_dir", rep.RecModelDir)
	}
	if rep.DetModelDir != "" {
		check(rep.DetModelDirFound, "det_model_dir", rep.DetModelDir)
	}
	for _, e := range rep.Errors {
		fmt.Fprintf(w, "  %s %s\n", failMark("-"), e)
	}
}

func newLanguagesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "languages [dir]",
		Short: "List installed recognition languages",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			dir := cfg.RecModelDir
			if len(args) == 1 {
				dir = args[0]
			}
			if dir = fsutil.LanguageDir(dir); dir == "" {
				return errors.New("no language directory: pass one, set --rec-model-dir or TESSDATA_PREFIX")
			}
			return printLanguages(cmd.OutOrStdout(), dir)
		},
	}
}

func printLanguages(w io.Writer, dir string) error {
	langs, err := registry.LoadDir(dir)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tSIZE\tPATH")
	for _, l := range langs {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", l.Code, l.SizeBytes, l.Path)
	}
	return tw.Flush()
}
