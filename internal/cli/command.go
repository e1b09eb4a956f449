package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/lenslate/internal"
)

// ErrReported marks a failure already shown to the user as an alert or
// an inline status; main exits non-zero without printing it again
var ErrReported = errors.New("failure already reported")

// Runner executes the subcommands
type Runner interface {
	OCR(cmd *cobra.Command, args []string) error
	Translate(cmd *cobra.Command, args []string) error
	PhrasebookList(cmd *cobra.Command, args []string) error
	PhrasebookRemove(cmd *cobra.Command, args []string) error
	PhrasebookExport(cmd *cobra.Command, args []string) error
	PhrasebookArchive(cmd *cobra.Command, args []string) error
	Languages(cmd *cobra.Command, args []string) error
	Models(cmd *cobra.Command, args []string) error
}

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags, run Runner) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lenslate",
		Short: "Translate text and images from the terminal",
		Long: `lenslate translates typed text, image files and screen captures.

Images are sent to the ocr.space OCR service; the recognized lines are
translated line by line with OpenAI or Gemini, keeping their position in
the image. Results can be saved to a local phrasebook.

Examples:
  lenslate translate -o fr "Good morning"   # Translate text
  lenslate ocr menu.jpg                     # Recognize and translate an image
  lenslate ocr --capture -o ja              # Translate what is on screen
  lenslate ocr --batch images.txt --save    # Process images from a file
  lenslate phrasebook list                  # Show saved translations`,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.lenslate.yaml)")
	rootCmd.PersistentFlags().StringVarP(&flags.InputLang, "input-lang", "i", flags.InputLang, "Language of the input text or image")
	rootCmd.PersistentFlags().StringVarP(&flags.OutputLang, "output-lang", "o", flags.OutputLang, "Language to translate into")
	rootCmd.PersistentFlags().StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider: openai or gemini")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newOCRCommand(flags, run),
		newTranslateCommand(flags, run),
		newPhrasebookCommand(flags, run),
		&cobra.Command{
			Use:   "languages",
			Short: "List supported languages",
			Args:  cobra.NoArgs,
			RunE:  run.Languages,
		},
		&cobra.Command{
			Use:   "models",
			Short: "List OpenAI models usable for translation",
			Args:  cobra.NoArgs,
			RunE:  run.Models,
		},
	)

	bindFlagsToViper(rootCmd.PersistentFlags())
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)
	return rootCmd
}

func newOCRCommand(flags *Flags, run Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ocr [image]",
		Short: "Recognize and translate the text in an image",
		Long: `Recognize the text lines of an image and translate each of them.

Without an image argument the file name is read from standard input;
an empty answer cancels. With --capture the primary screen is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: run.OCR,
	}

	cmd.Flags().BoolVar(&flags.Capture, "capture", false, "Capture the screen instead of reading a file")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Process images from file (one path per line, optional '= lang')")
	cmd.Flags().BoolVar(&flags.Save, "save", false, "Save the result to the phrasebook")
	cmd.Flags().StringVar(&flags.Mode, "mode", flags.Mode, "Result view: image (positioned lines) or text")
	cmd.Flags().Float64Var(&flags.Zoom, "zoom", flags.Zoom, "Zoom level applied to line positions")
	return cmd
}

func newTranslateCommand(flags *Flags, run Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate [text...]",
		Short: "Translate text",
		Long: `Translate the given text, or standard input when no text is given.

With --interactive every line read is translated; type :save to toggle
the last result in the phrasebook and :quit to leave.`,
		RunE: run.Translate,
	}

	cmd.Flags().BoolVar(&flags.Interactive, "interactive", false, "Read and translate lines until EOF")
	cmd.Flags().BoolVar(&flags.Realtime, "realtime", false, "Translate every input change right away")
	cmd.Flags().BoolVar(&flags.Save, "save", false, "Save the result to the phrasebook")
	viper.BindPFlag("settings.realtime", cmd.Flags().Lookup("realtime"))
	return cmd
}

func newPhrasebookCommand(flags *Flags, run Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phrasebook",
		Short: "Manage saved translations",
	}

	export := &cobra.Command{
		Use:   "export",
		Short: "Export the phrasebook as Markdown or HTML",
		Args:  cobra.NoArgs,
		RunE:  run.PhrasebookExport,
	}
	export.Flags().StringVar(&flags.ExportFormat, "format", flags.ExportFormat, "Export format: markdown, html or anki")
	export.Flags().StringVar(&flags.ExportOutput, "output", "", "Output file (default is stdout)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List saved translations",
			Args:  cobra.NoArgs,
			RunE:  run.PhrasebookList,
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove a saved translation",
			Args:  cobra.ExactArgs(1),
			RunE:  run.PhrasebookRemove,
		},
		export,
		&cobra.Command{
			Use:   "archive",
			Short: "Move the SQLite phrasebook to an archive and start a new one",
			Args:  cobra.NoArgs,
			RunE:  run.PhrasebookArchive,
		},
	)
	return cmd
}

func bindFlagsToViper(fs *pflag.FlagSet) {
	viper.BindPFlag("settings.input_lang", fs.Lookup("input-lang"))
	viper.BindPFlag("settings.output_lang", fs.Lookup("output-lang"))
	viper.BindPFlag("translation.provider", fs.Lookup("provider"))
	viper.BindPFlag("log.level", fs.Lookup("log-level"))
}

// normalizeFlagName accepts config-style spellings such as --input_lang
func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}
