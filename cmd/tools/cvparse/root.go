package main

import (
	"encoding/json"
	"io"

	"cv-normalizer/internal/config"
	"cv-normalizer/internal/cv"
	"cv-normalizer/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const app = "cvparse"

var (
	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "cvparse normalizes CV documents into text, semantic HTML and a structural skeleton",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	log *zap.Logger
)

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("converter", "", "universal converter binary (default pandoc)")
	flags.String("pdftotext", "", "pdftotext binary")
	flags.String("unrtf", "", "unrtf binary used as the RTF fallback")
	flags.Duration("timeout", 0, "per-invocation converter timeout (default 30s)")
	flags.String("vocabulary", "", "YAML file with section and skill keywords")
	flags.String("uploads-dir", "", "directory for staged downloads")
	flags.BoolP("debug", "d", false, "verbose/debug output")
	flags.BoolP("json", "j", false, "json format for logging")

	for _, name := range []string{"converter", "pdftotext", "unrtf", "timeout", "vocabulary", "uploads-dir", "debug", "json"} {
		viper.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		var err error
		log, err = logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		return err
	}
}

// initConfig seeds viper with the environment and .env values so flags
// only need to override what differs.
func initConfig() {
	cfg := config.LoadConfig()
	viper.SetDefault("converter", cfg.ConverterBinary)
	viper.SetDefault("pdftotext", cfg.PDFToTextBinary)
	viper.SetDefault("unrtf", cfg.UnrtfBinary)
	viper.SetDefault("timeout", cfg.ConverterTimeout)
	viper.SetDefault("vocabulary", cfg.VocabularyFile)
	viper.SetDefault("uploads-dir", cfg.UploadsDir)
	viper.SetDefault("debug", cfg.LogDebug)
	viper.SetDefault("json", cfg.LogJSON)
}

func newParser() (*cv.CVParser, error) {
	vocab := cv.DefaultVocabulary()
	if path := viper.GetString("vocabulary"); path != "" {
		var err error
		if vocab, err = cv.LoadVocabulary(path); err != nil {
			return nil, err
		}
	}
	return cv.NewCVParser(cv.ParserConfig{
		UploadsDir: viper.GetString("uploads-dir"),
		Tools: cv.ToolOptions{
			ConverterBinary:  viper.GetString("converter"),
			PDFToTextBinary:  viper.GetString("pdftotext"),
			UnrtfBinary:      viper.GetString("unrtf"),
			ConverterTimeout: viper.GetDuration("timeout"),
		},
		Vocabulary: vocab,
		Logger:     log,
	}), nil
}

func printDocument(w io.Writer, doc *cv.NormalizedDocument, textOnly bool) error {
	if textOnly {
		_, err := io.WriteString(w, doc.PlainText+"\n")
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}
