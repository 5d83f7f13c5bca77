package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string // optional; persistence is off when empty
	UploadsDir  string
	MaxUploadMB int64

	// External tools
	ConverterBinary  string
	PDFToTextBinary  string
	UnrtfBinary      string
	ConverterTimeout time.Duration

	VocabularyFile string // optional YAML keyword lists

	LogJSON  bool
	LogDebug bool

	// EnvFile is the .env file that was loaded, if any.
	EnvFile string
}

// LoadConfig reads .env (current directory, then ../../.env) and the
// environment. Values that fail to parse are kept for Validate to report.
func LoadConfig() *Config {
	envFile := ""
	for _, candidate := range []string{".env", "../../.env"} {
		if err := godotenv.Load(candidate); err == nil {
			envFile = candidate
			break
		}
	}

	cfg := &Config{
		Port:             getenv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		UploadsDir:       getenv("UPLOADS_DIR", "./uploads"),
		ConverterBinary:  getenv("CONVERTER_BINARY", "pandoc"),
		PDFToTextBinary:  getenv("PDFTOTEXT_BINARY", "pdftotext"),
		UnrtfBinary:      getenv("UNRTF_BINARY", "unrtf"),
		VocabularyFile:   os.Getenv("VOCABULARY_FILE"),
		LogJSON:          getbool("LOG_JSON"),
		LogDebug:         getbool("LOG_DEBUG"),
		EnvFile:          envFile,
		MaxUploadMB:      10,
		ConverterTimeout: 30 * time.Second,
	}

	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			n = -1
		}
		cfg.MaxUploadMB = n
	}
	if v := os.Getenv("CONVERTER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			d = -1
		}
		cfg.ConverterTimeout = d
	}
	return cfg
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	} else if _, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Errorf("PORT %q is not a number", c.Port))
	}
	if c.MaxUploadMB <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_MB must be a positive integer"))
	}
	if c.ConverterTimeout <= 0 {
		errs = append(errs, errors.New("CONVERTER_TIMEOUT must be a positive duration such as 30s"))
	}
	if strings.TrimSpace(c.UploadsDir) == "" {
		errs = append(errs, errors.New("UPLOADS_DIR must not be empty"))
	}
	if c.ConverterBinary == "" || c.PDFToTextBinary == "" || c.UnrtfBinary == "" {
		errs = append(errs, errors.New("tool binaries must not be empty"))
	}
	return errors.Join(errs...)
}

// MaxUploadBytes is the request body limit for uploads.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getbool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}
