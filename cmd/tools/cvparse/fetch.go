package main

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"time"

	httpclient "cv-normalizer/pkg/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Download a CV over HTTP and parse it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := url.Parse(args[0])
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("invalid url %q", args[0])
		}

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = path.Base(u.Path)
		}
		maxMB, _ := cmd.Flags().GetInt64("max-mb")
		timeout, _ := cmd.Flags().GetDuration("http-timeout")

		parser, err := newParser()
		if err != nil {
			return err
		}

		var body bytes.Buffer
		n, err := httpclient.NewClient(timeout).Download(cmd.Context(), u.String(), &body, maxMB<<20)
		if err != nil {
			return err
		}
		log.Info("downloaded", zap.String("url", u.Redacted()), zap.String("filename", name), zap.Int64("size_bytes", n))

		doc, err := parser.ParseFile(cmd.Context(), name, &body)
		if err != nil {
			return err
		}
		textOnly, _ := cmd.Flags().GetBool("text")
		return printDocument(cmd.OutOrStdout(), doc, textOnly)
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().String("name", "", "file name used for format detection (default: last URL path segment)")
	fetchCmd.Flags().Int64("max-mb", 10, "maximum download size in MB")
	fetchCmd.Flags().Duration("http-timeout", time.Minute, "HTTP client timeout")
	fetchCmd.Flags().BoolP("text", "t", false, "print only the normalized plain text")
}
