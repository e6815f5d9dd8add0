package main

import (
	"fmt"
	"io"
	"strings"

	"newslens-api/core/domain"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// previewChars bounds the body preview in table output
const previewChars = 300

func articleCommand() *cobra.Command {
	var (
		req    domain.ArticleRequest
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "article <url>",
		Short: "Resolve and extract a single article",
		Example: `  newslens article https://news.google.com/rss/articles/CBMi...
  newslens article https://www.bbc.co.uk/news/articles/c0000000 --json --content`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			req.URL = args[0]
			resp, err := a.pipeline.Article(cmd.Context(), req)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			renderArticle(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	cmd.Flags().BoolVar(&req.IncludeContent, "content", true, "include body text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the response as JSON")
	return cmd
}

func renderArticle(w io.Writer, resp *domain.ArticleResponse) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, WidthMax: 100}})

	res := resp.Data.Resolution
	t.AppendRow(table.Row{"URL", res.CanonicalURL})
	t.AppendRow(table.Row{"Resolved", fmt.Sprintf("%t (%s)", res.Resolved, res.Strategy)})
	if !resp.Success {
		t.AppendRow(table.Row{"Error", resp.Error})
		t.Render()
		return
	}

	c := resp.Data.Content
	for _, row := range []table.Row{
		{"Title", c.Title},
		{"Subtitle", c.Subtitle},
		{"Author", c.Author},
		{"Published", c.PublishedAt},
		{"Location", c.Location},
		{"Category", c.Category},
		{"Source", c.SourceHost},
		{"Words", c.WordCount},
		{"Images", strings.Join(c.Images, "\n")},
		{"Body", preview(c.BodyText)},
	} {
		if row[1] != "" {
			t.AppendRow(row)
		}
	}
	t.Render()
}

func preview(body string) string {
	body = strings.Join(strings.Fields(body), " ")
	if len([]rune(body)) <= previewChars {
		return body
	}
	return string([]rune(body)[:previewChars]) + "..."
}
