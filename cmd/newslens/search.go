package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"newslens-api/core/domain"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// Table column widths
const (
	titleColumnWidth = 60
	urlColumnWidth   = 70
	errorColumnWidth = 40
)

func searchCommand() *cobra.Command {
	var (
		req    domain.SearchRequest
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Discover, resolve and extract articles for a query",
		Example: `  newslens search "central bank rates" --limit 5
  newslens search "elections" --lang fr --country FR --type rss --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			req.Query = strings.Join(args, " ")
			resp, err := a.pipeline.Search(cmd.Context(), req)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			renderSearch(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Lang, "lang", "en", "language code")
	cmd.Flags().StringVar(&req.Country, "country", "US", "country code")
	cmd.Flags().StringVar(&req.Type, "type", domain.TypeArticle, "article (full pipeline) or rss (listing only)")
	cmd.Flags().IntVarP(&req.Limit, "limit", "l", domain.DefaultLimit, "maximum number of items")
	cmd.Flags().BoolVar(&req.IncludeContent, "content", false, "include body text in JSON output")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the response as JSON")
	return cmd
}

func renderSearch(w io.Writer, resp *domain.SearchResponse) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: titleColumnWidth},
		{Number: 4, WidthMax: urlColumnWidth},
		{Number: 6, WidthMax: errorColumnWidth},
	})
	t.AppendHeader(table.Row{"#", "Title", "Source", "URL", "Words", "Status"})

	for i, item := range resp.Data.Items {
		title := item.Candidate.Title
		link := item.Candidate.FeedLink
		words := ""
		if item.Resolution != nil {
			link = item.Resolution.CanonicalURL
		}
		if item.Content != nil {
			if item.Content.Title != "" {
				title = item.Content.Title
			}
			words = fmt.Sprintf("%d", item.Content.WordCount)
		}

		status := "ok"
		if !item.Success {
			status = item.Error
		}
		t.AppendRow(table.Row{i + 1, title, item.Candidate.SourceName, link, words, status})
	}

	t.AppendFooter(table.Row{"", fmt.Sprintf("%d item(s) for %q", resp.Data.Count, resp.Data.Query)})
	t.Render()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
