package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/engine"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/preview"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/search"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/search/factory"
)

func searchCmd() *cobra.Command {
	var (
		category    string
		page        int
		suggestions bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "执行一次搜索",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := model.ParseCategory(category)
			if err != nil {
				return err
			}
			if page < 1 || page > search.MaxPage {
				return fmt.Errorf("page must be between 1 and %d", search.MaxPage)
			}

			providers, err := factory.NewProviders(cfg)
			if err != nil {
				return err
			}
			session := prof.NewSession(providers, cfg, nil)

			st, err := session.Search(cmd.Context(), strings.Join(args, " "), c, page)
			if err != nil && st.Status != engine.StatusError {
				return err
			}
			if err := printState(st); err != nil {
				return err
			}
			if suggestions && !jsonOutput {
				return printList(session.Suggestions())
			}
			if st.Status == engine.StatusError {
				return errors.New(st.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "web", "web, image or news")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	cmd.Flags().BoolVar(&suggestions, "suggest", false, "print suggestions after results")
	return cmd
}

func previewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <url>",
		Short: "提取结果链接的正文预览",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := preview.NewFetcher(cfg.Preview.Timeout).Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(p)
			}
			printPreview(p)
			return nil
		},
	}
}

func printPreview(p *model.Preview) {
	printLine(p.Title)
	for _, s := range []string{p.SiteName, p.Byline} {
		if s != "" {
			printLine(s)
		}
	}
	printLine("")
	if p.Excerpt != "" {
		printLine(p.Excerpt)
		printLine("")
	}
	printLine(p.Text)
}

func printLine(s string) {
	out.Write([]byte(s + "\n"))
}
