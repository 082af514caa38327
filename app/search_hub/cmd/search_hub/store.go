package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/prefs"
)

func recentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "查看最近搜索",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printList(prof.History.List())
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "清空最近搜索",
		RunE: func(cmd *cobra.Command, args []string) error {
			prof.ClearHistory()
			return nil
		},
	})
	return cmd
}

func savedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saved",
		Short: "查看收藏",
		RunE: func(cmd *cobra.Command, args []string) error {
			items := prof.Saved.List()
			if jsonOutput {
				return printJSON(items)
			}
			if len(items) == 0 {
				fmt.Fprintln(out, "(empty)")
			}
			for _, it := range items {
				fmt.Fprintf(out, "[%s] %s\n    %s\n    saved %s\n", it.Type, it.Title, it.Link, it.SavedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	var title, snippet, category string
	add := &cobra.Command{
		Use:   "add <link>",
		Short: "收藏一个链接",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := model.ParseCategory(category)
			if err != nil {
				return err
			}
			if title == "" {
				title = args[0]
			}
			prof.Saved.Add(model.SavedItem{Title: title, Link: args[0], Snippet: snippet, Type: c})
			return nil
		},
	}
	add.Flags().StringVar(&title, "title", "", "title of the saved item")
	add.Flags().StringVar(&snippet, "snippet", "", "short description")
	add.Flags().StringVarP(&category, "category", "c", "web", "web, image or news")

	cmd.AddCommand(add)
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <link>",
		Short: "取消收藏",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prof.Saved.Remove(args[0])
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "清空收藏",
		RunE: func(cmd *cobra.Command, args []string) error {
			prof.ClearSaved()
			return nil
		},
	})
	return cmd
}

func prefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "查看搜索偏好",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPrefs(prof.Prefs.Load())
		},
	}

	var (
		region  string
		safe    bool
		perPage int
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "修改搜索偏好",
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch prefs.Patch
			if cmd.Flags().Changed("region") {
				patch.Region = &region
			}
			if cmd.Flags().Changed("safe") {
				patch.SafeSearch = &safe
			}
			if cmd.Flags().Changed("per-page") {
				patch.PageSize = &perPage
			}
			p, err := prof.Prefs.Save(patch)
			if err != nil {
				return err
			}
			return printPrefs(p)
		},
	}
	set.Flags().StringVar(&region, "region", "", "two-letter region code")
	set.Flags().BoolVar(&safe, "safe", true, "enable safe search")
	set.Flags().IntVar(&perPage, "per-page", 0, "results per page ("+strconv.Itoa(prefs.MinPageSize)+"-"+strconv.Itoa(prefs.MaxPageSize)+")")

	cmd.AddCommand(set)
	return cmd
}

func printPrefs(p model.Preferences) error {
	if jsonOutput {
		return printJSON(p)
	}
	fmt.Fprintf(out, "region:   %s\nsafe:     %t\nper page: %d\n", p.Region, p.SafeSearch, p.PageSize)
	return nil
}

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "结果缓存",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "清空结果缓存",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(out, "removed %d cached pages\n", prof.ClearCache())
			return nil
		},
	})
	return cmd
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "清除全部本地数据 (偏好、缓存、收藏、最近搜索)",
		RunE: func(cmd *cobra.Command, args []string) error {
			prof.ResetAll()
			return nil
		},
	}
}
