package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/engine"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
)

var out io.Writer = os.Stdout

func printJSON(v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printState(st engine.State) error {
	if jsonOutput {
		return printJSON(st)
	}

	switch st.Status {
	case engine.StatusError:
		fmt.Fprintf(out, "Error: %s\n", st.Error)
		return nil
	case engine.StatusIdle:
		fmt.Fprintln(out, "Nothing to search.")
		return nil
	}

	var meta []string
	meta = append(meta, fmt.Sprintf("%s · page %d", st.Category, st.Page))
	if st.Result.TotalResults > 0 {
		meta = append(meta, fmt.Sprintf("about %d results", st.Result.TotalResults))
	}
	if st.FromCache {
		meta = append(meta, "cached")
	} else {
		meta = append(meta, fmt.Sprintf("%.2fs", float64(st.Result.TookMs)/1000))
	}
	fmt.Fprintln(out, strings.Join(meta, " · "))

	if kp := st.Result.KnowledgePanel; kp != nil {
		fmt.Fprintf(out, "\n[%s] %s\n  %s\n", kp.Name, kp.Label, kp.Description)
	}

	if st.Empty {
		fmt.Fprintf(out, "\nNo results found for %q.\n", st.Query)
		return nil
	}

	for i, r := range st.Result.Items {
		fmt.Fprintf(out, "\n%2d. %s\n    %s\n", i+1, r.Title, r.Link)
		printDetail(r)
	}

	if len(st.Result.RelatedKeywords) > 0 {
		fmt.Fprintf(out, "\nRelated: %s\n", strings.Join(st.Result.RelatedKeywords, ", "))
	}
	return nil
}

func printDetail(r model.Result) {
	switch r.Type {
	case model.CategoryImage:
		if r.Thumbnail != "" {
			fmt.Fprintf(out, "    image: %s\n", r.Thumbnail)
		}
	case model.CategoryNews:
		var parts []string
		if r.Source != "" {
			parts = append(parts, r.Source)
		}
		if r.PublishedAt != "" {
			parts = append(parts, r.PublishedAt)
		}
		if len(parts) > 0 {
			fmt.Fprintf(out, "    %s\n", strings.Join(parts, " · "))
		}
		fmt.Fprintf(out, "    %s\n", r.Snippet)
	default:
		fmt.Fprintf(out, "    %s\n", r.Snippet)
	}
}

func printList(items []string) error {
	if jsonOutput {
		return printJSON(items)
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "(empty)")
		return nil
	}
	for _, s := range items {
		fmt.Fprintln(out, s)
	}
	return nil
}
