package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eringen/mdxblog"
	"github.com/eringen/mdxblog/content"
)

func (c *cli) newListCmd() *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "List posts, newest first",
		Long:  "list prints every post, newest first. A query fuzzy-matches titles and descriptions.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lister := content.NewLister(content.Config{
				Dir:       c.cfg.ContentDir,
				Extension: c.cfg.Extension,
			}, content.WithLogger(c.log))
			posts, err := lister.Load(cmd.Context())
			if err != nil {
				return err
			}
			posts = mdxblog.FilterByTag(posts, tag)
			if len(args) == 1 {
				posts = mdxblog.SearchPosts(posts, args[0])
			}
			printPosts(cmd.OutOrStdout(), c.cfg.Lang, posts)
			return nil
		},
	}
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "only posts with this tag")
	return cmd
}

func printPosts(w io.Writer, lang string, posts []content.PostSummary) {
	if len(posts) == 0 {
		fmt.Fprintln(w, dateStyle.Render("no posts"))
		return
	}
	for _, p := range posts {
		date := p.Date
		if t, ok := content.ParseDate(p.Date); ok {
			date = t.Format("2006-01-02")
		}
		if date == "" {
			date = "undated"
		}
		line := fmt.Sprintf("%-10s  %s  %s", dateStyle.Render(date), titleStyle.Render(p.Title), slugStyle.Render(p.Slug))
		if len(p.Tags) > 0 {
			line += "  " + tagStyle.Render("#"+strings.Join(p.Tags, " #"))
		}
		fmt.Fprintln(w, line)
	}
}
