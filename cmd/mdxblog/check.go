package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/mdxblog/content"
)

func (c *cli) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report problems in post front matter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lister := content.NewLister(content.Config{
				Dir:       c.cfg.ContentDir,
				Extension: c.cfg.Extension,
			}, content.WithLogger(c.log))
			problems, err := lister.Check(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(problems) == 0 {
				fmt.Fprintf(w, "%s %s\n", okStyle.Render("ok"), c.cfg.ContentDir)
				return nil
			}
			for _, p := range problems {
				fmt.Fprintf(w, "%s %s\n", errorStyle.Render("✗"), p)
			}
			return fmt.Errorf("%d problem(s) found", len(problems))
		},
	}
}
