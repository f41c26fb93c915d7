package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/eringen/mdxblog"
)

const rebuildDebounce = 500 * time.Millisecond

func (c *cli) newBuildCmd() *cobra.Command {
	var (
		outDir    string
		staticDir string
		watch     bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export the blog as static HTML",
		Long: `build renders every page, the RSS feed, the sitemap and robots.txt into
the output directory. With --watch it rebuilds whenever the post or static
directory changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := mdxblog.New(c.cfg, mdxblog.WithStaticDir(staticDir))
			if err := c.build(cmd.Context(), app, outDir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("built"), outDir)
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.watch(ctx, app, outDir, c.cfg.ContentDir, staticDir)
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "dist", "output directory")
	cmd.Flags().StringVar(&staticDir, "static", "public", "directory of static assets copied to <out>/public")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "rebuild when content changes")
	return cmd
}

func (c *cli) build(ctx context.Context, app *mdxblog.App, outDir string) error {
	start := time.Now()
	if err := app.Build(ctx, outDir); err != nil {
		return err
	}
	c.log.Infof("built %s in %s", outDir, time.Since(start).Round(time.Millisecond))
	return nil
}

// watch rebuilds after a quiet period following any change in dirs.
// Rebuild failures are logged and the watch continues.
func (c *cli) watch(ctx context.Context, app *mdxblog.App, outDir string, dirs ...string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		c.log.Infof("watching %s", dir)
	}

	rebuild := make(chan struct{}, 1)
	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(rebuildDebounce, func() {
				select {
				case rebuild <- struct{}{}:
				default:
				}
			})
		case <-rebuild:
			if err := c.build(ctx, app, outDir); err != nil {
				c.log.Errorf("rebuild: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.log.Errorf("watch: %v", err)
		}
	}
}
