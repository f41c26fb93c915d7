package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentReads bounds the number of files read at once.
const maxConcurrentReads = 16

// RawEntry is an eligible content file and its unparsed bytes.
type RawEntry struct {
	Name string
	Slug string
	Data []byte
}

// SlugFromName strips ext from a file name.
func SlugFromName(name, ext string) string {
	return strings.TrimSuffix(name, ext)
}

// ListEntries reads every file in the root of fsys whose name ends with ext.
// Files are read concurrently; the result keeps directory order.
func ListEntries(ctx context.Context, fsys fs.FS, ext string) ([]RawEntry, error) {
	dirents, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, wrapFSError("read directory", err)
	}

	var entries []RawEntry
	for _, d := range dirents {
		name := d.Name()
		if d.IsDir() || !strings.HasSuffix(name, ext) {
			continue
		}
		slug := SlugFromName(name, ext)
		if slug == "" {
			continue
		}
		entries = append(entries, RawEntry{Name: name, Slug: slug})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(fsys, entries[i].Name)
			if err != nil {
				return wrapFSError("read "+entries[i].Name, err)
			}
			entries[i].Data = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

func wrapFSError(op string, err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
		return fmt.Errorf("%w: %s: %v", ErrNotFound, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrUnreadable, op, err)
}
