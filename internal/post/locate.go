package post

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// sourceExt is the file extension of post sources.
const sourceExt = ".qmd"

// metadataFilename is a reserved Quarto directory-metadata file that is
// never a post, regardless of its modification time or content.
const metadataFilename = "_metadata.yml"

// Locate walks root recursively and returns every parseable post source
// whose modification time falls inside the trailing window. Sources that
// fail to parse are skipped. A missing or empty root yields an empty result.
func Locate(root string, window time.Duration) []*Post {
	return locateSince(root, time.Now().Add(-window))
}

// locateSince returns posts modified strictly after cutoff. A file whose
// modification time equals cutoff exactly is excluded.
func locateSince(root string, cutoff time.Time) []*Post {
	var posts []*Post

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Missing root or unreadable subtree: nothing to include.
			return nil
		}
		if d.IsDir() || d.Name() == metadataFilename || filepath.Ext(d.Name()) != sourceExt {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if !info.ModTime().After(cutoff) {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("failed to read post source", "path", path, "error", err)
			return nil
		}

		p, err := Parse(raw, path)
		if err != nil {
			slog.Debug("skipping source that is not a well-formed post", "path", path, "error", err)
			return nil
		}

		posts = append(posts, p)
		return nil
	})

	return posts
}
