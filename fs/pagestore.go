package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/pagedigest"
)

// Ensure FileStore implements pagedigest.PageStore at compile time.
var _ pagedigest.PageStore = (*FileStore)(nil)

// FileStore implements pagedigest.PageStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved into place on Commit.
type FileStore struct {
	baseDir string
	name    string

	// Now returns the timestamp written to each page's frontmatter.
	Now func() time.Time
}

// NewFileStore creates a new FileStore.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
		Now:     time.Now,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes page into the temporary directory.
func (s *FileStore) Save(ctx context.Context, page *pagedigest.PageResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := URLToPath(page.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create page directory: %w", err)
	}

	return os.WriteFile(fullPath, []byte(FormatPage(page, s.Now())), 0o644)
}

// FormatPage renders a page as markdown with YAML frontmatter.
func FormatPage(page *pagedigest.PageResult, crawled time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(page.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(quoteYAML(page.Title))
	if page.Icon != "" {
		b.WriteString("\nicon: ")
		b.WriteString(page.Icon)
	}
	b.WriteString("\ncrawled: ")
	b.WriteString(crawled.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(page.Content)
	b.WriteString("\n")
	return b.String()
}

// quoteYAML quotes titles that would otherwise break the frontmatter.
func quoteYAML(s string) string {
	if s == "" || strings.ContainsAny(s, ":#\"'\n") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// MarkerFile is written into every directory a FileStore commits. Commit
// only replaces directories that are missing, empty, or carry the marker.
const MarkerFile = ".pagedigest"

// CheckTarget returns EINVALID if Commit would refuse to replace the final
// directory.
func (s *FileStore) CheckTarget() error {
	dir := s.finalDir()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return pagedigest.Errorf(pagedigest.EINVALID, "output %s is not a readable directory: %v", dir, err)
	}
	if len(entries) == 0 {
		return nil
	}
	if _, err := os.Stat(filepath.Join(dir, MarkerFile)); err != nil {
		return pagedigest.Errorf(pagedigest.EINVALID, "refusing to replace %s: directory was not created by pagedigest", dir)
	}
	return nil
}

// Commit replaces the final directory with the temporary one.
// Committing without any saved pages leaves an empty final directory.
func (s *FileStore) Commit() error {
	if err := s.CheckTarget(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.tempDir(), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.tempDir(), MarkerFile), nil, 0o644); err != nil {
		return fmt.Errorf("write marker: %w", err)
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort removes the temporary directory.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
