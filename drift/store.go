// Package drift persists structural baselines per schema identifier and
// compares current shapes against them, so that unreviewed schema changes
// (field removal, type narrowing, optionality flips) fail CI instead of
// slipping into production.
package drift

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verdict-go/verdict/shape"
)

// ErrNoBaseline indicates no baseline has been recorded for the identifier.
// A missing baseline is treated as unreviewed, not as a clean slate.
var ErrNoBaseline = errors.New("drift: no baseline recorded")

// Store keeps one YAML baseline file per schema identifier under a directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created lazily on
// the first Save.
func NewStore(dir string) *Store { return &Store{dir: dir} }

// Path returns the baseline file location for the identifier.
func (s *Store) Path(id string) string {
	return filepath.Join(s.dir, sanitize(id)+".yaml")
}

// Save writes (or overwrites) the baseline for the identifier. Overwriting
// is the "reviewed and accepted" action.
func (s *Store) Save(id string, sh *shape.Shape) error {
	if sh == nil {
		return fmt.Errorf("drift: nil shape for %q", id)
	}
	data, err := yaml.Marshal(sh)
	if err != nil {
		return fmt.Errorf("drift: encode baseline %q: %w", id, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("drift: create baseline dir: %w", err)
	}
	if err := os.WriteFile(s.Path(id), data, 0o644); err != nil {
		return fmt.Errorf("drift: write baseline %q: %w", id, err)
	}
	return nil
}

// Load reads the baseline for the identifier, or ErrNoBaseline.
func (s *Store) Load(id string) (*shape.Shape, error) {
	data, err := os.ReadFile(s.Path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoBaseline, id)
		}
		return nil, fmt.Errorf("drift: read baseline %q: %w", id, err)
	}
	var sh shape.Shape
	if err := yaml.Unmarshal(data, &sh); err != nil {
		return nil, fmt.Errorf("drift: decode baseline %q: %w", id, err)
	}
	return &sh, nil
}

// Check compares the current shape against the stored baseline and returns
// the structural changes. An empty result means no drift.
func (s *Store) Check(id string, current *shape.Shape) ([]shape.Change, error) {
	baseline, err := s.Load(id)
	if err != nil {
		return nil, err
	}
	return shape.Diff(baseline, current), nil
}

// sanitize maps a schema identifier onto a safe file name.
func sanitize(id string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return r.Replace(id)
}
