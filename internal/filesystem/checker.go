package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Glob is a file pattern declared by an asset. A pattern that matches no
// files under the base directory fails the check.
type Glob struct {
	Asset   string
	Pattern string
}

type Option func(*Checker)

func WithGlobs(globs []Glob) Option {
	return func(c *Checker) {
		c.globs = globs
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Checker) {
		c.logger = l
	}
}

type Checker struct {
	name          string
	baseDirectory string
	globs         []Glob
	logger        *zap.Logger
}

func NewChecker(name string, baseDirectory string, opts ...Option) *Checker {
	c := &Checker{
		name:          name,
		baseDirectory: baseDirectory,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Checker) Name() string {
	return c.name
}

func (c *Checker) Check(ctx context.Context) error {
	info, err := os.Stat(c.baseDirectory)
	if os.IsNotExist(err) {
		return fmt.Errorf("base_directory path %q does not exist", c.baseDirectory)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("base_directory path %q is not a directory", c.baseDirectory)
	}

	for _, glob := range c.globs {
		pattern := filepath.Join(c.baseDirectory, glob.Pattern)

		c.logger.Debug("checking asset files",
			zap.String("datasource", c.name),
			zap.String("asset", glob.Asset),
			zap.String("pattern", pattern),
		)

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("asset %q: invalid glob %q: %w", glob.Asset, glob.Pattern, err)
		}
		if len(matches) == 0 {
			return fmt.Errorf("asset %q: no files match %q", glob.Asset, glob.Pattern)
		}
	}

	return nil
}
