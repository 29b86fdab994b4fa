// Package convert implements command line actions.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"epubgen/builder"
	"epubgen/project"
	"epubgen/state"
)

// Run is "build" command action.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Logger().Named("build")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no project file has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite = cmd.Bool("overwrite")

	log.Info("Processing starting", zap.String("project", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

// process builds single book described by project file "src". "dst" is
// either destination directory or output file name.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	p, err := project.Load(src)
	if err != nil {
		return err
	}

	b := builder.New(&env.Cfg.Document, log)
	if err := p.Apply(ctx, b, log); err != nil {
		return fmt.Errorf("unable to prepare book (%s): %w", src, err)
	}

	outputName := buildOutputPath(b.Metadata(), src, dst, env)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		// old file is replaced only when new one is ready
		log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := b.Save(ctx, outputName); err != nil {
		return fmt.Errorf("unable to generate output: %w", err)
	}
	log.Info("Book created", zap.String("to", outputName), zap.Int("chapters", len(b.Chapters())))
	return nil
}
