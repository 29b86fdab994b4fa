package convert

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"

	"epubgen/a11y"
)

// Vocabulary is "vocabulary" command action, it lists values accepted for
// accessibility metadata.
func Vocabulary(_ context.Context, cmd *cli.Command) error {
	var w io.Writer = os.Stdout
	if root := cmd.Root(); root != nil && root.Writer != nil {
		w = root.Writer
	}
	return printVocabulary(w)
}

func printVocabulary(w io.Writer) error {
	sections := []struct {
		name   string
		values []string
	}{
		{"Access modes (access_modes, access_mode_sufficient)", a11y.AccessModeNames()},
		{"Accessibility features (features)", a11y.FeatureNames()},
		{"Accessibility hazards (hazards)", a11y.HazardNames()},
		{"Conformance shorthands (conforms_to, absolute URLs are accepted as is)", a11y.ConformanceShorthands()},
	}
	for i, s := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s:\n", s.name); err != nil {
			return err
		}
		for _, v := range s.values {
			if _, err := fmt.Fprintf(w, "    %s\n", v); err != nil {
				return err
			}
		}
	}
	return nil
}
