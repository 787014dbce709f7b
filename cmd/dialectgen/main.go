// Command dialectgen is the thin CLI driver around the schema/query core:
// it reads a schema SQL file, parses it, applies any project-config
// class-name overrides, and writes a human-readable report of the parsed
// schema to the configured output file. The actual target-language
// code-writer is an external collaborator this driver does not implement.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/freeeve/dialectgen/schema"
	"github.com/freeeve/dialectgen/sqlfile"
)

type cliOptions struct {
	Schema  string `short:"s" long:"schema" description:"Path to the schema SQL file" required:"true"`
	Out     string `short:"o" long:"out" description:"Path to write the parsed-schema report" default:"-"`
	Dialect string `long:"dialect" description:"Target SQL dialect (informational only; the core is SQLite-flavored)" default:"sqlite"`
	Config  string `long:"config" description:"Path to an optional dialectgen.yaml project config"`
}

func main() {
	var opts cliOptions
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		fatalf("dialectgen: %v", err)
	}
}

func run(opts cliOptions) error {
	cfg := &ProjectConfig{}
	if opts.Config != "" {
		loaded, err := LoadProjectConfig(opts.Config)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	source, err := os.ReadFile(opts.Schema)
	if err != nil {
		return errors.Wrapf(err, "reading schema %q", opts.Schema)
	}

	s, diagnostics := sqlfile.Parse(string(source))
	for _, d := range diagnostics {
		fmt.Fprintf(os.Stderr, "dialectgen: %s: %s\n", d.Kind, d.Message)
	}

	if err := s.Validate(); err != nil {
		return errors.Wrap(err, "schema validation")
	}

	report := renderReport(s, cfg)

	if opts.Out == "-" {
		_, err := os.Stdout.WriteString(report)
		return err
	}
	return writeAtomic(opts.Out, report)
}

func renderReport(s *schema.Schema, cfg *ProjectConfig) string {
	var b strings.Builder
	for _, t := range s.Tables {
		className := t.MappedClassName
		if override, ok := cfg.classNameFor(t.Name); ok {
			className = override
		}
		fmt.Fprintf(&b, "table %s -> %s (%d columns", t.Name, className, len(t.Columns))
		if t.WithoutRowid {
			b.WriteString(", without rowid")
		}
		if len(t.ForeignKeys) > 0 {
			fmt.Fprintf(&b, ", %d foreign keys", len(t.ForeignKeys))
		}
		b.WriteString(")\n")
	}
	for _, v := range s.Views {
		fmt.Fprintf(&b, "view %s -> %s\n", v.Name, v.MappedClassName)
	}
	for _, q := range s.Queries {
		fmt.Fprintf(&b, "query %s (%d placeholders)\n", q.Label, len(q.Placeholders))
	}
	return b.String()
}

// writeAtomic writes content to path via a temp-file-then-rename dance so a
// crash mid-write never leaves a truncated report on disk.
func writeAtomic(path, content string) error {
	pf, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644))
	if err != nil {
		return errors.Wrapf(err, "renameio.NewPendingFile %q", path)
	}
	defer pf.Cleanup()

	if _, err := pf.Write([]byte(content)); err != nil {
		return errors.Wrap(err, "writing report")
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return errors.Wrap(err, "renameio.CloseAtomicallyReplace")
	}
	return nil
}
