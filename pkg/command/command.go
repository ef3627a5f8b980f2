// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package command implements the webdvcs CLI surface: one struct per
// subcommand, each wrapping pkg/repo's controller the way the teacher's
// pkg/command wraps pkg/zeta — open the repository, run one controller
// operation, print a result, close. Parsing is github.com/alecthomas/kong,
// the real upstream library the teacher's own pkg/kong is forked from;
// this package uses it directly rather than repeating the fork.
package command

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/antgroup/webdvcs/modules/vcserr"
	"github.com/antgroup/webdvcs/pkg/config"
	"github.com/antgroup/webdvcs/pkg/repo"
	"github.com/antgroup/webdvcs/pkg/version"
)

// Globals carries the flags every subcommand inherits, mirroring the
// teacher's command.Globals shape (Verbose plus a version flag).
type Globals struct {
	Verbose    bool        `short:"V" name:"verbose" help:"Make the operation more talkative"`
	Version    VersionFlag `short:"v" name:"version" help:"Show version number and quit"`
	Path       string      `name:"path" help:"Path to the repository database file" default:"webdvcs.db"`
	NoColor    bool        `name:"no-color" help:"Disable colored diff output"`
	ConfigPath string      `name:"config" help:"Path to the CLI config file" default:"${config_default}"`
}

func (g *Globals) DbgPrint(format string, args ...any) {
	if !g.Verbose {
		return
	}
	message := strings.TrimSuffix(fmt.Sprintf(format, args...), "\n")
	var buffer bytes.Buffer
	for _, s := range strings.Split(message, "\n") {
		_, _ = buffer.WriteString("\x1b[33m* ")
		_, _ = buffer.WriteString(s)
		_, _ = buffer.WriteString("\x1b[0m\n")
	}
	_, _ = os.Stderr.Write(buffer.Bytes())
}

// openRepo opens the repository named by g.Path and applies g.Verbose as
// the controller's debug flag.
func (g *Globals) openRepo() (*repo.Repository, error) {
	r, err := repo.Open(g.Path)
	if err != nil {
		return nil, err
	}
	r.SetDebug(g.Verbose)
	return r, nil
}

// loadConfig reads the CLI's author/UI defaults, never failing on a
// missing file (spec §6's config-layer contract).
func (g *Globals) loadConfig() (*config.Config, error) {
	return config.Load(g.ConfigPath)
}

// saveConfig persists cfg to path as TOML.
func saveConfig(path string, cfg *config.Config) error {
	return config.Save(path, cfg)
}

func (g *Globals) colorize() bool {
	if g.NoColor {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// DefaultConfigPath is substituted into ${config_default} at parse time.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".webdvcsconfig"
	}
	return filepath.Join(home, ".webdvcsconfig")
}

type VersionFlag bool

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(version.GetVersionString())
	app.Exit(0)
	return nil
}

var (
	ErrArgRequired       = errors.New("arg required")
	ErrFlagsIncompatible = errors.New("flags incompatible")
)

// diev prints a fatal: prefixed message the way the teacher's msic.go does.
func diev(format string, a ...any) {
	var b bytes.Buffer
	b.WriteString("fatal: ")
	fmt.Fprintf(&b, format, a...)
	b.WriteByte('\n')
	_, _ = os.Stderr.Write(b.Bytes())
}

// describeErr prints a vcserr.Error's kind alongside its message, falling
// back to err.Error() for anything else.
func describeErr(prefix string, err error) {
	var verr *vcserr.Error
	if errors.As(err, &verr) {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", prefix, verr.Kind, verr.Message)
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", prefix, err)
}
