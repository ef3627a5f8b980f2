// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/antgroup/webdvcs/pkg/command"
	"github.com/antgroup/webdvcs/pkg/version"
)

type App struct {
	command.Globals
	Init       command.Init       `cmd:"init" help:"Create an empty repository"`
	Add        command.Add        `cmd:"add" help:"Stage file contents"`
	Status     command.Status     `cmd:"status" help:"Show the current branch, HEAD, and staged changes"`
	Commit     command.Commit     `cmd:"commit" help:"Record staged changes to the repository"`
	Log        command.Log        `cmd:"log" help:"Show commit history"`
	Diff       command.Diff       `cmd:"diff" help:"Show changes between commits or against the working overlay"`
	Branch     command.Branch     `cmd:"branch" help:"List, create, or delete branches"`
	Switch     command.Switch     `cmd:"switch" help:"Switch the current branch"`
	Merge      command.Merge      `cmd:"merge" help:"Join two branches together"`
	Checkout   command.Checkout   `cmd:"checkout" help:"Restore a commit's tree into staging"`
	Reset      command.Reset      `cmd:"reset" help:"Reset the current branch to a commit"`
	RM         command.Remove     `cmd:"rm" help:"Remove files from staging"`
	GC         command.GC         `cmd:"gc" help:"Clean up unreachable objects"`
	Show       command.Show       `cmd:"show" help:"Show a stored object"`
	RevParse   command.RevParse   `cmd:"rev-parse" help:"Resolve a ref to a commit hash"`
	Config     command.Config     `cmd:"config" help:"Get and set CLI configuration"`
	HashObject command.HashObject `cmd:"hash-object" help:"Compute the content hash of a file"`
	Export     command.Export     `cmd:"export" help:"Export a branch's unique history as a standalone image"`
	Import     command.Import     `cmd:"import" help:"Import a branch from an export image"`
	Version    command.Version    `cmd:"version" help:"Display version information"`
}

func main() {
	var app App
	ctx := kong.Parse(&app,
		kong.Name("webdvcs"),
		kong.Description("A content-addressed, single-file version control engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        version.GetVersionString(),
			"config_default": command.DefaultConfigPath(),
		},
	)
	now := time.Now()
	err := ctx.Run(&app.Globals)
	if app.Verbose {
		app.DbgPrint("time spent: %v", time.Since(now))
	}
	if err == nil {
		return
	}
	os.Exit(1)
}
