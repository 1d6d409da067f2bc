// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Command patricia runs longest-prefix-match lookups over a routing
// table loaded from a text file, one "prefix value" pair per line.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/urfave/cli/v2"
)

var log = hclog.New(&hclog.LoggerOptions{
	Name: "patricia",
})

func main() {
	app := &cli.App{
		Name:  "patricia",
		Usage: "longest-prefix-match lookups over a routing table file",
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:     "table",
			Usage:    "table file, one 'prefix value' pair per line",
			Required: true,
			EnvVars:  []string{"PATRICIA_TABLE"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "trace|debug|info|warn|error",
			Value:   "info",
			EnvVars: []string{"PATRICIA_LOG_LEVEL"},
		},
	}

	app.Before = func(cctx *cli.Context) error {
		log.SetLevel(hclog.LevelFromString(cctx.String("log-level")))
		return nil
	}

	app.Commands = []*cli.Command{
		{
			Name:      "lookup",
			Usage:     "match addresses or prefixes against the table",
			ArgsUsage: "KEY...",
			Action:    runLookup,
		},
		{
			Name:  "dump",
			Usage: "print the table as hierarchical tree or JSON",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "json",
					Usage: "dump as JSON instead of tree diagram",
				},
			},
			Action: runDump,
		},
	}

	app.RunAndExitOnError()
}

func runLookup(cctx *cli.Context) error {
	if cctx.NArg() == 0 {
		return fmt.Errorf("no keys to look up")
	}

	tbl, err := loadTables(cctx.String("table"))
	if err != nil {
		return err
	}

	for _, arg := range cctx.Args().Slice() {
		lpm, val, ok, err := tbl.lookup(arg)
		if err != nil {
			log.Warn("skipping malformed key", "key", arg, "err", err)
			continue
		}

		if !ok {
			fmt.Printf("%s: no match\n", arg)
			continue
		}
		fmt.Printf("%s: %s %s\n", arg, lpm, val)
	}

	return nil
}

func runDump(cctx *cli.Context) error {
	tbl, err := loadTables(cctx.String("table"))
	if err != nil {
		return err
	}

	if !cctx.Bool("json") {
		if err := tbl.v4.Fprint(os.Stdout); err != nil {
			return err
		}
		return tbl.v6.Fprint(os.Stdout)
	}

	result := struct {
		Ipv4 json.RawMessage `json:"ipv4"`
		Ipv6 json.RawMessage `json:"ipv6"`
	}{}

	if result.Ipv4, err = tbl.v4.MarshalJSON(); err != nil {
		return err
	}
	if result.Ipv6, err = tbl.v6.MarshalJSON(); err != nil {
		return err
	}

	buf, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(buf))
	return nil
}
