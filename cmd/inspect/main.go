package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/delaneyj/reactive/reactive"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	devModeKey = "dev"
	configKey  = "config"
)

func main() {
	cmd := &cli.Command{
		Name:  "inspect",
		Usage: "Build a demo reactivity graph and print its dependency shape",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  devModeKey,
				Usage: "Enable dev mode on the demo system (dev-time warnings are logged)",
				Value: false,
			},
			&cli.StringFlag{
				Name:  configKey,
				Usage: "Path to a YAML config file (see reactive.LoadConfig)",
			},
		},
		Action: inspect,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func inspect(ctx context.Context, cmd *cli.Command) error {
	log.Printf("inspect started")
	defer log.Printf("inspect finished")

	sys := reactive.NewSystem(reactive.WithDevMode(cmd.Bool(devModeKey)))

	if path := cmd.String(configKey); path != "" {
		cfg, err := reactive.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg.ApplyTo(sys)
	}

	user := reactive.NewObject(sys, map[string]any{"name": "ada", "age": 30})
	tags := reactive.NewSetMap(sys)
	tags.Add("admin")

	c1 := reactive.NewComputed(sys, func() string {
		return fmt.Sprintf("%v (%v)", user.Get("name"), user.Get("age"))
	})
	c2 := reactive.NewComputed(sys, func() string {
		return c1.Value() + " #" + fmt.Sprint(tags.Size())
	})

	var rendered string
	reactive.NewEffect(sys, func() {
		rendered = c2.Value()
	}, nil)
	log.Printf("initial render: %s", rendered)

	user.Set("age", 31)
	tags.Add("owner")
	log.Printf("after mutation: %s", rendered)

	tbl := table.NewWriter()
	tbl.SetTitle("Dependency Graph Shape")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"container", "keys tracked"})
	tbl.AppendRows([]table.Row{
		{"user", len(user.Keys())},
		{"tags", tags.Size()},
	})
	tbl.Render()

	return nil
}
