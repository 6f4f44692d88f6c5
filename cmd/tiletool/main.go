// Command tiletool prepares and inspects tile pyramids for the map viewer.
//
//	tiletool fetch -url 'https://host/{level}/{col}-{row}.webp' -level 4
//	tiletool split -src map.png -levels 2,4,8,16
//	tiletool join -level 4 -out level-4.png
//	tiletool shot -x 1003 -y 1236 -zoom 6 -out balmora.png
//	tiletool dump -zoom 3
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/leonelquinteros/gotext"

	"worldmap/pkg/engine/console"
	"worldmap/pkg/viewer/config"
)

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, cfg *config.Config, con *console.Console, args []string) error
}

var commands = []command{
	{"fetch", "download one level of tiles from a URL template", runFetch},
	{"split", "cut a source image into pyramid levels", runSplit},
	{"join", "stitch one level back into a single image", runJoin},
	{"shot", "render a view to PNG without a window", runShot},
	{"dump", "print a text report of a view", runDump},
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: tiletool [-config file] <command> [flags]\n\ncommands:\n")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-6s %s\n", c.name, c.usage)
	}
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "JSON config file")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	gotext.Configure(cfg.LocalesDir, cfg.Language, "default")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	name, args := flag.Arg(0), flag.Args()[1:]
	for _, c := range commands {
		if c.name != name {
			continue
		}
		con := console.New()
		if err := c.run(ctx, cfg, con, args); err != nil {
			con.Printf("ERR{%s}: %v", name, err)
			os.Exit(1)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
	usage()
	os.Exit(2)
}
