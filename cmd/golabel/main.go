// Command golabel renders shelf price tags from an Excel product list.
//
// Usage:
//
//	golabel -in products.xlsx -out labels/ -fonts fonts/
//	golabel -in products.xlsx -profile compact
//	golabel -in products.xlsx -watch
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	golabel "github.com/shelfworks/GoLabel"
)

func main() {
	var (
		in       = flag.String("in", "products.xlsx", "input Excel workbook")
		out      = flag.String("out", "labels", "output directory for label images")
		fontsDir = flag.String("fonts", "fonts", "directory containing label fonts")
		profName = flag.String("profile", "classic", "label profile name")
		profFile = flag.String("profiles", "", "optional profile definition file")
		nameCol  = flag.String("name-col", golabel.DefaultNameColumn, "product name column header")
		priceCol = flag.String("price-col", golabel.DefaultPriceColumn, "price column header")
		watch    = flag.Bool("watch", false, "keep running and regenerate when the workbook changes")
		version  = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Println("golabel", golabel.Version)
		return
	}

	profile, err := resolveProfile(*profName, *profFile)
	if err != nil {
		log.Fatal(err)
	}
	if err := profile.Validate(); err != nil {
		log.Fatal(err)
	}

	cache := golabel.NewFontCache(*fontsDir)
	faces, err := golabel.FacesFromCache(profile, cache)
	if err != nil {
		log.Fatal(err)
	}

	renderer, err := golabel.NewRenderer(profile, faces, golabel.PersianShaper{})
	if err != nil {
		log.Fatal(err)
	}

	gen := &golabel.Generator{
		Profile:  profile,
		Renderer: renderer,
		OutDir:   *out,
	}
	src := &golabel.XLSXSource{
		Path:        *in,
		NameColumn:  *nameCol,
		PriceColumn: *priceCol,
	}

	run := func() {
		if _, _, err := gen.Run(src); err != nil {
			log.Printf("generate: %v", err)
		}
	}
	run()

	if *watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		log.Printf("watching %s, press Ctrl-C to stop", *in)
		if err := golabel.Watch(ctx, *in, run); err != nil && ctx.Err() == nil {
			log.Fatal(err)
		}
	}
}

// resolveProfile finds the named profile, preferring definitions from the
// profile file over the built-ins.
func resolveProfile(name, file string) (*golabel.Profile, error) {
	if file != "" {
		profiles, err := golabel.LoadProfiles(file)
		if err != nil {
			return nil, err
		}
		if p, ok := profiles[name]; ok {
			return p, nil
		}
	}
	if p, ok := golabel.LookupProfile(name); ok {
		return p, nil
	}
	names := golabel.BuiltinProfileNames()
	sort.Strings(names)
	return nil, fmt.Errorf("unknown profile %q (built-in: %s)", name, strings.Join(names, ", "))
}
