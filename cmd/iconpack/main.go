package main

import (
	"fmt"
	_ "image/png"
	"log"
	"os"

	"github.com/disintegration/imaging"
	"github.com/inhies/go-bytesize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"weatherpaper/pkg/bitmap"
	"weatherpaper/pkg/icon"
)

func main() {
	app := cli.NewApp()

	app.Name = "iconpack"
	app.Usage = "Build and inspect weather glyph packs"

	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:    "threshold",
			EnvVars: []string{"WEATHERPAPER_THRESHOLD"},
			Value:   bitmap.DefaultThreshold,
			Usage:   "luminance threshold, 0..49",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "encode",
			Usage:     "Encode a directory of <glyph>.png files into a pack",
			ArgsUsage: "SRC DST",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				if err := encode(c.Args().Get(0), c.Args().Get(1), c.Int("threshold")); err != nil {
					return cli.Exit(err, 1)
				}
				return nil
			},
		},
		{
			Name:      "builtin",
			Usage:     "Write the built-in glyphs as a pack",
			ArgsUsage: "DST",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				pack, err := icon.Builtin(c.Int("threshold"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				if err := write(c.Args().First(), pack); err != nil {
					return cli.Exit(err, 1)
				}
				return nil
			},
		},
		{
			Name:      "inspect",
			Usage:     "Print glyphs of a pack as text",
			ArgsUsage: "DIR [GLYPH...]",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				pack, err := icon.LoadPack(afero.NewOsFs(), c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				ids := pack.IDs()
				if c.NArg() > 1 {
					ids = nil
					for _, a := range c.Args().Slice()[1:] {
						ids = append(ids, icon.ID(a))
					}
				}
				for _, id := range ids {
					p := pack.Get(id)
					if p == nil {
						return cli.Exit(fmt.Sprintf("no glyph %q", id), 1)
					}
					fmt.Printf("%s %s\n%s\n", id, p, ascii(p))
				}
				if missing := pack.Missing(); len(missing) > 0 {
					fmt.Printf("missing: %v\n", missing)
				}
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func encode(src, dst string, threshold int) error {
	found, skipped, err := sources(src)
	if err != nil {
		return err
	}
	for _, name := range skipped {
		log.Printf("skip %s: not a glyph name", name)
	}

	icons := make(map[icon.ID]*bitmap.Packed, len(found))
	bar := progressbar.Default(int64(len(found)), "encoding")
	for id, file := range found {
		img, err := imaging.Open(file)
		if err != nil {
			return fmt.Errorf("open %s failed: %w", file, err)
		}
		if icons[id], err = icon.Encode(fitIcon(img), threshold); err != nil {
			return fmt.Errorf("encode %s failed: %w", file, err)
		}
		_ = bar.Add(1)
	}

	return write(dst, icon.NewPack(threshold, icons))
}

func write(dst string, pack *icon.Pack) error {
	fs := afero.NewOsFs()
	if err := icon.WritePack(fs, dst, pack); err != nil {
		return err
	}

	var total int
	for _, id := range pack.IDs() {
		total += len(pack.Get(id).Bytes())
	}
	fmt.Printf("%d glyphs, %s\n", pack.Len(), bytesize.New(float64(total)))
	return nil
}
