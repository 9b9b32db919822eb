package main

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/pixelforge/pixelmint"
	"github.com/pixelforge/pixelmint/part"
	"github.com/urfave/cli/v2"
)

const (
	defaultDB     = "pixelmint.db"
	defaultAssets = "assets.pmb"
	maxColors     = 255
)

// Trait directories expected under the import directory, in draw order.
var categories = []string{"bodies", "faces", "eyes", "mouths"}

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func loadStore(c *cli.Context) (*pixelmint.AssetStore, error) {
	f, err := os.Open(c.String("assets"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return pixelmint.ReadBundle(f)
}

func openMint(c *cli.Context) (*pixelmint.PixelMint, *pixelmint.TokenDB, error) {
	store, err := loadStore(c)
	if err != nil {
		return nil, nil, err
	}

	db, err := pixelmint.NewTokenDB(c.String("db"))
	if err != nil {
		return nil, nil, err
	}

	return pixelmint.New(store, db, newLogger(c)), db, nil
}

func readImages(dir string) ([]image.Image, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && e.Name()[0] != '.' {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var images []image.Image
	for _, name := range names {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}

		m, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		images = append(images, m)
	}

	return images, nil
}

func hexPalette(p color.Palette) pixelmint.Palette {
	// Skip index 0, the transparent entry; part color indices are 1-based.
	out := make(pixelmint.Palette, 0, len(p)-1)
	for _, c := range p[1:] {
		r, g, b, _ := c.RGBA()
		out = append(out, fmt.Sprintf("%02x%02x%02x", r>>8, g>>8, b>>8))
	}
	return out
}

func importAssets(c *cli.Context, dir string, logger *log.Logger) error {
	var images [][]image.Image
	var all []image.Image
	for _, category := range categories {
		m, err := readImages(filepath.Join(dir, category))
		if err != nil {
			return err
		}
		logger.Printf("%s: %d layers\n", category, len(m))
		images = append(images, m)
		all = append(all, m...)
	}

	palette := part.BuildPalette(all, maxColors)

	collections := make([][][]byte, len(images))
	for i, category := range images {
		for _, m := range category {
			b := new(bytes.Buffer)
			if err := part.Encode(b, m, palette); err != nil {
				return err
			}
			collections[i] = append(collections[i], b.Bytes())
		}
	}

	store := new(pixelmint.AssetStore)
	if err := store.Populate(collections[0], collections[1], collections[2], collections[3], hexPalette(palette)); err != nil {
		return err
	}

	f, err := os.Create(c.String("assets"))
	if err != nil {
		return err
	}
	defer f.Close()

	return store.WriteBundle(f)
}

func tokenID(c *cli.Context) (uint64, error) {
	return strconv.ParseUint(c.Args().First(), 10, 64)
}

func entropy(c *cli.Context) (pixelmint.Entropy, error) {
	if c.NArg() > 1 {
		return pixelmint.EntropyFromHex(c.Args().Get(1))
	}

	var e pixelmint.Entropy
	_, err := rand.Read(e[:])
	return e, err
}

func main() {
	app := cli.NewApp()

	app.Name = "pixelmint"
	app.Usage = "generative pixel token utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"PIXELMINT_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to token database",
		},
		&cli.StringFlag{
			Name:    "assets",
			EnvVars: []string{"PIXELMINT_ASSETS"},
			Value:   filepath.Join(cwd, defaultAssets),
			Usage:   "path to asset bundle",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "import",
			Usage:       "Import trait layer images into an asset bundle",
			Description: "DIR must contain bodies/, faces/, eyes/ and mouths/ image directories",
			ArgsUsage:   "DIR",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				if err := importAssets(c, c.Args().First(), newLogger(c)); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "mint",
			Usage:     "Mint a token, deriving its seed from the given entropy",
			ArgsUsage: "ID [ENTROPY]",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				id, err := tokenID(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				e, err := entropy(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				m, db, err := openMint(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				seed, err := m.Mint(id, e)
				if err != nil {
					return cli.Exit(err, 1)
				}

				fmt.Printf("token %d: %s\n", id, seed)

				return nil
			},
		},
		{
			Name:      "metadata",
			Usage:     "Print the metadata URI for a minted token",
			ArgsUsage: "ID",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				id, err := tokenID(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				m, db, err := openMint(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				uri, err := m.TokenURI(id)
				if err != nil {
					return cli.Exit(err, 1)
				}

				fmt.Println(uri)

				return nil
			},
		},
		{
			Name:      "render",
			Usage:     "Render a minted token to an SVG file",
			ArgsUsage: "ID",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output file, defaults to ID.svg",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				id, err := tokenID(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				m, db, err := openMint(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				seed, err := db.Seed(id)
				if err != nil {
					return cli.Exit(err, 1)
				}

				b, err := m.Render(seed)
				if err != nil {
					return cli.Exit(err, 1)
				}

				output := c.String("output")
				if output == "" {
					output = fmt.Sprintf("%d.svg", id)
				}

				if err := os.WriteFile(output, b, 0644); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
