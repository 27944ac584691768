package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/InfinityTools/go-logging"
	"github.com/gocarina/gocsv"
	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"

	"github.com/iOrange/bumpx"
	"github.com/iOrange/bumpx/bc3"
	"github.com/iOrange/bumpx/dds"
	"github.com/iOrange/bumpx/raster"
)

const (
	bumpSuffix  = "_bump.dds"
	bumpXSuffix = "_bump#.dds"
)

func main() {
	app := cli.App{
		Name:  "bumpx",
		Usage: "Convert normal maps into packed bump/bump# DXT5 textures",
		Commands: []*cli.Command{
			{
				Name:   "convert",
				Usage:  "Convert one normal map (plus optional gloss and height maps)",
				Action: convertCommand,
				Flags: append(conversionFlags(),
					&cli.StringFlag{
						Name:    "normal",
						Aliases: []string{"n"},
						Usage:   "source normal map image (required)",
					},
					&cli.StringFlag{
						Name:    "gloss",
						Aliases: []string{"g"},
						Usage:   "gloss map image",
					},
					&cli.StringFlag{
						Name:    "height",
						Aliases: []string{"m"},
						Usage:   "height map image",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "output path or directory (default: next to the normal map)",
					},
				),
			},
			{
				Name:      "info",
				Usage:     "Print the container header of a DDS file",
				Action:    infoCommand,
				ArgsUsage: "DDS_FILE",
			},
			{
				Name:   "batch",
				Usage:  "Convert every entry of a CSV manifest",
				Action: batchCommand,
				Flags: append(conversionFlags(),
					&cli.StringFlag{
						Name:  "manifest",
						Usage: "CSV manifest with columns normal,gloss,height,output (required)",
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

// conversionFlags returns the flags convert and batch share.
func conversionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "quality",
			Aliases: []string{"q"},
			Usage:   "compression quality: 0 fast, 1 balanced, 2 max",
			Value:   2,
		},
		&cli.BoolFlag{
			Name:    "linear-gloss",
			Aliases: []string{"l"},
			Usage:   "store gloss linearly instead of sqrt-compressed",
		},
		&cli.BoolFlag{
			Name:  "perceptual",
			Usage: "weight compression error for human viewing instead of uniformly",
		},
	}
}

func optionsFromFlags(context *cli.Context) (bumpx.Options, error) {
	quality := context.Int("quality")
	if quality < 0 || quality > 2 {
		return bumpx.Options{}, fmt.Errorf("quality must be 0, 1 or 2, got %d", quality)
	}
	return bumpx.Options{
		Quality:     bc3.Quality(quality),
		LinearGloss: context.Bool("linear-gloss"),
		Perceptual:  context.Bool("perceptual"),
	}, nil
}

func convertCommand(context *cli.Context) error {
	normalPath := context.String("normal")
	if normalPath == "" {
		return cli.Exit("a normal map is required (-n)", 1)
	}
	opts, err := optionsFromFlags(context)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	job := conversionJob{
		Normal: normalPath,
		Gloss:  context.String("gloss"),
		Height: context.String("height"),
		Output: context.String("output"),
	}
	if err := job.run(opts); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}

// conversionJob is one normal-map conversion. It doubles as a manifest row
// for the batch command.
type conversionJob struct {
	Normal string `csv:"normal"`
	Gloss  string `csv:"gloss"`
	Height string `csv:"height"`
	Output string `csv:"output"`
}

func (job conversionJob) run(opts bumpx.Options) error {
	normal, err := loadImage(job.Normal, raster.RGBA)
	if err != nil {
		return fmt.Errorf("loading normal map: %w", err)
	}
	gloss := loadOptionalImage(job.Gloss, "gloss", raster.Mono)
	height := loadOptionalImage(job.Height, "height", raster.Mono)

	logging.Logln(fmt.Sprintf("Converting %s (%dx%d)", job.Normal, normal.Width, normal.Height))

	result, err := bumpx.Produce(normal, gloss, height, opts)
	if err != nil {
		return err
	}
	for _, warning := range result.Warnings {
		logging.Logln("warning: " + string(warning))
	}

	bumpPath, bumpXPath := outputPaths(job.Normal, job.Output)
	if err := bumpx.WriteTextures(result, bumpPath, bumpXPath); err != nil {
		return err
	}
	logging.Logln("Wrote " + bumpPath)
	logging.Logln("Wrote " + bumpXPath)
	return nil
}

func loadImage(path string, channels int) (*raster.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return raster.Decode(f, channels)
}

// loadOptionalImage loads an auxiliary map, degrading to an empty raster on
// any failure. Auxiliary maps are optional, so a bad path only warns.
func loadOptionalImage(path, name string, channels int) *raster.Buffer {
	if path == "" {
		return &raster.Buffer{}
	}
	buf, err := loadImage(path, channels)
	if err != nil {
		logging.Logln(fmt.Sprintf("warning: ignoring %s map: %s", name, err.Error()))
		return &raster.Buffer{}
	}
	return buf
}

// outputPaths derives the two texture paths. With no output argument the
// textures land next to the source; an output naming a directory keeps the
// source stem; anything else is used as the stem directly.
func outputPaths(normalPath, output string) (string, string) {
	stem := strings.TrimSuffix(filepath.Base(normalPath), filepath.Ext(normalPath))

	var base string
	switch info, err := os.Stat(output); {
	case output == "":
		base = filepath.Join(filepath.Dir(normalPath), stem)
	case err == nil && info.IsDir():
		base = filepath.Join(output, stem)
	default:
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}
	return base + bumpSuffix, base + bumpXSuffix
}

func infoCommand(context *cli.Context) error {
	if context.NArg() != 1 {
		return cli.Exit("expected exactly one DDS file argument", 1)
	}
	path := context.Args().First()

	f, err := os.Open(path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer f.Close()

	hdr, err := dds.ReadHeader(f)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Printf("%s:\n", path)
	fmt.Printf("  dimensions: %dx%d\n", hdr.Width, hdr.Height)
	fmt.Printf("  mip levels: %d\n", hdr.MipMapCount)
	fmt.Printf("  format:     %s\n", dds.FourCCString(hdr.FourCC))
	return nil
}

func batchCommand(context *cli.Context) error {
	manifestPath := context.String("manifest")
	if manifestPath == "" {
		return cli.Exit("a manifest is required (--manifest)", 1)
	}
	opts, err := optionsFromFlags(context)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	f, err := os.Open(manifestPath)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer f.Close()

	var jobs []conversionJob
	if err := gocsv.UnmarshalFile(f, &jobs); err != nil {
		return cli.Exit(fmt.Sprintf("parsing manifest: %s", err.Error()), 1)
	}

	var failures error
	for i, job := range jobs {
		logging.Logln(fmt.Sprintf("[%d/%d] %s", i+1, len(jobs), job.Normal))
		if err := job.run(opts); err != nil {
			logging.Logln(fmt.Sprintf("error: %s: %s", job.Normal, err.Error()))
			failures = multierror.Append(failures, fmt.Errorf("%s: %w", job.Normal, err))
		}
	}
	if failures != nil {
		return cli.Exit(failures.Error(), 1)
	}
	logging.Logln(fmt.Sprintf("Converted %d file(s)", len(jobs)))
	return nil
}
