// Command tileserve is a thin CLI harness exercising the pixel pipeline
// end-to-end against a single local file-backed pyramid level: it builds
// a Pyramid/Level straight from flags (no JSON descriptor, out of scope
// per spec.md §1), resolves one request bbox/resolution/CRS/style
// through internal/pipeline, and writes the encoded result to a file.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/rok4/pyramid-core/internal/bilenc"
	"github.com/rok4/pyramid-core/internal/cache"
	"github.com/rok4/pyramid-core/internal/geom"
	"github.com/rok4/pyramid-core/internal/pipeline"
	"github.com/rok4/pyramid-core/internal/pyramid"
	"github.com/rok4/pyramid-core/internal/pyramidbuild"
	"github.com/rok4/pyramid-core/internal/raster"
	"github.com/rok4/pyramid-core/internal/storage"
	"github.com/rok4/pyramid-core/internal/style"
	"github.com/rok4/pyramid-core/internal/tiffenc"
	"github.com/rok4/pyramid-core/internal/tms"
)

// Set via -ldflags at build time.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	var (
		showVersion bool

		dataDir                   string
		levelID                   string
		pyramidCRS                string
		resolution                float64
		originX, originY          float64
		tileWidth, tileHeight     int
		matrixWidth, matrixHeight int
		sampleFormat              string
		channels                  int
		compression               string
		nodata                    string

		reqBBox    string
		reqCRS     string
		reqWidth   int
		reqHeight  int
		kernelName string

		paletteCSV   string
		paletteAlpha bool
		hillshade    string

		outFormat string
		outFile   string
		geotiff   bool

		warmup      bool
		concurrency int
		verbose     bool
	)

	flag.StringVar(&dataDir, "dir", "", "Directory holding the level's slab files")
	flag.StringVar(&levelID, "level", "0", "Level identifier")
	flag.StringVar(&pyramidCRS, "pyramid-crs", "EPSG:3857", "CRS the pyramid's tile matrix is expressed in")
	flag.Float64Var(&resolution, "resolution", 1, "Level resolution, CRS units per pixel")
	flag.Float64Var(&originX, "origin-x", 0, "Tile matrix origin X (top-left)")
	flag.Float64Var(&originY, "origin-y", 0, "Tile matrix origin Y (top-left)")
	flag.IntVar(&tileWidth, "tile-width", 256, "Tile width in pixels")
	flag.IntVar(&tileHeight, "tile-height", 256, "Tile height in pixels")
	flag.IntVar(&matrixWidth, "matrix-width", 1, "Matrix width in tiles")
	flag.IntVar(&matrixHeight, "matrix-height", 1, "Matrix height in tiles")
	flag.StringVar(&sampleFormat, "sample-format", "uint8", "Pyramid sample format: uint8, uint16, float32")
	flag.IntVar(&channels, "channels", 1, "Pyramid channel count")
	flag.StringVar(&compression, "compression", "raw", "Tile compression: raw, lzw, deflate, packbits")
	flag.StringVar(&nodata, "nodata", "", "Comma-separated per-channel nodata values")

	flag.StringVar(&reqBBox, "bbox", "", "Request bbox: xmin,ymin,xmax,ymax (required)")
	flag.StringVar(&reqCRS, "req-crs", "EPSG:3857", "Request CRS")
	flag.IntVar(&reqWidth, "width", 256, "Output image width")
	flag.IntVar(&reqHeight, "height", 256, "Output image height")
	flag.StringVar(&kernelName, "kernel", "nearest", "Resampling kernel: nearest, linear, cubic, lanczos2, lanczos3, lanczos4")

	flag.StringVar(&paletteCSV, "palette", "", "Palette stops as value:r:g:b[:a],... (optional)")
	flag.BoolVar(&paletteAlpha, "palette-alpha", false, "Palette output carries an alpha channel")
	flag.StringVar(&hillshade, "hillshade", "", "Hillshade as zenith:azimuth:zfactor[:shadows] (optional, mutually exclusive with -palette)")

	flag.StringVar(&outFormat, "format", "tiff", "Output format: tiff, bil")
	flag.StringVar(&outFile, "out", "", "Output file path (required)")
	flag.BoolVar(&geotiff, "geotiff", true, "Splice GeoTIFF tags into the TIFF output")

	flag.BoolVar(&warmup, "warmup", false, "Warm the slab-index cache before serving the request")
	flag.IntVar(&concurrency, "concurrency", runtime.NumCPU(), "Warmup worker concurrency")
	flag.BoolVar(&verbose, "verbose", false, "Verbose progress output")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tileserve -dir <slabs> -bbox <xmin,ymin,xmax,ymax> -out <file> [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Resolve one tile/image request against a local file-backed pyramid level.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("tileserve %s (commit %s, built %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	if dataDir == "" || reqBBox == "" || outFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(requestOptions{
		dataDir: dataDir, levelID: levelID, pyramidCRS: pyramidCRS,
		resolution: resolution, originX: originX, originY: originY,
		tileWidth: tileWidth, tileHeight: tileHeight,
		matrixWidth: matrixWidth, matrixHeight: matrixHeight,
		sampleFormat: sampleFormat, channels: channels, compression: compression, nodata: nodata,
		reqBBox: reqBBox, reqCRS: reqCRS, reqWidth: reqWidth, reqHeight: reqHeight, kernelName: kernelName,
		paletteCSV: paletteCSV, paletteAlpha: paletteAlpha, hillshade: hillshade,
		outFormat: outFormat, outFile: outFile, geotiff: geotiff,
		warmup: warmup, concurrency: concurrency, verbose: verbose,
	}); err != nil {
		log.Fatalf("tileserve: %v", err)
	}
}

type requestOptions struct {
	dataDir, levelID, pyramidCRS                         string
	resolution, originX, originY                         float64
	tileWidth, tileHeight, matrixWidth, matrixHeight      int
	sampleFormat                                         string
	channels                                              int
	compression, nodata                                  string
	reqBBox, reqCRS                                       string
	reqWidth, reqHeight                                   int
	kernelName                                            string
	paletteCSV, hillshade                                 string
	paletteAlpha                                          bool
	outFormat, outFile                                    string
	geotiff                                               bool
	warmup                                                bool
	concurrency                                           int
	verbose                                               bool
}

func run(opt requestOptions) error {
	nodataVals, err := parseFloats(opt.nodata)
	if err != nil {
		return fmt.Errorf("parsing -nodata: %w", err)
	}

	fc := storage.NewFileContext(opt.dataDir)
	matrix := tms.TileMatrix{
		ID: opt.levelID, Resolution: opt.resolution, X0: opt.originX, Y0: opt.originY,
		TileWidth: opt.tileWidth, TileHeight: opt.tileHeight,
		MatrixWidth: uint32(opt.matrixWidth), MatrixHeight: uint32(opt.matrixHeight),
	}
	set := tms.New("tileserve", "", opt.pyramidCRS, []tms.TileMatrix{matrix})

	level := &pyramid.Level{
		Matrix:         matrix,
		Limits:         tms.TileLimits{MinCol: 0, MaxCol: uint32(opt.matrixWidth) - 1, MinRow: 0, MaxRow: uint32(opt.matrixHeight) - 1},
		TilesPerWidth:  opt.matrixWidth,
		TilesPerHeight: opt.matrixHeight,
		Context:        fc,
	}
	format := pyramid.PixelFormat{SampleFormat: opt.sampleFormat, Channels: opt.channels, Compression: opt.compression, NoData: nodataVals}
	pyr := pyramid.New(set, format, fc)
	if err := pyr.AddLevel(level); err != nil {
		return err
	}

	idx := cache.New(4096, 0)
	ctx := context.Background()

	if opt.warmup {
		stats, err := pyramidbuild.Warmup(ctx, level, idx, format, pyramidbuild.Config{Concurrency: opt.concurrency, Verbose: opt.verbose})
		if err != nil {
			return fmt.Errorf("warming cache: %w", err)
		}
		if opt.verbose {
			log.Printf("warmed %d slabs (%d errors)", stats.SlabCount, stats.ErrorCount)
		}
	}

	bbox, err := parseBBox(opt.reqBBox, opt.reqCRS)
	if err != nil {
		return fmt.Errorf("parsing -bbox: %w", err)
	}
	kernel, err := parseKernel(opt.kernelName)
	if err != nil {
		return err
	}
	sty, err := buildStyle(opt.paletteCSV, opt.paletteAlpha, opt.hillshade)
	if err != nil {
		return err
	}

	req := pipeline.Request{
		BBox: bbox, CRSCode: opt.reqCRS, Width: opt.reqWidth, Height: opt.reqHeight,
		Kernel: kernel, Style: sty,
	}

	img, err := pipeline.Build(ctx, pyr, idx, req)
	if err != nil {
		return fmt.Errorf("building response image: %w", err)
	}

	return encodeTo(opt, img, format, bbox)
}

func encodeTo(opt requestOptions, img raster.Image, format pyramid.PixelFormat, bbox geom.Box[float64]) error {
	f, err := os.Create(opt.outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	switch opt.outFormat {
	case "bil":
		enc, err := bilenc.NewEncoder(img)
		if err != nil {
			return err
		}
		_, err = io.Copy(f, enc)
		return err

	case "tiff":
		payload, err := readAllU8(img)
		if err != nil {
			return err
		}
		meta := tiffenc.ImageMeta{
			Width: img.Width(), Height: img.Height(), Channels: img.Channels(),
			ResolutionX: (bbox.XMax - bbox.XMin) / float64(img.Width()),
			ResolutionY: (bbox.YMax - bbox.YMin) / float64(img.Height()),
			BBoxXMin: bbox.XMin, BBoxYMax: bbox.YMax, CRSCode: opt.reqCRS,
		}
		enc, err := tiffenc.NewEncoder(meta, tiffenc.CodecRaw, payload, opt.geotiff, int(format.NoDataAt(0)))
		if err != nil {
			return err
		}
		_, err = io.Copy(f, enc)
		return err

	default:
		return fmt.Errorf("unknown output format %q", opt.outFormat)
	}
}

func readAllU8(img raster.Image) ([]byte, error) {
	stride := img.Width() * img.Channels()
	out := make([]byte, stride*img.Height())
	line := make([]byte, stride)
	for y := 0; y < img.Height(); y++ {
		if err := img.GetLineU8(line, y); err != nil {
			return nil, err
		}
		copy(out[y*stride:], line)
	}
	return out, nil
}

func parseFloats(csv string) ([]float64, error) {
	if csv == "" {
		return nil, nil
	}
	parts := strings.Split(csv, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseBBox(s, crsCode string) (geom.Box[float64], error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.Box[float64]{}, fmt.Errorf("bbox must have 4 comma-separated values, got %q", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Box[float64]{}, err
		}
		vals[i] = v
	}
	return geom.New(vals[0], vals[1], vals[2], vals[3], crsCode), nil
}

func parseKernel(s string) (raster.Kernel, error) {
	switch s {
	case "nearest":
		return raster.KernelNearest, nil
	case "linear":
		return raster.KernelLinear, nil
	case "cubic":
		return raster.KernelCubic, nil
	case "lanczos2":
		return raster.KernelLanczos2, nil
	case "lanczos3":
		return raster.KernelLanczos3, nil
	case "lanczos4":
		return raster.KernelLanczos4, nil
	default:
		return 0, fmt.Errorf("unknown kernel %q", s)
	}
}

// buildStyle parses the CLI's flat palette/hillshade flags into a
// style.Style. A real descriptor layer would load this from a style
// document; this CLI is deliberately thin, so it only needs enough of
// the grammar to exercise internal/pipeline's style branches.
func buildStyle(paletteCSV string, paletteAlpha bool, hillshadeCSV string) (*style.Style, error) {
	if paletteCSV == "" && hillshadeCSV == "" {
		return nil, nil
	}
	s := &style.Style{ID: "cli"}

	if paletteCSV != "" {
		pal := style.NewPalette(true, paletteAlpha)
		for _, stop := range strings.Split(paletteCSV, ",") {
			fields := strings.Split(stop, ":")
			if len(fields) < 4 {
				return nil, fmt.Errorf("palette stop %q must be value:r:g:b[:a]", stop)
			}
			nums := make([]float64, len(fields))
			for i, f := range fields {
				v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
				if err != nil {
					return nil, fmt.Errorf("palette stop %q: %w", stop, err)
				}
				nums[i] = v
			}
			a := 255.0
			if len(nums) > 4 {
				a = nums[4]
			}
			pal.AddStop(nums[0], uint8(nums[1]), uint8(nums[2]), uint8(nums[3]), uint8(a))
		}
		if err := pal.Finalize(); err != nil {
			return nil, err
		}
		s.Palette = pal
	}

	if hillshadeCSV != "" {
		fields := strings.Split(hillshadeCSV, ":")
		if len(fields) != 3 && len(fields) != 4 {
			return nil, fmt.Errorf("hillshade must be zenith:azimuth:zfactor[:shadows], got %q", hillshadeCSV)
		}
		zenith, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, err
		}
		azimuth, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, err
		}
		zFactor, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, err
		}
		shadows := false
		if len(fields) == 4 {
			shadows, err = strconv.ParseBool(fields[3])
			if err != nil {
				return nil, fmt.Errorf("hillshade shadows flag: %w", err)
			}
		}
		s.Hillshade = &style.HillshadeParams{ZenithDeg: zenith, AzimuthDeg: azimuth, ZFactor: zFactor, Shadows: shadows}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
