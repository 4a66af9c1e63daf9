// bmplab is an interactive editor for uncompressed 8-bit and 24-bit BMP
// images: load, inspect, filter, equalize, save.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/bmplab/bmplab/internal/adjustments"
	"github.com/bmplab/bmplab/internal/bmp"
	"github.com/bmplab/bmplab/internal/filters"
	"github.com/bmplab/bmplab/internal/histogram"
	"github.com/bmplab/bmplab/internal/preview"
)

type config struct {
	autoPreview  bool
	previewWidth int
	outSuffix    string
}

// loadConfig reads the optional .env file and the BMPLAB_* environment
// variables controlling preview and save defaults.
func loadConfig() config {
	// Ignore error if .env not present; it's optional
	_ = godotenv.Load()

	cfg := config{
		autoPreview:  true,
		previewWidth: preview.DefaultWidth,
		outSuffix:    "_out",
	}
	if v := os.Getenv("BMPLAB_PREVIEW"); v == "0" || strings.EqualFold(v, "false") {
		cfg.autoPreview = false
	}
	if v := os.Getenv("BMPLAB_PREVIEW_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.previewWidth = n
		}
	}
	if v := os.Getenv("BMPLAB_OUT_SUFFIX"); v != "" {
		cfg.outSuffix = v
	}
	return cfg
}

func usage() {
	fmt.Println("Commands available:")
	fmt.Println("  o  - open a BMP image")
	fmt.Println("  i  - show image info")
	fmt.Println("  p  - preview image in terminal")
	fmt.Println("  n  - negative")
	fmt.Println("  b  - adjust brightness")
	fmt.Println("  t  - threshold (8-bit only)")
	fmt.Println("  g  - grayscale (24-bit only)")
	fmt.Println("  c  - adjust contrast")
	fmt.Println("  k  - isolate a color channel (24-bit only)")
	fmt.Println("  x  - crop (24-bit only)")
	fmt.Println("  f  - apply convolution filter")
	fmt.Println("  e  - equalize histogram")
	fmt.Println("  s  - save current image")
	fmt.Println("  h  - show this help message")
	fmt.Println("  q  - quit")
}

func main() {
	cfg := loadConfig()
	in := bufio.NewScanner(os.Stdin)

	var img bmp.Image
	var srcPath string

	if len(os.Args) >= 2 {
		img, srcPath = openImage(os.Args[1], cfg)
	}

	fmt.Println("bmplab - BMP image editor")
	usage()

	for {
		fmt.Print("> ")
		if !in.Scan() {
			return
		}
		cmd := strings.TrimSpace(strings.ToLower(in.Text()))

		switch cmd {
		case "o":
			path := promptString(in, "Enter image file path (BMP): ")
			img, srcPath = openImage(path, cfg)

		case "i":
			img.PrintInfo()

		case "p":
			report(preview.Print(img, cfg.previewWidth))

		case "n":
			if !requireImage(img) {
				continue
			}
			if report(filters.Negative(img.Buffer())) {
				fmt.Println("Negative filter applied.")
			}

		case "b":
			if !requireImage(img) {
				continue
			}
			delta := promptInt(in, "Brightness delta (may be negative): ")
			if report(filters.Brightness(img.Buffer(), delta)) {
				fmt.Printf("Brightness adjusted by %d.\n", delta)
			}

		case "t":
			if !requireImage(img) {
				continue
			}
			value := promptInt(in, "Threshold value [0-255]: ")
			if report(filters.Threshold(img.Buffer(), value)) {
				fmt.Println("Threshold filter applied.")
			}

		case "g":
			if !requireImage(img) {
				continue
			}
			if report(filters.Grayscale(img.Buffer())) {
				fmt.Println("Grayscale filter applied.")
			}

		case "c":
			if !requireImage(img) {
				continue
			}
			factor := promptFloat(in, "Contrast factor (>1 increases): ")
			if report(filters.Contrast(img.Buffer(), factor)) {
				fmt.Printf("Contrast adjusted by factor %g.\n", factor)
			}

		case "k":
			if !requireImage(img) {
				continue
			}
			channel := promptString(in, "Channel (red/green/blue): ")
			if report(filters.Isolate(img.Buffer(), channel)) {
				fmt.Printf("Isolated %s channel.\n", channel)
			}

		case "x":
			if img.Kind() != bmp.KindColor {
				fmt.Println("Crop is only supported for 24-bit images.")
				continue
			}
			x := promptInt(in, "Origin x: ")
			y := promptInt(in, "Origin y: ")
			w := promptInt(in, "Width: ")
			h := promptInt(in, "Height: ")
			if report(adjustments.Crop(img.Color, x, y, w, h)) {
				fmt.Printf("Cropped to %dx%d.\n", w, h)
			}

		case "f":
			if !requireImage(img) {
				continue
			}
			applyKernel(in, img)

		case "e":
			switch img.Kind() {
			case bmp.KindGray:
				if report(histogram.Equalize8(img.Gray)) {
					fmt.Println("Grayscale histogram equalization applied.")
				}
			case bmp.KindColor:
				if report(histogram.Equalize24(img.Color)) {
					fmt.Println("Color histogram equalization applied.")
				}
			default:
				fmt.Println("No image loaded.")
			}

		case "s":
			if !requireImage(img) {
				continue
			}
			saveImage(in, img, srcPath, cfg)

		case "h":
			usage()

		case "q":
			return

		case "":
			// Ignore empty input

		default:
			fmt.Printf("Unknown command %q, press h for help.\n", cmd)
		}
	}
}

func openImage(path string, cfg config) (bmp.Image, string) {
	img, err := bmp.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", path, err)
		return bmp.Image{}, ""
	}
	fmt.Printf("Loaded %s image from %s.\n", img.Kind(), path)
	if cfg.autoPreview {
		_ = preview.Print(img, cfg.previewWidth)
	}
	return img, path
}

func saveImage(in *bufio.Scanner, img bmp.Image, srcPath string, cfg config) {
	def := defaultSaveName(srcPath, cfg.outSuffix)
	path := promptString(in, fmt.Sprintf("Save file path (default %s): ", def))
	if path == "" {
		path = def
	}
	if err := img.Save(path); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save %s: %v\n", path, err)
		return
	}
	fmt.Printf("Image saved successfully to %s.\n", path)
}

// defaultSaveName inserts the suffix before the source file extension.
func defaultSaveName(srcPath, suffix string) string {
	if srcPath == "" {
		return "out.bmp"
	}
	ext := filepath.Ext(srcPath)
	return strings.TrimSuffix(srcPath, ext) + suffix + ext
}

func applyKernel(in *bufio.Scanner, img bmp.Image) {
	name := promptString(in, "Kernel (box/gaussian/sharpen/outline/emboss): ")
	kernel, ok := filters.PresetKernel(name)
	if !ok {
		fmt.Printf("Unknown kernel %q.\n", name)
		return
	}

	// Grayscale images keep their borders untouched; color images rewrite
	// borders by replicating edge pixels.
	edges := filters.EdgeReplicate
	if img.Kind() == bmp.KindGray {
		edges = filters.EdgeSkip
	}
	if report(filters.Convolve(img.Buffer(), kernel, edges)) {
		fmt.Printf("Filter %q applied.\n", name)
	}
}

func requireImage(img bmp.Image) bool {
	if img.Kind() == bmp.KindNone {
		fmt.Println("No image loaded.")
		return false
	}
	return true
}

// report prints err for the user and tells the caller whether the operation
// succeeded.
func report(err error) bool {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return false
	}
	return true
}

func promptString(in *bufio.Scanner, prompt string) string {
	fmt.Print(prompt)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

func promptInt(in *bufio.Scanner, prompt string) int {
	for {
		s := promptString(in, prompt)
		v, err := strconv.Atoi(s)
		if err == nil {
			return v
		}
		fmt.Println("Invalid input. Please enter an integer.")
	}
}

func promptFloat(in *bufio.Scanner, prompt string) float64 {
	for {
		s := promptString(in, prompt)
		v, err := strconv.ParseFloat(s, 64)
		if err == nil {
			return v
		}
		fmt.Println("Invalid input. Please enter a number.")
	}
}
