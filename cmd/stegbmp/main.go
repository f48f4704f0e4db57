package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"stegbmp/pkg/container"
	"stegbmp/pkg/embedder"
	bmpembedder "stegbmp/pkg/embedder/image/bmp"
	"stegbmp/pkg/filehandler"
)

const defaultStegoName = "stego.bmp"

var (
	// Color printers
	infoColor    = color.New(color.FgBlue).SprintFunc()
	successColor = color.New(color.FgGreen).SprintFunc()
	errorColor   = color.New(color.FgRed).SprintFunc()
)

func printInfo(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", infoColor("[*]"), fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", successColor("[+]"), fmt.Sprintf(format, args...))
}

func printError(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", errorColor("[-]"), fmt.Sprintf(format, args...))
}

func usage() {
	prog := filepath.Base(os.Args[0])
	fmt.Println("Usage:")
	fmt.Printf("  %s -e <cover.bmp> <secret-file> [stego.bmp]   hide a secret file\n", prog)
	fmt.Printf("  %s -d <stego.bmp> [output-name]               recover a hidden file\n", prog)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	// Create registry and register embedders
	registry := embedder.NewRegistry()
	registry.Register(bmpembedder.NewBMPEmbedder())

	var err error
	switch strings.ToLower(os.Args[1]) {
	case "-e":
		err = runEmbed(registry, os.Args[2:])
	case "-d":
		err = runExtract(registry, os.Args[2:])
	default:
		printError("unsupported operation %q", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}

// lookupEmbedder detects the file's format and picks a registered embedder
// for it.
func lookupEmbedder(registry *embedder.Registry, path string) (embedder.FileEmbedder, error) {
	format, err := filehandler.DetectFileFormat(path)
	if err != nil {
		return nil, err
	}
	embedders := registry.GetEmbeddersForFormat(format)
	if len(embedders) == 0 {
		return nil, fmt.Errorf("no embedder available for format %q", format)
	}
	return embedders[0], nil
}

func runEmbed(registry *embedder.Registry, args []string) error {
	if len(args) < 2 {
		usage()
		return errors.New("embed mode needs a cover image and a secret file")
	}
	coverPath, secretPath := args[0], args[1]

	stegoPath := defaultStegoName
	if len(args) >= 3 {
		stegoPath = args[2]
	}
	if !filehandler.IsImageFile(coverPath) {
		return fmt.Errorf("cover image %s should be a .bmp file", coverPath)
	}
	if !filehandler.IsImageFile(stegoPath) {
		return fmt.Errorf("stego image %s should be a .bmp file", stegoPath)
	}

	emb, err := lookupEmbedder(registry, coverPath)
	if err != nil {
		return err
	}

	printInfo("Hiding %s inside %s using %s", secretPath, coverPath, emb.Name())
	result, err := emb.Embed(coverPath, secretPath, embedder.EmbedOptions{
		StegoPath: stegoPath,
	})
	if err != nil {
		if errors.Is(err, container.ErrInsufficientCapacity) {
			return fmt.Errorf("%v (cover image %s)", err, coverPath)
		}
		return err
	}

	printInfo("Embedded %d bytes (%s) using %d of %d pixel bytes",
		result.SecretSize, result.Extension, result.CarrierBytesUsed, result.CoverCapacity)
	printSuccess("Wrote %s in %v", result.StegoFile, result.Duration)
	return nil
}

func runExtract(registry *embedder.Registry, args []string) error {
	if len(args) < 1 {
		usage()
		return errors.New("extract mode needs a stego image")
	}
	stegoPath := args[0]

	outputBase := ""
	if len(args) >= 2 {
		outputBase = args[1]
	}
	if !filehandler.IsImageFile(stegoPath) {
		return fmt.Errorf("stego image %s should be a .bmp file", stegoPath)
	}

	emb, err := lookupEmbedder(registry, stegoPath)
	if err != nil {
		return err
	}

	printInfo("Recovering hidden file from %s using %s", stegoPath, emb.Name())
	result, err := emb.Extract(stegoPath, embedder.ExtractOptions{
		OutputBase: outputBase,
	})
	if err != nil {
		if errors.Is(err, container.ErrNotStegoImage) {
			return fmt.Errorf("%v (%s carries no hidden data)", err, stegoPath)
		}
		return err
	}

	printInfo("Recovered %d bytes with extension %s", result.PayloadSize, result.Extension)
	printSuccess("Wrote %s in %v", result.OutputFile, result.Duration)
	return nil
}
