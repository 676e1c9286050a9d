// asset2pak packs asset files into a pak archive that teapot can load with
// -pak and -asset.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/taigrr/teapot/pkg/models"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "asset2pak - pack assets for teapot\n\n")
		fmt.Fprintf(os.Stderr, "Usage: asset2pak <out.pak> <asset> [asset...]\n")
	}
	flag.Parse()

	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := pack(flag.Arg(0), flag.Args()[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// pack reads every input and writes them to outPath under their base
// names, typed by extension.
func pack(outPath string, inputs []string, report io.Writer) error {
	files := make([]models.PakFile, 0, len(inputs))
	seen := make(map[string]string, len(inputs))
	for _, in := range inputs {
		data, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("read asset: %w", err)
		}
		name := filepath.Base(in)
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%s and %s both pack as %q", prev, in, name)
		}
		seen[name] = in

		f := models.PakFile{Name: name, Type: models.AssetTypeFor(name), Data: data}
		files = append(files, f)
		fmt.Fprintf(report, "Packed asset: %s (%s), size: %d bytes\n", f.Name, f.Type, len(f.Data))
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create pak: %w", err)
	}
	if err := models.WritePak(out, files); err != nil {
		out.Close()
		return fmt.Errorf("write pak: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close pak: %w", err)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return err
	}
	slog.Info("pak written", "path", outPath, "assets", len(files), "bytes", info.Size())
	return nil
}
