package main

import (
	"fmt"
	"os"
	"strings"

	"glscene/internal/asset"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

var faceLabels = []string{"+x", "-x", "+y", "-y", "+z", "-z"}

// List the resolved path and size of every skybox face without touching the
// GPU. Faces that fail to resolve or decode are reported in the table and
// make the command fail.
func Faces(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	paths := asset.NewSearchPath(strings.Join(cfg.Assets.SearchPath, string(os.PathListSeparator)))
	decoder := asset.ImageDecoder{}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Set", "Face", "File", "Path", "Size"})

	failed := 0
	for _, set := range []struct {
		name  string
		files []string
	}{{"day", cfg.Skybox.Day}, {"night", cfg.Skybox.Night}} {
		for i, name := range set.files {
			path, size := describeFace(paths, decoder, name, &failed)
			table.Append([]string{set.name, faceLabels[i], name, path, size})
		}
	}
	table.Render()

	if failed > 0 {
		return fmt.Errorf("%d face file(s) could not be loaded", failed)
	}
	return nil
}

func describeFace(paths *asset.SearchPath, decoder asset.Decoder, name string, failed *int) (string, string) {
	path, err := paths.Resolve(name)
	if err != nil {
		*failed++
		return "-", "not found"
	}
	img, err := decoder.Decode(path, asset.Channels)
	if err != nil {
		*failed++
		logger.Warning(err)
		return path, "decode error"
	}
	defer img.Free()
	return path, img.String()
}
