// Package mscz shells out to an external notation editor to convert a
// proprietary score file (.mscz and similar) into the MusicXML the
// score package understands, the same external-tool boundary the
// spec's library assumption describes.
package mscz

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
)

// DefaultTool is the external notation editor binary invoked when the
// caller does not override it.
const DefaultTool = "mscore"

// Converter shells out to a notation editor binary to turn a score
// file into MusicXML.
type Converter struct {
	// Tool is the executable name or path to invoke. Defaults to
	// DefaultTool when empty.
	Tool string
}

// Convert runs the configured tool against inputPath, producing a
// MusicXML file in a temp directory and returning its path. The
// caller is responsible for removing that directory by calling the
// returned cleanup function when done.
func (c Converter) Convert(inputPath string) (outputPath string, cleanup func() error, err error) {
	tool := c.Tool
	if tool == "" {
		tool = DefaultTool
	}

	tempDir, err := os.MkdirTemp("", "satbsplit-mscz-")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp directory: %w", err)
	}
	cleanup = func() error { return os.RemoveAll(tempDir) }

	outputPath = filepath.Join(tempDir, "converted.musicxml")

	log.Printf("converting %s to MusicXML via %s", inputPath, tool)
	cmd := exec.Command(tool, "-o", outputPath, inputPath)
	if output, runErr := cmd.CombinedOutput(); runErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("%s failed: %w: %s", tool, runErr, string(output))
	}

	if _, statErr := os.Stat(outputPath); statErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("%s did not produce %s: %w", tool, outputPath, statErr)
	}

	return outputPath, cleanup, nil
}
