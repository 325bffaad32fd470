package glossfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// manifStack is for two reasons ->
// * detect circular deps (not an error, but we need to know to avoid them)
// * avoid infinite recursion (allow up to MaxManifestRecursionDepth levels)
//
// Returnes ErrManifestEmpty if and only if the first manifest in the stack is
// empty, otherwise it is not an error.
func recursiveUnmarshalResource(path string, manifStack []string) (data topLevelGlossary, err error) {
	path = filepath.Clean(path)

	fileData, loadErr := os.ReadFile(path)
	if loadErr != nil {
		return topLevelGlossary{}, fmt.Errorf("%q: reading from disk: %w", path, loadErr)
	}

	fileInfo, err := ScanFileInfo(fileData)
	if err != nil {
		return topLevelGlossary{}, fmt.Errorf("%q: detecting file type: %w", path, err)
	}

	if strings.ToUpper(fileInfo.Format) != "TUNA" {
		return topLevelGlossary{}, fmt.Errorf("%q: file does not have a 'format = \"TUNA\"' entry", path)
	}

	switch strings.ToUpper(fileInfo.Type) {
	case "GLOSSARY":
		unmarshaled, err := unmarshalGlossary(fileData)
		if err != nil {
			return unmarshaled, fmt.Errorf("glossary file %q: %w", path, err)
		}
		return unmarshaled, nil
	case "MANIFEST":
		if len(manifStack) >= MaxManifestRecursionDepth {
			return topLevelGlossary{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestStackOverflow)
		}
		for i := range manifStack {
			if manifStack[i] == path {
				return topLevelGlossary{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestCircularRef)
			}
		}

		manif, err := unmarshalManifest(fileData)
		if err != nil {
			return topLevelGlossary{}, fmt.Errorf("manifest file %q: %w", path, err)
		}

		// an empty manifest is only a problem for the very first one
		if len(manif.Files) < 1 && len(manifStack) == 0 {
			return topLevelGlossary{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestEmpty)
		}

		combined := topLevelGlossary{}

		manifSubStack := make([]string, len(manifStack)+1)
		copy(manifSubStack, manifStack)
		manifSubStack[len(manifSubStack)-1] = path

		manifDir := filepath.Dir(path)

		processedFiles := 0
		for _, manifRelPath := range manif.Files {
			includedFilePath := filepath.Join(manifDir, manifRelPath)

			included, err := recursiveUnmarshalResource(includedFilePath, manifSubStack)
			if err != nil {
				// a circular reference is skipped rather than failing the load
				if errors.Is(err, ErrManifestCircularRef) {
					continue
				}

				return topLevelGlossary{}, fmt.Errorf("in file referred to by manifest file:\n    %q\n%w", path, err)
			}

			if !combined.merge(included) {
				return topLevelGlossary{}, fmt.Errorf("glossary file %q: duplicate settings; settings have already been defined by another file", includedFilePath)
			}
			processedFiles++
		}

		if len(manifStack) == 0 && processedFiles == 0 {
			return combined, fmt.Errorf("manifest file %q: %w", path, ErrManifestEmpty)
		}
		return combined, nil

	default:
		return topLevelGlossary{}, fmt.Errorf("%q: file does not have 'type = ' entry set to either \"GLOSSARY\" or \"MANIFEST\"", path)
	}
}

// unmarshalGlossary unmarshals glossary data from the given bytes. It does not
// check the entries.
func unmarshalGlossary(tomlData []byte) (topLevelGlossary, error) {
	var tg topLevelGlossary
	if tomlErr := toml.Unmarshal(tomlData, &tg); tomlErr != nil {
		return tg, tomlErr
	}

	if strings.ToUpper(tg.Format) != "TUNA" {
		return tg, fmt.Errorf("in header: 'format' key must exist and be set to 'TUNA'")
	}
	if strings.ToUpper(tg.Type) != "GLOSSARY" {
		return tg, fmt.Errorf("in header: 'type' must exist and be set to 'GLOSSARY'")
	}

	return tg, nil
}

func unmarshalManifest(tomlData []byte) (topLevelManifest, error) {
	var manif topLevelManifest
	if tomlErr := toml.Unmarshal(tomlData, &manif); tomlErr != nil {
		return manif, tomlErr
	}

	if strings.ToUpper(manif.Format) != "TUNA" {
		return manif, fmt.Errorf("in header: 'format' key must exist and be set to 'TUNA'")
	}
	if strings.ToUpper(manif.Type) != "MANIFEST" {
		return manif, fmt.Errorf("in header: 'type' must exist and be set to 'MANIFEST'")
	}

	// drop blank entries
	files := manif.Files[:0]
	for _, f := range manif.Files {
		if strings.TrimSpace(f) != "" {
			files = append(files, f)
		}
	}
	manif.Files = files

	return manif, nil
}
