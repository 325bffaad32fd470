// Package glossfile has functions for loading glossaries from TUNA glossary
// files, a TOML-based format used to declare the words a game understands and
// the actions its verbs and commands perform.
//
// A glossary file starts with a header giving its format and type:
//
//	format = "TUNA"
//	type = "GLOSSARY"
//
// A file of type "MANIFEST" instead lists other files, relative to itself,
// whose contents are combined:
//
//	format = "TUNA"
//	type = "MANIFEST"
//	files = ["words.tqg", "verbs.tqg"]
package glossfile

import (
	"errors"
	"fmt"
	"os"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/tqinterp/internal/glossary"
	"github.com/dekarrin/tqinterp/internal/node"
)

const MaxManifestRecursionDepth = 32

var (
	// ErrManifestEmpty is the error returned when a manifest file is read
	// successfully but specifies no additional files to load.
	ErrManifestEmpty = errors.New("does not list any valid files to include")

	// ErrManifestStackOverflow is the error returned when the recusion level of
	// MaxManifestRecursionDepth is reached and an additional Manifest is then
	// specified, which would cause recursion to go deeper.
	ErrManifestStackOverflow = errors.New("too many manifests deep")

	// ErrManifestCircularRef is the error returned when a manifest specifies any
	// series of files that with their own manifests refer back to the original
	// manifest, and therefore cannot be followed.
	ErrManifestCircularRef = errors.New("manifest inclusion chain refers back to itself")
)

// Binder supplies the callbacks for the actions named in a glossary file.
// action is the name given in the file, or the verb or command ID if none was
// given. say is the narration template given in the file; it may be empty.
//
// A Binder returns an error if it cannot provide an action for the name.
type Binder interface {
	BindUsage(verbID, action, say string) (node.Action, error)
	BindCommand(commandID, action, say string) (node.CommandAction, error)
}

// FileInfo contains the essential information all TUNA format files must
// contain. It can be obtained from a file by reading it into memory and calling
// ScanFileInfo on the bytes.
type FileInfo struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

// Load loads a glossary from the given file. The file's type is auto-detected:
// it can either be "GLOSSARY" type or "MANIFEST" type; if it's manifest type,
// the files listed in it relative to it will also be loaded, recursively. All
// files included are combined into one single set of data before any of it is
// registered.
//
// Every action named in the data is bound with binder.
func Load(path string, binder Binder) (*glossary.Glossary, error) {
	unmarshaled, err := recursiveUnmarshalResource(path, nil)
	if err != nil {
		return nil, err
	}

	return buildGlossary(unmarshaled, binder)
}

// LoadBytes loads a glossary from the contents of a single "GLOSSARY" type
// file. Manifests are not supported as there is no location to resolve
// included files against.
func LoadBytes(data []byte, binder Binder) (*glossary.Glossary, error) {
	unmarshaled, err := unmarshalGlossary(data)
	if err != nil {
		return nil, err
	}

	return buildGlossary(unmarshaled, binder)
}

// LoadManifestFile loads manifest data from a TUNA file.
func LoadManifestFile(path string) (files []string, err error) {
	manifestData, loadErr := os.ReadFile(path)
	if loadErr != nil {
		return nil, loadErr
	}

	unmarshaled, err := unmarshalManifest(manifestData)
	if err != nil {
		return nil, err
	}
	return unmarshaled.Files, nil
}

// ScanFileInfo takes the given data bytes and attempts to read the TUNA format
// common header info from it. The bytes are read up to the first instance of a
// table definition header and those bytes are parsed for the info. If there is
// an error reading the info, returns a non-nil error.
func ScanFileInfo(data []byte) (FileInfo, error) {
	// only run the toml parser up to the end of the top-lev table
	var topLevelEnd int = -1
	onNewLine := true
	for b := range data {
		if onNewLine {
			if data[b] == '[' {
				topLevelEnd = b
				break
			}
		}

		if data[b] == '\n' {
			onNewLine = true
		} else if !unicode.IsSpace(rune(data[b])) {
			onNewLine = false
		}
	}

	scanData := data
	if topLevelEnd != -1 {
		scanData = data[:topLevelEnd]
	}

	var info FileInfo
	err := toml.Unmarshal(scanData, &info)
	if err != nil {
		return info, fmt.Errorf("reading header: %w", err)
	}
	return info, nil
}
