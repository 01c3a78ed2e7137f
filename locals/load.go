package locals

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/vmihailenco/msgpack/v5"
)

type decodeFunc func(data []byte, out *map[string]any) error

// decoders maps lower-case file extensions to decoders.
// Files with any other extension are read as workspace
// status files.
var decoders = map[string]decodeFunc{
	".json":    decodeJSON,
	".yaml":    decodeYAML,
	".yml":     decodeYAML,
	".toml":    decodeTOML,
	".msgpack": decodeMsgpack,
	".mpk":     decodeMsgpack,
	".cbor":    decodeCBOR,
}

var cborMode = mustCBORMode()

func mustCBORMode() cbor.DecMode {
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}

	return dm
}

// Load reads a variable map from path, choosing the
// format from its extension.
func Load(path string) (map[string]any, error) {
	const errCtx = "loading locals"

	data, err := os.ReadFile(path) //nolint:gosec // paths from CLI flags
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	decode, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return parseStamps(data), nil
	}

	var vars map[string]any
	if err := decode(data, &vars); err != nil {
		return nil, fmt.Errorf(
			"%s: decoding %s: %w", errCtx, path, err,
		)
	}

	if vars == nil {
		vars = make(map[string]any)
	}

	return vars, nil
}

// LoadAll loads every file in paths and merges them in
// order; later files override earlier ones.
func LoadAll(paths []string) (map[string]any, error) {
	vars := make(map[string]any)

	for _, pa := range paths {
		loaded, err := Load(pa)
		if err != nil {
			return nil, err
		}

		vars = Merge(vars, loaded)
	}

	return vars, nil
}

// parseStamps reads a workspace status file. Each line
// is "KEY VALUE" with the first space as delimiter. Lines
// without a space are silently skipped.
func parseStamps(data []byte) map[string]any {
	stamps := make(map[string]any)

	for _, line := range strings.Split(string(data), "\n") {
		parts := strings.SplitN(
			strings.TrimSuffix(line, "\r"), " ", 2,
		)
		if len(parts) == 2 {
			stamps[parts[0]] = parts[1]
		}
	}

	return stamps
}

func decodeJSON(data []byte, out *map[string]any) error {
	return json.Unmarshal(data, out)
}

func decodeYAML(data []byte, out *map[string]any) error {
	return yaml.Unmarshal(data, out)
}

func decodeTOML(data []byte, out *map[string]any) error {
	return toml.Unmarshal(data, out)
}

func decodeMsgpack(data []byte, out *map[string]any) error {
	return msgpack.Unmarshal(data, out)
}

func decodeCBOR(data []byte, out *map[string]any) error {
	return cborMode.Unmarshal(data, out)
}
