//go:build ignore

// Command schemagen emits a JSON Schema document for the query service's
// wire shapes, for editor tooling and client-side request validation. Run
// with `go run cmd/schemagen/main.go -out schema.json`.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"

	netpkg "worldnav/internal/net"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "output path for the JSON schema")
	flag.Parse()

	if outPath == "" {
		log.Fatal("schemagen: missing -out path")
	}

	schema, err := buildSchema()
	if err != nil {
		log.Fatalf("schemagen: %v", err)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("schemagen: marshal schema: %v", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		log.Fatalf("schemagen: create output dir: %v", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Fatalf("schemagen: write schema: %v", err)
	}
}

func buildSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	requestSchema := reflector.ReflectFromType(reflect.TypeOf(netpkg.PathRequest{}))
	if requestSchema == nil {
		return nil, fmt.Errorf("failed to reflect PathRequest schema")
	}
	requestSchema.Version = ""
	requestSchema.Title = "Path Query Request"
	requestSchema.Description = "Request body accepted by POST /path."

	responseSchema := reflector.ReflectFromType(reflect.TypeOf(netpkg.PathResponse{}))
	if responseSchema == nil {
		return nil, fmt.Errorf("failed to reflect PathResponse schema")
	}
	responseSchema.Version = ""
	responseSchema.Title = "Path Query Response"
	responseSchema.Description = "Response body returned by POST /path; a null steps field means unreachable."

	selectSchema := reflector.ReflectFromType(reflect.TypeOf(netpkg.SelectResponse{}))
	if selectSchema == nil {
		return nil, fmt.Errorf("failed to reflect SelectResponse schema")
	}
	selectSchema.Version = ""
	selectSchema.Title = "Requirement Vocabulary"
	selectSchema.Description = "Response body returned by GET /select."

	root := &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "World Navigation Query Service",
		Description: "Wire schemas for the shortest-path query service's HTTP surface.",
		Definitions: jsonschema.Definitions{
			"PathRequest":    requestSchema,
			"PathResponse":   responseSchema,
			"SelectResponse": selectSchema,
		},
	}

	return root, nil
}
