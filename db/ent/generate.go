// Regenerates the ent client from the schemas in db/ent/schema.
// Run from the repository root: go run ./db/ent
package main

import (
	"log"

	"entgo.io/ent/entc"
	"entgo.io/ent/entc/gen"
)

func main() {
	err := entc.Generate("./db/ent/schema", &gen.Config{
		Target:  "gen/ent",
		Package: "github.com/ordermate/ordermate/gen/ent",
	})
	if err != nil {
		log.Fatalf("ent codegen: %v", err)
	}
}
