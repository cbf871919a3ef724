// Command timeutc runs the timeutc analyzer standalone:
//
//	go run ./tools/linters/timeutc/cmd/timeutc ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/rezkam/todos/tools/linters/timeutc"
)

func main() {
	singlechecker.Main(timeutc.Analyzer)
}
