// cmd/tadpoles-tagger/main.go
package main

import (
	"github.com/bstardust/tadpoles-exif-tagger/pkg/cli"
)

func main() {
	cli.Execute()
}
