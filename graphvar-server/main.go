// This binary serves variant region queries over HTTP from a directory of
// tabix-indexed VCF files produced by the graphvar workflow.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/pangenomics/graphvar/graphvar-server/file"
)

var (
	port      = flag.Int("port", 8080, "HTTP service port")
	directory = flag.String("directory", "", "directory that contains vcf.gz/tbi files")
)

func main() {
	flag.Parse()

	if *directory == "" {
		log.Fatalf("You must specify -directory.")
	}

	router := gin.Default()
	router.GET("/variants/:id", file.NewVariantsHandler(*directory))

	if err := router.Run(fmt.Sprintf(":%d", *port)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
