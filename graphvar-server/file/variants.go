package file

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pangenomics/graphvar/graphvar-server/model"
	"github.com/pangenomics/graphvar/internal/genomics"
	"github.com/pangenomics/graphvar/internal/tabix"
	"github.com/pangenomics/graphvar/internal/variants"
	"github.com/pangenomics/graphvar/internal/vcf"
)

// variantsHandler answers region queries against a directory of
// bgzip-compressed, tabix-indexed VCF files named <id>.vcf.gz.
type variantsHandler struct {
	directory string
	// query is swappable so tests can serve records from memory.
	query func(path string, region genomics.Region) (variants.Stream, error)
}

// NewVariantsHandler builds a gin handler serving variant region queries
// from directory.
func NewVariantsHandler(directory string) func(c *gin.Context) {
	h := &variantsHandler{directory: directory, query: tabix.Query}
	return h.handle
}

func (h *variantsHandler) handle(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.String(400, "invalid or unspecified ID")
		return
	}
	path := h.directory + "/" + id + ".vcf.gz"

	region, err := parseRegion(c)
	if err != nil {
		c.String(400, "Error parsing region: %v", err)
		return
	}

	header, err := readHeader(path)
	if err != nil {
		c.String(404, "Error finding the file")
		return
	}
	if !header.HasContig(region.Contig) {
		c.String(400, "Error resolving reference %q", region.Contig)
		return
	}

	stream, err := h.query(path, region)
	if err != nil {
		c.String(500, "Error querying variants")
		return
	}
	defer stream.Close()

	response := model.VariantsResponse{Region: region.String(), Variants: []model.Variant{}}
	if len(header.Samples) > 0 {
		response.Sample = header.Samples[0]
	}

	for {
		record, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			c.String(500, "Error reading variants")
			return
		}
		v := toModel(record)
		response.Variants = append(response.Variants, v)
		if response.FirstHomozygousAlt == nil && len(record.Genotypes) > 0 && record.Genotypes[0].HomozygousAlt() {
			response.FirstHomozygousAlt = &v
		}
	}
	response.NoMatch = response.FirstHomozygousAlt == nil

	enc := json.NewEncoder(c.Writer)
	enc.SetEscapeHTML(false)
	c.Header("Content-Type", "application/json")
	c.Status(200)
	if err := enc.Encode(&response); err != nil {
		c.String(500, "Error generating result")
		return
	}
}

func readHeader(path string) (*vcf.Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return vcf.ScanHeader(f)
}

func parseRegion(c *gin.Context) (genomics.Region, error) {
	name := c.Query("referenceName")
	if name == "" {
		return genomics.Region{}, fmt.Errorf("missing reference name")
	}
	region := genomics.Region{Contig: name}

	if start := c.Query("start"); start != "" {
		n, err := strconv.ParseUint(start, 10, 32)
		if err != nil {
			return genomics.Region{}, fmt.Errorf("parsing start: %v", err)
		}
		region.Start = uint32(n)
	}
	if end := c.Query("end"); end != "" {
		n, err := strconv.ParseUint(end, 10, 32)
		if err != nil {
			return genomics.Region{}, fmt.Errorf("parsing end: %v", err)
		}
		region.End = uint32(n)
	}
	return region, nil
}

func toModel(record *variants.Record) model.Variant {
	v := model.Variant{
		Contig: record.Contig,
		Start:  record.Start,
		Ref:    record.Ref,
		Alt:    record.Alt,
	}
	for _, genotype := range record.Genotypes {
		v.Genotypes = append(v.Genotypes, genotype.String())
	}
	return v
}
