package model

// Variant is the JSON form of one variant call record.
type Variant struct {
	Contig    string   `json:"contig"`
	Start     uint32   `json:"start"`
	Ref       string   `json:"ref"`
	Alt       []string `json:"alt"`
	Genotypes []string `json:"genotypes"`
}

// VariantsResponse is the envelope returned for a region query.
type VariantsResponse struct {
	Region string `json:"region"`
	// Sample names the sample whose genotype the homozygous-alt scan
	// inspected (the first declared sample).
	Sample   string    `json:"sample,omitempty"`
	Variants []Variant `json:"variants"`
	// FirstHomozygousAlt is null when the region holds no matching call;
	// NoMatch distinguishes that case explicitly.
	FirstHomozygousAlt *Variant `json:"firstHomozygousAlt,omitempty"`
	NoMatch            bool     `json:"noMatch,omitempty"`
}
