package genomics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeisme/genomeinsight/pkg/internal/genomics"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		ext  string
		cat  genomics.Category
	}{
		{"sample.vcf.gz", ".vcf.gz", genomics.VariantCall},
		{"reads.fastq", ".fastq", genomics.RawReads},
		{"notes.docx", ".docx", genomics.Unknown},
		{"README", "", genomics.Unknown},
		{"archive.gz", ".gz", genomics.Unknown},
		{"calls.VCF", ".vcf", genomics.VariantCall},
		{"Calls.Vcf.BGZ", ".vcf.bgz", genomics.VariantCall},
		{"regions.bed.bgz", ".bed.bgz", genomics.GenomicIntervals},
		{"ref.fa.gz", ".fa.gz", genomics.Sequence},
		{"aln.bam", ".bam", genomics.Alignment},
		{"genes.gff3", ".gff3", genomics.Annotation},
		{"genes.gtf.gz", ".gtf.gz", genomics.Unknown},
		{"table.tsv", ".tsv", genomics.Tabular},
		{"summary.txt", ".txt", genomics.GenericText},
		{"malware.exe", ".exe", genomics.Unknown},
		{"dir/sub/sample.vcf", ".vcf", genomics.VariantCall},
		{`C:\data\sample.fq`, ".fq", genomics.RawReads},
		{".bashrc", "", genomics.Unknown},
		{".vcf.gz", ".vcf.gz", genomics.VariantCall},
		{"dir/.bed.bgz", ".bed.bgz", genomics.GenomicIntervals},
		{"", "", genomics.Unknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ext, cat := genomics.Classify(tc.name)
			assert.Equal(t, tc.ext, ext)
			assert.Equal(t, tc.cat, cat)
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	for _, name := range []string{"x.vcf.gz", "y.bam", "z", "w.unknown"} {
		ext1, cat1 := genomics.Classify(name)
		ext2, cat2 := genomics.Classify(name)
		assert.Equal(t, ext1, ext2)
		assert.Equal(t, cat1, cat2)
	}
}

func TestSupportedExtensions(t *testing.T) {
	exts := genomics.SupportedExtensions()
	assert.IsNonDecreasing(t, exts)
	assert.Contains(t, exts, ".vcf.gz")
	assert.NotContains(t, exts, ".gz")

	for _, ext := range exts {
		_, cat := genomics.Classify("file" + ext)
		assert.NotEqual(t, genomics.Unknown, cat, ext)
	}
}

func TestExtensionsByCategory(t *testing.T) {
	grouped := genomics.ExtensionsByCategory()
	assert.Equal(t, []string{".fastq", ".fastq.gz", ".fq", ".fq.gz"}, grouped[genomics.RawReads])
	assert.Len(t, grouped, len(genomics.Categories()))
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, genomics.VariantCall.Valid())
	assert.True(t, genomics.Unknown.Valid())
	assert.False(t, genomics.Category("spreadsheet").Valid())
}
