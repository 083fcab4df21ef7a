// Package genomics 根据文件名识别基因组文件类型.
//
// 识别只依赖文件名（对压缩后缀敏感），不读取内容：
//
//	ext, cat := genomics.Classify("sample.vcf.gz") // ".vcf.gz", genomics.VariantCall
package genomics

import (
	"path/filepath"
	"sort"
	"strings"
)

// Category 基因组文件类别.
type Category string

const (
	VariantCall      Category = "variant_call"
	GenomicIntervals Category = "genomic_intervals"
	Alignment        Category = "alignment"
	Sequence         Category = "sequence"
	RawReads         Category = "raw_reads"
	Annotation       Category = "annotation"
	GenericText      Category = "generic_text"
	Tabular          Category = "tabular"
	Unknown          Category = "unknown"
)

// compressionSuffixes 会与前一个扩展名合并的压缩后缀.
var compressionSuffixes = []string{".gz", ".bgz"}

var extensions = map[string]Category{
	".vcf":      VariantCall,
	".vcf.gz":   VariantCall,
	".vcf.bgz":  VariantCall,
	".bed":      GenomicIntervals,
	".bed.gz":   GenomicIntervals,
	".bed.bgz":  GenomicIntervals,
	".bam":      Alignment,
	".sam":      Alignment,
	".fasta":    Sequence,
	".fa":       Sequence,
	".fasta.gz": Sequence,
	".fa.gz":    Sequence,
	".fastq":    RawReads,
	".fq":       RawReads,
	".fastq.gz": RawReads,
	".fq.gz":    RawReads,
	".gff":      Annotation,
	".gff3":     Annotation,
	".gtf":      Annotation,
	".txt":      GenericText,
	".tsv":      Tabular,
	".csv":      Tabular,
}

// Categories 返回所有已知类别（不含 Unknown），顺序固定.
func Categories() []Category {
	return []Category{
		VariantCall, GenomicIntervals, Alignment, Sequence,
		RawReads, Annotation, GenericText, Tabular,
	}
}

// Valid 判断是否为已知类别（包含 Unknown）.
func (c Category) Valid() bool {
	if c == Unknown {
		return true
	}

	for _, known := range Categories() {
		if c == known {
			return true
		}
	}

	return false
}

func (c Category) String() string { return string(c) }

// Extension 提取对压缩敏感的扩展名（小写）.
// "a.vcf.gz" -> ".vcf.gz"，"a.gz" -> ".gz"，"README" -> "".
// 压缩后缀前的部分即使以点开头也视为扩展名，".vcf.gz" -> ".vcf.gz".
func Extension(filename string) string {
	name := strings.ToLower(filepath.Base(strings.ReplaceAll(filename, "\\", "/")))
	if name == "." || name == "/" {
		return ""
	}

	for _, suffix := range compressionSuffixes {
		if !strings.HasSuffix(name, suffix) {
			continue
		}

		rest := strings.TrimSuffix(name, suffix)
		if inner := filepath.Ext(rest); inner != "" {
			return inner + suffix
		}

		return suffix
	}

	ext := filepath.Ext(name)
	if ext == name {
		// ".bashrc" 这类隐藏文件没有扩展名
		return ""
	}

	return ext
}

// Classify 返回扩展名与类别，未登记的扩展名归为 Unknown.
func Classify(filename string) (string, Category) {
	ext := Extension(filename)
	if cat, ok := extensions[ext]; ok {
		return ext, cat
	}

	return ext, Unknown
}

// SupportedExtensions 返回所有登记的扩展名，按字典序排列.
func SupportedExtensions() []string {
	out := make([]string, 0, len(extensions))
	for ext := range extensions {
		out = append(out, ext)
	}

	sort.Strings(out)

	return out
}

// ExtensionsByCategory 按类别分组返回扩展名.
func ExtensionsByCategory() map[Category][]string {
	out := make(map[Category][]string, len(Categories()))
	for _, ext := range SupportedExtensions() {
		cat := extensions[ext]
		out[cat] = append(out[cat], ext)
	}

	return out
}
