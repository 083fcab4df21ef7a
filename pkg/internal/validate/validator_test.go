package validate_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/genomeinsight/pkg/internal/genomics"
	"github.com/yeisme/genomeinsight/pkg/internal/validate"
)

// memSource 内存中的内容源.
type memSource struct {
	files     map[string][]byte
	existsErr error
}

func (m *memSource) Exists(_ context.Context, path string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}

	_, ok := m.files[path]

	return ok, nil
}

func (m *memSource) Open(_ context.Context, path string) (io.ReadCloser, error) {
	b, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}

	return io.NopCloser(bytes.NewReader(b)), nil
}

var (
	vcfBody = []byte("##fileformat=VCFv4.2\n#CHROM\tPOS\tID\tREF\tALT\n")
	// BGZF 结束块
	bgzfEOF = []byte{
		0x1f, 0x8b, 0x08, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0xff, 0x06, 0x00, 0x42, 0x43,
		0x02, 0x00, 0x1b, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	plainGzip = []byte{
		0x1f, 0x8b, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xff, 0x03, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
)

func newValidator() *validate.Validator {
	return validate.New(1024, nil)
}

func TestValidateAcceptsVCF(t *testing.T) {
	src := &memSource{files: map[string][]byte{"a": vcfBody}}

	v := newValidator().Validate(context.Background(), validate.Input{
		Filename: "sample.vcf",
		Size:     int64(len(vcfBody)),
		Path:     "a",
		Source:   src,
		Checksum: "abc",
	})

	assert.True(t, v.IsValid)
	assert.Equal(t, genomics.VariantCall, v.FileType)
	assert.Empty(t, v.Errors)
	assert.Empty(t, v.Warnings)
	assert.Equal(t, ".vcf", v.Metadata.Extension)
	assert.Equal(t, int64(len(vcfBody)), v.Metadata.SizeBytes)
	assert.Equal(t, "abc", v.Metadata.Checksum)
	assert.True(t, strings.HasPrefix(v.Metadata.MIMEType, "text/"))
}

func TestValidateUnknownExtension(t *testing.T) {
	v := newValidator().Validate(context.Background(), validate.Input{Filename: "malware.exe", Size: 10})

	assert.False(t, v.IsValid)
	assert.Empty(t, v.FileType)
	require.Len(t, v.Errors, 1)
	assert.Contains(t, v.Errors[0], "unsupported file extension")
	assert.Contains(t, v.Errors[0], ".exe")
}

func TestValidateNoExtension(t *testing.T) {
	v := newValidator().Validate(context.Background(), validate.Input{Filename: "README"})

	assert.False(t, v.IsValid)
	require.Len(t, v.Errors, 1)
	assert.Contains(t, v.Errors[0], "(none)")
}

func TestValidateOversize(t *testing.T) {
	v := newValidator().Validate(context.Background(), validate.Input{Filename: "big.bam", Size: 1025})

	assert.False(t, v.IsValid)
	assert.Equal(t, genomics.Alignment, v.FileType)
	require.Len(t, v.Errors, 1)
	assert.Contains(t, v.Errors[0], "exceeds maximum allowed size 1024 bytes")
}

func TestValidateAccumulatesErrors(t *testing.T) {
	v := newValidator().Validate(context.Background(), validate.Input{Filename: "big.docx", Size: 4096})

	assert.False(t, v.IsValid)
	assert.Len(t, v.Errors, 2)
}

func TestValidateZeroLength(t *testing.T) {
	src := &memSource{files: map[string][]byte{"empty": {}}}

	v := newValidator().Validate(context.Background(), validate.Input{
		Filename: "empty.vcf", Path: "empty", Source: src,
	})

	assert.True(t, v.IsValid)
	assert.Empty(t, v.Errors)
	assert.Zero(t, v.Metadata.SizeMB)
}

func TestValidateMIMEWarningDoesNotFail(t *testing.T) {
	src := &memSource{files: map[string][]byte{"img": pngHeader}}

	v := newValidator().Validate(context.Background(), validate.Input{
		Filename: "calls.vcf", Size: int64(len(pngHeader)), Path: "img", Source: src,
	})

	assert.True(t, v.IsValid)
	require.Len(t, v.Warnings, 1)
	assert.Contains(t, v.Warnings[0], "image/png")
	assert.Equal(t, "image/png", v.Metadata.MIMEType)
}

func TestValidateDetectsCompression(t *testing.T) {
	src := &memSource{files: map[string][]byte{"bgzf": bgzfEOF, "gz": plainGzip}}
	val := newValidator()

	bgzf := val.Validate(context.Background(), validate.Input{
		Filename: "calls.vcf.bgz", Size: int64(len(bgzfEOF)), Path: "bgzf", Source: src,
	})
	assert.True(t, bgzf.IsValid)
	assert.Empty(t, bgzf.Warnings)
	assert.Equal(t, validate.BGZFMIME, bgzf.Metadata.MIMEType)

	gz := val.Validate(context.Background(), validate.Input{
		Filename: "reads.fq.gz", Size: int64(len(plainGzip)), Path: "gz", Source: src,
	})
	assert.True(t, gz.IsValid)
	assert.Empty(t, gz.Warnings)
	assert.Equal(t, "application/gzip", gz.Metadata.MIMEType)
}

func TestValidateSkipsMissingContent(t *testing.T) {
	src := &memSource{files: map[string][]byte{}}

	v := newValidator().Validate(context.Background(), validate.Input{
		Filename: "sample.vcf", Size: 3, Path: "gone", Source: src,
	})

	assert.True(t, v.IsValid)
	assert.Empty(t, v.Warnings)
	assert.Empty(t, v.Metadata.MIMEType)
}

func TestValidateSniffFailureIsWarning(t *testing.T) {
	src := &memSource{existsErr: errors.New("connection refused to 10.0.0.7")}

	v := newValidator().Validate(context.Background(), validate.Input{
		Filename: "sample.vcf", Size: 3, Path: "a", Source: src,
	})

	assert.True(t, v.IsValid)
	require.Len(t, v.Warnings, 1)
	assert.NotContains(t, v.Warnings[0], "10.0.0.7")
}

func TestValidateIdempotent(t *testing.T) {
	src := &memSource{files: map[string][]byte{"a": pngHeader}}
	val := newValidator()
	in := validate.Input{Filename: "x.docx", Size: 2048, Path: "a", Source: src}

	assert.Equal(t, val.Validate(context.Background(), in), val.Validate(context.Background(), in))
}

func TestSizeMBRounding(t *testing.T) {
	v := validate.New(0, nil).Validate(context.Background(), validate.Input{
		Filename: "a.bam", Size: 1572864 + 2000,
	})

	assert.InDelta(t, 1.5, v.Metadata.SizeMB, 0.001)
	assert.Equal(t, int64(1073741824), validate.New(0, nil).MaxFileSize())
}
