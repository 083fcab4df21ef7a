package handle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeisme/genomeinsight/pkg/rule"
)

func TestFileCategoryValidation(t *testing.T) {
	assert.NoError(t, rule.ValidateVar("variant_call", "file_category"))
	assert.NoError(t, rule.ValidateVar("raw_reads", "file_category"))
	assert.Error(t, rule.ValidateVar("unknown", "file_category"))
	assert.Error(t, rule.ValidateVar("bogus", "file_category"))
}
