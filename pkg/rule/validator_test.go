package rule_test

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/genomeinsight/pkg/rule"
)

// listQuery 模拟列表查询参数.
type listQuery struct {
	Limit  int    `form:"limit"  rule:"min=0,max=500"`
	Offset int    `form:"offset" rule:"min=0"`
	Type   string `form:"type"   rule:"omitempty,oneof=variant_call raw_reads"`
}

func TestEngine(t *testing.T) {
	assert.NotNil(t, rule.Engine())
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, rule.ValidateStruct(listQuery{Limit: 50}))
	require.NoError(t, rule.ValidateStruct(listQuery{Limit: 10, Type: "raw_reads"}))

	assert.Error(t, rule.ValidateStruct(listQuery{Limit: 501}))
	assert.Error(t, rule.ValidateStruct(listQuery{Offset: -1}))
	assert.Error(t, rule.ValidateStruct(listQuery{Type: "spreadsheet"}))
}

func TestErrorsUsesFormNames(t *testing.T) {
	err := rule.ValidateStruct(listQuery{Limit: 1000, Offset: -3})
	require.Error(t, err)

	fields := rule.Errors(err)
	assert.Equal(t, "failed on max=500", fields["limit"])
	assert.Equal(t, "failed on min=0", fields["offset"])
	assert.Len(t, fields, 2)
}

func TestErrorsIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, rule.Errors(assert.AnError))
	assert.Nil(t, rule.Errors(nil))
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, rule.ValidateVar("01ARZ3NDEKTSV4RRFFQ69G5FAV", "required,ulid"))
	assert.Error(t, rule.ValidateVar("not-a-ulid", "required,ulid"))
	assert.NoError(t, rule.ValidateVar(25, "gte=18"))
	assert.Error(t, rule.ValidateVar(15, "gte=18"))
}

func TestRegisterValidation(t *testing.T) {
	err := rule.RegisterValidation("lower_ext", func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && strings.HasPrefix(s, ".") && s == strings.ToLower(s)
	})
	require.NoError(t, err)

	assert.NoError(t, rule.ValidateVar(".vcf.gz", "lower_ext"))
	assert.Error(t, rule.ValidateVar(".VCF", "lower_ext"))
	assert.Error(t, rule.ValidateVar("vcf", "lower_ext"))
}

func TestRegisterAlias(t *testing.T) {
	rule.RegisterAlias("min_required", "required,min=3")

	assert.NoError(t, rule.ValidateVar("abc", "min_required"))
	assert.Error(t, rule.ValidateVar("ab", "min_required"))
}
