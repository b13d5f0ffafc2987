package iodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, "`stage_tbl`", quoteIdent("stage_tbl"))
	assert.Equal(t, "`we``ird`", quoteIdent("we`ird"))
}
