package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNamingScheme(t *testing.T) {
	for _, valid := range []string{"invoice_number", "vendor_name", "original_filename"} {
		scheme, err := ParseNamingScheme(valid)
		assert.NoError(t, err)
		assert.Equal(t, NamingScheme(valid), scheme)
	}

	_, err := ParseNamingScheme("by_vendor")
	assert.Error(t, err)
}

func TestNewFieldMap(t *testing.T) {
	fields := NewFieldMap()

	assert.Len(t, fields, 4)
	assert.Contains(t, fields, FieldInvoiceNumber)
	assert.Contains(t, fields, FieldDate)
	assert.Contains(t, fields, FieldTotalAmount)
	assert.Contains(t, fields, FieldVendor)
}

func TestBatchRequestValidate(t *testing.T) {
	valid := BatchRequest{InputDir: "/invoices", Scheme: "vendor_name", Workers: 2}
	assert.NoError(t, valid.Validate())

	missingInput := BatchRequest{Scheme: "vendor_name"}
	assert.Error(t, missingInput.Validate())

	badScheme := BatchRequest{InputDir: "/invoices", Scheme: "bogus"}
	assert.Error(t, badScheme.Validate())

	negativeWorkers := BatchRequest{InputDir: "/invoices", Workers: -1}
	assert.Error(t, negativeWorkers.Validate())
}
