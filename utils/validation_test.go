package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"farmer@example.com",
		"first.last@sub.domain.org",
		"user+tag@example.co",
	}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@no-local-part.com",
		"user@",
		"user@.com",
	}
	for _, email := range invalid {
		assert.Error(t, ValidateEmail(email), email)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Passw0rd"))

	assert.Error(t, ValidatePassword("Sh0rt"), "too short")
	assert.Error(t, ValidatePassword("passw0rdlower"), "no uppercase")
	assert.Error(t, ValidatePassword("PASSW0RDUPPER"), "no lowercase")
	assert.Error(t, ValidatePassword("NoDigitsHere"), "no digit")
}
