package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() Result {
	amount := 6.49
	return success(&ParsedReceipt{
		Amount:      &amount,
		Date:        "01/15/2024",
		Merchant:    "Walmart Supercenter",
		Category:    "shopping",
		Description: "Receipt from Walmart Supercenter",
	}, "raw text")
}

func TestFormat_JSON(t *testing.T) {
	out, err := Format(sampleResult(), FormatJSON)
	require.NoError(t, err)

	var decoded Result
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.True(t, decoded.Success)
	assert.Equal(t, "Walmart Supercenter", decoded.Receipt.Merchant)
}

func TestFormat_DefaultsToJSON(t *testing.T) {
	out, err := Format(sampleResult(), "")
	require.NoError(t, err)
	assert.Contains(t, out, `"success": true`)
}

func TestFormat_YAML(t *testing.T) {
	out, err := Format(sampleResult(), FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, out, "merchant: Walmart Supercenter")
}

func TestFormat_Text(t *testing.T) {
	out, err := Format(sampleResult(), FormatText)
	require.NoError(t, err)
	assert.Contains(t, out, "Merchant:    Walmart Supercenter")
	assert.Contains(t, out, "Amount:      6.49")
}

func TestFormat_TextFailure(t *testing.T) {
	res := Result{Success: false, Error: "could not decode image"}
	out, err := Format(res, FormatText)
	require.NoError(t, err)
	assert.Contains(t, out, "parse failed: could not decode image")
}

func TestFormat_UnsupportedFormat(t *testing.T) {
	_, err := Format(sampleResult(), "xml")
	assert.Error(t, err)
}
