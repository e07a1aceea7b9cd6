package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsFromRowsEmptyUsesDefaults(t *testing.T) {
	settings := SettingsFromRows(nil)
	assert.Equal(t, DefaultStoreSettings(), settings)
}

func TestSettingsFromRowsOverrides(t *testing.T) {
	rows := []SettingRow{
		{Key: "store_name", Value: "Another Shop", Type: "string"},
		{Key: "tax_rate", Value: "8.5", Type: "number"},
		{Key: "free_shipping_threshold", Value: "10000", Type: "number"},
		{Key: "maintenance_mode", Value: "true", Type: "boolean"},
		{Key: "email_notifications", Value: "false", Type: "boolean"},
	}
	settings := SettingsFromRows(rows)

	assert.Equal(t, "Another Shop", settings.StoreName)
	assert.Equal(t, 8.5, settings.TaxRate)
	assert.Equal(t, 10000.0, settings.FreeShippingThreshold)
	assert.True(t, settings.MaintenanceMode)
	assert.False(t, settings.EmailNotifications)
	// Untouched keys keep their defaults.
	assert.Equal(t, "KSH", settings.Currency)
	assert.Equal(t, 0.0, settings.ShippingCost)
}

func TestSettingsFromRowsBadNumberKeepsDefault(t *testing.T) {
	rows := []SettingRow{{Key: "tax_rate", Value: "not-a-number", Type: "number"}}
	settings := SettingsFromRows(rows)
	assert.Equal(t, DefaultStoreSettings().TaxRate, settings.TaxRate)
}

func TestSettingsFromRowsUnknownKeyIgnored(t *testing.T) {
	rows := []SettingRow{{Key: "mystery", Value: "42", Type: "number"}}
	assert.Equal(t, DefaultStoreSettings(), SettingsFromRows(rows))
}

func TestSettingsRowsRoundTrip(t *testing.T) {
	original := DefaultStoreSettings()
	original.StoreName = "Round Trip"
	original.TaxRate = 12.5
	original.MaintenanceMode = true
	original.SMSNotifications = false

	restored := SettingsFromRows(original.SettingsToRows())
	assert.Equal(t, original, restored)
}

func TestSettingsToRowsIsComplete(t *testing.T) {
	rows := DefaultStoreSettings().SettingsToRows()
	require.Len(t, rows, 17)

	seen := map[string]bool{}
	for _, row := range rows {
		assert.False(t, seen[row.Key], "duplicate key %s", row.Key)
		seen[row.Key] = true
	}
}
