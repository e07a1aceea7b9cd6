package entity

import "strconv"

// StoreSettings is the flat store configuration singleton. It is persisted as
// typed key/value rows in store_settings and replaced whole-object on update,
// never patched per field.
type StoreSettings struct {
	StoreName              string  `json:"storeName"`
	StoreDescription       string  `json:"storeDescription"`
	ContactEmail           string  `json:"contactEmail"`
	ContactPhone           string  `json:"contactPhone"`
	Address                string  `json:"address"`
	Website                string  `json:"website"`
	Currency               string  `json:"currency"`
	TaxRate                float64 `json:"taxRate"`
	ShippingCost           float64 `json:"shippingCost"`
	FreeShippingThreshold  float64 `json:"freeShippingThreshold"`
	MaintenanceMode        bool    `json:"maintenanceMode"`
	EmailNotifications     bool    `json:"emailNotifications"`
	SMSNotifications       bool    `json:"smsNotifications"`
	WhatsappNotifications  bool    `json:"whatsappNotifications"`
	OrderConfirmationEmail bool    `json:"orderConfirmationEmail"`
	LowStockAlerts         bool    `json:"lowStockAlerts"`
	NewOrderAlerts         bool    `json:"newOrderAlerts"`
}

// SettingRow is one store_settings record. Type is "string", "number",
// "boolean" or "json" and drives the conversion on load.
type SettingRow struct {
	Key   string `json:"setting_key"`
	Value string `json:"setting_value"`
	Type  string `json:"setting_type"`
}

// DefaultStoreSettings returns the configuration used when the settings table
// is empty or a key is missing.
func DefaultStoreSettings() StoreSettings {
	return StoreSettings{
		StoreName:              "Mash Electronics",
		StoreDescription:       "Your trusted source for quality electronics in Kenya",
		ContactEmail:           "info@mashelectronics.co.ke",
		ContactPhone:           "+254700123456",
		Address:                "Nairobi, Kenya",
		Website:                "https://mashelectronics.co.ke",
		Currency:               "KSH",
		TaxRate:                16,
		ShippingCost:           0,
		FreeShippingThreshold:  5000,
		MaintenanceMode:        false,
		EmailNotifications:     true,
		SMSNotifications:       true,
		WhatsappNotifications:  true,
		OrderConfirmationEmail: true,
		LowStockAlerts:         true,
		NewOrderAlerts:         true,
	}
}

// SettingsFromRows builds typed settings from key/value rows, falling back to
// the default for any missing or unparseable value.
func SettingsFromRows(rows []SettingRow) StoreSettings {
	s := DefaultStoreSettings()
	for _, row := range rows {
		switch row.Key {
		case "store_name":
			s.StoreName = row.Value
		case "store_description":
			s.StoreDescription = row.Value
		case "contact_email":
			s.ContactEmail = row.Value
		case "contact_phone":
			s.ContactPhone = row.Value
		case "address":
			s.Address = row.Value
		case "website":
			s.Website = row.Value
		case "currency":
			s.Currency = row.Value
		case "tax_rate":
			if v, err := strconv.ParseFloat(row.Value, 64); err == nil {
				s.TaxRate = v
			}
		case "shipping_cost":
			if v, err := strconv.ParseFloat(row.Value, 64); err == nil {
				s.ShippingCost = v
			}
		case "free_shipping_threshold":
			if v, err := strconv.ParseFloat(row.Value, 64); err == nil {
				s.FreeShippingThreshold = v
			}
		case "maintenance_mode":
			s.MaintenanceMode = row.Value == "true"
		case "email_notifications":
			s.EmailNotifications = row.Value != "false"
		case "sms_notifications":
			s.SMSNotifications = row.Value != "false"
		case "whatsapp_notifications":
			s.WhatsappNotifications = row.Value != "false"
		case "order_confirmation_email":
			s.OrderConfirmationEmail = row.Value != "false"
		case "low_stock_alerts":
			s.LowStockAlerts = row.Value != "false"
		case "new_order_alerts":
			s.NewOrderAlerts = row.Value != "false"
		}
	}
	return s
}

// SettingsToRows flattens typed settings into the key/value rows persisted in
// store_settings. The row set is complete on every save, matching the
// whole-object replace contract.
func (s StoreSettings) SettingsToRows() []SettingRow {
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	boolean := strconv.FormatBool
	return []SettingRow{
		{Key: "store_name", Value: s.StoreName, Type: "string"},
		{Key: "store_description", Value: s.StoreDescription, Type: "string"},
		{Key: "contact_email", Value: s.ContactEmail, Type: "string"},
		{Key: "contact_phone", Value: s.ContactPhone, Type: "string"},
		{Key: "address", Value: s.Address, Type: "string"},
		{Key: "website", Value: s.Website, Type: "string"},
		{Key: "currency", Value: s.Currency, Type: "string"},
		{Key: "tax_rate", Value: num(s.TaxRate), Type: "number"},
		{Key: "shipping_cost", Value: num(s.ShippingCost), Type: "number"},
		{Key: "free_shipping_threshold", Value: num(s.FreeShippingThreshold), Type: "number"},
		{Key: "maintenance_mode", Value: boolean(s.MaintenanceMode), Type: "boolean"},
		{Key: "email_notifications", Value: boolean(s.EmailNotifications), Type: "boolean"},
		{Key: "sms_notifications", Value: boolean(s.SMSNotifications), Type: "boolean"},
		{Key: "whatsapp_notifications", Value: boolean(s.WhatsappNotifications), Type: "boolean"},
		{Key: "order_confirmation_email", Value: boolean(s.OrderConfirmationEmail), Type: "boolean"},
		{Key: "low_stock_alerts", Value: boolean(s.LowStockAlerts), Type: "boolean"},
		{Key: "new_order_alerts", Value: boolean(s.NewOrderAlerts), Type: "boolean"},
	}
}
