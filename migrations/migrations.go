package migrations

import (
	"database/sql"
	"time"
)

func execWithRetry(db *sql.DB, query string, retries int) error {
	_, err := db.Exec(query)
	for i := 0; err != nil && i < retries; i++ {
		time.Sleep(1 * time.Second)
		_, err = db.Exec(query)
	}
	return err
}

// AutoMigrateProducts creates the products table if it does not exist.
func AutoMigrateProducts(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS products (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			price DOUBLE NOT NULL,
			image_url VARCHAR(512) NOT NULL DEFAULT '',
			category VARCHAR(100) NOT NULL DEFAULT '',
			stock_quantity INT NOT NULL DEFAULT 0,
			featured BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_products_category (category)
		);
	`
	return execWithRetry(db, query, retries)
}

// AutoMigrateUsers creates the users and admin_users tables if they do not
// exist. Back-office accounts live in their own table.
func AutoMigrateUsers(retries int, db *sql.DB) error {
	queries := []string{`
		CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			full_name VARCHAR(255) NOT NULL,
			phone VARCHAR(50),
			address TEXT,
			role VARCHAR(20) NOT NULL DEFAULT 'customer',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`, `
		CREATE TABLE IF NOT EXISTS admin_users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			full_name VARCHAR(255) NOT NULL,
			phone VARCHAR(50),
			address TEXT,
			role VARCHAR(20) NOT NULL DEFAULT 'admin',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`}
	for _, query := range queries {
		if err := execWithRetry(db, query, retries); err != nil {
			return err
		}
	}
	return nil
}

// AutoMigrateOrders creates the orders and order_items tables if they do not
// exist.
func AutoMigrateOrders(retries int, db *sql.DB) error {
	queries := []string{`
		CREATE TABLE IF NOT EXISTS orders (
			id INT AUTO_INCREMENT PRIMARY KEY,
			customer_name VARCHAR(255) NOT NULL,
			customer_email VARCHAR(255) NOT NULL,
			customer_phone VARCHAR(50) NOT NULL,
			total_amount DOUBLE NOT NULL,
			payment_method VARCHAR(50) NOT NULL,
			payment_status VARCHAR(20) NOT NULL,
			order_status VARCHAR(20) NOT NULL,
			shipping_address TEXT NOT NULL,
			tracking_number VARCHAR(100),
			notes TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_orders_email (customer_email),
			INDEX idx_orders_created (created_at)
		);
	`, `
		CREATE TABLE IF NOT EXISTS order_items (
			id INT AUTO_INCREMENT PRIMARY KEY,
			order_id INT NOT NULL,
			product_id INT NOT NULL,
			quantity INT NOT NULL,
			price DOUBLE NOT NULL,
			FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
		);
	`}
	for _, query := range queries {
		if err := execWithRetry(db, query, retries); err != nil {
			return err
		}
	}
	return nil
}

// AutoMigrateSettings creates the store_settings key/value table if it does
// not exist. Missing keys fall back to in-code defaults, so no seed rows are
// needed.
func AutoMigrateSettings(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS store_settings (
			id INT AUTO_INCREMENT PRIMARY KEY,
			setting_key VARCHAR(100) NOT NULL UNIQUE,
			setting_value TEXT NOT NULL,
			setting_type VARCHAR(10) NOT NULL DEFAULT 'string'
		);
	`
	return execWithRetry(db, query, retries)
}
