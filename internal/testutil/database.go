package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration database. TEST_DB_DSN overrides the default
// root:@tcp(localhost:3306)/foodorder_test; the test is skipped when MySQL is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		dsn = "root:@tcp(localhost:3306)/foodorder_test?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// NewMockDB returns a sqlmock backed *sql.DB, closed when the test ends.
func NewMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// CleanupTestDB empties every table and closes db.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"CartItems", "Carts", "DeliveryPartners", "Payments", "Orders", "Items", "Restaurants", "Users"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema used by the repositories.
func SetupTestTables(t *testing.T, db *sql.DB) {
	for _, tbl := range Schema {
		_, err := db.Exec(tbl.Query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.Name, err)
		}
	}
}

type Table struct {
	Name  string
	Query string
}

var Schema = []Table{
	{"Users", `
	CREATE TABLE IF NOT EXISTS Users (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(100) NOT NULL UNIQUE,
		password VARCHAR(100) NOT NULL,
		role VARCHAR(20) NOT NULL,
		email VARCHAR(150) NOT NULL UNIQUE,
		phoneNumber VARCHAR(30),
		country VARCHAR(100)
	)`},
	{"Restaurants", `
	CREATE TABLE IF NOT EXISTS Restaurants (
		restaurantId CHAR(36) NOT NULL PRIMARY KEY,
		restaurantName VARCHAR(150) NOT NULL,
		type VARCHAR(100),
		location VARCHAR(150),
		rating DECIMAL(3,1) NOT NULL DEFAULT 0,
		INDEX idx_location (location),
		INDEX idx_name (restaurantName)
	)`},
	{"Items", `
	CREATE TABLE IF NOT EXISTS Items (
		itemId CHAR(36) NOT NULL PRIMARY KEY,
		restaurantId CHAR(36) NOT NULL,
		itemName VARCHAR(150) NOT NULL,
		category VARCHAR(100),
		description TEXT,
		price DECIMAL(10,2) NOT NULL,
		INDEX idx_restaurant (restaurantId),
		INDEX idx_item_name (itemName)
	)`},
	{"Orders", `
	CREATE TABLE IF NOT EXISTS Orders (
		orderId INT UNSIGNED NOT NULL PRIMARY KEY,
		orderDate DATETIME NOT NULL,
		email VARCHAR(150) NOT NULL,
		orderStatus VARCHAR(30) NOT NULL,
		deliveryStatus VARCHAR(50) NOT NULL,
		orderDetails JSON NOT NULL,
		phoneNumber VARCHAR(30),
		cost DECIMAL(10,2) NOT NULL,
		address VARCHAR(255),
		pincode VARCHAR(10),
		city VARCHAR(100),
		state VARCHAR(100),
		orderInstructions VARCHAR(500),
		deliveryPartnerAssigned TINYINT(1) NOT NULL DEFAULT 0,
		INDEX idx_email (email)
	)`},
	{"Payments", `
	CREATE TABLE IF NOT EXISTS Payments (
		transactionId BIGINT NOT NULL PRIMARY KEY,
		orderId INT UNSIGNED NOT NULL,
		paymentDate DATETIME NOT NULL,
		email VARCHAR(150) NOT NULL,
		amount DECIMAL(10,2) NOT NULL,
		transactionStatus VARCHAR(30) NOT NULL,
		INDEX idx_order (orderId)
	)`},
	{"DeliveryPartners", `
	CREATE TABLE IF NOT EXISTS DeliveryPartners (
		deliveryId CHAR(36) NOT NULL PRIMARY KEY,
		name VARCHAR(150) NOT NULL,
		phoneNumber VARCHAR(30),
		assigned TINYINT(1) NOT NULL DEFAULT 0,
		orderId INT UNSIGNED NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_assigned (assigned, createdAt),
		UNIQUE INDEX idx_partner_order (orderId)
	)`},
	{"Carts", `
	CREATE TABLE IF NOT EXISTS Carts (
		cartId CHAR(36) NOT NULL PRIMARY KEY,
		username VARCHAR(100) NOT NULL UNIQUE,
		totalPrice DECIMAL(10,2) NOT NULL DEFAULT 0
	)`},
	{"CartItems", `
	CREATE TABLE IF NOT EXISTS CartItems (
		cartId CHAR(36) NOT NULL,
		itemId CHAR(36) NOT NULL,
		itemName VARCHAR(150) NOT NULL,
		restaurantId CHAR(36) NOT NULL,
		description TEXT,
		price DECIMAL(10,2) NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		position INT NOT NULL DEFAULT 0,
		PRIMARY KEY (cartId, itemId),
		FOREIGN KEY (cartId) REFERENCES Carts(cartId) ON DELETE CASCADE
	)`},
}
