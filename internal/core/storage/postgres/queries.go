package postgres

// SQL queries for raw sales record storage.
// Values are stored as the text the source delivered; parsing happens in the core.

const (
	querySelectRecords = `
		SELECT
			year, month, item_type, supplier,
			retail_sales, warehouse_sales, retail_transfers
		FROM sales_records
		ORDER BY id ASC
	`

	queryInsertRecord = `
		INSERT INTO sales_records (
			year, month, item_type, supplier,
			retail_sales, warehouse_sales, retail_transfers
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	queryDeleteRecords = `DELETE FROM sales_records`

	querySchemaExists = `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = 'sales_records'
		)
	`
)
