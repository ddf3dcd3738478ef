package schema

// createStatements brings an empty store to the current shape. Every
// statement is safe to repeat. Order amounts are decimal strings; SQLite
// would coerce a NUMERIC column to REAL.
var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		price DOUBLE PRECISION NOT NULL DEFAULT 0,
		stock DOUBLE PRECISION NOT NULL DEFAULT 0,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'Out of Stock',
		image TEXT,
		rating_avg DOUBLE PRECISION NOT NULL DEFAULT 0,
		review_count INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		customer TEXT NOT NULL,
		email TEXT NOT NULL,
		whatsapp TEXT,
		address TEXT NOT NULL,
		display_date TEXT NOT NULL DEFAULT '',
		amount TEXT NOT NULL DEFAULT '0',
		currency TEXT NOT NULL DEFAULT 'LKR',
		status TEXT NOT NULL DEFAULT 'Pending',
		created_at BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL REFERENCES orders(id),
		product_id TEXT,
		name TEXT NOT NULL,
		quantity DOUBLE PRECISION NOT NULL DEFAULT 0,
		price DOUBLE PRECISION NOT NULL DEFAULT 0,
		line_no INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS suppliers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		whatsapp TEXT,
		category TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_orders INTEGER NOT NULL DEFAULT 0,
		message TEXT,
		created_at BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'customer',
		created_at BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id TEXT PRIMARY KEY,
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		user_email TEXT NOT NULL,
		rating INTEGER NOT NULL,
		comment TEXT,
		created_at BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items (order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_email ON orders (email)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_product_id ON reviews (product_id)`,
}

type Column struct {
	Name       string
	Definition string
}

type TableColumns struct {
	Table   string
	Columns []Column
}

// requiredColumns lists columns that older stores may lack. They are only
// ever added, never dropped or renamed, and every NOT NULL column carries a
// default so existing rows stay valid.
var requiredColumns = []TableColumns{
	{Table: "products", Columns: []Column{
		{Name: "description", Definition: "TEXT"},
		{Name: "image", Definition: "TEXT"},
		{Name: "rating_avg", Definition: "DOUBLE PRECISION NOT NULL DEFAULT 0"},
		{Name: "review_count", Definition: "INTEGER NOT NULL DEFAULT 0"},
	}},
	{Table: "orders", Columns: []Column{
		{Name: "whatsapp", Definition: "TEXT"},
		{Name: "display_date", Definition: "TEXT NOT NULL DEFAULT ''"},
		{Name: "amount", Definition: "TEXT NOT NULL DEFAULT '0'"},
		{Name: "currency", Definition: "TEXT NOT NULL DEFAULT 'LKR'"},
		{Name: "created_at", Definition: "BIGINT NOT NULL DEFAULT 0"},
	}},
	{Table: "order_items", Columns: []Column{
		{Name: "product_id", Definition: "TEXT"},
		{Name: "line_no", Definition: "INTEGER NOT NULL DEFAULT 0"},
	}},
	{Table: "suppliers", Columns: []Column{
		{Name: "whatsapp", Definition: "TEXT"},
		{Name: "rating", Definition: "DOUBLE PRECISION NOT NULL DEFAULT 0"},
		{Name: "total_orders", Definition: "INTEGER NOT NULL DEFAULT 0"},
		{Name: "message", Definition: "TEXT"},
		{Name: "created_at", Definition: "BIGINT NOT NULL DEFAULT 0"},
	}},
	{Table: "users", Columns: []Column{
		{Name: "role", Definition: "TEXT NOT NULL DEFAULT 'customer'"},
		{Name: "created_at", Definition: "BIGINT NOT NULL DEFAULT 0"},
	}},
	{Table: "reviews", Columns: []Column{
		{Name: "comment", Definition: "TEXT"},
		{Name: "created_at", Definition: "BIGINT NOT NULL DEFAULT 0"},
	}},
}

// Tables returns the managed table names in creation order.
func Tables() []string {
	names := make([]string, 0, len(requiredColumns))
	for _, tc := range requiredColumns {
		names = append(names, tc.Table)
	}
	return names
}
