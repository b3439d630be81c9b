package database

// schemaStatements are applied in order on startup. Child tables cascade on
// restaurant deletion; order_items keep a restricting reference to menu_items
// so a menu row with order history cannot be removed from under an order and
// must be soft-deleted instead.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS restaurants (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		phone TEXT,
		address TEXT,
		city TEXT,
		description TEXT,
		cuisine_type TEXT,
		tables INTEGER NOT NULL DEFAULT 0,
		features JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS menu_items (
		id UUID PRIMARY KEY,
		restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		description TEXT,
		category TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL,
		is_veg BOOLEAN NOT NULL DEFAULT false,
		available BOOLEAN NOT NULL DEFAULT true,
		display_order INTEGER NOT NULL DEFAULT 0,
		image_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_menu_items_restaurant ON menu_items(restaurant_id)`,

	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
		order_type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		source TEXT NOT NULL DEFAULT 'direct',
		customer_name TEXT,
		customer_phone TEXT,
		delivery_address TEXT,
		table_number TEXT,
		notes TEXT,
		is_qr_order BOOLEAN NOT NULL DEFAULT false,
		total_amount NUMERIC(10,2) NOT NULL,
		discount_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
		final_amount NUMERIC(10,2) NOT NULL,
		commission_rate NUMERIC(5,2) NOT NULL DEFAULT 0,
		commission NUMERIC(10,2) NOT NULL DEFAULT 0,
		platform_fee NUMERIC(10,2) NOT NULL DEFAULT 0,
		net_amount NUMERIC(10,2) NOT NULL,
		external_order_id TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_restaurant ON orders(restaurant_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_restaurant_status ON orders(restaurant_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at)`,

	`CREATE TABLE IF NOT EXISTS order_items (
		id UUID PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		menu_item_id UUID REFERENCES menu_items(id),
		name TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL,
		quantity INTEGER NOT NULL,
		notes TEXT,
		printed_to_kitchen BOOLEAN NOT NULL DEFAULT false
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_menu_item ON order_items(menu_item_id)`,

	`CREATE TABLE IF NOT EXISTS staff (
		id UUID PRIMARY KEY,
		restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		username TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		phone TEXT,
		permissions JSONB NOT NULL DEFAULT '{}',
		active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (restaurant_id, username)
	)`,

	`CREATE TABLE IF NOT EXISTS staff_sessions (
		id UUID PRIMARY KEY,
		staff_id UUID NOT NULL REFERENCES staff(id) ON DELETE CASCADE,
		token_hash TEXT NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_staff_sessions_staff ON staff_sessions(staff_id)`,

	`CREATE TABLE IF NOT EXISTS discounts (
		id UUID PRIMARY KEY,
		restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
		code TEXT NOT NULL,
		description TEXT,
		discount_type TEXT NOT NULL,
		value NUMERIC(10,2) NOT NULL,
		max_discount_amount NUMERIC(10,2),
		min_order_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
		start_date TIMESTAMPTZ,
		end_date TIMESTAMPTZ,
		usage_limit BIGINT,
		usage_count BIGINT NOT NULL DEFAULT 0,
		qr_only BOOLEAN NOT NULL DEFAULT false,
		active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (restaurant_id, code)
	)`,

	`CREATE TABLE IF NOT EXISTS discount_usage (
		id UUID PRIMARY KEY,
		discount_id UUID NOT NULL REFERENCES discounts(id) ON DELETE CASCADE,
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		amount NUMERIC(10,2) NOT NULL,
		used_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_discount_usage_discount ON discount_usage(discount_id)`,

	`CREATE TABLE IF NOT EXISTS feedback (
		id UUID PRIMARY KEY,
		restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
		order_id UUID REFERENCES orders(id) ON DELETE SET NULL,
		customer_name TEXT,
		rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment TEXT,
		response TEXT,
		responded_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_feedback_restaurant ON feedback(restaurant_id)`,

	`CREATE TABLE IF NOT EXISTS printer_settings (
		restaurant_id UUID PRIMARY KEY REFERENCES restaurants(id) ON DELETE CASCADE,
		paper_width_mm INTEGER NOT NULL DEFAULT 80,
		header_text TEXT,
		footer_text TEXT,
		show_logo BOOLEAN NOT NULL DEFAULT true,
		show_gstin BOOLEAN NOT NULL DEFAULT false,
		gstin TEXT,
		kot_copies INTEGER NOT NULL DEFAULT 1,
		kot_show_prices BOOLEAN NOT NULL DEFAULT false,
		auto_print_kot BOOLEAN NOT NULL DEFAULT false,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}
