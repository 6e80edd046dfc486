// journal/schema.go
package journal

// Amounts are stored as TEXT so decimals round-trip exactly.
const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	trade_id TEXT NOT NULL UNIQUE,
	datetime TEXT NOT NULL,
	date TEXT NOT NULL,
	asset TEXT NOT NULL,
	timeframe TEXT NOT NULL,
	amount TEXT NOT NULL,
	direction TEXT NOT NULL,
	outcome TEXT NOT NULL,
	payout_pct TEXT NOT NULL,
	pnl TEXT NOT NULL,
	emotion TEXT NOT NULL,
	notes TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date);

CREATE TABLE IF NOT EXISTS sessions (
	session_id TEXT PRIMARY KEY,
	start_time TEXT NOT NULL,
	end_time TEXT NOT NULL,
	duration_min REAL NOT NULL,
	notes TEXT NOT NULL
);
`
