package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database layout.
// These run on startup to ensure tables exist.
//
// The ledger state lives in four relations: groups, group_members (which
// doubles as the member->groups reverse index via idx_group_members_address),
// bills with bill_participants, and the pairwise debts table. Settlements
// are an append-only audit log; users back authentication.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS groups (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    token TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS group_members (
    group_id INTEGER NOT NULL,
    member_index INTEGER NOT NULL,
    address TEXT NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (group_id, member_index),
    UNIQUE (group_id, address),
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS bills (
    group_id INTEGER NOT NULL,
    bill_index INTEGER NOT NULL,
    creator TEXT NOT NULL,
    description TEXT NOT NULL,
    amount INTEGER NOT NULL CHECK (amount >= 0),
    created_at INTEGER NOT NULL,
    PRIMARY KEY (group_id, bill_index),
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS bill_participants (
    group_id INTEGER NOT NULL,
    bill_index INTEGER NOT NULL,
    ordinal INTEGER NOT NULL,
    address TEXT NOT NULL,
    PRIMARY KEY (group_id, bill_index, ordinal),
    FOREIGN KEY (group_id, bill_index) REFERENCES bills(group_id, bill_index) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS debts (
    group_id INTEGER NOT NULL,
    debtor TEXT NOT NULL,
    creditor TEXT NOT NULL,
    amount INTEGER NOT NULL CHECK (amount >= 0),
    PRIMARY KEY (group_id, debtor, creditor),
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS settlements (
    id TEXT PRIMARY KEY,
    group_id INTEGER NOT NULL,
    debtor TEXT NOT NULL,
    creditor TEXT NOT NULL,
    amount INTEGER NOT NULL CHECK (amount > 0),
    note TEXT,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_group_members_address ON group_members(address);
CREATE INDEX IF NOT EXISTS idx_debts_debtor ON debts(group_id, debtor);
CREATE INDEX IF NOT EXISTS idx_debts_creditor ON debts(group_id, creditor);
CREATE INDEX IF NOT EXISTS idx_settlements_group ON settlements(group_id, created_at);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
