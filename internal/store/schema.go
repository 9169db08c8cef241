package store

// Schema DDL. Applied idempotently on every Open; committed ledger state
// survives restarts. Handles are stored as 64-character hex strings,
// timestamps as RFC 3339 text.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS habits (
    habit_id INTEGER PRIMARY KEY,
    owner TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    target_days INTEGER NOT NULL,
    habit_type INTEGER NOT NULL,
    completion_standard TEXT NOT NULL,
    created_at TEXT NOT NULL,
    is_active INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS habits_owner ON habits(owner);

CREATE TABLE IF NOT EXISTS completions (
    habit_id INTEGER NOT NULL,
    date INTEGER NOT NULL,
    status TEXT NOT NULL,
    PRIMARY KEY (habit_id, date),
    FOREIGN KEY (habit_id) REFERENCES habits(habit_id)
);

CREATE TABLE IF NOT EXISTS rewards (
    reward_id INTEGER PRIMARY KEY,
    habit_id INTEGER NOT NULL,
    reward_type INTEGER NOT NULL,
    threshold INTEGER NOT NULL,
    amount TEXT NOT NULL,
    claimed INTEGER NOT NULL,
    claimed_at TEXT,
    UNIQUE (habit_id, reward_type, threshold),
    FOREIGN KEY (habit_id) REFERENCES habits(habit_id)
);

CREATE TABLE IF NOT EXISTS grants (
    grant_id TEXT NOT NULL,
    handle TEXT NOT NULL,
    account TEXT NOT NULL,
    created_at TEXT NOT NULL,
    PRIMARY KEY (handle, account)
);

CREATE TABLE IF NOT EXISTS ciphertexts (
    handle TEXT PRIMARY KEY,
    data BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS counters (
    name TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);

INSERT OR IGNORE INTO counters (name, value) VALUES ('habit_id', 0);
INSERT OR IGNORE INTO counters (name, value) VALUES ('reward_id', 0);
`

// Counter names.
const (
	CounterHabitID  = "habit_id"
	CounterRewardID = "reward_id"
)
