package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database.
// These run on startup to ensure tables exist.
//
// The partial unique index on meetings enforces the one-open-meeting-per-group
// rule at the store level. Optional text columns default to '' instead of NULL
// so rows scan directly into plain strings.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    nome TEXT NOT NULL,
    email TEXT UNIQUE NOT NULL,
    hash_senha TEXT NOT NULL,
    role TEXT NOT NULL CHECK(role IN ('admin','group_manager','member')),
    member_id INTEGER NOT NULL DEFAULT 0,
    criado_em INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS groups (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    nome TEXT NOT NULL,
    moeda TEXT NOT NULL DEFAULT 'MZN',
    regras TEXT NOT NULL DEFAULT '',
    criado_em INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS members (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    group_id INTEGER NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
    nome TEXT NOT NULL,
    telefone TEXT NOT NULL DEFAULT '',
    documento TEXT NOT NULL DEFAULT '',
    ativo INTEGER NOT NULL DEFAULT 1,
    criado_em INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS meetings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    group_id INTEGER NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
    data TEXT NOT NULL,
    local TEXT NOT NULL DEFAULT '',
    notas TEXT NOT NULL DEFAULT '',
    aberto INTEGER NOT NULL DEFAULT 1,
    criado_em INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    meeting_id INTEGER NOT NULL REFERENCES meetings(id) ON DELETE CASCADE,
    member_id INTEGER NOT NULL REFERENCES members(id) ON DELETE CASCADE,
    tipo TEXT NOT NULL CHECK(tipo IN ('contribution','loan','repayment','penalty','payout')),
    valor REAL NOT NULL CHECK(valor >= 0),
    multa REAL NOT NULL DEFAULT 0 CHECK(multa >= 0),
    notas TEXT NOT NULL DEFAULT '',
    criado_em INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS balances (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    scope TEXT NOT NULL CHECK(scope IN ('system','group','member')),
    ref_id INTEGER NOT NULL DEFAULT 0,
    saldo REAL NOT NULL DEFAULT 0,
    atualizado_em INTEGER NOT NULL,
    UNIQUE(scope, ref_id)
);

CREATE TABLE IF NOT EXISTS audit_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL DEFAULT 0,
    acao TEXT NOT NULL,
    alvo_tabela TEXT NOT NULL DEFAULT '',
    alvo_id INTEGER NOT NULL DEFAULT 0,
    dados TEXT NOT NULL DEFAULT '',
    criado_em INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_members_group_id ON members(group_id);
CREATE INDEX IF NOT EXISTS idx_meetings_group_id ON meetings(group_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_meetings_one_open ON meetings(group_id) WHERE aberto = 1;
CREATE INDEX IF NOT EXISTS idx_transactions_meeting_id ON transactions(meeting_id);
CREATE INDEX IF NOT EXISTS idx_transactions_member_id ON transactions(member_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
