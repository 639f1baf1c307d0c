package store

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    words INTEGER NOT NULL,
    chars INTEGER NOT NULL,
    chars_no_spaces INTEGER NOT NULL,
    sentences INTEGER NOT NULL,
    unique_words INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS word_frequencies (
    analysis_id INTEGER NOT NULL,
    word TEXT NOT NULL,
    count INTEGER NOT NULL,
    PRIMARY KEY (analysis_id, word),
    FOREIGN KEY (analysis_id) REFERENCES analyses(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses(created_at);
CREATE INDEX IF NOT EXISTS idx_analyses_source ON analyses(source);
`
