package sqlitestore

// schema is the DDL run once at Open: terms, the three term_meta
// variants, kanji, kanji_meta, tags, dictionaries, media.
const schema = `
CREATE TABLE IF NOT EXISTS dictionaries (
	title TEXT PRIMARY KEY,
	revision TEXT,
	version INTEGER,
	sequenced INTEGER,
	import_date TEXT,
	prefix_wildcards_supported INTEGER,
	term_count INTEGER,
	term_meta_freq_count INTEGER,
	term_meta_pitch_count INTEGER,
	term_meta_ipa_count INTEGER,
	kanji_count INTEGER,
	kanji_meta_freq_count INTEGER,
	kanji_meta_pitch_count INTEGER,
	kanji_meta_ipa_count INTEGER,
	tag_meta_count INTEGER,
	media_count INTEGER,
	author TEXT,
	url TEXT,
	description TEXT,
	attribution TEXT,
	source_language TEXT,
	target_language TEXT,
	frequency_mode TEXT
);

CREATE TABLE IF NOT EXISTS terms (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	uuid TEXT NOT NULL,
	expression TEXT NOT NULL,
	reading TEXT NOT NULL,
	expression_reverse TEXT NOT NULL,
	reading_reverse TEXT NOT NULL,
	definition_tags TEXT,
	legacy_tags TEXT,
	rules TEXT,
	score INTEGER NOT NULL DEFAULT 0,
	sequence INTEGER,
	term_tags TEXT,
	glossary BLOB NOT NULL,
	plain_definition TEXT,
	dictionary TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_terms_expression ON terms(expression);
CREATE INDEX IF NOT EXISTS idx_terms_reading ON terms(reading);
CREATE INDEX IF NOT EXISTS idx_terms_sequence ON terms(sequence);
CREATE INDEX IF NOT EXISTS idx_terms_expression_reverse ON terms(expression_reverse);
CREATE INDEX IF NOT EXISTS idx_terms_reading_reverse ON terms(reading_reverse);
CREATE INDEX IF NOT EXISTS idx_terms_dictionary ON terms(dictionary);

CREATE TABLE IF NOT EXISTS term_meta_freq (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	expression TEXT NOT NULL,
	dictionary TEXT NOT NULL,
	payload BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_term_meta_freq_expression ON term_meta_freq(expression);

CREATE TABLE IF NOT EXISTS term_meta_pitch (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	expression TEXT NOT NULL,
	dictionary TEXT NOT NULL,
	payload BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_term_meta_pitch_expression ON term_meta_pitch(expression);

CREATE TABLE IF NOT EXISTS term_meta_phonetic (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	expression TEXT NOT NULL,
	dictionary TEXT NOT NULL,
	payload BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_term_meta_phonetic_expression ON term_meta_phonetic(expression);

CREATE TABLE IF NOT EXISTS kanji (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	character TEXT NOT NULL,
	onyomi TEXT,
	kunyomi TEXT,
	tags TEXT,
	definitions TEXT,
	stats TEXT,
	dictionary TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_kanji_character ON kanji(character);
CREATE INDEX IF NOT EXISTS idx_kanji_dictionary ON kanji(dictionary);

CREATE TABLE IF NOT EXISTS kanji_meta (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	character TEXT NOT NULL,
	mode TEXT NOT NULL,
	dictionary TEXT NOT NULL,
	payload BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_kanji_meta_character ON kanji_meta(character);

CREATE TABLE IF NOT EXISTS tags (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	category TEXT,
	order_num INTEGER,
	score INTEGER,
	notes TEXT,
	dictionary TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tags_name_dictionary ON tags(name, dictionary);

CREATE TABLE IF NOT EXISTS media (
	dictionary TEXT NOT NULL,
	path TEXT NOT NULL,
	data BLOB,
	PRIMARY KEY (dictionary, path)
);
`
