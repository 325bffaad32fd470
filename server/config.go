package server

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dekarrin/tqinterp"
	"github.com/dekarrin/tqinterp/internal/glossary"
	"github.com/dekarrin/tqinterp/internal/glossfile"
	"github.com/dekarrin/tqinterp/server/dao"
	"github.com/dekarrin/tqinterp/server/dao/inmem"
	"github.com/dekarrin/tqinterp/server/dao/sqlite"
)

// DBType is the storage engine named at the start of a DB connection string.
type DBType string

func (dbt DBType) String() string {
	return string(dbt)
}

const (
	DatabaseNone     DBType = "none"
	DatabaseSQLite   DBType = "sqlite"
	DatabaseInMemory DBType = "inmem"
)

// Token secrets are HS512 keys. The session creation time is appended to the
// secret when signing, so the secret itself is capped below the hash block
// size.
const (
	MaxSecretSize = 64
	MinSecretSize = 32
)

// ParseDBType parses the engine part of a connection string. Case is ignored.
func ParseDBType(s string) (DBType, error) {
	for _, t := range []DBType{DatabaseInMemory, DatabaseSQLite} {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return DatabaseNone, fmt.Errorf("DB type not one of 'sqlite' or 'inmem': %q", s)
}

// Database says where sessions and the command log are kept.
type Database struct {
	Type DBType

	// DataDir is the directory the sqlite file is kept in. Only used by
	// DatabaseSQLite.
	DataDir string
}

// String gives the connection string that parses back to db.
func (db Database) String() string {
	if db.Type == DatabaseSQLite {
		return db.Type.String() + ":" + db.DataDir
	}
	return db.Type.String()
}

// Connect opens the store db describes. For sqlite the data directory is
// created if it does not yet exist.
func (db Database) Connect() (dao.Store, error) {
	if err := db.Validate(); err != nil {
		return nil, err
	}

	if db.Type == DatabaseInMemory {
		return inmem.NewDatastore(), nil
	}

	if err := os.MkdirAll(db.DataDir, 0770); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	store, err := sqlite.NewDatastore(db.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite: %w", err)
	}
	return store, nil
}

// Validate returns an error if db names no usable engine or is missing what
// its engine needs.
func (db Database) Validate() error {
	switch db.Type {
	case DatabaseInMemory:
		return nil
	case DatabaseSQLite:
		if db.DataDir == "" {
			return fmt.Errorf("sqlite needs a data directory")
		}
		return nil
	case DatabaseNone:
		return fmt.Errorf("'none' DB is not valid")
	default:
		return fmt.Errorf("unknown database type: %q", db.Type.String())
	}
}

// ParseDBConnString parses a connection string of the form "engine:params",
// or just "engine" for engines without params. "inmem" keeps everything in
// memory and "sqlite:/data" keeps it in a sqlite file under /data.
func ParseDBConnString(s string) (Database, error) {
	engine, params, _ := strings.Cut(s, ":")
	params = strings.TrimSpace(params)

	dbType, err := ParseDBType(strings.TrimSpace(engine))
	if err != nil {
		return Database{}, fmt.Errorf("unsupported DB engine: %w", err)
	}

	db := Database{Type: dbType}
	switch dbType {
	case DatabaseInMemory:
		if params != "" {
			return Database{}, fmt.Errorf("in-memory DB engine takes no params, got %q", params)
		}
	case DatabaseSQLite:
		if params == "" {
			return Database{}, fmt.Errorf("sqlite DB engine requires path to data directory after ':'")
		}
		db.DataDir = params
	}
	return db, nil
}

// Glossary says where the words the server understands come from.
type Glossary struct {
	// Path is a TUNA glossary or manifest file. If empty, the glossary built
	// into the interpreter is used.
	Path string
}

func (g Glossary) String() string {
	if g.Path == "" {
		return "built-in glossary"
	}
	return g.Path
}

// Validate checks the header of the file at Path without registering any of
// its contents. The file must be a TUNA glossary or a TUNA manifest that
// lists at least one file.
func (g Glossary) Validate() error {
	if g.Path == "" {
		return nil
	}

	data, err := os.ReadFile(g.Path)
	if err != nil {
		return err
	}
	info, err := glossfile.ScanFileInfo(data)
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if !strings.EqualFold(info.Format, "TUNA") {
		return fmt.Errorf("%s: not a TUNA file", g.Path)
	}

	switch strings.ToUpper(info.Type) {
	case "GLOSSARY":
		return nil
	case "MANIFEST":
		files, err := glossfile.LoadManifestFile(g.Path)
		if err != nil {
			return fmt.Errorf("%s: %w", g.Path, err)
		}
		if len(files) == 0 {
			return fmt.Errorf("%s: %w", g.Path, glossfile.ErrManifestEmpty)
		}
		return nil
	default:
		return fmt.Errorf("%s: type %q is neither GLOSSARY nor MANIFEST", g.Path, info.Type)
	}
}

// Load registers the glossary, binding every action it names with binder.
func (g Glossary) Load(binder glossfile.Binder) (*glossary.Glossary, error) {
	if g.Path == "" {
		return glossfile.LoadBytes(tqinterp.DefaultGlossary, binder)
	}
	return glossfile.Load(g.Path, binder)
}

// ParseTokenSecret turns a secret given by an operator into a token signing
// key. Secrets shorter than MinSecretSize are repeated until they are long
// enough; secrets longer than MaxSecretSize are rejected rather than being
// silently cut down.
func ParseTokenSecret(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("token secret is empty")
	}

	secret := []byte(s)
	for len(secret) < MinSecretSize {
		secret = append(secret, secret...)
	}
	if len(secret) > MaxSecretSize {
		return nil, fmt.Errorf("token secret is %d bytes, but it must be <= %d bytes", len(secret), MaxSecretSize)
	}
	return secret, nil
}

// Config is the configuration of a Server.
type Config struct {

	// TokenSecret signs session tokens. If not set, a fixed development key
	// is used.
	TokenSecret []byte

	// DB defaults to in-memory storage.
	DB Database

	// UnauthDelayMillis is how long in milliseconds to hold back a 401, 403,
	// or 500 response. Defaults to 1000; any negative number disables it.
	UnauthDelayMillis int

	// Glossary is the glossary that commands are interpreted against.
	Glossary Glossary
}

// UnauthDelay gives UnauthDelayMillis as a Duration. It is zero when the delay
// is disabled.
func (cfg Config) UnauthDelay() time.Duration {
	if cfg.UnauthDelayMillis < 1 {
		return 0
	}
	return time.Millisecond * time.Duration(cfg.UnauthDelayMillis)
}

// FillDefaults returns a copy of cfg with every unset value set to its
// default.
func (cfg Config) FillDefaults() Config {
	if cfg.TokenSecret == nil {
		cfg.TokenSecret = []byte("DEFAULT_TOKEN_SECRET-DO_NOT_USE_IN_PROD!")
	}
	if cfg.DB.Type == DatabaseNone || cfg.DB.Type == "" {
		cfg.DB = Database{Type: DatabaseInMemory}
	}
	if cfg.UnauthDelayMillis == 0 {
		cfg.UnauthDelayMillis = 1000
	}
	return cfg
}

// Validate returns an error if any field of cfg is invalid. Unset fields are
// invalid; call Validate on the result of FillDefaults to use defaults.
func (cfg Config) Validate() error {
	if len(cfg.TokenSecret) < MinSecretSize {
		return fmt.Errorf("token secret: must be at least %d bytes, but is %d", MinSecretSize, len(cfg.TokenSecret))
	}
	if len(cfg.TokenSecret) > MaxSecretSize {
		return fmt.Errorf("token secret: must be no more than %d bytes, but is %d", MaxSecretSize, len(cfg.TokenSecret))
	}
	if err := cfg.DB.Validate(); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	if err := cfg.Glossary.Validate(); err != nil {
		return fmt.Errorf("glossary: %w", err)
	}
	return nil
}
