package datarecording

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// DefaultBatchSize is the number of buffered entries that triggers a flush.
const DefaultBatchSize = 100000

// DataRecorder is a backend that can record and store data
type DataRecorder interface {
	// CreateTable creates a table whose columns are the exported fields of
	// the sample entry.
	CreateTable(tableName string, sampleEntry any)

	// InsertData buffers an entry for a table that already exists.
	InsertData(tableName string, entry any)

	// ListTables returns the names of all the tables, sorted.
	ListTables() []string

	// Flush writes all the buffered entries into the database.
	Flush()

	// Close flushes the buffered entries and closes the database.
	Close() error
}

// NewDataRecorder creates a recorder that writes into the SQLite file
// path.sqlite3. An empty path picks a unique file name. Buffered entries are
// flushed when the program exits through atexit.
func NewDataRecorder(path string) DataRecorder {
	w := &sqliteWriter{
		dbName:    path,
		batchSize: DefaultBatchSize,
		tables:    make(map[string]*table),
	}

	w.Init()

	atexit.Register(func() { w.Flush() })

	return w
}

// NewDataRecorderWithDB creates a recorder that writes into an opened
// database.
func NewDataRecorderWithDB(db *sql.DB, batchSize int) DataRecorder {
	if batchSize < 1 {
		panic("batch size must be positive")
	}

	w := &sqliteWriter{
		DB:        db,
		batchSize: batchSize,
		tables:    make(map[string]*table),
	}

	atexit.Register(func() { w.Flush() })

	return w
}

type table struct {
	structType reflect.Type
	entries    []any
}

// sqliteWriter is the writer that writes data into SQLite database
type sqliteWriter struct {
	*sql.DB

	lock       sync.Mutex
	dbName     string
	tables     map[string]*table
	batchSize  int
	entryCount int
	closed     bool
}

// Init establishes a connection to the database.
func (w *sqliteWriter) Init() {
	if w.dbName == "" {
		w.dbName = "portnum_run_" + xid.New().String()
	}

	filename := w.dbName + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	fmt.Fprintf(os.Stderr, "Database created for recording: %s\n", filename)

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	w.DB = db
}

func isAllowedKind(kind reflect.Kind) bool {
	switch kind {
	case
		reflect.Bool,
		reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64,
		reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Uint64,
		reflect.Float32,
		reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

func entryMustBeFlat(entry any) {
	t := reflect.TypeOf(entry)
	if t == nil || t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("entry must be a struct, got %T", entry))
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		if !isAllowedKind(field.Type.Kind()) {
			panic(fmt.Sprintf("field %s of %s has unsupported kind %s",
				field.Name, t, field.Type.Kind()))
		}
	}
}

func (w *sqliteWriter) CreateTable(tableName string, sampleEntry any) {
	entryMustBeFlat(sampleEntry)

	w.lock.Lock()
	defer w.lock.Unlock()

	if _, exists := w.tables[tableName]; exists {
		panic(fmt.Sprintf("table %s already exists", tableName))
	}

	fields := strings.Join(structs.Names(sampleEntry), ", \n\t")
	w.mustExecute("CREATE TABLE " + tableName +
		" (\n\t" + fields + "\n);")

	w.tables[tableName] = &table{
		structType: reflect.TypeOf(sampleEntry),
	}
}

func (w *sqliteWriter) InsertData(tableName string, entry any) {
	w.lock.Lock()
	defer w.lock.Unlock()

	t, exists := w.tables[tableName]
	if !exists {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	if reflect.TypeOf(entry) != t.structType {
		panic(fmt.Sprintf("table %s stores %s, got %T",
			tableName, t.structType, entry))
	}

	t.entries = append(t.entries, entry)

	w.entryCount++
	if w.entryCount >= w.batchSize {
		w.flush()
	}
}

func (w *sqliteWriter) ListTables() []string {
	w.lock.Lock()
	defer w.lock.Unlock()

	tables := make([]string, 0, len(w.tables))
	for name := range w.tables {
		tables = append(tables, name)
	}

	sort.Strings(tables)

	return tables
}

func (w *sqliteWriter) Flush() {
	w.lock.Lock()
	defer w.lock.Unlock()

	w.flush()
}

func (w *sqliteWriter) flush() {
	if w.entryCount == 0 || w.closed {
		return
	}

	tx, err := w.Begin()
	if err != nil {
		panic(err)
	}

	for name, t := range w.tables {
		if len(t.entries) == 0 {
			continue
		}

		stmt := mustPrepareInsert(tx, name, t.entries[0])

		for _, entry := range t.entries {
			_, err := stmt.Exec(structs.Values(entry)...)
			if err != nil {
				panic(err)
			}
		}

		stmt.Close()
		t.entries = nil
	}

	err = tx.Commit()
	if err != nil {
		panic(err)
	}

	w.entryCount = 0
}

func (w *sqliteWriter) Close() error {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.closed {
		return nil
	}

	w.flush()
	w.closed = true

	return w.DB.Close()
}

func (w *sqliteWriter) mustExecute(query string) sql.Result {
	res, err := w.Exec(query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to execute: %s\n", query)
		panic(err)
	}

	return res
}

func mustPrepareInsert(tx *sql.Tx, tableName string, entry any) *sql.Stmt {
	placeholders := make([]string, len(structs.Names(entry)))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	stmt, err := tx.Prepare("INSERT INTO " + tableName +
		" VALUES (" + strings.Join(placeholders, ", ") + ")")
	if err != nil {
		panic(err)
	}

	return stmt
}
