package sim

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"
)

// IDGenerator can generate IDs
type IDGenerator interface {
	// Generate an ID
	Generate() string
}

var (
	idGeneratorOnce sync.Once
	idGeneratorKind = sequentialIDs
	idGenerator     IDGenerator
)

type idKind int

const (
	sequentialIDs idKind = iota
	uniqueIDs
)

// UseUniqueIDGenerator makes the ID generator return globally unique IDs,
// which stay unique across runs. It must be called before the first ID is
// generated.
func UseUniqueIDGenerator() {
	if idGenerator != nil {
		panic("cannot change id generator type after using it")
	}

	idGeneratorKind = uniqueIDs
}

// GetIDGenerator returns the ID generator. Unless UseUniqueIDGenerator has
// been called, IDs are sequential numbers, which keeps runs reproducible.
func GetIDGenerator() IDGenerator {
	idGeneratorOnce.Do(func() {
		switch idGeneratorKind {
		case uniqueIDs:
			idGenerator = uniqueIDGenerator{}
		default:
			idGenerator = &sequentialIDGenerator{}
		}
	})

	return idGenerator
}

type sequentialIDGenerator struct {
	nextID uint64
}

func (g *sequentialIDGenerator) Generate() string {
	idNumber := atomic.AddUint64(&g.nextID, 1)
	return strconv.FormatUint(idNumber, 10)
}

type uniqueIDGenerator struct{}

func (uniqueIDGenerator) Generate() string {
	return xid.New().String()
}
