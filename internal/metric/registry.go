package metric

import (
	"fmt"
	"sync"

	"github.com/kailas-cloud/ragscore/internal/domain/record"
	"github.com/kailas-cloud/ragscore/internal/term"
)

// Scorer computes one metric over a record. Implementations are pure
// functions of the record: no I/O, no shared mutable state.
type Scorer interface {
	Name() Name
	// Evaluate scores the record. The only expected error is
	// domain.ErrMissingGroundTruth for metrics that need a reference
	// answer; the orchestrator translates it into exclusion, not failure.
	Evaluate(rec record.Record) (Result, error)
}

// Constructor builds a scorer over a shared term extractor.
type Constructor func(ex *term.Extractor) Scorer

var (
	registryMu sync.RWMutex
	registry   = map[Name]Constructor{}
)

// Register adds a metric constructor under the given name, making it
// selectable by orchestrators without changes to their call sites.
// Registration is expected at startup; built-in names cannot be
// overridden.
func Register(name Name, ctor Constructor) error {
	if name == "" {
		return fmt.Errorf("metric name is required")
	}
	if ctor == nil {
		return fmt.Errorf("metric %q: constructor is required", name)
	}
	switch name {
	case Faithfulness, ContextPrecision, Relevance:
		return fmt.Errorf("metric %q is built-in", name)
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		return fmt.Errorf("metric %q already registered", name)
	}
	registry[name] = ctor
	return nil
}

// Lookup returns the registered constructor for name.
func Lookup(name Name) (Constructor, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ctor, ok := registry[name]
	return ctor, ok
}

func isRegistered(name Name) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}
