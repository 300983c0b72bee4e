package memory

import "sync"

// Journal records the order in which tables were written. Repositories
// accept a shared nil-able journal so tests can assert phase ordering.
type Journal struct {
	mu      sync.Mutex
	entries []string
}

func NewJournal() *Journal {
	return &Journal{}
}

func (j *Journal) record(table string) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, table)
}

func (j *Journal) Entries() []string {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}
