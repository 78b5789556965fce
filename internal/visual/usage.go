package visual

// DefaultLogCapacity is the number of usage entries kept per selector.
const DefaultLogCapacity = 100

// usageLog is a fixed-capacity ring buffer of usage entries.
// When full, appending overwrites the oldest entry.
type usageLog struct {
	entries []UsageEntry
	start   int // index of the oldest entry
	size    int
}

func newUsageLog(capacity int) *usageLog {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &usageLog{entries: make([]UsageEntry, capacity)}
}

func (l *usageLog) append(e UsageEntry) {
	capacity := len(l.entries)
	if l.size < capacity {
		l.entries[(l.start+l.size)%capacity] = e
		l.size++
		return
	}
	l.entries[l.start] = e
	l.start = (l.start + 1) % capacity
}

// snapshot returns a copy of the entries, oldest first.
func (l *usageLog) snapshot() []UsageEntry {
	out := make([]UsageEntry, l.size)
	for i := range l.size {
		e := l.entries[(l.start+i)%len(l.entries)]
		e.Categories = append([]Category(nil), e.Categories...)
		out[i] = e
	}
	return out
}

func (l *usageLog) stats() UsageStats {
	stats := UsageStats{
		Total:      l.size,
		ByType:     make(map[VisualType]int),
		ByCategory: make(map[Category]int),
	}
	for i := range l.size {
		e := &l.entries[(l.start+i)%len(l.entries)]
		stats.ByType[e.Type]++
		for _, c := range e.Categories {
			stats.ByCategory[c]++
		}
	}
	return stats
}
