package corpus

import (
	"encoding/gob"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/graphfuzz/graphfuzz-go/internal/graph"
)

// BatchSize is B in spec §3: every batch holds exactly this many records
// except possibly the last (currently open) one.
const BatchSize = 1000

// maxSampleAttempts bounds the "skip and retry" policy of spec §4.2 when an
// individual batch file is missing or corrupt.
const maxSampleAttempts = 10

// wireRecord is the on-disk shape of one corpus entry: ⟨seq, timestamp,
// graph⟩, matching original_source/Scheduler/RandomDiskSchedulerUpdated.py's
// pickle.dump((self.graph_counter, timestamp, graph), ...).
type wireRecord struct {
	Seq       int64
	Timestamp float64
	Graph     *graph.Graph
}

// diskScheduler is the batched on-disk backend of spec §4.2. Appends go to
// the currently-open batch file; once it reaches BatchSize records it is
// closed and a new one opened. Sample chooses uniformly among closed
// batches (never the open one), loads every record in the chosen batch,
// and picks one uniformly -- batch-uniform, not record-uniform, by design
// (spec §4.2's "Design note", preserved verbatim per spec §9's open
// question).
type diskScheduler struct {
	mu     sync.Mutex
	rnd    *rand.Rand
	dir    string
	prefix string

	instanceID string
	batchID    int
	current    *os.File
	currentEnc *gob.Encoder
	countOpen  int
	nextSeq    int64

	closedBatches []string
}

// NewDisk returns a Scheduler backed by batch files under dir, named
// {prefix}_{instance-id}_batch_{batch-id}.pkl. dir is created if missing.
// Any batch files already present (from a prior scheduler instance on the
// same directory) are discovered so Sample/Iterate can see them immediately.
func NewDisk(rnd *rand.Rand, dir, prefix string) (Scheduler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("corpus: create dir %q: %w", dir, err)
	}
	existing, err := globBatches(dir, prefix)
	if err != nil {
		return nil, err
	}
	return &diskScheduler{
		rnd:           rnd,
		dir:           dir,
		prefix:        prefix,
		instanceID:    strings.ReplaceAll(uuid.New().String(), "-", "")[:10],
		batchID:       1,
		nextSeq:       1,
		closedBatches: existing,
	}, nil
}

func globBatches(dir, prefix string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, fmt.Sprintf("%s_*_batch_*.pkl", prefix)))
	if err != nil {
		return nil, fmt.Errorf("corpus: glob batches: %w", err)
	}
	sort.Slice(matches, func(i, j int) bool {
		ii, ij := batchNumber(matches[i]), batchNumber(matches[j])
		if ii != ij {
			return ii < ij
		}
		return matches[i] < matches[j]
	})
	return matches, nil
}

// batchNumber extracts the trailing {batch-id} from a batch filename so
// files sort numerically (batch_2 before batch_10) rather than lexically.
func batchNumber(path string) int {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".pkl")
	idx := strings.LastIndex(base, "_batch_")
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(base[idx+len("_batch_"):])
	if err != nil {
		return 0
	}
	return n
}

func (d *diskScheduler) batchPath(batchID int) string {
	return filepath.Join(d.dir, fmt.Sprintf("%s_%s_batch_%d.pkl", d.prefix, d.instanceID, batchID))
}

func (d *diskScheduler) Add(records ...Record) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, r := range records {
		if err := d.addOne(r); err != nil {
			return err
		}
	}
	return nil
}

func (d *diskScheduler) addOne(r Record) error {
	if d.current == nil {
		f, err := os.Create(d.batchPath(d.batchID))
		if err != nil {
			return fmt.Errorf("corpus: open batch %d: %w", d.batchID, err)
		}
		d.current = f
		d.currentEnc = gob.NewEncoder(f)
		d.countOpen = 0
	}

	wr := wireRecord{Seq: d.nextSeq, Timestamp: r.Timestamp, Graph: r.Graph}
	d.nextSeq++
	if err := d.currentEnc.Encode(wr); err != nil {
		return fmt.Errorf("corpus: encode record: %w", err)
	}
	d.countOpen++

	if d.countOpen >= BatchSize {
		return d.closeCurrentLocked()
	}
	return nil
}

func (d *diskScheduler) closeCurrentLocked() error {
	if d.current == nil {
		return nil
	}
	path := d.current.Name()
	err := d.current.Close()
	d.current = nil
	d.currentEnc = nil
	d.countOpen = 0
	d.batchID++
	if err != nil {
		return fmt.Errorf("corpus: close batch: %w", err)
	}
	d.closedBatches = append(d.closedBatches, path)
	return nil
}

func (d *diskScheduler) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closeCurrentLocked()
}

func (d *diskScheduler) Sample() (*graph.Graph, error) {
	d.mu.Lock()
	pool := make([]string, len(d.closedBatches))
	copy(pool, d.closedBatches)
	d.mu.Unlock()

	if len(pool) == 0 {
		return nil, ErrEmpty
	}

	attempts := maxSampleAttempts
	if attempts > len(pool) {
		attempts = len(pool)
	}
	for i := 0; i < attempts; i++ {
		path := pool[d.rnd.Intn(len(pool))]
		records, err := readBatch(path)
		if err != nil || len(records) == 0 {
			continue // skip unreadable/empty batch, try another (spec §4.2, §7 kind 1)
		}
		return records[d.rnd.Intn(len(records))].Graph, nil
	}
	return nil, ErrEmpty
}

func readBatch(path string) ([]wireRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := gob.NewDecoder(f)
	var out []wireRecord
	for {
		var wr wireRecord
		if err := dec.Decode(&wr); err != nil {
			break // EOF terminates the stream (spec §4.2)
		}
		out = append(out, wr)
	}
	return out, nil
}

// Iterate replays every record from every batch file currently on disk
// (open or closed), ordered by batch number and then by filename, which
// matches insertion order for batches produced within one scheduler's
// lifetime. It is a fresh snapshot
// each call, not a restartable cursor.
func (d *diskScheduler) Iterate() ([]Record, error) {
	d.mu.Lock()
	if d.current != nil {
		if err := d.current.Sync(); err != nil {
			d.mu.Unlock()
			return nil, fmt.Errorf("corpus: flush open batch: %w", err)
		}
	}
	dir, prefix := d.dir, d.prefix
	d.mu.Unlock()

	paths, err := globBatches(dir, prefix)
	if err != nil {
		return nil, err
	}

	var out []Record
	for _, path := range paths {
		records, err := readBatch(path)
		if err != nil {
			continue
		}
		for _, wr := range records {
			out = append(out, Record{Seq: wr.Seq, Timestamp: wr.Timestamp, Graph: wr.Graph})
		}
	}
	return out, nil
}
