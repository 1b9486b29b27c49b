package storage

import (
	"bytes"
	"crypto/rand"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/afero"

	"github.com/san-kum/sortviz/internal/step"
)

const (
	metadataFile = "metadata.json"
	stepsFile    = "steps.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

var stepsHeader = []string{"seq", "kind", "index_a", "index_b", "value_a", "value_b", "description", "recorded_at"}

type Store struct {
	fs      afero.Fs
	baseDir string
	now     func() time.Time
	entropy io.Reader
}

func New(fs afero.Fs, baseDir string) *Store {
	return &Store{
		fs:      fs,
		baseDir: baseDir,
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// NewOS is a Store rooted in a directory on the real filesystem.
func NewOS(baseDir string) *Store {
	return New(afero.NewOsFs(), baseDir)
}

func (s *Store) Init() error {
	return s.fs.MkdirAll(s.baseDir, 0o755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Algorithm string             `json:"algorithm"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Shape     string             `json:"shape"`
	Size      int                `json:"size"`
	Speed     int                `json:"speed"`
	Status    string             `json:"status"`
	Steps     int                `json:"steps"`
	Initial   []int              `json:"initial"`
	Final     []int              `json:"final"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run directory holding the metadata, the step table and the
// exported log. It assigns an id and timestamp when meta leaves them empty.
func (s *Store) Save(meta RunMetadata, steps []step.Step) (string, error) {
	now := s.now()
	if meta.ID == "" {
		meta.ID = ulid.MustNew(ulid.Timestamp(now), s.entropy).String()
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = now
	}
	meta.Steps = len(steps)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := s.fs.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}

	metaData, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	if err := WriteFileAtomic(s.fs, filepath.Join(runDir, metadataFile), metaData); err != nil {
		return "", err
	}

	csvData, err := encodeSteps(steps)
	if err != nil {
		return "", err
	}
	if err := WriteFileAtomic(s.fs, filepath.Join(runDir, stepsFile), csvData); err != nil {
		return "", err
	}

	if err := WriteFileAtomic(s.fs, filepath.Join(runDir, step.DefaultExportFile), []byte(exportText(steps))); err != nil {
		return "", err
	}

	return meta.ID, nil
}

func encodeSteps(steps []step.Step) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(stepsHeader); err != nil {
		return nil, err
	}
	for _, st := range steps {
		row := []string{
			strconv.Itoa(st.Seq),
			st.Kind.String(),
			st.IndexA.String(),
			st.IndexB.String(),
			st.ValueA.String(),
			st.ValueB.String(),
			st.Description,
			st.RecordedAt.Format(time.RFC3339Nano),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode steps: %w", err)
	}
	return buf.Bytes(), nil
}

func exportText(steps []step.Step) string {
	var buf bytes.Buffer
	for i, st := range steps {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(step.Format(st))
	}
	return buf.String()
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := afero.ReadDir(s.fs, s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := afero.ReadFile(s.fs, filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode metadata for %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadSteps(runID string) ([]step.Step, error) {
	f, err := s.fs.Open(filepath.Join(s.baseDir, runID, stepsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(stepsHeader)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read steps for %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []step.Step{}, nil
	}

	steps := make([]step.Step, 0, len(records)-1)
	for i, rec := range records[1:] {
		st, err := decodeStep(rec)
		if err != nil {
			return nil, fmt.Errorf("steps.csv line %d: %w", i+2, err)
		}
		steps = append(steps, st)
	}
	return steps, nil
}

func decodeStep(rec []string) (step.Step, error) {
	var st step.Step
	var err error

	if st.Seq, err = strconv.Atoi(rec[0]); err != nil {
		return st, err
	}
	if st.Kind, err = step.ParseKind(rec[1]); err != nil {
		return st, err
	}
	if st.IndexA, err = step.ParseNullInt(rec[2]); err != nil {
		return st, err
	}
	if st.IndexB, err = step.ParseNullInt(rec[3]); err != nil {
		return st, err
	}
	if st.ValueA, err = step.ParseNullInt(rec[4]); err != nil {
		return st, err
	}
	if st.ValueB, err = step.ParseNullInt(rec[5]); err != nil {
		return st, err
	}
	st.Description = rec[6]
	if rec[7] != "" {
		if st.RecordedAt, err = time.Parse(time.RFC3339Nano, rec[7]); err != nil {
			return st, err
		}
	}
	return st, nil
}

// LoadLog returns the exported text log of a run.
func (s *Store) LoadLog(runID string) (string, error) {
	data, err := afero.ReadFile(s.fs, filepath.Join(s.baseDir, runID, step.DefaultExportFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return "", err
	}
	return string(data), nil
}
