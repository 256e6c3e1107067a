package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"liquidityRange/internal/model"
)

// JsonlStorage appends position plans to a JSONL file.
type JsonlStorage struct {
	path string
	mu   sync.Mutex
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

// PutPlans appends plans as JSON lines.
func (s *JsonlStorage) PutPlans(plans []model.PositionPlan) error {
	if len(plans) == 0 {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, plan := range plans {
		line, err := json.Marshal(plan)
		if err != nil {
			return fmt.Errorf("marshal plan: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write plan: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}

// LastPlan returns the most recent plan in the file, optionally restricted to
// one pool. A missing file reports no plan.
func (s *JsonlStorage) LastPlan(pool string) (model.PositionPlan, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.PositionPlan{}, false, nil
		}
		return model.PositionPlan{}, false, fmt.Errorf("open plan file: %w", err)
	}
	defer file.Close()

	var (
		last  model.PositionPlan
		found bool
	)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; scanner.Scan(); line++ {
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var plan model.PositionPlan
		if err := json.Unmarshal(raw, &plan); err != nil {
			return model.PositionPlan{}, false, fmt.Errorf("line %d: %w", line, err)
		}
		if pool != "" && !strings.EqualFold(plan.Pool, pool) {
			continue
		}
		last, found = plan, true
	}
	if err := scanner.Err(); err != nil {
		return model.PositionPlan{}, false, fmt.Errorf("read plan file: %w", err)
	}
	return last, found, nil
}
