package optimizer

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agent-harness/harness/domain"
)

// TraceData is the result of one trace-directory scan: raw scan stats
// plus the recent records usable for revision aggregation.
type TraceData struct {
	Stats  domain.TraceScanStats
	Recent []domain.RecentTrace
}

// maxConcurrentTraceFiles bounds concurrent trace-file reads
const maxConcurrentTraceFiles = 4

// ScanTraces reads newline-delimited JSON trace files (.jsonl or .json)
// under traceDir. A line that fails to parse, or whose timestamp fails
// to parse, is counted as malformed and skipped; a malformed line never
// aborts the scan. Staleness is judged against the supplied now so the
// scan stays deterministic under test.
func ScanTraces(traceDir string, maxAgeDays int, now time.Time) (*TraceData, error) {
	if _, err := os.Stat(traceDir); err != nil {
		return &TraceData{}, nil
	}

	entries, err := os.ReadDir(traceDir)
	if err != nil {
		return nil, domain.NewTraceError("failed to read trace directory", err)
	}

	var (
		mu   sync.Mutex
		data TraceData
	)

	group := errgroup.Group{}
	group.SetLimit(maxConcurrentTraceFiles)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		extension := strings.ToLower(filepath.Ext(entry.Name()))
		if extension != ".jsonl" && extension != ".json" {
			continue
		}
		path := filepath.Join(traceDir, entry.Name())

		group.Go(func() error {
			fileData, err := scanTraceFile(path, maxAgeDays, now)
			if err != nil {
				return err
			}
			mu.Lock()
			data.Stats.Recent += fileData.Stats.Recent
			data.Stats.Stale += fileData.Stats.Stale
			data.Stats.Malformed += fileData.Stats.Malformed
			data.Recent = append(data.Recent, fileData.Recent...)
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

// scanTraceFile scans a single trace file line by line
func scanTraceFile(path string, maxAgeDays int, now time.Time) (*TraceData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, domain.NewTraceError("failed to open trace file: "+path, err)
	}
	defer file.Close()

	data := &TraceData{}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var record domain.TraceRecord
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			data.Stats.Malformed++
			continue
		}
		timestamp, err := time.Parse(time.RFC3339, record.Timestamp)
		if err != nil {
			data.Stats.Malformed++
			continue
		}

		ageDays := int(now.Sub(timestamp).Hours() / 24)
		if ageDays > maxAgeDays {
			data.Stats.Stale++
			continue
		}
		data.Stats.Recent++

		// Records missing the aggregation fields still count in the
		// raw scan stats but are excluded from revision metrics.
		if record.TaskID == nil || record.Revision == nil || record.Outcome == nil {
			continue
		}
		data.Recent = append(data.Recent, domain.RecentTrace{
			Timestamp: timestamp,
			TaskID:    *record.TaskID,
			Revision:  *record.Revision,
			Outcome:   *record.Outcome,
			Steps:     record.Steps,
			TokenEst:  record.TokenEst,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, domain.NewTraceError("failed to read trace file: "+path, err)
	}
	return data, nil
}
