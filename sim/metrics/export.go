package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tiered-sim/tiered-sim/sim"
)

// resultColumns is the fixed header row of the results export.
var resultColumns = []string{
	"Cloudlet ID", "Status", "Datacenter ID", "VM ID", "Actual CPU Time",
	"Start Time", "End Time", "Task Size", "Wait Time", "Response Time",
	"Makespan", "Turnaround Time",
}

func fmt2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ExportCSV writes one row per SUCCESS record to path.
// Per row: wait = start − submission, response per f, makespan = finish − start,
// turnaround = finish − submission.
func ExportCSV(path string, records []sim.CompletedTaskRecord, f Formulas, classify Classifier) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating results file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := WriteCSV(file, records, f, classify); err != nil {
		return err
	}
	return file.Close()
}

// WriteCSV is ExportCSV against an arbitrary writer.
func WriteCSV(w io.Writer, records []sim.CompletedTaskRecord, f Formulas, classify Classifier) error {
	if classify == nil {
		return fmt.Errorf("writing results: nil task size classifier")
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(resultColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range Successful(records) {
		row := []string{
			strconv.Itoa(r.TaskID),
			string(r.Status),
			strconv.Itoa(r.DatacenterID),
			strconv.Itoa(r.VMID),
			fmt2(r.ActualCPUTime),
			fmt2(r.ExecStartTime),
			fmt2(r.ExecFinishTime),
			classify(r).String(),
			fmt2(r.WaitTime()),
			fmt2(f.rowResponse(r)),
			fmt2(r.ExecTime()),
			fmt2(r.TurnaroundTime()),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", r.TaskID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// LoadResultsCSV reads a results export back into records. Submission time
// is reconstructed as start − wait; the returned map carries each task's
// size label for ByTaskID. Values are only as precise as the export (2 dp).
func LoadResultsCSV(path string) ([]sim.CompletedTaskRecord, map[int]sim.Tier, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening results: %w", err)
	}
	defer func() { _ = file.Close() }()
	return ReadCSV(file)
}

// ReadCSV is LoadResultsCSV against an arbitrary reader.
func ReadCSV(r io.Reader) ([]sim.CompletedTaskRecord, map[int]sim.Tier, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading CSV header: %w", err)
	}
	if len(header) != len(resultColumns) {
		return nil, nil, fmt.Errorf("CSV header has %d columns, expected %d", len(header), len(resultColumns))
	}
	for i, col := range resultColumns {
		if header[i] != col {
			return nil, nil, fmt.Errorf("CSV column %d is %q, expected %q", i, header[i], col)
		}
	}

	var records []sim.CompletedTaskRecord
	tiers := make(map[int]sim.Tier)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading CSV row: %w", err)
		}
		rec, tier, err := parseResultRow(row)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
		tiers[rec.TaskID] = tier
	}
	return records, tiers, nil
}

func parseResultRow(row []string) (sim.CompletedTaskRecord, sim.Tier, error) {
	var rec sim.CompletedTaskRecord
	ints := []*int{&rec.TaskID, nil, &rec.DatacenterID, &rec.VMID}
	for i, dst := range ints {
		if dst == nil {
			continue
		}
		v, err := strconv.Atoi(row[i])
		if err != nil {
			return rec, 0, fmt.Errorf("column %q: %w", resultColumns[i], err)
		}
		*dst = v
	}
	rec.Status = sim.TaskStatus(row[1])

	floatsAt := map[int]*float64{4: &rec.ActualCPUTime, 5: &rec.ExecStartTime, 6: &rec.ExecFinishTime}
	for i, dst := range floatsAt {
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return rec, 0, fmt.Errorf("column %q: %w", resultColumns[i], err)
		}
		*dst = v
	}
	wait, err := strconv.ParseFloat(row[8], 64)
	if err != nil {
		return rec, 0, fmt.Errorf("column %q: %w", resultColumns[8], err)
	}
	rec.SubmissionTime = rec.ExecStartTime - wait

	tier, err := sim.ParseTier(row[7])
	if err != nil {
		return rec, 0, fmt.Errorf("column %q: %w", resultColumns[7], err)
	}
	return rec, tier, nil
}
