package redisq

import (
	"encoding/json"
	"time"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/ports"
)

// taskRecord is the JSON form of a task kept in the data and dead hashes. Raw holds
// the original payload of a record that could not be decoded.
type taskRecord struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	JobID     string    `json:"jobId"`
	QuoteID   string    `json:"quoteId,omitempty"`
	Attempts  int       `json:"attempts"`
	RunAt     time.Time `json:"runAt"`
	LastError string    `json:"lastError,omitempty"`
	Raw       string    `json:"raw,omitempty"`
}

func encodeTask(t ports.Task, lastError string) (string, error) {
	rec := taskRecord{
		ID:        t.ID,
		Kind:      string(t.Kind),
		JobID:     t.JobID.String(),
		Attempts:  t.Attempts,
		RunAt:     t.RunAt.UTC(),
		LastError: lastError,
	}
	if t.QuoteID != nil {
		rec.QuoteID = t.QuoteID.String()
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func encodeUndecodable(id, raw string, cause error) (string, error) {
	out, err := json.Marshal(taskRecord{ID: id, Raw: raw, LastError: "decode task: " + cause.Error()})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func decodeRecord(raw string) (taskRecord, error) {
	var rec taskRecord
	err := json.Unmarshal([]byte(raw), &rec)
	return rec, err
}

func decodeTask(raw string) (ports.Task, string, error) {
	rec, err := decodeRecord(raw)
	if err != nil {
		return ports.Task{}, "", err
	}
	jobID, err := kernel.UUIDFromString(rec.JobID)
	if err != nil {
		return ports.Task{}, "", err
	}
	task := ports.Task{
		ID:       rec.ID,
		Kind:     ports.TaskKind(rec.Kind),
		JobID:    jobID,
		Attempts: rec.Attempts,
		RunAt:    rec.RunAt,
	}
	if rec.QuoteID != "" {
		quoteID, quoteErr := kernel.UUIDFromString(rec.QuoteID)
		if quoteErr != nil {
			return ports.Task{}, "", quoteErr
		}
		task.QuoteID = &quoteID
	}
	return task, rec.LastError, nil
}
