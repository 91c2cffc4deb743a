// Package storage persists finished sweep reports.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wildfunctions/onemax_sweep/pkg/engine"
	"github.com/wildfunctions/onemax_sweep/pkg/grid"
)

// Store saves and loads sweep reports.
type Store interface {
	Init(ctx context.Context) error
	SaveReport(ctx context.Context, record Record) error
	GetReport(ctx context.Context, id string) (Record, bool, error)
	ListReports(ctx context.Context) ([]Summary, error)
}

// Record is one persisted sweep.
type Record struct {
	SchemaVersion int                `json:"schema_version"`
	CodecVersion  int                `json:"codec_version"`
	ID            string             `json:"id"`
	CreatedAt     time.Time          `json:"created_at"`
	Report        engine.FinalReport `json:"report"`
}

// Summary is the listing view of a Record.
type Summary struct {
	ID             string     `json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	BestPoint      grid.Point `json:"best_point"`
	BestScore      float64    `json:"best_score"`
	CellsEvaluated int        `json:"cells_evaluated"`
}

// NewRecord wraps a report with a fresh id and the current codec versions.
func NewRecord(report engine.FinalReport) Record {
	return Record{
		SchemaVersion: CurrentSchemaVersion,
		CodecVersion:  CurrentCodecVersion,
		ID:            uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		Report:        report,
	}
}

// Summarize derives the listing view.
func (r Record) Summarize() Summary {
	s := Summary{
		ID:             r.ID,
		CreatedAt:      r.CreatedAt,
		BestPoint:      r.Report.BestPoint,
		CellsEvaluated: len(r.Report.Cells),
	}
	if r.Report.Best != nil {
		s.BestScore = r.Report.Best.Score
	}
	return s
}
