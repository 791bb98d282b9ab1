package memory

import (
	"errors"
	"time"

	"github.com/josephgoksu/RepoWing/internal/analyzer"
)

// ErrRecordNotFound is returned when a history record id does not exist.
var ErrRecordNotFound = errors.New("report record not found")

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 20

// Record is one persisted analysis run.
type Record struct {
	ID          string                   `json:"id"`
	Repo        string                   `json:"repo"`
	Fingerprint string                   `json:"fingerprint"`
	ProjectType analyzer.ProjectType     `json:"projectType"`
	Score       int                      `json:"score"`
	Grade       analyzer.Grade           `json:"grade"`
	Partial     bool                     `json:"partial"`
	CreatedAt   time.Time                `json:"createdAt"`
	Report      *analyzer.AnalysisReport `json:"report,omitempty"`
}

// ReportStore persists analysis reports.
type ReportStore interface {
	Save(report *analyzer.AnalysisReport) (*Record, error)
	Get(id string) (*Record, error)
	List(repo string, limit int) ([]Record, error)
	Close() error
}
