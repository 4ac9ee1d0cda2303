package domain

import (
	"practice-log/internal/repository"
)

// PracticeLogMapper handles conversion between domain and store records.
type PracticeLogMapper struct{}

// NewPracticeLogMapper creates a new PracticeLogMapper instance.
func NewPracticeLogMapper() *PracticeLogMapper {
	return &PracticeLogMapper{}
}

// InputToRecord builds the store record for a create call.
func (m *PracticeLogMapper) InputToRecord(in CreateRecordInput) *repository.Record {
	return &repository.Record{
		Date:        in.Date,
		Category:    string(in.Category),
		SubCategory: in.SubCategory,
		Duration:    in.Duration,
		Location:    in.Location,
		Notes:       in.Notes,
	}
}

// ToRecord converts a domain PracticeLog to a store record.
func (m *PracticeLogMapper) ToRecord(p PracticeLog) *repository.Record {
	return &repository.Record{
		ID:          p.ID,
		Date:        p.Date,
		Category:    string(p.Category),
		SubCategory: p.SubCategory,
		Duration:    p.Duration,
		Location:    p.Location,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToInput returns the editable fields of p.
func (m *PracticeLogMapper) ToInput(p PracticeLog) CreateRecordInput {
	return CreateRecordInput{
		Date:        p.Date,
		Category:    p.Category,
		SubCategory: p.SubCategory,
		Duration:    p.Duration,
		Location:    p.Location,
		Notes:       p.Notes,
	}
}

// FromRecord converts a store record to a domain PracticeLog. Unknown
// category names written by other clients are kept verbatim.
func (m *PracticeLogMapper) FromRecord(r *repository.Record) PracticeLog {
	cat := Category(r.Category)
	if parsed, err := ParseCategory(r.Category); err == nil {
		cat = parsed
	}
	return PracticeLog{
		ID:          r.ID,
		Date:        r.Date,
		Category:    cat,
		SubCategory: r.SubCategory,
		Duration:    r.Duration,
		Location:    r.Location,
		Notes:       r.Notes,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// FromRecordSlice converts store records to domain PracticeLogs.
func (m *PracticeLogMapper) FromRecordSlice(rs []*repository.Record) []PracticeLog {
	logs := make([]PracticeLog, len(rs))
	for i, r := range rs {
		logs[i] = m.FromRecord(r)
	}
	return logs
}
