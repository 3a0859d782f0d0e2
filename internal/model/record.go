package model

// ZIPCodeColumn is the key column of every persisted artifact.
const ZIPCodeColumn = "ZIP Code"

// ErrorField is the key under which an error record reports its message.
const ErrorField = "error"

// RecordStatus tags which variant a Record holds.
type RecordStatus string

const (
	RecordOK    RecordStatus = "ok"
	RecordError RecordStatus = "error"
)

// Stage names the lookup step that produced an error record.
type Stage string

const (
	StageState  Stage = "state"
	StageCensus Stage = "census"
)

// Field is a single labeled census value.
type Field struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Record is the outcome of looking up one ZIP code. A success record carries
// the labeled census fields; an error record carries the stage and message.
type Record struct {
	ZIP    string       `json:"zip" yaml:"zip"`
	Status RecordStatus `json:"status" yaml:"status"`
	Fields []Field      `json:"fields,omitempty" yaml:"fields,omitempty"`
	Stage  Stage        `json:"stage,omitempty" yaml:"stage,omitempty"`
	Error  string       `json:"error,omitempty" yaml:"error,omitempty"`

	// Cause is the underlying error of an error record, kept for
	// classification and never persisted.
	Cause error `json:"-" yaml:"-"`
}

// NewRecord builds a success record. The ZIP Code field is always set to zip,
// replacing whatever value the fields carried.
func NewRecord(zip string, fields []Field) Record {
	r := Record{ZIP: zip, Status: RecordOK, Fields: fields}
	r.Set(ZIPCodeColumn, zip)
	return r
}

// NewErrorRecord builds an error record for zip.
func NewErrorRecord(zip string, stage Stage, msg string, cause error) Record {
	return Record{ZIP: zip, Status: RecordError, Stage: stage, Error: msg, Cause: cause}
}

// OK reports whether r is a success record.
func (r Record) OK() bool {
	return r.Status == RecordOK
}

// Get returns the value for label.
func (r Record) Get(label string) (string, bool) {
	for _, f := range r.Fields {
		if f.Label == label {
			return f.Value, true
		}
	}
	return "", false
}

// Set replaces the value for label, appending the field if absent.
func (r *Record) Set(label, value string) {
	for i := range r.Fields {
		if r.Fields[i].Label == label {
			r.Fields[i].Value = value
			return
		}
	}
	r.Fields = append(r.Fields, Field{Label: label, Value: value})
}

// Map flattens the record into label → value. Error records map to the ZIP
// Code and the error message.
func (r Record) Map() map[string]string {
	if !r.OK() {
		return map[string]string{
			ZIPCodeColumn: r.ZIP,
			ErrorField:    r.Error,
		}
	}
	m := make(map[string]string, len(r.Fields))
	for _, f := range r.Fields {
		m[f.Label] = f.Value
	}
	return m
}
